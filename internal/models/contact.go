package models

import "time"

// Contact submission statuses.
const (
	ContactStatusUnread = "unread"
	ContactStatusRead   = "read"
)

// ContactSubmission stores inbound enquiries from the public contact form.
type ContactSubmission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ReferenceID string    `gorm:"size:64;uniqueIndex" json:"reference_id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Email       string    `gorm:"size:160;not null" json:"email"`
	Phone       string    `gorm:"size:32" json:"phone"`
	Subject     string    `gorm:"size:255;not null" json:"subject"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Status      string    `gorm:"size:32;not null" json:"status"`
	Checksum    string    `gorm:"size:128;index" json:"checksum"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
