package dto

import "time"

// ContactRequest defines the expected payload for the contact form endpoint.
type ContactRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email,max=160"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Subject  string `json:"subject" validate:"required,min=2,max=255"`
	Message  string `json:"message" validate:"required,min=10,max=2000"`
	Honeypot string `json:"_note"`
}

// ContactResponse communicates the status of the submission processing.
type ContactResponse struct {
	ReferenceID string `json:"reference_id"`
	Status      string `json:"status"`
}

// AdminContactListRequest narrows the admin contact listing.
type AdminContactListRequest struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// AdminContactResponse is the admin view of a submission.
type AdminContactResponse struct {
	ID          uint      `json:"id"`
	ReferenceID string    `json:"reference_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdminContactListResponse contains paginated submissions.
type AdminContactListResponse struct {
	Items      []AdminContactResponse `json:"items"`
	Pagination PaginationMeta         `json:"pagination"`
}

// ContactStatusRequest updates a submission's read status.
type ContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unread read"`
}
