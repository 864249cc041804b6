package models

import (
	"time"

	"gorm.io/datatypes"
)

// UploadRecord is an audit entry for every asset pushed to the CDN,
// including entries created as part of a batch. Metadata carries the
// raw provider response fields worth keeping (public id, resource
// type, reported bytes).
type UploadRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	BatchID   string         `gorm:"size:64;index" json:"batch_id"`
	FileName  string         `gorm:"size:255;not null" json:"file_name"`
	URL       string         `gorm:"size:512;not null" json:"url"`
	MediaType string         `gorm:"size:16;not null" json:"media_type"`
	SizeBytes int64          `gorm:"not null" json:"size_bytes"`
	Checksum  string         `gorm:"size:128;index" json:"checksum"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}
