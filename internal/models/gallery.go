package models

import "time"

// Media types stored on gallery items.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// GalleryItem captures a single media asset published in the gallery.
// CollectionID is set when the item was created through the batch
// upload flow; CollectionName is a denormalised copy of the collection
// name at creation time and is not kept in sync afterwards.
type GalleryItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:255" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	Category       string    `gorm:"size:120;index" json:"category"`
	MediaURL       string    `gorm:"size:512;not null" json:"media_url"`
	ThumbnailURL   string    `gorm:"size:512" json:"thumbnail_url"`
	MediaType      string    `gorm:"size:16;not null;default:image" json:"media_type"`
	CollectionID   *uint     `gorm:"index" json:"collection_id"`
	CollectionName string    `gorm:"size:255" json:"collection_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GalleryCollection groups a batch of items under a shared name.
// ItemCount is a snapshot taken at creation time; deleting items
// individually afterwards leaves it stale on purpose.
type GalleryCollection struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Category     string    `gorm:"size:120" json:"category"`
	ThumbnailURL string    `gorm:"size:512" json:"thumbnail_url"`
	ItemCount    int       `gorm:"not null" json:"item_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
