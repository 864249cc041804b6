package dto

import "time"

// GalleryItemResponse represents a gallery item returned to clients.
type GalleryItemResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	MediaURL       string    `json:"media_url"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	MediaType      string    `json:"media_type"`
	CollectionID   *uint     `json:"collection_id,omitempty"`
	CollectionName string    `json:"collection_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// GalleryListResponse contains paginated gallery items.
type GalleryListResponse struct {
	Items      []GalleryItemResponse `json:"items"`
	Pagination PaginationMeta        `json:"pagination"`
}

// GalleryItemRequest carries admin create/update payloads for single items.
type GalleryItemRequest struct {
	Title        string `json:"title" validate:"max=255"`
	Description  string `json:"description" validate:"max=2000"`
	Category     string `json:"category" validate:"max=120"`
	MediaURL     string `json:"media_url" validate:"required,url,max=512"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url,max=512"`
	MediaType    string `json:"media_type" validate:"omitempty,oneof=image video"`
}

// CategoryListResponse carries the derived filter categories in order
// of first appearance.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}
