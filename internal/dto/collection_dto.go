package dto

import "time"

// GalleryCollectionResponse represents a collection returned to clients.
// ItemCount is the creation-time snapshot stored on the document;
// LiveItemCount is recomputed by query so callers can spot drift.
type GalleryCollectionResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	ItemCount     int       `json:"item_count"`
	LiveItemCount int64     `json:"live_item_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// CollectionListResponse contains the collections newest first.
type CollectionListResponse struct {
	Items []GalleryCollectionResponse `json:"items"`
}

// CollectionItemInput carries the per-item review metadata entered
// before a batch is saved as a collection.
type CollectionItemInput struct {
	EntryID     string `json:"entry_id" validate:"required"`
	Title       string `json:"title" validate:"max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// SaveCollectionRequest groups a finished batch into a named collection.
type SaveCollectionRequest struct {
	BatchID     string                `json:"batch_id" validate:"required"`
	Name        string                `json:"name" validate:"required,max=255"`
	Description string                `json:"description" validate:"max=2000"`
	Category    string                `json:"category" validate:"max=120"`
	Items       []CollectionItemInput `json:"items" validate:"dive"`
}

// SaveCollectionResponse reports the persisted collection and how many
// items were confirmed saved.
type SaveCollectionResponse struct {
	Collection GalleryCollectionResponse `json:"collection"`
	SavedItems int                       `json:"saved_items"`
}

// CascadeDeleteResponse reports the outcome of a collection delete.
type CascadeDeleteResponse struct {
	CollectionID uint `json:"collection_id"`
	ItemsDeleted int  `json:"items_deleted"`
}
