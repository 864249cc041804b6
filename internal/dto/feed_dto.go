package dto

import "time"

// Feed event types. Initial carries the full snapshot once per
// subscription; the delta types mirror store changes; error events are
// emitted when an optimistic mutation had to be rolled back.
const (
	FeedEventInitial  = "initial"
	FeedEventAdded    = "added"
	FeedEventModified = "modified"
	FeedEventRemoved  = "removed"
	FeedEventError    = "error"
)

// Feed entity kinds.
const (
	FeedEntityItem       = "item"
	FeedEntityCollection = "collection"
)

// GalleryEvent is pushed to realtime gallery subscribers.
type GalleryEvent struct {
	Type       string                     `json:"type"`
	Entity     string                     `json:"entity,omitempty"`
	Item       *GalleryItemResponse       `json:"item,omitempty"`
	Collection *GalleryCollectionResponse `json:"collection,omitempty"`
	Items      []GalleryItemResponse      `json:"items,omitempty"`
	Message    string                     `json:"message,omitempty"`
	SentAt     time.Time                  `json:"sent_at"`
}
