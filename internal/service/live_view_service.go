package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/repository"
)

// LiveViewService maintains an in-memory snapshot of the gallery that
// tracks the persistent store through feed events. Admin deletes are
// applied to the snapshot first and rolled back if the store rejects
// them, so connected clients see the mutation immediately.
type LiveViewService interface {
	Start(ctx context.Context) error
	Snapshot() []dto.GalleryItemResponse
	Collections() []dto.GalleryCollectionResponse
	Categories() []string
	Filtered(category string) []dto.GalleryItemResponse
	InitialEvent() dto.GalleryEvent
	DeleteItem(ctx context.Context, id uint) error
	DeleteCollection(ctx context.Context, id uint) (dto.CascadeDeleteResponse, error)
}

type liveViewService struct {
	items       repository.GalleryItemRepository
	collections CollectionService
	feed        FeedService
	logger      zerolog.Logger

	mu             sync.RWMutex
	itemSnapshot   []dto.GalleryItemResponse
	collectionSnap []dto.GalleryCollectionResponse
}

// NewLiveViewService constructs the live gallery view.
func NewLiveViewService(items repository.GalleryItemRepository, collections CollectionService, feed FeedService, logger zerolog.Logger) LiveViewService {
	return &liveViewService{
		items:       items,
		collections: collections,
		feed:        feed,
		logger:      logger.With().Str("component", "live_view_service").Logger(),
	}
}

// Start warms the snapshot from the store and begins applying feed
// deltas. The consumer goroutine exits when the context is cancelled.
func (s *liveViewService) Start(ctx context.Context) error {
	stored, _, err := s.items.List(ctx, repository.GalleryItemFilter{})
	if err != nil {
		return fmt.Errorf("warm gallery snapshot: %w", err)
	}

	collectionList, err := s.collections.List(ctx)
	if err != nil {
		return fmt.Errorf("warm collection snapshot: %w", err)
	}

	s.mu.Lock()
	s.itemSnapshot = make([]dto.GalleryItemResponse, 0, len(stored))
	for _, item := range stored {
		s.itemSnapshot = append(s.itemSnapshot, toGalleryItemResponse(item))
	}
	s.collectionSnap = collectionList.Items
	s.mu.Unlock()

	events, cancel := s.feed.Subscribe()
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				s.apply(event)
			}
		}
	}()

	s.logger.Info().Int("items", len(stored)).Int("collections", len(collectionList.Items)).Msg("live gallery view warmed")
	return nil
}

func (s *liveViewService) Snapshot() []dto.GalleryItemResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.GalleryItemResponse, len(s.itemSnapshot))
	copy(out, s.itemSnapshot)
	return out
}

func (s *liveViewService) Collections() []dto.GalleryCollectionResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.GalleryCollectionResponse, len(s.collectionSnap))
	copy(out, s.collectionSnap)
	return out
}

// Categories derives the filter list from the current snapshot, "all"
// first, then categories in order of first appearance.
func (s *liveViewService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := []string{"all"}
	seen := map[string]struct{}{"all": {}}
	for _, item := range s.itemSnapshot {
		if item.Category == "" {
			continue
		}
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories
}

func (s *liveViewService) Filtered(category string) []dto.GalleryItemResponse {
	if category == "" || category == "all" {
		return s.Snapshot()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]dto.GalleryItemResponse, 0)
	for _, item := range s.itemSnapshot {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// InitialEvent builds the full-snapshot event sent once to each new
// realtime subscriber before deltas stream.
func (s *liveViewService) InitialEvent() dto.GalleryEvent {
	return dto.GalleryEvent{
		Type:   dto.FeedEventInitial,
		Entity: dto.FeedEntityItem,
		Items:  s.Snapshot(),
	}
}

// DeleteItem removes the item from the snapshot before touching the
// store. When the store delete fails the item is restored at its
// original position and subscribers receive a single error event.
func (s *liveViewService) DeleteItem(ctx context.Context, id uint) error {
	removed, index, ok := s.removeItem(id)
	if !ok {
		item, err := s.items.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGalleryItemNotFound
			}
			return err
		}
		removed = toGalleryItemResponse(item)
		index = 0
	}

	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already gone from the store; the optimistic removal stands.
			return ErrGalleryItemNotFound
		}

		s.restoreItem(removed, index)
		s.feed.PublishLocal(dto.GalleryEvent{
			Type:    dto.FeedEventError,
			Entity:  dto.FeedEntityItem,
			Item:    &removed,
			Message: "failed to delete gallery item",
		})
		s.logger.Error().Err(err).Uint("item_id", id).Msg("gallery item delete rolled back")
		return err
	}

	s.feed.Publish(ctx, dto.GalleryEvent{
		Type:   dto.FeedEventRemoved,
		Entity: dto.FeedEntityItem,
		Item:   &removed,
	})
	return nil
}

// DeleteCollection removes the collection and its items from the
// snapshot, then runs the cascade delete. On failure the whole saved
// snapshot is restored and one error event is emitted; items the
// cascade already deleted are reconciled by the feed deltas.
func (s *liveViewService) DeleteCollection(ctx context.Context, id uint) (dto.CascadeDeleteResponse, error) {
	s.mu.Lock()
	savedItems := make([]dto.GalleryItemResponse, len(s.itemSnapshot))
	copy(savedItems, s.itemSnapshot)
	savedCollections := make([]dto.GalleryCollectionResponse, len(s.collectionSnap))
	copy(savedCollections, s.collectionSnap)

	s.itemSnapshot = filterItems(s.itemSnapshot, func(item dto.GalleryItemResponse) bool {
		return item.CollectionID == nil || *item.CollectionID != id
	})
	s.collectionSnap = filterCollections(s.collectionSnap, func(collection dto.GalleryCollectionResponse) bool {
		return collection.ID != id
	})
	s.mu.Unlock()

	response, err := s.collections.DeleteCascade(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.itemSnapshot = savedItems
		s.collectionSnap = savedCollections
		s.mu.Unlock()

		s.feed.PublishLocal(dto.GalleryEvent{
			Type:       dto.FeedEventError,
			Entity:     dto.FeedEntityCollection,
			Collection: &dto.GalleryCollectionResponse{ID: id},
			Message:    "failed to delete collection",
		})
		s.logger.Error().Err(err).Uint("collection_id", id).Msg("collection delete rolled back")
		return response, err
	}

	return response, nil
}

// apply folds a feed delta into the snapshot. Events produced by this
// node's own optimistic path arrive here too, so every branch must be
// idempotent.
func (s *liveViewService) apply(event dto.GalleryEvent) {
	switch event.Type {
	case dto.FeedEventAdded:
		s.applyAdded(event)
	case dto.FeedEventModified:
		s.applyModified(event)
	case dto.FeedEventRemoved:
		s.applyRemoved(event)
	}
}

func (s *liveViewService) applyAdded(event dto.GalleryEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event.Entity {
	case dto.FeedEntityItem:
		if event.Item == nil || indexOfItem(s.itemSnapshot, event.Item.ID) >= 0 {
			return
		}
		s.itemSnapshot = append([]dto.GalleryItemResponse{*event.Item}, s.itemSnapshot...)
	case dto.FeedEntityCollection:
		if event.Collection == nil || indexOfCollection(s.collectionSnap, event.Collection.ID) >= 0 {
			return
		}
		s.collectionSnap = append([]dto.GalleryCollectionResponse{*event.Collection}, s.collectionSnap...)
	}
}

func (s *liveViewService) applyModified(event dto.GalleryEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event.Entity {
	case dto.FeedEntityItem:
		if event.Item == nil {
			return
		}
		if idx := indexOfItem(s.itemSnapshot, event.Item.ID); idx >= 0 {
			s.itemSnapshot[idx] = *event.Item
		}
	case dto.FeedEntityCollection:
		if event.Collection == nil {
			return
		}
		if idx := indexOfCollection(s.collectionSnap, event.Collection.ID); idx >= 0 {
			s.collectionSnap[idx] = *event.Collection
		}
	}
}

func (s *liveViewService) applyRemoved(event dto.GalleryEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event.Entity {
	case dto.FeedEntityItem:
		if event.Item == nil {
			return
		}
		id := event.Item.ID
		s.itemSnapshot = filterItems(s.itemSnapshot, func(item dto.GalleryItemResponse) bool {
			return item.ID != id
		})
	case dto.FeedEntityCollection:
		if event.Collection == nil {
			return
		}
		id := event.Collection.ID
		s.collectionSnap = filterCollections(s.collectionSnap, func(collection dto.GalleryCollectionResponse) bool {
			return collection.ID != id
		})
	}
}

func (s *liveViewService) removeItem(id uint) (dto.GalleryItemResponse, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfItem(s.itemSnapshot, id)
	if idx < 0 {
		return dto.GalleryItemResponse{}, 0, false
	}

	removed := s.itemSnapshot[idx]
	s.itemSnapshot = append(s.itemSnapshot[:idx], s.itemSnapshot[idx+1:]...)
	return removed, idx, true
}

func (s *liveViewService) restoreItem(item dto.GalleryItemResponse, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOfItem(s.itemSnapshot, item.ID) >= 0 {
		return
	}
	if index > len(s.itemSnapshot) {
		index = len(s.itemSnapshot)
	}
	s.itemSnapshot = append(s.itemSnapshot[:index], append([]dto.GalleryItemResponse{item}, s.itemSnapshot[index:]...)...)
}

func indexOfItem(items []dto.GalleryItemResponse, id uint) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func indexOfCollection(collections []dto.GalleryCollectionResponse, id uint) int {
	for i, collection := range collections {
		if collection.ID == id {
			return i
		}
	}
	return -1
}

func filterItems(items []dto.GalleryItemResponse, keep func(dto.GalleryItemResponse) bool) []dto.GalleryItemResponse {
	out := items[:0:0]
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func filterCollections(collections []dto.GalleryCollectionResponse, keep func(dto.GalleryCollectionResponse) bool) []dto.GalleryCollectionResponse {
	out := collections[:0:0]
	for _, collection := range collections {
		if keep(collection) {
			out = append(out, collection)
		}
	}
	return out
}
