package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
	"github.com/ManaClgLevelUp/revathi-duba/internal/repository"
)

var (
	// ErrCollectionNameRequired indicates the trimmed collection name was empty.
	ErrCollectionNameRequired = errors.New("collection name is required")
	// ErrNoUploadedItems indicates the batch holds no successful uploads.
	ErrNoUploadedItems = errors.New("no uploaded items to save")
	// ErrCollectionNotFound indicates the collection is missing.
	ErrCollectionNotFound = errors.New("gallery collection not found")
)

// BatchSource exposes the finished uploads of a batch to the grouping flow.
type BatchSource interface {
	Successes(batchID string) ([]dto.BatchEntryResponse, bool)
	Clear(batchID string)
}

// CollectionService groups uploaded media into named collections and
// manages their lifecycle, including the cascade delete of member items.
type CollectionService interface {
	Save(ctx context.Context, req dto.SaveCollectionRequest) (dto.SaveCollectionResponse, error)
	List(ctx context.Context) (dto.CollectionListResponse, error)
	Get(ctx context.Context, id uint) (dto.GalleryCollectionResponse, error)
	Items(ctx context.Context, id uint) ([]dto.GalleryItemResponse, error)
	DeleteCascade(ctx context.Context, id uint) (dto.CascadeDeleteResponse, error)
}

type collectionService struct {
	collections repository.GalleryCollectionRepository
	items       repository.GalleryItemRepository
	batches     BatchSource
	feed        FeedService
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewCollectionService constructs the collection grouping service.
func NewCollectionService(collections repository.GalleryCollectionRepository, items repository.GalleryItemRepository, batches BatchSource, feed FeedService, validate *validator.Validate, logger zerolog.Logger) CollectionService {
	return &collectionService{
		collections: collections,
		items:       items,
		batches:     batches,
		feed:        feed,
		validator:   validate,
		logger:      logger.With().Str("component", "collection_service").Logger(),
	}
}

// Save persists a finished batch as a collection. The collection's
// thumbnail comes from the first successful upload and its item count
// is a snapshot of the success count. A failing item write does not
// abort the loop; the reported count covers confirmed saves only.
func (s *collectionService) Save(ctx context.Context, req dto.SaveCollectionRequest) (dto.SaveCollectionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SaveCollectionResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dto.SaveCollectionResponse{}, ErrCollectionNameRequired
	}

	successes, ok := s.batches.Successes(req.BatchID)
	if !ok {
		return dto.SaveCollectionResponse{}, ErrBatchNotFound
	}
	if len(successes) == 0 {
		return dto.SaveCollectionResponse{}, ErrNoUploadedItems
	}

	overrides := make(map[string]dto.CollectionItemInput, len(req.Items))
	for _, item := range req.Items {
		overrides[item.EntryID] = item
	}

	collection := models.GalleryCollection{
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		Category:     strings.TrimSpace(req.Category),
		ThumbnailURL: successes[0].MediaURL,
		ItemCount:    len(successes),
	}

	if err := s.collections.Create(ctx, &collection); err != nil {
		return dto.SaveCollectionResponse{}, err
	}

	saved := 0
	for _, upload := range successes {
		override := overrides[upload.ID]
		item := models.GalleryItem{
			Title:          strings.TrimSpace(override.Title),
			Description:    strings.TrimSpace(override.Description),
			Category:       collection.Category,
			MediaURL:       upload.MediaURL,
			ThumbnailURL:   upload.ThumbnailURL,
			MediaType:      upload.MediaType,
			CollectionID:   &collection.ID,
			CollectionName: name,
		}

		if err := s.items.Create(ctx, &item); err != nil {
			s.logger.Warn().Err(err).Str("batch_id", req.BatchID).Str("file", upload.Name).Msg("failed to persist collection item")
			continue
		}
		saved++

		response := toGalleryItemResponse(item)
		s.feed.Publish(ctx, dto.GalleryEvent{
			Type:   dto.FeedEventAdded,
			Entity: dto.FeedEntityItem,
			Item:   &response,
		})
	}

	collectionResponse := toCollectionResponse(collection, int64(saved))
	s.feed.Publish(ctx, dto.GalleryEvent{
		Type:       dto.FeedEventAdded,
		Entity:     dto.FeedEntityCollection,
		Collection: &collectionResponse,
	})

	if saved == len(successes) {
		s.batches.Clear(req.BatchID)
	}

	s.logger.Info().Uint("collection_id", collection.ID).Int("saved", saved).Int("uploaded", len(successes)).Msg("collection saved")

	return dto.SaveCollectionResponse{Collection: collectionResponse, SavedItems: saved}, nil
}

func (s *collectionService) List(ctx context.Context) (dto.CollectionListResponse, error) {
	collections, err := s.collections.List(ctx)
	if err != nil {
		return dto.CollectionListResponse{}, err
	}

	items := make([]dto.GalleryCollectionResponse, 0, len(collections))
	for _, collection := range collections {
		live, err := s.items.CountByCollection(ctx, collection.ID)
		if err != nil {
			s.logger.Warn().Err(err).Uint("collection_id", collection.ID).Msg("failed to count collection items")
		}
		items = append(items, toCollectionResponse(collection, live))
	}

	return dto.CollectionListResponse{Items: items}, nil
}

func (s *collectionService) Get(ctx context.Context, id uint) (dto.GalleryCollectionResponse, error) {
	collection, err := s.collections.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GalleryCollectionResponse{}, ErrCollectionNotFound
		}
		return dto.GalleryCollectionResponse{}, err
	}

	live, err := s.items.CountByCollection(ctx, id)
	if err != nil {
		return dto.GalleryCollectionResponse{}, err
	}

	return toCollectionResponse(collection, live), nil
}

func (s *collectionService) Items(ctx context.Context, id uint) ([]dto.GalleryItemResponse, error) {
	items, err := s.items.ListByCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GalleryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toGalleryItemResponse(item))
	}
	return responses, nil
}

// DeleteCascade deletes every item referencing the collection and then
// the collection itself. Item deletes are issued individually, not in a
// transaction; when one fails the collection document is left in place
// so the operation can be retried.
func (s *collectionService) DeleteCascade(ctx context.Context, id uint) (dto.CascadeDeleteResponse, error) {
	items, err := s.items.ListByCollection(ctx, id)
	if err != nil {
		return dto.CascadeDeleteResponse{}, err
	}

	response := dto.CascadeDeleteResponse{CollectionID: id}
	var firstErr error
	for _, item := range items {
		if err := s.items.Delete(ctx, item.ID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Uint("item_id", item.ID).Msg("failed to delete collection item")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		response.ItemsDeleted++

		removed := toGalleryItemResponse(item)
		s.feed.Publish(ctx, dto.GalleryEvent{
			Type:   dto.FeedEventRemoved,
			Entity: dto.FeedEntityItem,
			Item:   &removed,
		})
	}

	if firstErr != nil {
		return response, firstErr
	}

	if err := s.collections.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response, ErrCollectionNotFound
		}
		return response, err
	}

	s.feed.Publish(ctx, dto.GalleryEvent{
		Type:       dto.FeedEventRemoved,
		Entity:     dto.FeedEntityCollection,
		Collection: &dto.GalleryCollectionResponse{ID: id},
	})

	s.logger.Info().Uint("collection_id", id).Int("items_deleted", response.ItemsDeleted).Msg("collection deleted")

	return response, nil
}

func toCollectionResponse(collection models.GalleryCollection, liveCount int64) dto.GalleryCollectionResponse {
	return dto.GalleryCollectionResponse{
		ID:            collection.ID,
		Name:          collection.Name,
		Description:   collection.Description,
		Category:      collection.Category,
		ThumbnailURL:  collection.ThumbnailURL,
		ItemCount:     collection.ItemCount,
		LiveItemCount: liveCount,
		CreatedAt:     collection.CreatedAt,
	}
}

func toGalleryItemResponse(item models.GalleryItem) dto.GalleryItemResponse {
	return dto.GalleryItemResponse{
		ID:             item.ID,
		Title:          item.Title,
		Description:    item.Description,
		Category:       item.Category,
		MediaURL:       item.MediaURL,
		ThumbnailURL:   item.ThumbnailURL,
		MediaType:      item.MediaType,
		CollectionID:   item.CollectionID,
		CollectionName: item.CollectionName,
		CreatedAt:      item.CreatedAt,
	}
}
