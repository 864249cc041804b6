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
	cloud "github.com/ManaClgLevelUp/revathi-duba/pkg/cloudinary"
)

// ErrGalleryItemNotFound indicates the requested gallery item is missing.
var ErrGalleryItemNotFound = errors.New("gallery item not found")

// AdminGalleryService manages single gallery items on behalf of the
// admin surface. Deletes go through the live view service so they get
// optimistic semantics.
type AdminGalleryService interface {
	Create(ctx context.Context, req dto.GalleryItemRequest) (dto.GalleryItemResponse, error)
	Update(ctx context.Context, id uint, req dto.GalleryItemRequest) (dto.GalleryItemResponse, error)
	Get(ctx context.Context, id uint) (dto.GalleryItemResponse, error)
}

type adminGalleryService struct {
	items     repository.GalleryItemRepository
	feed      FeedService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdminGalleryService constructs the admin gallery item service.
func NewAdminGalleryService(items repository.GalleryItemRepository, feed FeedService, validate *validator.Validate, logger zerolog.Logger) AdminGalleryService {
	return &adminGalleryService{
		items:     items,
		feed:      feed,
		validator: validate,
		logger:    logger.With().Str("component", "admin_gallery_service").Logger(),
	}
}

func (s *adminGalleryService) Create(ctx context.Context, req dto.GalleryItemRequest) (dto.GalleryItemResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	item := buildGalleryItem(models.GalleryItem{}, req)
	if err := s.items.Create(ctx, &item); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	response := toGalleryItemResponse(item)
	s.feed.Publish(ctx, dto.GalleryEvent{
		Type:   dto.FeedEventAdded,
		Entity: dto.FeedEntityItem,
		Item:   &response,
	})

	s.logger.Info().Uint("item_id", item.ID).Str("media_type", item.MediaType).Msg("gallery item created")
	return response, nil
}

func (s *adminGalleryService) Update(ctx context.Context, id uint, req dto.GalleryItemRequest) (dto.GalleryItemResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	existing, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GalleryItemResponse{}, ErrGalleryItemNotFound
		}
		return dto.GalleryItemResponse{}, err
	}

	item := buildGalleryItem(existing, req)
	if err := s.items.Update(ctx, &item); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	response := toGalleryItemResponse(item)
	s.feed.Publish(ctx, dto.GalleryEvent{
		Type:   dto.FeedEventModified,
		Entity: dto.FeedEntityItem,
		Item:   &response,
	})

	return response, nil
}

func (s *adminGalleryService) Get(ctx context.Context, id uint) (dto.GalleryItemResponse, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GalleryItemResponse{}, ErrGalleryItemNotFound
		}
		return dto.GalleryItemResponse{}, err
	}
	return toGalleryItemResponse(item), nil
}

// buildGalleryItem applies a request onto an item, deriving the media
// type from the URL when the request leaves it blank and rewriting the
// delivery URLs with the standard transformations.
func buildGalleryItem(base models.GalleryItem, req dto.GalleryItemRequest) models.GalleryItem {
	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeImage
		if cloud.IsVideoURL(req.MediaURL) {
			mediaType = models.MediaTypeVideo
		}
	}

	kind := cloud.KindImage
	if mediaType == models.MediaTypeVideo {
		kind = cloud.KindVideo
	}

	base.Title = strings.TrimSpace(req.Title)
	base.Description = strings.TrimSpace(req.Description)
	base.Category = strings.TrimSpace(req.Category)
	base.MediaURL = cloud.OptimizeURL(req.MediaURL, kind, cloud.TransformOptions{})
	base.MediaType = mediaType

	thumbnail := req.ThumbnailURL
	if thumbnail == "" {
		if mediaType == models.MediaTypeVideo {
			thumbnail = cloud.VideoThumbnailURL(req.MediaURL)
		} else {
			thumbnail = cloud.OptimizeURL(req.MediaURL, kind, cloud.TransformOptions{Thumbnail: true})
		}
	}
	base.ThumbnailURL = thumbnail

	return base
}
