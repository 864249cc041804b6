package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
	"github.com/ManaClgLevelUp/revathi-duba/internal/observability"
	"github.com/ManaClgLevelUp/revathi-duba/internal/repository"
)

// GalleryService serves the public read side of the gallery.
type GalleryService interface {
	List(ctx context.Context, category string, page, pageSize int) (dto.GalleryListResponse, error)
	Categories(ctx context.Context) (dto.CategoryListResponse, error)
}

type galleryService struct {
	items  repository.GalleryItemRepository
	logger zerolog.Logger
}

// NewGalleryService constructs the public gallery read service.
func NewGalleryService(items repository.GalleryItemRepository, logger zerolog.Logger) GalleryService {
	return &galleryService{
		items:  items,
		logger: logger.With().Str("component", "gallery_service").Logger(),
	}
}

func (s *galleryService) List(ctx context.Context, category string, page, pageSize int) (dto.GalleryListResponse, error) {
	start := time.Now()

	page = normalizePage(page)
	pageSize = clampPageSize(pageSize)

	items, total, err := s.items.List(ctx, repository.GalleryItemFilter{
		Category: category,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		observability.GalleryRequests().WithLabelValues("error").Inc()
		return dto.GalleryListResponse{}, err
	}

	observability.GalleryRequests().WithLabelValues("success").Inc()
	observability.GalleryLatency().Observe(time.Since(start).Seconds())

	responses := make([]dto.GalleryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toGalleryItemResponse(item))
	}

	return dto.GalleryListResponse{
		Items: responses,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, pageSize),
		},
	}, nil
}

// Categories derives the filter list from stored items: "all" first,
// then each non-empty category in order of first appearance. Category
// values are compared case-sensitively.
func (s *galleryService) Categories(ctx context.Context) (dto.CategoryListResponse, error) {
	items, _, err := s.items.List(ctx, repository.GalleryItemFilter{})
	if err != nil {
		return dto.CategoryListResponse{}, err
	}

	return dto.CategoryListResponse{Categories: deriveCategories(items)}, nil
}

func deriveCategories(items []models.GalleryItem) []string {
	categories := []string{"all"}
	seen := map[string]struct{}{"all": {}}

	for _, item := range items {
		category := strings.TrimSpace(item.Category)
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}

	return categories
}
