package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
)

// GalleryItemFilter narrows gallery item queries.
type GalleryItemFilter struct {
	Category string
	Page     int
	PageSize int
}

// GalleryItemRepository manages gallery item persistence.
type GalleryItemRepository interface {
	List(ctx context.Context, filter GalleryItemFilter) ([]models.GalleryItem, int64, error)
	ListByCollection(ctx context.Context, collectionID uint) ([]models.GalleryItem, error)
	CountByCollection(ctx context.Context, collectionID uint) (int64, error)
	GetByID(ctx context.Context, id uint) (models.GalleryItem, error)
	Create(ctx context.Context, item *models.GalleryItem) error
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id uint) error
}

type galleryItemRepository struct {
	db *gorm.DB
}

// NewGalleryItemRepository constructs a gallery item repository backed by GORM.
func NewGalleryItemRepository(db *gorm.DB) GalleryItemRepository {
	return &galleryItemRepository{db: db}
}

func (r *galleryItemRepository) List(ctx context.Context, filter GalleryItemFilter) ([]models.GalleryItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GalleryItem{})

	if category := strings.TrimSpace(filter.Category); category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var items []models.GalleryItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *galleryItemRepository) ListByCollection(ctx context.Context, collectionID uint) ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *galleryItemRepository) CountByCollection(ctx context.Context, collectionID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.GalleryItem{}).
		Where("collection_id = ?", collectionID).
		Count(&total).Error
	return total, err
}

func (r *galleryItemRepository) GetByID(ctx context.Context, id uint) (models.GalleryItem, error) {
	var item models.GalleryItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	return item, err
}

func (r *galleryItemRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *galleryItemRepository) Update(ctx context.Context, item *models.GalleryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *galleryItemRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.GalleryItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
