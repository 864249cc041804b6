package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
)

// GalleryCollectionRepository manages collection persistence.
type GalleryCollectionRepository interface {
	List(ctx context.Context) ([]models.GalleryCollection, error)
	GetByID(ctx context.Context, id uint) (models.GalleryCollection, error)
	Create(ctx context.Context, collection *models.GalleryCollection) error
	Update(ctx context.Context, collection *models.GalleryCollection) error
	Delete(ctx context.Context, id uint) error
}

type galleryCollectionRepository struct {
	db *gorm.DB
}

// NewGalleryCollectionRepository constructs a collection repository backed by GORM.
func NewGalleryCollectionRepository(db *gorm.DB) GalleryCollectionRepository {
	return &galleryCollectionRepository{db: db}
}

func (r *galleryCollectionRepository) List(ctx context.Context) ([]models.GalleryCollection, error) {
	var collections []models.GalleryCollection
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&collections).Error
	return collections, err
}

func (r *galleryCollectionRepository) GetByID(ctx context.Context, id uint) (models.GalleryCollection, error) {
	var collection models.GalleryCollection
	err := r.db.WithContext(ctx).First(&collection, id).Error
	return collection, err
}

func (r *galleryCollectionRepository) Create(ctx context.Context, collection *models.GalleryCollection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *galleryCollectionRepository) Update(ctx context.Context, collection *models.GalleryCollection) error {
	return r.db.WithContext(ctx).Save(collection).Error
}

func (r *galleryCollectionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.GalleryCollection{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
