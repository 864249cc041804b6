package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
)

// UploadRepository persists metadata about uploaded assets.
type UploadRepository interface {
	Create(ctx context.Context, record *models.UploadRecord) error
	ListByBatch(ctx context.Context, batchID string) ([]models.UploadRecord, error)
}

type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository constructs a repository for upload records.
func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, record *models.UploadRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *uploadRepository) ListByBatch(ctx context.Context, batchID string) ([]models.UploadRecord, error) {
	var records []models.UploadRecord
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
