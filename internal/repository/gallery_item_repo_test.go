package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
	"github.com/ManaClgLevelUp/revathi-duba/internal/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.GalleryItem{}, &models.GalleryCollection{}))
	return db
}

func seedItem(t *testing.T, repo repository.GalleryItemRepository, title, category string, collectionID *uint, createdAt time.Time) models.GalleryItem {
	t.Helper()

	item := models.GalleryItem{
		Title:        title,
		Category:     category,
		MediaURL:     "https://res.cloudinary.com/demo/image/upload/v1/" + title + ".jpg",
		MediaType:    models.MediaTypeImage,
		CollectionID: collectionID,
		CreatedAt:    createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), &item))
	return item
}

func TestGalleryItemListFiltersAndPaginates(t *testing.T) {
	repo := repository.NewGalleryItemRepository(openTestDB(t))
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	seedItem(t, repo, "workshop", "events", nil, base)
	seedItem(t, repo, "award", "achievements", nil, base.Add(time.Minute))
	seedItem(t, repo, "convocation", "events", nil, base.Add(2*time.Minute))

	items, total, err := repo.List(context.Background(), repository.GalleryItemFilter{Category: "events", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	require.Equal(t, "convocation", items[0].Title)

	items, total, err = repo.List(context.Background(), repository.GalleryItemFilter{Category: "all", Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, items, 1)
	require.Equal(t, "workshop", items[0].Title)
}

func TestGalleryItemCollectionQueries(t *testing.T) {
	repo := repository.NewGalleryItemRepository(openTestDB(t))
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	collectionID := uint(7)

	seedItem(t, repo, "first", "events", &collectionID, base)
	seedItem(t, repo, "second", "events", &collectionID, base.Add(time.Minute))
	seedItem(t, repo, "loose", "events", nil, base.Add(2*time.Minute))

	items, err := repo.ListByCollection(context.Background(), collectionID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "second", items[0].Title)

	total, err := repo.CountByCollection(context.Background(), collectionID)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
}

func TestGalleryItemDeleteReportsMissingRows(t *testing.T) {
	repo := repository.NewGalleryItemRepository(openTestDB(t))

	item := seedItem(t, repo, "only", "events", nil, time.Now().UTC())
	require.NoError(t, repo.Delete(context.Background(), item.ID))

	err := repo.Delete(context.Background(), item.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetByID(context.Background(), item.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
