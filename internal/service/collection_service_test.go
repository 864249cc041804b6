package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
	"github.com/ManaClgLevelUp/revathi-duba/internal/repository"
)

type feedStub struct {
	mu     sync.Mutex
	events []dto.GalleryEvent
}

func (f *feedStub) Publish(_ context.Context, event dto.GalleryEvent) {
	f.PublishLocal(event)
}

func (f *feedStub) PublishLocal(event dto.GalleryEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *feedStub) Subscribe() (<-chan dto.GalleryEvent, func()) {
	channel := make(chan dto.GalleryEvent)
	return channel, func() {}
}

func (f *feedStub) Start(context.Context) {}

func (f *feedStub) byType(eventType string) []dto.GalleryEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]dto.GalleryEvent, 0)
	for _, event := range f.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

type batchSourceStub struct {
	successes map[string][]dto.BatchEntryResponse
	queried   []string
	cleared   []string
}

func (b *batchSourceStub) Successes(batchID string) ([]dto.BatchEntryResponse, bool) {
	b.queried = append(b.queried, batchID)
	entries, ok := b.successes[batchID]
	return entries, ok
}

func (b *batchSourceStub) Clear(batchID string) {
	b.cleared = append(b.cleared, batchID)
}

func openGalleryDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:gallery-%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.GalleryItem{}, &models.GalleryCollection{}))
	return db
}

func newCollectionFixture(t *testing.T, batches BatchSource) (CollectionService, repository.GalleryItemRepository, *feedStub, *gorm.DB) {
	t.Helper()

	db := openGalleryDB(t)
	items := repository.NewGalleryItemRepository(db)
	collections := repository.NewGalleryCollectionRepository(db)
	feed := &feedStub{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewCollectionService(collections, items, batches, feed, validate, testLogger())
	return svc, items, feed, db
}

func threeUploads() []dto.BatchEntryResponse {
	entries := make([]dto.BatchEntryResponse, 0, 3)
	for i := 1; i <= 3; i++ {
		entries = append(entries, dto.BatchEntryResponse{
			ID:        fmt.Sprintf("entry-%d", i),
			Name:      fmt.Sprintf("photo-%d.png", i),
			Status:    dto.BatchStatusComplete,
			MediaType: models.MediaTypeImage,
			MediaURL:  fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/v1/photo-%d.png", i),
		})
	}
	return entries
}

func TestCollectionSaveBlankNameRejectedBeforeBatchLookup(t *testing.T) {
	batches := &batchSourceStub{successes: map[string][]dto.BatchEntryResponse{"batch-1": threeUploads()}}
	svc, _, _, db := newCollectionFixture(t, batches)

	_, err := svc.Save(context.Background(), dto.SaveCollectionRequest{BatchID: "batch-1", Name: "   "})
	require.ErrorIs(t, err, ErrCollectionNameRequired)
	require.Empty(t, batches.queried)

	var count int64
	require.NoError(t, db.Model(&models.GalleryCollection{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCollectionSavePersistsBatchAsCollection(t *testing.T) {
	batches := &batchSourceStub{successes: map[string][]dto.BatchEntryResponse{"batch-1": threeUploads()}}
	svc, items, feed, _ := newCollectionFixture(t, batches)

	result, err := svc.Save(context.Background(), dto.SaveCollectionRequest{
		BatchID:     "batch-1",
		Name:        "  Spring Gala  ",
		Description: "Annual department event",
		Category:    "events",
		Items: []dto.CollectionItemInput{
			{EntryID: "entry-1", Title: "Opening"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Spring Gala", result.Collection.Name)
	require.Equal(t, 3, result.Collection.ItemCount)
	require.Equal(t, 3, result.SavedItems)
	require.Equal(t, threeUploads()[0].MediaURL, result.Collection.ThumbnailURL)
	require.Equal(t, []string{"batch-1"}, batches.cleared)

	saved, err := items.ListByCollection(context.Background(), result.Collection.ID)
	require.NoError(t, err)
	require.Len(t, saved, 3)
	for _, item := range saved {
		require.Equal(t, "Spring Gala", item.CollectionName)
		require.Equal(t, "events", item.Category)
	}

	added := feed.byType(dto.FeedEventAdded)
	require.Len(t, added, 4) // three items plus the collection
}

func TestCollectionSaveUnknownBatch(t *testing.T) {
	batches := &batchSourceStub{successes: map[string][]dto.BatchEntryResponse{}}
	svc, _, _, _ := newCollectionFixture(t, batches)

	_, err := svc.Save(context.Background(), dto.SaveCollectionRequest{BatchID: "missing", Name: "Gala"})
	require.ErrorIs(t, err, ErrBatchNotFound)
}

func TestCollectionSaveEmptyBatch(t *testing.T) {
	batches := &batchSourceStub{successes: map[string][]dto.BatchEntryResponse{"batch-1": {}}}
	svc, _, _, _ := newCollectionFixture(t, batches)

	_, err := svc.Save(context.Background(), dto.SaveCollectionRequest{BatchID: "batch-1", Name: "Gala"})
	require.ErrorIs(t, err, ErrNoUploadedItems)
}

func TestCollectionItemCountStaysAtSnapshot(t *testing.T) {
	batches := &batchSourceStub{successes: map[string][]dto.BatchEntryResponse{"batch-1": threeUploads()}}
	svc, items, _, _ := newCollectionFixture(t, batches)

	result, err := svc.Save(context.Background(), dto.SaveCollectionRequest{BatchID: "batch-1", Name: "Gala"})
	require.NoError(t, err)

	listed, err := items.ListByCollection(context.Background(), result.Collection.ID)
	require.NoError(t, err)
	require.NoError(t, items.Delete(context.Background(), listed[0].ID))

	got, err := svc.Get(context.Background(), result.Collection.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.ItemCount)
	require.Equal(t, int64(2), got.LiveItemCount)
}

func TestCollectionDeleteCascade(t *testing.T) {
	batches := &batchSourceStub{successes: map[string][]dto.BatchEntryResponse{"batch-1": threeUploads()}}
	svc, items, feed, _ := newCollectionFixture(t, batches)

	result, err := svc.Save(context.Background(), dto.SaveCollectionRequest{BatchID: "batch-1", Name: "Gala"})
	require.NoError(t, err)

	deleted, err := svc.DeleteCascade(context.Background(), result.Collection.ID)
	require.NoError(t, err)
	require.Equal(t, 3, deleted.ItemsDeleted)

	remaining, err := items.ListByCollection(context.Background(), result.Collection.ID)
	require.NoError(t, err)
	require.Empty(t, remaining)

	_, err = svc.Get(context.Background(), result.Collection.ID)
	require.ErrorIs(t, err, ErrCollectionNotFound)

	removed := feed.byType(dto.FeedEventRemoved)
	require.Len(t, removed, 4)
}

func TestCollectionDeleteCascadeUnknownCollection(t *testing.T) {
	batches := &batchSourceStub{}
	svc, _, _, _ := newCollectionFixture(t, batches)

	_, err := svc.DeleteCascade(context.Background(), 404)
	require.ErrorIs(t, err, ErrCollectionNotFound)
}
