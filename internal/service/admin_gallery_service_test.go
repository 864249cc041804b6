package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
	"github.com/ManaClgLevelUp/revathi-duba/internal/repository"
)

func newAdminGalleryFixture(t *testing.T) (AdminGalleryService, *feedStub) {
	t.Helper()

	db := openGalleryDB(t)
	feed := &feedStub{}
	svc := NewAdminGalleryService(repository.NewGalleryItemRepository(db), feed, validator.New(validator.WithRequiredStructEnabled()), testLogger())
	return svc, feed
}

func TestAdminGalleryCreateDerivesVideoType(t *testing.T) {
	svc, feed := newAdminGalleryFixture(t)

	created, err := svc.Create(context.Background(), dto.GalleryItemRequest{
		Title:    "Convocation highlights",
		MediaURL: "https://res.cloudinary.com/demo/video/upload/v1/convocation.mp4",
	})
	require.NoError(t, err)
	require.Equal(t, models.MediaTypeVideo, created.MediaType)
	require.Contains(t, created.MediaURL, "q_auto/")
	require.Contains(t, created.ThumbnailURL, "so_0,f_jpg/")
	require.Len(t, feed.byType(dto.FeedEventAdded), 1)
}

func TestAdminGalleryCreateImageGetsThumbnail(t *testing.T) {
	svc, _ := newAdminGalleryFixture(t)

	created, err := svc.Create(context.Background(), dto.GalleryItemRequest{
		Title:    "Campus",
		Category: "campus",
		MediaURL: "https://res.cloudinary.com/demo/image/upload/v1/campus.jpg",
	})
	require.NoError(t, err)
	require.Equal(t, models.MediaTypeImage, created.MediaType)
	require.Contains(t, created.MediaURL, "q_auto,f_auto,c_limit,w_1200/")
	require.Contains(t, created.ThumbnailURL, "c_thumb,w_400,h_300,g_auto/")
}

func TestAdminGalleryUpdate(t *testing.T) {
	svc, feed := newAdminGalleryFixture(t)

	created, err := svc.Create(context.Background(), dto.GalleryItemRequest{
		Title:    "Before",
		MediaURL: "https://res.cloudinary.com/demo/image/upload/v1/before.jpg",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, dto.GalleryItemRequest{
		Title:    "After",
		Category: "events",
		MediaURL: created.MediaURL,
	})
	require.NoError(t, err)
	require.Equal(t, "After", updated.Title)
	require.Equal(t, "events", updated.Category)
	require.Len(t, feed.byType(dto.FeedEventModified), 1)

	_, err = svc.Update(context.Background(), 9999, dto.GalleryItemRequest{MediaURL: created.MediaURL})
	require.ErrorIs(t, err, ErrGalleryItemNotFound)
}

func TestAdminGalleryCreateValidatesURL(t *testing.T) {
	svc, _ := newAdminGalleryFixture(t)

	_, err := svc.Create(context.Background(), dto.GalleryItemRequest{MediaURL: "not a url"})
	require.Error(t, err)
}
