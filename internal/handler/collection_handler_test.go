package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/handler"
	"github.com/ManaClgLevelUp/revathi-duba/internal/service"
)

type mockCollectionService struct {
	saveResult dto.SaveCollectionResponse
	saveErr    error
	list       dto.CollectionListResponse
}

func (m *mockCollectionService) Save(context.Context, dto.SaveCollectionRequest) (dto.SaveCollectionResponse, error) {
	if m.saveErr != nil {
		return dto.SaveCollectionResponse{}, m.saveErr
	}
	return m.saveResult, nil
}

func (m *mockCollectionService) List(context.Context) (dto.CollectionListResponse, error) {
	return m.list, nil
}

func (m *mockCollectionService) Get(context.Context, uint) (dto.GalleryCollectionResponse, error) {
	return dto.GalleryCollectionResponse{}, service.ErrCollectionNotFound
}

func (m *mockCollectionService) Items(context.Context, uint) ([]dto.GalleryItemResponse, error) {
	return nil, nil
}

func (m *mockCollectionService) DeleteCascade(context.Context, uint) (dto.CascadeDeleteResponse, error) {
	return dto.CascadeDeleteResponse{}, nil
}

type mockLiveView struct {
	deleteCollectionErr error
	deleted             []uint
}

func (m *mockLiveView) Start(context.Context) error                  { return nil }
func (m *mockLiveView) Snapshot() []dto.GalleryItemResponse          { return nil }
func (m *mockLiveView) Collections() []dto.GalleryCollectionResponse { return nil }
func (m *mockLiveView) Categories() []string                         { return nil }
func (m *mockLiveView) Filtered(string) []dto.GalleryItemResponse    { return nil }
func (m *mockLiveView) InitialEvent() dto.GalleryEvent               { return dto.GalleryEvent{} }
func (m *mockLiveView) DeleteItem(context.Context, uint) error       { return nil }

func (m *mockLiveView) DeleteCollection(_ context.Context, id uint) (dto.CascadeDeleteResponse, error) {
	if m.deleteCollectionErr != nil {
		return dto.CascadeDeleteResponse{}, m.deleteCollectionErr
	}
	m.deleted = append(m.deleted, id)
	return dto.CascadeDeleteResponse{CollectionID: id, ItemsDeleted: 3}, nil
}

func collectionApp(svc *mockCollectionService, live *mockLiveView) *fiber.App {
	app := fiber.New()
	h := handler.NewCollectionHandler(svc, live, zerolog.New(io.Discard))
	h.Register(app.Group("/api/collections"))
	h.RegisterAdmin(app.Group("/api/admin/collections"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCollectionHandlerSave(t *testing.T) {
	svc := &mockCollectionService{saveResult: dto.SaveCollectionResponse{
		Collection: dto.GalleryCollectionResponse{ID: 7, Name: "Gala", ItemCount: 3},
		SavedItems: 3,
	}}
	app := collectionApp(svc, &mockLiveView{})

	resp := postJSON(t, app, "/api/admin/collections", dto.SaveCollectionRequest{BatchID: "batch-1", Name: "Gala"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Data dto.SaveCollectionResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, uint(7), response.Data.Collection.ID)
	require.Equal(t, 3, response.Data.SavedItems)
}

func TestCollectionHandlerSaveErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "blank name", err: service.ErrCollectionNameRequired, statusCode: fiber.StatusBadRequest},
		{name: "no uploads", err: service.ErrNoUploadedItems, statusCode: fiber.StatusBadRequest},
		{name: "unknown batch", err: service.ErrBatchNotFound, statusCode: fiber.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := collectionApp(&mockCollectionService{saveErr: tc.err}, &mockLiveView{})

			resp := postJSON(t, app, "/api/admin/collections", dto.SaveCollectionRequest{BatchID: "batch-1", Name: "x"})
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestCollectionHandlerDeleteGoesThroughLiveView(t *testing.T) {
	live := &mockLiveView{}
	app := collectionApp(&mockCollectionService{}, live)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/collections/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []uint{7}, live.deleted)
}

func TestCollectionHandlerGetNotFound(t *testing.T) {
	app := collectionApp(&mockCollectionService{}, &mockLiveView{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/collections/99", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
