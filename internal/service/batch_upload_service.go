package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
	"github.com/ManaClgLevelUp/revathi-duba/internal/observability"
	"github.com/ManaClgLevelUp/revathi-duba/internal/repository"
	cloud "github.com/ManaClgLevelUp/revathi-duba/pkg/cloudinary"
)

var (
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the MIME type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
	// ErrBatchNotFound indicates an unknown batch id.
	ErrBatchNotFound = errors.New("batch not found")
	// ErrBatchEntryNotFound indicates an unknown entry id within a batch.
	ErrBatchEntryNotFound = errors.New("batch entry not found")
	// ErrBatchEntryStarted indicates the entry can no longer be removed.
	ErrBatchEntryStarted = errors.New("batch entry already processed")
	// ErrBatchRunning indicates the batch is currently being processed.
	ErrBatchRunning = errors.New("batch is already running")
)

// FileStorage abstracts the media upload destination.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (cloud.UploadResult, error)
}

// BatchUploadService drives multi-file uploads: files are accepted into
// an in-memory batch, processed strictly sequentially, and tracked
// through the pending/uploading/complete/error state machine. Progress
// is a client-side smoothing device, not a transport signal; it rises
// to 90 on a timer and snaps to 100 only on success.
type BatchUploadService interface {
	Accept(ctx context.Context, files []*multipart.FileHeader) (dto.BatchResponse, error)
	Run(ctx context.Context, batchID string) (dto.BatchResponse, error)
	Progress(batchID string) (dto.BatchResponse, bool)
	RemoveEntry(batchID, entryID string) (dto.BatchResponse, error)
	Successes(batchID string) ([]dto.BatchEntryResponse, bool)
	Clear(batchID string)
}

type batchEntry struct {
	dto.BatchEntryResponse
	data []byte
}

type batchState struct {
	id      string
	entries []*batchEntry
	running bool
	done    bool
}

type batchUploadService struct {
	storage          FileStorage
	uploads          repository.UploadRepository
	logger           zerolog.Logger
	maxSize          int64
	progressInterval time.Duration
	tracer           trace.Tracer

	mu      sync.Mutex
	batches map[string]*batchState
}

// NewBatchUploadService constructs the batch upload orchestrator.
func NewBatchUploadService(storage FileStorage, uploads repository.UploadRepository, maxSizeMB int, logger zerolog.Logger) BatchUploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 50
	}
	return &batchUploadService{
		storage:          storage,
		uploads:          uploads,
		logger:           logger.With().Str("component", "batch_upload_service").Logger(),
		maxSize:          int64(maxSizeMB) * 1024 * 1024,
		progressInterval: 300 * time.Millisecond,
		tracer:           otel.Tracer("github.com/ManaClgLevelUp/revathi-duba/internal/service"),
		batches:          make(map[string]*batchState),
	}
}

// Accept reads the selected files into a new batch. An empty selection
// is a no-op and registers nothing.
func (s *batchUploadService) Accept(ctx context.Context, files []*multipart.FileHeader) (dto.BatchResponse, error) {
	if len(files) == 0 {
		return dto.BatchResponse{}, nil
	}

	state := &batchState{id: uuid.NewString()}

	for _, file := range files {
		entry := &batchEntry{
			BatchEntryResponse: dto.BatchEntryResponse{
				ID:     uuid.NewString(),
				Name:   strings.TrimSpace(file.Filename),
				Size:   file.Size,
				Status: dto.BatchStatusPending,
			},
		}

		data, err := readFile(file, s.maxSize)
		if err != nil {
			entry.Status = dto.BatchStatusError
			entry.Error = genericMessage(err)
			state.entries = append(state.entries, entry)
			continue
		}

		entry.data = data
		entry.MediaType = detectMediaType(data)
		state.entries = append(state.entries, entry)
	}

	s.mu.Lock()
	s.batches[state.id] = state
	snapshot := snapshotLocked(state)
	s.mu.Unlock()

	return snapshot, nil
}

// Run processes the batch's pending entries in selection order. A
// failing entry is marked and skipped; the run never aborts early.
func (s *batchUploadService) Run(ctx context.Context, batchID string) (dto.BatchResponse, error) {
	s.mu.Lock()
	state, ok := s.batches[batchID]
	if !ok {
		s.mu.Unlock()
		return dto.BatchResponse{}, ErrBatchNotFound
	}
	if state.running {
		s.mu.Unlock()
		return dto.BatchResponse{}, ErrBatchRunning
	}
	state.running = true
	entries := append([]*batchEntry(nil), state.entries...)
	s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "gallery.batch_run", trace.WithAttributes(
		attribute.String("batch.id", batchID),
		attribute.Int("batch.size", len(entries)),
	))
	defer span.End()

	for _, entry := range entries {
		if terminal(entry.Status) {
			continue
		}
		s.processEntry(ctx, batchID, entry)
	}

	s.mu.Lock()
	state.running = false
	state.done = true
	snapshot := snapshotLocked(state)
	s.mu.Unlock()

	switch {
	case snapshot.Failed == 0:
		observability.BatchRuns().WithLabelValues("complete").Inc()
	case snapshot.Succeeded == 0:
		observability.BatchRuns().WithLabelValues("failed").Inc()
		span.SetStatus(codes.Error, "all uploads failed")
	default:
		observability.BatchRuns().WithLabelValues("partial").Inc()
	}

	return snapshot, nil
}

func (s *batchUploadService) processEntry(ctx context.Context, batchID string, entry *batchEntry) {
	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	s.setEntry(batchID, entry.ID, func(e *batchEntry) {
		e.Status = dto.BatchStatusUploading
		e.Progress = 5
	})

	stopProgress := s.startProgress(batchID, entry.ID)
	defer stopProgress()

	if int64(len(entry.data)) > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		s.failEntry(batchID, entry.ID, ErrUploadTooLarge)
		return
	}

	mediaType := detectMediaType(entry.data)
	if mediaType == "" {
		observability.UploadRejected().WithLabelValues("type").Inc()
		s.failEntry(batchID, entry.ID, ErrUploadTypeNotAllowed)
		return
	}

	name := sanitizeFileName(entry.Name)
	result, err := s.storage.Upload(ctx, name, bytes.NewReader(entry.data))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		s.logger.Error().Err(err).Str("batch_id", batchID).Str("file", name).Msg("upload failed")
		s.failEntry(batchID, entry.ID, err)
		return
	}

	thumbnail := ""
	if mediaType == models.MediaTypeVideo {
		thumbnail = cloud.VideoThumbnailURL(result.SecureURL)
	}

	checksum := sha256.Sum256(entry.data)
	s.recordUpload(ctx, batchID, name, mediaType, int64(len(entry.data)), hex.EncodeToString(checksum[:]), result)

	s.setEntry(batchID, entry.ID, func(e *batchEntry) {
		e.Status = dto.BatchStatusComplete
		e.Progress = 100
		e.MediaURL = result.SecureURL
		e.ThumbnailURL = thumbnail
		e.MediaType = mediaType
		e.data = nil
	})

	observability.UploadRequests().WithLabelValues(mediaType).Inc()
}

// Progress returns a live snapshot of the batch for polling clients.
func (s *batchUploadService) Progress(batchID string) (dto.BatchResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.batches[batchID]
	if !ok {
		return dto.BatchResponse{}, false
	}
	return snapshotLocked(state), true
}

// RemoveEntry discards a file that has not started uploading. Removing
// the last entry discards the whole batch.
func (s *batchUploadService) RemoveEntry(batchID, entryID string) (dto.BatchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.batches[batchID]
	if !ok {
		return dto.BatchResponse{}, ErrBatchNotFound
	}

	idx := -1
	for i, entry := range state.entries {
		if entry.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return dto.BatchResponse{}, ErrBatchEntryNotFound
	}
	if state.entries[idx].Status != dto.BatchStatusPending {
		return dto.BatchResponse{}, ErrBatchEntryStarted
	}

	state.entries = append(state.entries[:idx], state.entries[idx+1:]...)
	if len(state.entries) == 0 {
		delete(s.batches, batchID)
		return dto.BatchResponse{}, nil
	}

	return snapshotLocked(state), nil
}

// Successes returns the completed entries of a batch, in upload order.
func (s *batchUploadService) Successes(batchID string) ([]dto.BatchEntryResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.batches[batchID]
	if !ok {
		return nil, false
	}

	successes := make([]dto.BatchEntryResponse, 0, len(state.entries))
	for _, entry := range state.entries {
		if entry.Status == dto.BatchStatusComplete {
			successes = append(successes, entry.BatchEntryResponse)
		}
	}
	return successes, true
}

// Clear discards all ephemeral batch state.
func (s *batchUploadService) Clear(batchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, batchID)
}

func (s *batchUploadService) startProgress(batchID, entryID string) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.setEntry(batchID, entryID, func(e *batchEntry) {
					if e.Progress < 90 {
						e.Progress += 7
						if e.Progress > 90 {
							e.Progress = 90
						}
					}
				})
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(stop) }) }
}

func (s *batchUploadService) setEntry(batchID, entryID string, mutate func(*batchEntry)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.batches[batchID]
	if !ok {
		return
	}
	for _, entry := range state.entries {
		if entry.ID == entryID {
			mutate(entry)
			return
		}
	}
}

func (s *batchUploadService) failEntry(batchID, entryID string, err error) {
	s.setEntry(batchID, entryID, func(e *batchEntry) {
		e.Status = dto.BatchStatusError
		e.Progress = 0
		e.Error = genericMessage(err)
		e.data = nil
	})
}

func (s *batchUploadService) recordUpload(ctx context.Context, batchID, name, mediaType string, size int64, checksum string, result cloud.UploadResult) {
	if s.uploads == nil {
		return
	}

	metadata, err := json.Marshal(map[string]interface{}{
		"public_id":     result.PublicID,
		"resource_type": result.ResourceType,
		"format":        result.Format,
		"bytes":         result.Bytes,
	})
	if err != nil {
		metadata = []byte("{}")
	}

	record := models.UploadRecord{
		BatchID:   batchID,
		FileName:  name,
		URL:       result.SecureURL,
		MediaType: mediaType,
		SizeBytes: size,
		Checksum:  checksum,
		Metadata:  datatypes.JSON(metadata),
	}
	if err := s.uploads.Create(ctx, &record); err != nil {
		s.logger.Warn().Err(err).Str("batch_id", batchID).Msg("failed to record upload")
	}
}

func snapshotLocked(state *batchState) dto.BatchResponse {
	response := dto.BatchResponse{
		BatchID: state.id,
		Total:   len(state.entries),
		Done:    state.done,
		Entries: make([]dto.BatchEntryResponse, 0, len(state.entries)),
	}
	for _, entry := range state.entries {
		response.Entries = append(response.Entries, entry.BatchEntryResponse)
		switch entry.Status {
		case dto.BatchStatusComplete:
			response.Succeeded++
		case dto.BatchStatusError:
			response.Failed++
		}
	}
	return response
}

func terminal(status string) bool {
	return status == dto.BatchStatusComplete || status == dto.BatchStatusError
}

func readFile(file *multipart.FileHeader, maxSize int64) ([]byte, error) {
	handle, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, maxSize+1)); err != nil {
		return nil, err
	}
	if int64(buf.Len()) > maxSize {
		return nil, ErrUploadTooLarge
	}
	return buf.Bytes(), nil
}

// detectMediaType sniffs the payload and returns image or video, or an
// empty string for anything the gallery does not accept.
func detectMediaType(data []byte) string {
	mime := mimetype.Detect(data).String()
	switch {
	case strings.HasPrefix(mime, "image/"):
		return models.MediaTypeImage
	case cloud.IsVideoMIME(mime):
		return models.MediaTypeVideo
	default:
		return ""
	}
}

func genericMessage(err error) string {
	switch {
	case errors.Is(err, ErrUploadTooLarge):
		return ErrUploadTooLarge.Error()
	case errors.Is(err, ErrUploadTypeNotAllowed):
		return ErrUploadTypeNotAllowed.Error()
	default:
		return "upload failed"
	}
}

func sanitizeFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		if r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = fmt.Sprintf("upload-%d", time.Now().Unix())
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".bin"
	}
	return base + ext
}
