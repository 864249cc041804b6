package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ManaClgLevelUp/revathi-duba/internal/service"
	"github.com/ManaClgLevelUp/revathi-duba/internal/utils"
)

// BatchUploadHandler exposes the multi-file upload flow to the admin
// dashboard: accept a selection, run it, poll progress, drop entries.
type BatchUploadHandler struct {
	service service.BatchUploadService
	logger  zerolog.Logger
}

// NewBatchUploadHandler constructs a batch upload handler.
func NewBatchUploadHandler(svc service.BatchUploadService, logger zerolog.Logger) *BatchUploadHandler {
	return &BatchUploadHandler{
		service: svc,
		logger:  logger.With().Str("component", "batch_upload_handler").Logger(),
	}
}

// Register wires batch upload routes.
func (h *BatchUploadHandler) Register(router fiber.Router) {
	router.Post("", h.accept)
	router.Post("/:batchID/run", h.run)
	router.Get("/:batchID", h.progress)
	router.Delete("/:batchID/entries/:entryID", h.removeEntry)
}

func (h *BatchUploadHandler) accept(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "multipart form required")
	}

	files := form.File["files"]
	result, err := h.service.Accept(c.Context(), files)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to accept upload batch")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to accept upload batch")
	}

	if result.BatchID == "" {
		return utils.SendSuccess(c, "no files selected", result)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "upload batch accepted", result)
}

func (h *BatchUploadHandler) run(c *fiber.Ctx) error {
	batchID := c.Params("batchID")

	result, err := h.service.Run(c.Context(), batchID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBatchNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrBatchRunning):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Str("batch_id", batchID).Msg("batch run failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "batch run failed")
		}
	}

	return utils.SendSuccess(c, "upload batch processed", result)
}

func (h *BatchUploadHandler) progress(c *fiber.Ctx) error {
	batchID := c.Params("batchID")

	result, ok := h.service.Progress(batchID)
	if !ok {
		return utils.SendError(c, fiber.StatusNotFound, service.ErrBatchNotFound.Error())
	}

	return utils.SendSuccess(c, "upload batch progress", result)
}

func (h *BatchUploadHandler) removeEntry(c *fiber.Ctx) error {
	batchID := c.Params("batchID")
	entryID := c.Params("entryID")

	result, err := h.service.RemoveEntry(batchID, entryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBatchNotFound), errors.Is(err, service.ErrBatchEntryNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrBatchEntryStarted):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Str("batch_id", batchID).Msg("failed to remove batch entry")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove batch entry")
		}
	}

	return utils.SendSuccess(c, "batch entry removed", result)
}
