package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/service"
	"github.com/ManaClgLevelUp/revathi-duba/internal/utils"
)

// CollectionHandler exposes gallery collections: public reads, and the
// admin save/delete flows that close out an upload batch.
type CollectionHandler struct {
	service service.CollectionService
	live    service.LiveViewService
	logger  zerolog.Logger
}

// NewCollectionHandler constructs a collection handler.
func NewCollectionHandler(svc service.CollectionService, live service.LiveViewService, logger zerolog.Logger) *CollectionHandler {
	return &CollectionHandler{
		service: svc,
		live:    live,
		logger:  logger.With().Str("component", "collection_handler").Logger(),
	}
}

// Register wires the public read routes.
func (h *CollectionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Get("/:id/items", h.items)
}

// RegisterAdmin wires the protected mutation routes.
func (h *CollectionHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.save)
	router.Delete("/:id", h.remove)
}

func (h *CollectionHandler) list(c *fiber.Ctx) error {
	result, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list collections")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list collections")
	}

	return utils.SendSuccess(c, "collections retrieved", result)
}

func (h *CollectionHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid collection id")
	}

	result, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCollectionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("collection_id", id).Msg("failed to load collection")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load collection")
	}

	return utils.SendSuccess(c, "collection retrieved", result)
}

func (h *CollectionHandler) items(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid collection id")
	}

	result, err := h.service.Items(c.Context(), id)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("collection_id", id).Msg("failed to list collection items")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list collection items")
	}

	return utils.SendSuccess(c, "collection items retrieved", result)
}

func (h *CollectionHandler) save(c *fiber.Ctx) error {
	var req dto.SaveCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Save(c.Context(), req)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrCollectionNameRequired), errors.Is(err, service.ErrNoUploadedItems):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrBatchNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to save collection")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to save collection")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "collection saved", result)
}

func (h *CollectionHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid collection id")
	}

	result, err := h.live.DeleteCollection(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCollectionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("collection_id", id).Msg("failed to delete collection")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete collection")
	}

	return utils.SendSuccess(c, "collection deleted", result)
}
