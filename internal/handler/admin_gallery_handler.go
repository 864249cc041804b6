package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/service"
	"github.com/ManaClgLevelUp/revathi-duba/internal/utils"
)

// AdminGalleryHandler manages single gallery items. Deletes route
// through the live view so clients observe the removal immediately.
type AdminGalleryHandler struct {
	service service.AdminGalleryService
	live    service.LiveViewService
	logger  zerolog.Logger
}

// NewAdminGalleryHandler constructs an admin gallery handler.
func NewAdminGalleryHandler(svc service.AdminGalleryService, live service.LiveViewService, logger zerolog.Logger) *AdminGalleryHandler {
	return &AdminGalleryHandler{
		service: svc,
		live:    live,
		logger:  logger.With().Str("component", "admin_gallery_handler").Logger(),
	}
}

// Register wires the protected gallery item routes.
func (h *AdminGalleryHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *AdminGalleryHandler) create(c *fiber.Ctx) error {
	var req dto.GalleryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.Context(), req)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create gallery item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create gallery item")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "gallery item created", result)
}

func (h *AdminGalleryHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid item id")
	}

	result, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGalleryItemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("item_id", id).Msg("failed to load gallery item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load gallery item")
	}

	return utils.SendSuccess(c, "gallery item retrieved", result)
}

func (h *AdminGalleryHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid item id")
	}

	var req dto.GalleryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.Context(), id, req)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrGalleryItemNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("item_id", id).Msg("failed to update gallery item")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update gallery item")
		}
	}

	return utils.SendSuccess(c, "gallery item updated", result)
}

func (h *AdminGalleryHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.live.DeleteItem(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrGalleryItemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("item_id", id).Msg("failed to delete gallery item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete gallery item")
	}

	return utils.SendSuccess(c, "gallery item deleted", nil)
}
