package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ManaClgLevelUp/revathi-duba/internal/service"
	"github.com/ManaClgLevelUp/revathi-duba/internal/utils"
)

// GalleryHandler exposes the public gallery endpoints.
type GalleryHandler struct {
	service service.GalleryService
	logger  zerolog.Logger
}

// NewGalleryHandler constructs a gallery handler.
func NewGalleryHandler(svc service.GalleryService, logger zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{
		service: svc,
		logger:  logger.With().Str("component", "gallery_handler").Logger(),
	}
}

// Register wires gallery routes.
func (h *GalleryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/categories", h.categories)
}

func (h *GalleryHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	category := c.Query("category")

	result, err := h.service.List(c.Context(), category, page, pageSize)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list gallery items")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list gallery items")
	}

	return utils.SendSuccess(c, "gallery items retrieved", result)
}

func (h *GalleryHandler) categories(c *fiber.Ctx) error {
	result, err := h.service.Categories(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to derive gallery categories")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to derive gallery categories")
	}

	return utils.SendSuccess(c, "gallery categories retrieved", result)
}
