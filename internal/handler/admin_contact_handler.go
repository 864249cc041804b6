package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/service"
	"github.com/ManaClgLevelUp/revathi-duba/internal/utils"
)

// AdminContactHandler exposes contact submissions to the admin surface.
type AdminContactHandler struct {
	service   service.AdminContactService
	validator StructValidator
	logger    zerolog.Logger
}

// StructValidator validates request payload structs.
type StructValidator interface {
	Struct(s interface{}) error
}

// NewAdminContactHandler constructs an admin contact handler.
func NewAdminContactHandler(svc service.AdminContactService, validate StructValidator, logger zerolog.Logger) *AdminContactHandler {
	return &AdminContactHandler{
		service:   svc,
		validator: validate,
		logger:    logger.With().Str("component", "admin_contact_handler").Logger(),
	}
}

// Register wires the protected contact routes.
func (h *AdminContactHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id/status", h.updateStatus)
	router.Delete("/:id", h.remove)
}

func (h *AdminContactHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.Context(), dto.AdminContactListRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list contact submissions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list contact submissions")
	}

	return utils.SendSuccess(c, "contact submissions retrieved", result)
}

func (h *AdminContactHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid submission id")
	}

	result, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("contact_id", id).Msg("failed to load contact submission")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load contact submission")
	}

	return utils.SendSuccess(c, "contact submission retrieved", result)
}

func (h *AdminContactHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid submission id")
	}

	var req dto.ContactStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateStatus(c.Context(), id, req.Status); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("contact_id", id).Msg("failed to update contact status")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update contact status")
	}

	return utils.SendSuccess(c, "contact status updated", nil)
}

func (h *AdminContactHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid submission id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("contact_id", id).Msg("failed to delete contact submission")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete contact submission")
	}

	return utils.SendSuccess(c, "contact submission deleted", nil)
}
