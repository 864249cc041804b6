package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/service"
	"github.com/ManaClgLevelUp/revathi-duba/internal/utils"
)

// ContactHandler exposes the public contact form endpoint.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(svc service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: svc,
		logger:  logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires contact routes.
func (h *ContactHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Submit(c.Context(), req)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrContactSpam):
			// Spam gets the same success shape so bots learn nothing.
			return utils.SendSuccess(c, "message received", dto.ContactResponse{Status: "received"})
		case errors.Is(err, service.ErrContactDuplicate):
			return utils.SendError(c, fiber.StatusTooManyRequests, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to store contact submission")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to store contact submission")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message received", result)
}
