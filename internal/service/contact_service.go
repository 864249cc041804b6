package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
	"github.com/ManaClgLevelUp/revathi-duba/internal/observability"
	"github.com/ManaClgLevelUp/revathi-duba/internal/repository"
)

var (
	// ErrContactSpam indicates the submission tripped the honeypot.
	ErrContactSpam = errors.New("submission rejected")
	// ErrContactDuplicate indicates an identical submission was received recently.
	ErrContactDuplicate = errors.New("duplicate submission")
)

const contactDedupeTTL = 10 * time.Minute

// ContactService processes public contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error)
}

type contactService struct {
	contacts  repository.ContactRepository
	redis     *redis.Client
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewContactService constructs the contact submission service. The
// Redis client is optional; without it duplicate detection is skipped.
func NewContactService(contacts repository.ContactRepository, redisClient *redis.Client, validate *validator.Validate, logger zerolog.Logger) ContactService {
	return &contactService{
		contacts:  contacts,
		redis:     redisClient,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "contact_service").Logger(),
	}
}

func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error) {
	ctx, span := otel.Tracer("contact").Start(ctx, "contact.submit")
	defer span.End()

	if req.Honeypot != "" {
		observability.ContactSubmissions().WithLabelValues("spam").Inc()
		s.logger.Warn().Msg("contact submission tripped honeypot")
		return dto.ContactResponse{}, ErrContactSpam
	}

	if err := s.validator.Struct(req); err != nil {
		observability.ContactSubmissions().WithLabelValues("invalid").Inc()
		return dto.ContactResponse{}, err
	}

	submission := models.ContactSubmission{
		ReferenceID: uuid.NewString(),
		Name:        s.clean(req.Name),
		Email:       s.clean(req.Email),
		Phone:       s.clean(req.Phone),
		Subject:     s.clean(req.Subject),
		Message:     s.clean(req.Message),
		Status:      models.ContactStatusUnread,
	}
	submission.Checksum = contactChecksum(submission)

	if s.redis != nil {
		key := "contact:dedupe:" + submission.Checksum
		set, err := s.redis.SetNX(ctx, key, 1, contactDedupeTTL).Result()
		if err != nil {
			s.logger.Warn().Err(err).Msg("contact dedupe check unavailable")
		} else if !set {
			observability.ContactSubmissions().WithLabelValues("duplicate").Inc()
			return dto.ContactResponse{}, ErrContactDuplicate
		}
	}

	if err := s.contacts.Create(ctx, &submission); err != nil {
		observability.ContactSubmissions().WithLabelValues("error").Inc()
		return dto.ContactResponse{}, err
	}

	observability.ContactSubmissions().WithLabelValues("accepted").Inc()
	span.SetAttributes(attribute.String("contact.reference_id", submission.ReferenceID))
	s.logger.Info().Str("reference_id", submission.ReferenceID).Msg("contact submission stored")

	return dto.ContactResponse{ReferenceID: submission.ReferenceID, Status: submission.Status}, nil
}

func (s *contactService) clean(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

func contactChecksum(submission models.ContactSubmission) string {
	sum := sha256.Sum256([]byte(strings.ToLower(submission.Email) + "|" + submission.Subject + "|" + submission.Message))
	return hex.EncodeToString(sum[:])
}
