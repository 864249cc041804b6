package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
	"github.com/ManaClgLevelUp/revathi-duba/internal/repository"
)

// ErrContactNotFound indicates the submission does not exist.
var ErrContactNotFound = errors.New("contact submission not found")

// AdminContactService exposes submissions to the admin surface.
type AdminContactService interface {
	List(ctx context.Context, req dto.AdminContactListRequest) (dto.AdminContactListResponse, error)
	Get(ctx context.Context, id uint) (dto.AdminContactResponse, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type adminContactService struct {
	contacts repository.ContactRepository
	logger   zerolog.Logger
}

// NewAdminContactService constructs the admin contact service.
func NewAdminContactService(contacts repository.ContactRepository, logger zerolog.Logger) AdminContactService {
	return &adminContactService{
		contacts: contacts,
		logger:   logger.With().Str("component", "admin_contact_service").Logger(),
	}
}

func (s *adminContactService) List(ctx context.Context, req dto.AdminContactListRequest) (dto.AdminContactListResponse, error) {
	page := normalizePage(req.Page)
	pageSize := clampPageSize(req.PageSize)

	submissions, total, err := s.contacts.List(ctx, repository.ContactFilter{
		Status:   req.Status,
		Search:   req.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return dto.AdminContactListResponse{}, err
	}

	items := make([]dto.AdminContactResponse, 0, len(submissions))
	for _, submission := range submissions {
		items = append(items, toAdminContactResponse(submission))
	}

	return dto.AdminContactListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, pageSize),
		},
	}, nil
}

func (s *adminContactService) Get(ctx context.Context, id uint) (dto.AdminContactResponse, error) {
	submission, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminContactResponse{}, ErrContactNotFound
		}
		return dto.AdminContactResponse{}, err
	}
	return toAdminContactResponse(submission), nil
}

func (s *adminContactService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := s.contacts.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}

func (s *adminContactService) Delete(ctx context.Context, id uint) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	s.logger.Info().Uint("contact_id", id).Msg("contact submission deleted")
	return nil
}

func toAdminContactResponse(submission models.ContactSubmission) dto.AdminContactResponse {
	return dto.AdminContactResponse{
		ID:          submission.ID,
		ReferenceID: submission.ReferenceID,
		Name:        submission.Name,
		Email:       submission.Email,
		Phone:       submission.Phone,
		Subject:     submission.Subject,
		Message:     submission.Message,
		Status:      submission.Status,
		CreatedAt:   submission.CreatedAt,
	}
}
