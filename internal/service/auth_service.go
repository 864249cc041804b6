package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ManaClgLevelUp/revathi-duba/internal/config"
	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
)

// ErrInvalidCredentials indicates the login attempt did not match the
// configured admin credentials.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates the single configured admin.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	cfg       config.Config
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the admin authentication service.
func NewAuthService(cfg config.Config, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		cfg:       cfg,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.cfg.AdminEmail))
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.AdminPassword))
	if emailOK&passwordOK != 1 {
		s.logger.Warn().Str("email", req.Email).Msg("failed admin login attempt")
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.cfg.JWTTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  s.cfg.AdminEmail,
		"role": "admin",
		"iat":  issuedAt.Unix(),
		"exp":  expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Msg("admin logged in")
	return dto.LoginResponse{Token: signed, ExpiresIn: int64(s.cfg.JWTTTL.Seconds())}, nil
}
