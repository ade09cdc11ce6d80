package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mapleleaf/taxprep_backend/internal/apperrors"
	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/dto"
	"github.com/mapleleaf/taxprep_backend/internal/middleware"
	"github.com/mapleleaf/taxprep_backend/internal/platform/config"
	"github.com/mapleleaf/taxprep_backend/internal/utils"
)

// authService verifies staff credentials and issues session tokens.
type authService struct {
	userRepo portsrepo.UserReader
	cfg      *config.Config
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo portsrepo.UserReader, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login returns a signed session token on valid credentials. Failed lookups
// and bad passwords are both reported as ErrUnauthorized to avoid revealing
// which accounts exist.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login rejected", slog.String("email", req.Email))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.GenerateSessionToken(
		user.UserID, user.Name, string(user.Role), user.TenantID,
		s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer,
	)
	if err != nil {
		return nil, err
	}

	logger.Info("Login succeeded", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.UserID,
		Name:      user.Name,
		Role:      string(user.Role),
		TenantID:  user.TenantID,
	}, nil
}
