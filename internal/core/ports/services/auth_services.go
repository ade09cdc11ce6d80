package services

import (
	"context"

	"github.com/mapleleaf/taxprep_backend/internal/dto"
)

// AuthSvcFacade authenticates firm staff and issues session tokens.
type AuthSvcFacade interface {
	// Login verifies email/password credentials and returns a signed session
	// token carrying the user's identity, role and tenant.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
