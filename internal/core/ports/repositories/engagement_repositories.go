package repositories

import (
	"context"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
)

// ClientReader defines read operations for client data.
type ClientReader interface {
	// FindClientByID retrieves a specific client by its ID.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClientsByTenant retrieves a tenant's clients ordered by name.
	ListClientsByTenant(ctx context.Context, tenantID string) ([]domain.Client, error)
}

// EngagementReader defines read operations for engagement data.
type EngagementReader interface {
	// FindEngagementByID retrieves a specific engagement by its ID.
	FindEngagementByID(ctx context.Context, engagementID string) (*domain.Engagement, error)

	// ListEngagementSummaries retrieves a client's engagements with transaction
	// and document counts, newest year first.
	ListEngagementSummaries(ctx context.Context, clientID string) ([]domain.EngagementSummary, error)
}

// EngagementRepositoryFacade combines client and engagement repository interfaces.
type EngagementRepositoryFacade interface {
	ClientReader
	EngagementReader
}
