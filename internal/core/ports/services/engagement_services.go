package services

import (
	"context"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	"github.com/mapleleaf/taxprep_backend/internal/dto"
)

// EngagementSvcFacade exposes client and engagement reads for the firm's
// working set.
type EngagementSvcFacade interface {
	// ListClients returns the tenant's clients ordered by name.
	ListClients(ctx context.Context, tenantID string) ([]domain.Client, error)

	// GetClient returns one client scoped to the tenant.
	GetClient(ctx context.Context, tenantID, clientID string) (*domain.Client, error)

	// ListEngagements returns a client's engagements with record counts,
	// newest year first.
	ListEngagements(ctx context.Context, tenantID, clientID string) ([]domain.EngagementSummary, error)
}

// VendorRuleSvcFacade manages the tenant vendor rules the cascade consults.
type VendorRuleSvcFacade interface {
	// ListRules returns the tenant's rules in match order.
	ListRules(ctx context.Context, tenantID string) ([]domain.VendorRule, error)

	// CreateRule adds a new rule for the tenant.
	CreateRule(ctx context.Context, actor domain.Actor, req dto.CreateVendorRuleRequest) (*domain.VendorRule, error)
}
