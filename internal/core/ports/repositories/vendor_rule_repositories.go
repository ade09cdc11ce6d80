package repositories

import (
	"context"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
)

// VendorRuleReader defines read operations for vendor rules.
type VendorRuleReader interface {
	// ListRulesByTenant retrieves a tenant's vendor rules ordered by creation
	// time ascending, pinning first-match semantics for overlapping patterns.
	ListRulesByTenant(ctx context.Context, tenantID string) ([]domain.VendorRule, error)
}

// VendorRuleWriter defines write operations for vendor rules.
type VendorRuleWriter interface {
	// SaveRule persists a new vendor rule.
	SaveRule(ctx context.Context, rule domain.VendorRule) error
}

// VendorRuleRepositoryFacade combines vendor rule repository interfaces.
type VendorRuleRepositoryFacade interface {
	VendorRuleReader
	VendorRuleWriter
}
