package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
	"github.com/mapleleaf/taxprep_backend/internal/models"
	"github.com/mapleleaf/taxprep_backend/internal/utils/mapping"
)

type PgxVendorRuleRepository struct {
	db *pgxpool.Pool
}

func newPgxVendorRuleRepository(db *pgxpool.Pool) portsrepo.VendorRuleRepositoryFacade {
	return &PgxVendorRuleRepository{db: db}
}

var _ portsrepo.VendorRuleRepositoryFacade = (*PgxVendorRuleRepository)(nil)

// ListRulesByTenant returns the tenant's own rules, oldest first so
// overlapping patterns resolve to the rule created earliest. Rules from other
// tenants are never returned, whatever their applies_globally flag says.
func (r *PgxVendorRuleRepository) ListRulesByTenant(ctx context.Context, tenantID string) ([]domain.VendorRule, error) {
	query := `
		SELECT rule_id, tenant_id, vendor_contains, category, applies_globally,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM vendor_rules
		WHERE tenant_id = $1
		ORDER BY created_at ASC, rule_id ASC;
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.VendorRule
	for rows.Next() {
		var m models.VendorRule
		if err := rows.Scan(
			&m.RuleID, &m.TenantID, &m.VendorContains, &m.Category, &m.AppliesGlobally,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vendor rule: %w", err)
		}
		rules = append(rules, mapping.ToDomainVendorRule(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vendor rules: %w", err)
	}
	return rules, nil
}

func (r *PgxVendorRuleRepository) SaveRule(ctx context.Context, rule domain.VendorRule) error {
	query := `
		INSERT INTO vendor_rules (rule_id, tenant_id, vendor_contains, category, applies_globally,
		                          created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		rule.RuleID, rule.TenantID, rule.VendorContains, rule.Category, rule.AppliesGlobally,
		rule.CreatedAt, rule.CreatedBy, rule.LastUpdatedAt, rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save vendor rule: %w", err)
	}
	return nil
}
