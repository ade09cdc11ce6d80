package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
	"github.com/mapleleaf/taxprep_backend/internal/models"
)

type PgxAuditRepository struct {
	db *pgxpool.Pool
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{db: db}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	before, err := json.Marshal(entry.Before)
	if err != nil {
		return fmt.Errorf("failed to marshal audit before snapshot: %w", err)
	}
	after, err := json.Marshal(entry.After)
	if err != nil {
		return fmt.Errorf("failed to marshal audit after snapshot: %w", err)
	}
	query := `
		INSERT INTO audit_log (audit_id, tenant_id, user_id, entity_type, entity_id, action, before, after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.db.Exec(ctx, query,
		entry.AuditID, entry.TenantID, entry.UserID, entry.EntityType, entry.EntityID,
		entry.Action, before, after, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit entry: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditEntriesByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditEntry, error) {
	query := `
		SELECT audit_id, tenant_id, user_id, entity_type, entity_id, action, before, after, created_at
		FROM audit_log
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var m models.AuditEntry
		if err := rows.Scan(
			&m.AuditID, &m.TenantID, &m.UserID, &m.EntityType, &m.EntityID,
			&m.Action, &m.BeforeJSON, &m.AfterJSON, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry, err := toDomainAuditEntry(m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}
	return entries, nil
}

func toDomainAuditEntry(m models.AuditEntry) (domain.AuditEntry, error) {
	entry := domain.AuditEntry{
		AuditID:    m.AuditID,
		TenantID:   m.TenantID,
		UserID:     m.UserID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Action:     m.Action,
		CreatedAt:  m.CreatedAt,
	}
	if len(m.BeforeJSON) > 0 {
		if err := json.Unmarshal(m.BeforeJSON, &entry.Before); err != nil {
			return domain.AuditEntry{}, fmt.Errorf("failed to unmarshal before snapshot for audit %s: %w", m.AuditID, err)
		}
	}
	if len(m.AfterJSON) > 0 {
		if err := json.Unmarshal(m.AfterJSON, &entry.After); err != nil {
			return domain.AuditEntry{}, fmt.Errorf("failed to unmarshal after snapshot for audit %s: %w", m.AuditID, err)
		}
	}
	return entry, nil
}
