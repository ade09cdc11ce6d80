package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mapleleaf/taxprep_backend/internal/apperrors"
	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
	"github.com/mapleleaf/taxprep_backend/internal/models"
	"github.com/mapleleaf/taxprep_backend/internal/utils/mapping"
)

type PgxEngagementRepository struct {
	db *pgxpool.Pool
}

func newPgxEngagementRepository(db *pgxpool.Pool) portsrepo.EngagementRepositoryFacade {
	return &PgxEngagementRepository{db: db}
}

var _ portsrepo.EngagementRepositoryFacade = (*PgxEngagementRepository)(nil)

func (r *PgxEngagementRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT client_id, tenant_id, name, entity_type, province, gst_registered,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		WHERE client_id = $1;
	`
	var m models.Client
	err := r.db.QueryRow(ctx, query, clientID).Scan(
		&m.ClientID, &m.TenantID, &m.Name, &m.EntityType, &m.Province, &m.GSTRegistered,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	client := mapping.ToDomainClient(m)
	return &client, nil
}

func (r *PgxEngagementRepository) ListClientsByTenant(ctx context.Context, tenantID string) ([]domain.Client, error) {
	query := `
		SELECT client_id, tenant_id, name, entity_type, province, gst_registered,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		WHERE tenant_id = $1
		ORDER BY name ASC;
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var m models.Client
		if err := rows.Scan(
			&m.ClientID, &m.TenantID, &m.Name, &m.EntityType, &m.Province, &m.GSTRegistered,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, mapping.ToDomainClient(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
}

func (r *PgxEngagementRepository) FindEngagementByID(ctx context.Context, engagementID string) (*domain.Engagement, error) {
	query := `
		SELECT engagement_id, client_id, year,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM engagements
		WHERE engagement_id = $1;
	`
	var m models.Engagement
	err := r.db.QueryRow(ctx, query, engagementID).Scan(
		&m.EngagementID, &m.ClientID, &m.Year,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find engagement %s: %w", engagementID, err)
	}
	eng := mapping.ToDomainEngagement(m)
	return &eng, nil
}

func (r *PgxEngagementRepository) ListEngagementSummaries(ctx context.Context, clientID string) ([]domain.EngagementSummary, error) {
	query := `
		SELECT e.engagement_id, e.client_id, e.year,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by,
		       (SELECT COUNT(*) FROM transactions t WHERE t.engagement_id = e.engagement_id) AS transaction_count,
		       (SELECT COUNT(*) FROM documents d WHERE d.engagement_id = e.engagement_id) AS document_count
		FROM engagements e
		WHERE e.client_id = $1
		ORDER BY e.year DESC;
	`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list engagements: %w", err)
	}
	defer rows.Close()

	var summaries []domain.EngagementSummary
	for rows.Next() {
		var m models.Engagement
		var txnCount, docCount int
		if err := rows.Scan(
			&m.EngagementID, &m.ClientID, &m.Year,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&txnCount, &docCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan engagement: %w", err)
		}
		summaries = append(summaries, domain.EngagementSummary{
			Engagement:       mapping.ToDomainEngagement(m),
			TransactionCount: txnCount,
			DocumentCount:    docCount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate engagements: %w", err)
	}
	return summaries, nil
}
