package pgsql

import (
	"context"
	"encoding/json"
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

type PgxDocumentRepository struct {
	db *pgxpool.Pool
}

func newPgxDocumentRepository(db *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{db: db}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (document_id, engagement_id, filename, storage_path, mime_type, status, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		m.DocumentID, m.EngagementID, m.Filename, m.StoragePath, m.MimeType, m.Status, m.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `
		SELECT document_id, engagement_id, filename, storage_path, mime_type, status, uploaded_at
		FROM documents
		WHERE document_id = $1;
	`
	var m models.Document
	err := r.db.QueryRow(ctx, query, documentID).Scan(
		&m.DocumentID, &m.EngagementID, &m.Filename, &m.StoragePath, &m.MimeType, &m.Status, &m.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	doc := mapping.ToDomainDocument(m)
	return &doc, nil
}

func (r *PgxDocumentRepository) ListDocumentsByEngagement(ctx context.Context, engagementID string) ([]domain.Document, error) {
	query := `
		SELECT document_id, engagement_id, filename, storage_path, mime_type, status, uploaded_at
		FROM documents
		WHERE engagement_id = $1
		ORDER BY uploaded_at DESC;
	`
	rows, err := r.db.Query(ctx, query, engagementID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var m models.Document
		if err := rows.Scan(&m.DocumentID, &m.EngagementID, &m.Filename, &m.StoragePath, &m.MimeType, &m.Status, &m.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, mapping.ToDomainDocument(m))
	}
	return docs, rows.Err()
}

func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus) error {
	query := `UPDATE documents SET status = $2 WHERE document_id = $1;`
	tag, err := r.db.Exec(ctx, query, documentID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update document %s status: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDocumentRepository) SaveExtraction(ctx context.Context, extraction domain.Extraction) error {
	rawJSON, err := json.Marshal(extraction.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal extraction rows: %w", err)
	}
	query := `
		INSERT INTO extractions (extraction_id, document_id, raw_json, created_at)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := r.db.Exec(ctx, query, extraction.ExtractionID, extraction.DocumentID, rawJSON, extraction.CreatedAt); err != nil {
		return fmt.Errorf("failed to save extraction: %w", err)
	}
	return nil
}
