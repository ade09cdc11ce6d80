package repositories

import (
	"context"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
)

// AuditWriter appends audit log entries. The log is append-only; there are
// no update or delete operations.
type AuditWriter interface {
	// SaveAuditEntry appends one audit record.
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error
}

// AuditReader defines read operations for the audit log.
type AuditReader interface {
	// ListAuditEntriesByEntity retrieves the audit trail for one entity,
	// newest first.
	ListAuditEntriesByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditEntry, error)
}

// AuditRepositoryFacade combines audit log repository interfaces.
type AuditRepositoryFacade interface {
	AuditWriter
	AuditReader
}
