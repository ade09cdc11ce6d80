package services

import (
	"context"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	"github.com/mapleleaf/taxprep_backend/internal/dto"
)

// ReviewSvcFacade drives the human review workflow over transactions.
type ReviewSvcFacade interface {
	// ListTransactions returns parent transactions for an engagement with
	// their classification history and split children, applying the requested
	// filters.
	ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListTransactionsParams) ([]domain.TransactionWithDetail, error)

	// BulkTransition applies one review action (prepare, review or classify)
	// to a batch of transaction IDs. A role violation rejects the whole batch
	// before any write; a missing ID is skipped per item. Every successful
	// per-ID mutation writes one audit log entry. Returns the IDs mutated.
	BulkTransition(ctx context.Context, actor domain.Actor, req dto.BulkTransitionRequest) ([]string, error)
}

// SplitSvcFacade decomposes one transaction into independently reviewable children.
type SplitSvcFacade interface {
	// SplitTransaction creates at least two child transactions whose amounts
	// must sum exactly to the parent's; any mismatch rejects the whole
	// operation with no partial writes.
	SplitTransaction(ctx context.Context, actor domain.Actor, req dto.SplitRequest) (*dto.SplitResponse, error)
}

// ExportSvcFacade produces the downstream export of reviewed transactions.
type ExportSvcFacade interface {
	// ExportReviewedCSV renders all REVIEWED non-child transactions of an
	// engagement (and their children) as CSV, one row per leaf, ordered by
	// date ascending.
	ExportReviewedCSV(ctx context.Context, engagementID string) (string, error)
}
