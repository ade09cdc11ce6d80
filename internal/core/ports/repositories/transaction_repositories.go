package repositories

import (
	"context"
	"time"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionDetail retrieves parent transactions (parent_id IS NULL) for
	// an engagement ordered by date ascending, each with its classification
	// history (newest first) and split children. If state is non-nil only
	// parents in that state are returned.
	ListTransactionDetail(ctx context.Context, engagementID string, state *domain.TransactionState) ([]domain.TransactionWithDetail, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionState moves a transaction to a new lifecycle state.
	UpdateTransactionState(ctx context.Context, transactionID string, state domain.TransactionState, updatedBy string, updatedAt time.Time) error

	// CreateSplit persists split children and their optional immediate
	// classifications atomically; nothing is written on error.
	CreateSplit(ctx context.Context, children []domain.Transaction, classifications []domain.Classification) error
}

// ClassificationReader defines read operations for classification history.
type ClassificationReader interface {
	// FindLatestClassification retrieves the most recent classification for a
	// transaction, or apperrors.ErrNotFound if it has none.
	FindLatestClassification(ctx context.Context, transactionID string) (*domain.Classification, error)
}

// ClassificationWriter appends classification decisions. Classifications are
// append-only; reclassification creates a new row.
type ClassificationWriter interface {
	// SaveClassification appends a classification row.
	SaveClassification(ctx context.Context, cls domain.Classification) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	ClassificationReader
	ClassificationWriter
}
