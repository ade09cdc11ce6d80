package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mapleleaf/taxprep_backend/internal/apperrors"
	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/dto"
	"github.com/mapleleaf/taxprep_backend/internal/middleware"
)

// lowConfidenceThreshold is the cutoff below which a latest classification
// counts as low confidence in list filters.
const lowConfidenceThreshold = 70

var (
	ErrUnknownAction    = errors.New("unknown review action")
	ErrCategoryRequired = errors.New("classify action requires a category")
)

// reviewService governs the transaction review lifecycle: listing for the
// review queue and the role-gated bulk transitions.
type reviewService struct {
	txnRepo   portsrepo.TransactionRepositoryFacade
	auditRepo portsrepo.AuditWriter
}

// NewReviewService creates a new review workflow service.
func NewReviewService(txnRepo portsrepo.TransactionRepositoryFacade, auditRepo portsrepo.AuditWriter) portssvc.ReviewSvcFacade {
	return &reviewService{
		txnRepo:   txnRepo,
		auditRepo: auditRepo,
	}
}

var _ portssvc.ReviewSvcFacade = (*reviewService)(nil)

// ListTransactions returns the engagement's parent transactions with detail,
// applying the classification-derived filters over the latest classification.
func (s *reviewService) ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListTransactionsParams) ([]domain.TransactionWithDetail, error) {
	var state *domain.TransactionState
	if params.State != "" {
		st := domain.TransactionState(params.State)
		state = &st
	}

	txns, err := s.txnRepo.ListTransactionDetail(ctx, params.EngagementID, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for engagement %s: %w", params.EngagementID, err)
	}

	filtered := make([]domain.TransactionWithDetail, 0, len(txns))
	for i := range txns {
		latest := txns[i].LatestClassification()

		if params.UncategorizedOnly {
			if latest != nil && latest.Category != domain.CategoryUncategorized {
				continue
			}
		}
		if params.LowConfidence {
			if latest == nil || latest.Confidence >= lowConfidenceThreshold {
				continue
			}
		}
		if params.ChangedVsPriorYear {
			if latest == nil || latest.Source == domain.SourcePriorYear {
				continue
			}
		}
		filtered = append(filtered, txns[i])
	}
	return filtered, nil
}

// BulkTransition applies one review action to a batch of transaction IDs.
// Authorization is all-or-nothing: a role violation rejects the batch before
// any write. Missing IDs are skipped per item.
func (s *reviewService) BulkTransition(ctx context.Context, actor domain.Actor, req dto.BulkTransitionRequest) ([]string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	action := domain.ReviewAction(req.Action)

	switch action {
	case domain.ActionPrepare:
		if !actor.CanPrepare() {
			return nil, fmt.Errorf("%w: role %s may not prepare transactions", apperrors.ErrForbidden, actor.Role)
		}
	case domain.ActionReview:
		if !actor.CanReview() {
			return nil, fmt.Errorf("%w: only seniors can review", apperrors.ErrForbidden)
		}
	case domain.ActionClassify:
		if req.Category == "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCategoryRequired)
		}
		if !domain.IsValidCategory(req.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, req.Category)
		}
	default:
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrUnknownAction, req.Action)
	}

	now := time.Now()
	updated := make([]string, 0, len(req.IDs))

	for _, id := range req.IDs {
		txn, err := s.txnRepo.FindTransactionByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Skipping unknown transaction in bulk transition", slog.String("transaction_id", id))
				continue
			}
			return updated, fmt.Errorf("failed to load transaction %s: %w", id, err)
		}

		beforeState := txn.State
		afterState := beforeState

		switch action {
		case domain.ActionPrepare:
			afterState = domain.TxnPrepared
			if err := s.txnRepo.UpdateTransactionState(ctx, id, afterState, actor.UserID, now); err != nil {
				return updated, fmt.Errorf("failed to prepare transaction %s: %w", id, err)
			}
		case domain.ActionReview:
			afterState = domain.TxnReviewed
			if err := s.txnRepo.UpdateTransactionState(ctx, id, afterState, actor.UserID, now); err != nil {
				return updated, fmt.Errorf("failed to review transaction %s: %w", id, err)
			}
		case domain.ActionClassify:
			cls := domain.Classification{
				ClassificationID: uuid.NewString(),
				TransactionID:    id,
				Category:         req.Category,
				Source:           domain.SourceManual,
				Confidence:       100,
				Explanation:      fmt.Sprintf("Manually classified by %s", actor.Name),
				CreatedAt:        now,
			}
			if err := s.txnRepo.SaveClassification(ctx, cls); err != nil {
				return updated, fmt.Errorf("failed to classify transaction %s: %w", id, err)
			}
		}

		after := map[string]any{"state": string(afterState)}
		if action == domain.ActionClassify {
			after["category"] = req.Category
		}
		entry := domain.AuditEntry{
			AuditID:    uuid.NewString(),
			TenantID:   actor.TenantID,
			UserID:     actor.UserID,
			EntityType: "Transaction",
			EntityID:   id,
			Action:     string(action),
			Before:     map[string]any{"state": string(beforeState)},
			After:      after,
			CreatedAt:  now,
		}
		if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
			return updated, fmt.Errorf("failed to write audit entry for transaction %s: %w", id, err)
		}

		updated = append(updated, id)
	}

	logger.Info("Bulk transition applied",
		slog.String("action", string(action)),
		slog.Int("requested", len(req.IDs)),
		slog.Int("updated", len(updated)),
	)
	return updated, nil
}
