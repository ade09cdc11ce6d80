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

var (
	ErrSplitMinParts    = errors.New("split requires at least two parts")
	ErrSplitAmountsDiff = errors.New("split amounts must equal the original amount")
)

// splitService decomposes one transaction into child transactions. The parent
// row is never mutated; downstream consumers treat it as superseded by its
// children.
type splitService struct {
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewSplitService creates a new split engine service.
func NewSplitService(txnRepo portsrepo.TransactionRepositoryFacade) portssvc.SplitSvcFacade {
	return &splitService{txnRepo: txnRepo}
}

var _ portssvc.SplitSvcFacade = (*splitService)(nil)

// SplitTransaction validates amount conservation and creates the children
// atomically. Children start in state NEW with the parent reference set; a
// part that names a category gets an immediate MANUAL classification.
func (s *splitService) SplitTransaction(ctx context.Context, actor domain.Actor, req dto.SplitRequest) (*dto.SplitResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Splits) < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSplitMinParts)
	}

	parent, err := s.txnRepo.FindTransactionByID(ctx, req.TransactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("transaction %s: %w", req.TransactionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load transaction %s: %w", req.TransactionID, err)
	}

	var total int64
	for _, part := range req.Splits {
		total += part.AmountCents
	}
	if total != parent.AmountCents {
		return nil, fmt.Errorf("%w: parts sum to %d, parent amount is %d: %s",
			apperrors.ErrValidation, total, parent.AmountCents, ErrSplitAmountsDiff)
	}

	now := time.Now()
	children := make([]domain.Transaction, 0, len(req.Splits))
	classifications := make([]domain.Classification, 0, len(req.Splits))

	for _, part := range req.Splits {
		description := part.Description
		if description == "" {
			description = parent.Description
		}

		child := domain.Transaction{
			TransactionID: uuid.NewString(),
			EngagementID:  parent.EngagementID,
			DocumentID:    parent.DocumentID,
			ParentID:      &parent.TransactionID,
			Date:          parent.Date,
			VendorRaw:     parent.VendorRaw,
			VendorNorm:    parent.VendorNorm,
			AmountCents:   part.AmountCents,
			Currency:      parent.Currency,
			Description:   description,
			State:         domain.TxnNew,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
		children = append(children, child)

		if part.Category != "" {
			classifications = append(classifications, domain.Classification{
				ClassificationID: uuid.NewString(),
				TransactionID:    child.TransactionID,
				Category:         part.Category,
				Source:           domain.SourceManual,
				Confidence:       100,
				Explanation:      fmt.Sprintf("Split transaction classified by %s", actor.Name),
				CreatedAt:        now,
			})
		}
	}

	if err := s.txnRepo.CreateSplit(ctx, children, classifications); err != nil {
		return nil, fmt.Errorf("failed to persist split of transaction %s: %w", parent.TransactionID, err)
	}

	childIDs := make([]string, len(children))
	for i, c := range children {
		childIDs[i] = c.TransactionID
	}

	logger.Info("Transaction split",
		slog.String("transaction_id", parent.TransactionID),
		slog.Int("children", len(childIDs)),
	)
	return &dto.SplitResponse{ParentID: parent.TransactionID, ChildIDs: childIDs}, nil
}
