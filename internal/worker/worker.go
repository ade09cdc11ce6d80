// Package worker runs the polled job queue consumer that turns uploaded
// documents into classified transactions.
package worker

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
	"github.com/mapleleaf/taxprep_backend/internal/extractor"
	"github.com/mapleleaf/taxprep_backend/internal/middleware"
)

// defaultCurrency is applied to extracted transactions; source documents do
// not carry a currency column.
const defaultCurrency = "CAD"

// Worker polls the job queue and processes at most one job per tick.
// A single instance is the deployed topology; the claim itself is atomic, so
// additional instances stay safe if ever run.
type Worker struct {
	jobRepo        portsrepo.JobRepositoryFacade
	docRepo        portsrepo.DocumentRepositoryFacade
	txnRepo        portsrepo.TransactionRepositoryFacade
	engagementRepo portsrepo.EngagementRepositoryFacade
	classifier     portssvc.ClassifierSvcFacade
	extractor      *extractor.Extractor
	logger         *slog.Logger
	pollInterval   time.Duration
}

// New creates a worker.
func New(
	jobRepo portsrepo.JobRepositoryFacade,
	docRepo portsrepo.DocumentRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	engagementRepo portsrepo.EngagementRepositoryFacade,
	classifier portssvc.ClassifierSvcFacade,
	ext *extractor.Extractor,
	logger *slog.Logger,
	pollInterval time.Duration,
) *Worker {
	return &Worker{
		jobRepo:        jobRepo,
		docRepo:        docRepo,
		txnRepo:        txnRepo,
		engagementRepo: engagementRepo,
		classifier:     classifier,
		extractor:      ext,
		logger:         logger,
		pollInterval:   pollInterval,
	}
}

// Run polls until the context is cancelled. The worker suspends only between
// ticks; job handlers run to completion without yielding.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Worker started. Polling for jobs...", slog.Duration("poll_interval", w.pollInterval))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		if err := w.Tick(ctx); err != nil {
			w.logger.Error("Poll tick failed", slog.String("error", err.Error()))
		}

		select {
		case <-ctx.Done():
			w.logger.Info("Worker stopping")
			return
		case <-ticker.C:
		}
	}
}

// Tick claims and processes at most one PENDING job. Job handler errors are
// recorded on the job, not returned; the returned error covers queue access
// failures only.
func (w *Worker) Tick(ctx context.Context) error {
	job, err := w.jobRepo.ClaimNextPending(ctx, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to claim job: %w", err)
	}

	logger := w.logger.With(slog.String("job_id", job.JobID), slog.String("job_type", string(job.Type)))
	logger.Info("Processing job")
	ctx = middleware.ContextWithLogger(ctx, logger)

	var handlerErr error
	switch job.Type {
	case domain.JobProcessDocument:
		handlerErr = w.processDocument(ctx, job.Payload)
	default:
		handlerErr = fmt.Errorf("no handler for job type %q", job.Type)
	}

	if handlerErr != nil {
		logger.Error("Job failed", slog.String("error", handlerErr.Error()))
		if err := w.jobRepo.MarkJobFailed(ctx, job.JobID, handlerErr.Error(), time.Now()); err != nil {
			return fmt.Errorf("failed to mark job %s failed: %w", job.JobID, err)
		}
		return nil
	}

	if err := w.jobRepo.MarkJobCompleted(ctx, job.JobID, time.Now()); err != nil {
		return fmt.Errorf("failed to mark job %s completed: %w", job.JobID, err)
	}
	logger.Info("Job completed")
	return nil
}

// processDocument is the PROCESS_DOCUMENT handler. Any returned error marks
// the job FAILED and leaves the document in PROCESSING, an operator-visible
// stuck state remediated by re-enqueueing.
func (w *Worker) processDocument(ctx context.Context, payload domain.JobPayload) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := w.docRepo.FindDocumentByID(ctx, payload.DocumentID)
	if err != nil {
		return fmt.Errorf("document not found: %s: %w", payload.DocumentID, err)
	}

	if err := w.docRepo.UpdateDocumentStatus(ctx, doc.DocumentID, domain.DocumentProcessing); err != nil {
		return fmt.Errorf("failed to mark document processing: %w", err)
	}

	tenantID, err := w.resolveTenant(ctx, doc.EngagementID)
	if err != nil {
		return err
	}

	rows := w.extractor.Extract(ctx, doc)

	now := time.Now()
	ext := domain.Extraction{
		ExtractionID: uuid.NewString(),
		DocumentID:   doc.DocumentID,
		Rows:         rows,
		CreatedAt:    now,
	}
	if err := w.docRepo.SaveExtraction(ctx, ext); err != nil {
		return fmt.Errorf("failed to save extraction: %w", err)
	}

	// Rows are classified and persisted in extraction order.
	for _, row := range rows {
		result, err := w.classifier.Classify(ctx, row.VendorRaw, tenantID)
		if err != nil {
			return fmt.Errorf("failed to classify vendor %q: %w", row.VendorRaw, err)
		}

		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			EngagementID:  doc.EngagementID,
			DocumentID:    doc.DocumentID,
			Date:          row.Date,
			VendorRaw:     row.VendorRaw,
			VendorNorm:    domain.NormalizeVendor(row.VendorRaw),
			AmountCents:   row.AmountCents,
			Currency:      defaultCurrency,
			Description:   row.Description,
			State:         domain.TxnSuggested,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     "worker",
				LastUpdatedAt: now,
				LastUpdatedBy: "worker",
			},
		}
		if err := w.txnRepo.SaveTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to save transaction for vendor %q: %w", row.VendorRaw, err)
		}

		cls := domain.Classification{
			ClassificationID: uuid.NewString(),
			TransactionID:    txn.TransactionID,
			Category:         result.Category,
			Source:           result.Source,
			Confidence:       result.Confidence,
			Explanation:      result.Explanation,
			CreatedAt:        now,
		}
		if err := w.txnRepo.SaveClassification(ctx, cls); err != nil {
			return fmt.Errorf("failed to save classification for transaction %s: %w", txn.TransactionID, err)
		}
	}

	if err := w.docRepo.UpdateDocumentStatus(ctx, doc.DocumentID, domain.DocumentReady); err != nil {
		return fmt.Errorf("failed to mark document ready: %w", err)
	}

	logger.Info("Processed document",
		slog.String("document_id", doc.DocumentID),
		slog.String("filename", doc.Filename),
		slog.Int("transactions", len(rows)),
	)
	return nil
}

// resolveTenant walks document -> engagement -> client to find the tenant
// whose vendor rules apply.
func (w *Worker) resolveTenant(ctx context.Context, engagementID string) (string, error) {
	engagement, err := w.engagementRepo.FindEngagementByID(ctx, engagementID)
	if err != nil {
		return "", fmt.Errorf("failed to load engagement %s: %w", engagementID, err)
	}
	client, err := w.engagementRepo.FindClientByID(ctx, engagement.ClientID)
	if err != nil {
		return "", fmt.Errorf("failed to load client %s: %w", engagement.ClientID, err)
	}
	return client.TenantID, nil
}
