package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mapleleaf/taxprep_backend/internal/apperrors"
	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/middleware"
	"github.com/mapleleaf/taxprep_backend/internal/platform/storage"
)

// documentService handles document intake: saving bytes, recording the
// Document row and enqueueing the processing job.
type documentService struct {
	docRepo        portsrepo.DocumentRepositoryFacade
	jobRepo        portsrepo.JobEnqueuer
	engagementRepo portsrepo.EngagementReader
	store          storage.Storage
}

// NewDocumentService creates a new document intake service.
func NewDocumentService(docRepo portsrepo.DocumentRepositoryFacade, jobRepo portsrepo.JobEnqueuer, engagementRepo portsrepo.EngagementReader, store storage.Storage) portssvc.DocumentSvcFacade {
	return &documentService{
		docRepo:        docRepo,
		jobRepo:        jobRepo,
		engagementRepo: engagementRepo,
		store:          store,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// UploadDocument saves the bytes, creates the Document in state UPLOADED and
// enqueues a PENDING PROCESS_DOCUMENT job for the worker.
func (s *documentService) UploadDocument(ctx context.Context, actor domain.Actor, engagementID, filename, mimeType string, data []byte) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if engagementID == "" || filename == "" || len(data) == 0 {
		return nil, fmt.Errorf("%w: engagement ID, filename and file content are required", apperrors.ErrValidation)
	}
	if _, err := s.engagementRepo.FindEngagementByID(ctx, engagementID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("engagement %s: %w", engagementID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load engagement %s: %w", engagementID, err)
	}

	path, err := s.store.Save(filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	now := time.Now()
	doc := domain.Document{
		DocumentID:   uuid.NewString(),
		EngagementID: engagementID,
		Filename:     filepath.Base(path),
		StoragePath:  path,
		MimeType:     mimeType,
		Status:       domain.DocumentUploaded,
		UploadedAt:   now,
	}
	if err := s.docRepo.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document record: %w", err)
	}

	if err := s.enqueueProcessing(ctx, doc.DocumentID, now); err != nil {
		return nil, err
	}

	logger.Info("Document uploaded and queued",
		slog.String("document_id", doc.DocumentID),
		slog.String("engagement_id", engagementID),
		slog.String("filename", doc.Filename),
	)
	return &doc, nil
}

// ListDocuments returns the engagement's documents, newest first.
func (s *documentService) ListDocuments(ctx context.Context, engagementID string) ([]domain.Document, error) {
	docs, err := s.docRepo.ListDocumentsByEngagement(ctx, engagementID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for engagement %s: %w", engagementID, err)
	}
	return docs, nil
}

// ReprocessDocument enqueues a fresh processing job for an existing document.
// This is the operator remediation for jobs that failed or died mid-run.
func (s *documentService) ReprocessDocument(ctx context.Context, actor domain.Actor, documentID string) error {
	if _, err := s.docRepo.FindDocumentByID(ctx, documentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("document %s: %w", documentID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to load document %s: %w", documentID, err)
	}
	return s.enqueueProcessing(ctx, documentID, time.Now())
}

func (s *documentService) enqueueProcessing(ctx context.Context, documentID string, now time.Time) error {
	job := domain.Job{
		JobID:     uuid.NewString(),
		Type:      domain.JobProcessDocument,
		Payload:   domain.JobPayload{DocumentID: documentID},
		Status:    domain.JobPending,
		CreatedAt: now,
	}
	if err := s.jobRepo.EnqueueJob(ctx, job); err != nil {
		return fmt.Errorf("failed to enqueue processing job for document %s: %w", documentID, err)
	}
	return nil
}
