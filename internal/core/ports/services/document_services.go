package services

import (
	"context"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
)

// DocumentSvcFacade handles document intake and the enqueue side of the
// processing pipeline.
type DocumentSvcFacade interface {
	// UploadDocument saves the uploaded bytes, creates the Document row in
	// state UPLOADED and enqueues a PROCESS_DOCUMENT job.
	UploadDocument(ctx context.Context, actor domain.Actor, engagementID, filename, mimeType string, data []byte) (*domain.Document, error)

	// ListDocuments returns an engagement's documents, newest upload first.
	ListDocuments(ctx context.Context, engagementID string) ([]domain.Document, error)

	// ReprocessDocument enqueues a fresh PROCESS_DOCUMENT job for a document,
	// the operator remediation for stuck or failed processing.
	ReprocessDocument(ctx context.Context, actor domain.Actor, documentID string) error
}
