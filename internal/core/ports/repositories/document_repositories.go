package repositories

import (
	"context"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
)

// DocumentReader defines read operations for document data.
type DocumentReader interface {
	// FindDocumentByID retrieves a specific document by its ID.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocumentsByEngagement retrieves all documents attached to an engagement,
	// newest upload first.
	ListDocumentsByEngagement(ctx context.Context, engagementID string) ([]domain.Document, error)
}

// DocumentWriter defines write operations for document data.
type DocumentWriter interface {
	// SaveDocument persists a newly uploaded document.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocumentStatus moves a document through its processing lifecycle.
	UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus) error
}

// ExtractionWriter persists the write-once raw extraction record.
type ExtractionWriter interface {
	// SaveExtraction persists the raw row set read from a document.
	SaveExtraction(ctx context.Context, extraction domain.Extraction) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
	ExtractionWriter
}
