package models

import "time"

// Document maps to the documents table.
type Document struct {
	DocumentID   string
	EngagementID string
	Filename     string
	StoragePath  string
	MimeType     string
	Status       string
	UploadedAt   time.Time
}

// Extraction maps to the extractions table. RawJSON is the jsonb payload of
// the extracted row set.
type Extraction struct {
	ExtractionID string
	DocumentID   string
	RawJSON      []byte
	CreatedAt    time.Time
}
