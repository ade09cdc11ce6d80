package domain

import "time"

// DocumentStatus tracks a document through the processing pipeline.
type DocumentStatus string

const (
	DocumentUploaded   DocumentStatus = "UPLOADED"
	DocumentProcessing DocumentStatus = "PROCESSING"
	DocumentReady      DocumentStatus = "READY"
	DocumentFailed     DocumentStatus = "FAILED"
)

// Document is an uploaded source file (bank statement, receipt export, ...)
// attached to an engagement. Only the worker mutates its status.
type Document struct {
	DocumentID   string         `json:"documentID"` // Primary Key (UUID)
	EngagementID string         `json:"engagementID"`
	Filename     string         `json:"filename"`
	StoragePath  string         `json:"storagePath"`
	MimeType     string         `json:"mimeType"`
	Status       DocumentStatus `json:"status"`
	UploadedAt   time.Time      `json:"uploadedAt"`
}

// RawTransaction is one row produced by the extractor before classification.
type RawTransaction struct {
	Date        time.Time `json:"date"`
	VendorRaw   string    `json:"vendorRaw"`
	AmountCents int64     `json:"amountCents"`
	Description string    `json:"description"`
}

// Extraction is the write-once audit record of what was read from a document.
type Extraction struct {
	ExtractionID string           `json:"extractionID"` // Primary Key (UUID)
	DocumentID   string           `json:"documentID"`
	Rows         []RawTransaction `json:"rows"`
	CreatedAt    time.Time        `json:"createdAt"`
}
