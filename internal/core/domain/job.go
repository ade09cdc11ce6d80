package domain

import "time"

// JobType identifies what a queued job does.
type JobType string

const (
	JobProcessDocument JobType = "PROCESS_DOCUMENT"
)

// JobStatus tracks a job through its lifecycle.
// PENDING -> RUNNING -> COMPLETED | FAILED. FAILED is terminal; retrying
// requires an external re-enqueue.
type JobStatus string

const (
	JobPending   JobStatus = "PENDING"
	JobRunning   JobStatus = "RUNNING"
	JobCompleted JobStatus = "COMPLETED"
	JobFailed    JobStatus = "FAILED"
)

// JobPayload is the opaque payload of a queue entry. Only document
// processing jobs exist today.
type JobPayload struct {
	DocumentID string `json:"documentId"`
}

// Job is one durable entry in the work queue. Retained indefinitely for
// diagnostics.
type Job struct {
	JobID       string     `json:"jobID"` // Primary Key (UUID)
	Type        JobType    `json:"type"`
	Payload     JobPayload `json:"payload"`
	Status      JobStatus  `json:"status"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
