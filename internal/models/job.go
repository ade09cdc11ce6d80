package models

import "time"

// Job maps to the job_queue table. PayloadJSON is the opaque jsonb payload.
type Job struct {
	JobID       string
	Type        string
	PayloadJSON []byte
	Status      string
	Error       *string
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// AuditEntry maps to the audit_log table. Before/After are jsonb snapshots.
type AuditEntry struct {
	AuditID    string
	TenantID   string
	UserID     string
	EntityType string
	EntityID   string
	Action     string
	BeforeJSON []byte
	AfterJSON  []byte
	CreatedAt  time.Time
}
