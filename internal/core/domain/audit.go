package domain

import "time"

// AuditEntry is one append-only record of a mutating review action,
// capturing the state before and after for compliance traceability.
type AuditEntry struct {
	AuditID    string         `json:"auditID"` // Primary Key (UUID)
	TenantID   string         `json:"tenantID"`
	UserID     string         `json:"userID"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityID"`
	Action     string         `json:"action"`
	Before     map[string]any `json:"before"`
	After      map[string]any `json:"after"`
	CreatedAt  time.Time      `json:"createdAt"`
}
