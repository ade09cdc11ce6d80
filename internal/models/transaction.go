package models

import "time"

// Transaction maps to the transactions table.
type Transaction struct {
	TransactionID string
	EngagementID  string
	DocumentID    string
	ParentID      *string
	Date          time.Time
	VendorRaw     string
	VendorNorm    string
	AmountCents   int64
	Currency      string
	Description   string
	State         string
	AuditFields
}

// Classification maps to the classifications table.
type Classification struct {
	ClassificationID string
	TransactionID    string
	Category         string
	Source           string
	Confidence       int
	Explanation      string
	CreatedAt        time.Time
}

// VendorRule maps to the vendor_rules table.
type VendorRule struct {
	RuleID          string
	TenantID        string
	VendorContains  string
	Category        string
	AppliesGlobally bool
	AuditFields
}
