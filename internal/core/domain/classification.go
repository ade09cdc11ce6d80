package domain

import "time"

// ClassificationSource is the provenance tag of a classification decision.
type ClassificationSource string

const (
	SourcePriorYear ClassificationSource = "PRIOR_YEAR"
	SourceRule      ClassificationSource = "RULE"
	SourceAI        ClassificationSource = "AI"
	SourceManual    ClassificationSource = "MANUAL"
)

// CategoryUncategorized is the sentinel category for unclassified transactions.
const CategoryUncategorized = "Uncategorized"

// Categories is the fixed chart of tax categories, including the sentinel.
var Categories = []string{
	"Advertising",
	"Meals & Entertainment",
	"Office Expenses",
	"Professional Fees",
	"Travel",
	"Vehicle",
	"Software / Subscriptions",
	"Bank Charges",
	"Owner Draw / Personal",
	CategoryUncategorized,
}

// IsValidCategory reports whether category is part of the chart.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Classification is one append-only classification decision for a transaction.
// Transactions accumulate classifications over time; the newest one is
// authoritative.
type Classification struct {
	ClassificationID string               `json:"classificationID"` // Primary Key (UUID)
	TransactionID    string               `json:"transactionID"`
	Category         string               `json:"category"`
	Source           ClassificationSource `json:"source"`
	Confidence       int                  `json:"confidence"` // 0..100
	Explanation      string               `json:"explanation"`
	CreatedAt        time.Time            `json:"createdAt"`
}

// PriorYearEntry maps a vendor keyword to the category used last year.
type PriorYearEntry struct {
	Keyword  string
	Category string
}

// DefaultPriorYearMap is the firm-wide prior-year keyword table. Entries are
// ordered; the first keyword contained in the lowercased vendor text wins.
var DefaultPriorYearMap = []PriorYearEntry{
	{"amazon", "Office Expenses"},
	{"staples", "Office Expenses"},
	{"uber", "Travel"},
	{"air canada", "Travel"},
	{"westjet", "Travel"},
	{"tim hortons", "Meals & Entertainment"},
	{"starbucks", "Meals & Entertainment"},
	{"mcdonald", "Meals & Entertainment"},
	{"shell", "Vehicle"},
	{"petro-canada", "Vehicle"},
	{"esso", "Vehicle"},
	{"google", "Software / Subscriptions"},
	{"microsoft", "Software / Subscriptions"},
	{"adobe", "Software / Subscriptions"},
	{"slack", "Software / Subscriptions"},
	{"facebook", "Advertising"},
	{"google ads", "Advertising"},
	{"td bank", "Bank Charges"},
	{"rbc", "Bank Charges"},
	{"scotiabank", "Bank Charges"},
	{"deloitte", "Professional Fees"},
	{"kpmg", "Professional Fees"},
}

// VendorRule is a tenant-scoped substring rule mapping vendors to a category.
type VendorRule struct {
	RuleID          string `json:"ruleID"` // Primary Key (UUID)
	TenantID        string `json:"tenantID"`
	VendorContains  string `json:"vendorContains"`
	Category        string `json:"category"`
	AppliesGlobally bool   `json:"appliesGlobally"`
	AuditFields
}

// ClassificationResult is the outcome of one cascade run.
type ClassificationResult struct {
	Category    string
	Source      ClassificationSource
	Confidence  int
	Explanation string
}
