package domain

import (
	"regexp"
	"strings"
	"time"
)

// TransactionState is the review lifecycle state of a transaction.
// NEW -> SUGGESTED -> PREPARED -> REVIEWED; there is no transition back.
type TransactionState string

const (
	TxnNew       TransactionState = "NEW"
	TxnSuggested TransactionState = "SUGGESTED"
	TxnPrepared  TransactionState = "PREPARED"
	TxnReviewed  TransactionState = "REVIEWED"
)

// ReviewAction names a bulk review operation.
type ReviewAction string

const (
	ActionPrepare  ReviewAction = "prepare"
	ActionReview   ReviewAction = "review"
	ActionClassify ReviewAction = "classify"
)

// Transaction is a single extracted (or split-off) financial line item.
// ParentID is non-nil only for split children. Amounts are signed integer
// minor units; they are validated at split time and never re-validated after.
type Transaction struct {
	TransactionID string           `json:"transactionID"` // Primary Key (UUID)
	EngagementID  string           `json:"engagementID"`
	DocumentID    string           `json:"documentID"`
	ParentID      *string          `json:"parentID,omitempty"`
	Date          time.Time        `json:"date"`
	VendorRaw     string           `json:"vendorRaw"`
	VendorNorm    string           `json:"vendorNorm"`
	AmountCents   int64            `json:"amountCents"`
	Currency      string           `json:"currency"`
	Description   string           `json:"description"`
	State         TransactionState `json:"state"`
	AuditFields
}

// TransactionWithDetail carries a parent transaction together with its
// classification history (newest first) and any split children.
type TransactionWithDetail struct {
	Transaction
	Classifications []Classification        `json:"classifications"`
	Children        []TransactionWithDetail `json:"children,omitempty"`
}

// LatestClassification returns the most recently created classification, or
// nil if the transaction has never been classified.
func (t *TransactionWithDetail) LatestClassification() *Classification {
	if len(t.Classifications) == 0 {
		return nil
	}
	return &t.Classifications[0]
}

var vendorNoisePattern = regexp.MustCompile(`[#\d]+`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// NormalizeVendor strips numeric and hash suffixes from a raw vendor string
// and collapses whitespace, producing a stable display name
// ("Tim Hortons #1234" -> "Tim Hortons").
func NormalizeVendor(vendorRaw string) string {
	norm := vendorNoisePattern.ReplaceAllString(vendorRaw, "")
	norm = whitespacePattern.ReplaceAllString(norm, " ")
	return strings.TrimSpace(norm)
}
