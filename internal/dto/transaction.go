package dto

// ListTransactionsParams are the supported transaction list filters. All
// confidence/provenance filters apply to the latest classification.
type ListTransactionsParams struct {
	EngagementID       string `form:"engagementId" binding:"required"`
	State              string `form:"state"`
	UncategorizedOnly  bool   `form:"uncategorizedOnly"`
	LowConfidence      bool   `form:"lowConfidence"`
	ChangedVsPriorYear bool   `form:"changedVsPriorYear"`
}

// BulkTransitionRequest applies one review action to a batch of transactions.
// Category is required for the classify action only.
type BulkTransitionRequest struct {
	IDs      []string `json:"ids" binding:"required,min=1"`
	Action   string   `json:"action" binding:"required,oneof=prepare review classify"`
	Category string   `json:"category"`
}

// BulkTransitionResponse lists the transaction IDs actually mutated; missing
// IDs are skipped, not errors.
type BulkTransitionResponse struct {
	Updated []string `json:"updated"`
}

// SplitPart is one requested slice of a split.
type SplitPart struct {
	AmountCents int64  `json:"amountCents" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// SplitRequest decomposes one transaction into at least two children whose
// amounts must sum exactly to the parent's amount.
type SplitRequest struct {
	TransactionID string      `json:"transactionId" binding:"required"`
	Splits        []SplitPart `json:"splits" binding:"required,min=2,dive"`
}

// SplitResponse returns the parent and the newly created children.
type SplitResponse struct {
	ParentID string   `json:"parentId"`
	ChildIDs []string `json:"childIds"`
}
