package domain

// ClientEntityType identifies the legal structure of a client business.
type ClientEntityType string

const (
	EntityCorp        ClientEntityType = "CORP"
	EntitySoleProp    ClientEntityType = "SOLE_PROP"
	EntityPartnership ClientEntityType = "PARTNERSHIP"
)

// Client is a business the firm prepares taxes for.
type Client struct {
	ClientID      string           `json:"clientID"` // Primary Key (UUID)
	TenantID      string           `json:"tenantID"`
	Name          string           `json:"name"`
	EntityType    ClientEntityType `json:"entityType"`
	Province      string           `json:"province"`
	GSTRegistered bool             `json:"gstRegistered"`
	AuditFields
}

// Engagement is a client's scoped body of work for one tax year; documents
// and transactions attach to it.
type Engagement struct {
	EngagementID string `json:"engagementID"` // Primary Key (UUID)
	ClientID     string `json:"clientID"`
	Year         int    `json:"year"`
	AuditFields
}

// EngagementSummary augments an engagement with record counts for list views.
type EngagementSummary struct {
	Engagement
	TransactionCount int `json:"transactionCount"`
	DocumentCount    int `json:"documentCount"`
}
