package models

// User maps to the users table.
type User struct {
	UserID       string
	TenantID     string
	Email        string
	Name         string
	Role         string
	PasswordHash string
	AuditFields
}

// Client maps to the clients table.
type Client struct {
	ClientID      string
	TenantID      string
	Name          string
	EntityType    string
	Province      string
	GSTRegistered bool
	AuditFields
}

// Engagement maps to the engagements table.
type Engagement struct {
	EngagementID string
	ClientID     string
	Year         int
	AuditFields
}
