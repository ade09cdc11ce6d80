package domain

// UserRole defines the review roles within a firm.
type UserRole string

const (
	RoleJunior UserRole = "JUNIOR"
	RoleSenior UserRole = "SENIOR"
)

// User represents a staff member of the accounting firm.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	TenantID     string   `json:"tenantID"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	AuditFields
}

// Actor is the authenticated identity performing a review action.
// It is supplied by the session layer and treated as trusted input.
type Actor struct {
	UserID   string
	TenantID string
	Name     string
	Role     UserRole
}

// CanPrepare reports whether the actor may move transactions to PREPARED.
func (a Actor) CanPrepare() bool {
	return a.Role == RoleJunior || a.Role == RoleSenior
}

// CanReview reports whether the actor may move transactions to REVIEWED.
func (a Actor) CanReview() bool {
	return a.Role == RoleSenior
}
