package tenant

import (
	"time"
)

// Tenant represents an isolation boundary grouping assets, findings and
// members. Nothing crosses it without a membership.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Membership roles
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// ValidRole reports whether role is one of the defined membership roles.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleMember
}

// Membership links a user to a tenant with a role. It is the sole
// authorization primitive in the system: a (user, tenant) pair is unique,
// and no tenant-scoped resource may be touched without one.
type Membership struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
