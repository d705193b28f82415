package tenant

import (
	"context"
	"errors"
)

var (
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrTenantNameTaken    = errors.New("tenant name already exists")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrMembershipExists   = errors.New("membership already exists")
	ErrInvalidRole        = errors.New("invalid membership role")
	ErrNotAMember         = errors.New("user is not a member of this tenant")
	ErrNotOwner           = errors.New("user is not an owner of this tenant")
)

// Repository defines the interface for tenant storage
type Repository interface {
	Create(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetByName(ctx context.Context, name string) (*Tenant, error)
	ListForUser(ctx context.Context, userID string) ([]*Tenant, error)
	Delete(ctx context.Context, id string) error
}

// MembershipRepository defines the interface for membership storage
type MembershipRepository interface {
	Create(ctx context.Context, membership *Membership) error
	Get(ctx context.Context, userID, tenantID string) (*Membership, error)
}
