// Copyright 2026 The CloudSentinel Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudsentinel/cloudsentinel/internal/audit"
	"github.com/cloudsentinel/cloudsentinel/internal/id"
)

// Service provides tenant management business logic
type Service struct {
	repo        Repository
	memberships MembershipRepository
	guard       *Guard
	auditLogger audit.Logger
}

// NewService creates a new tenant service
func NewService(repo Repository, memberships MembershipRepository, guard *Guard, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		memberships: memberships,
		guard:       guard,
		auditLogger: auditLogger,
	}
}

// CreateTenant creates a new tenant and makes creatorID its first member
// with the owner role.
func (s *Service) CreateTenant(ctx context.Context, name, creatorID string) (*Tenant, error) {
	if name == "" {
		return nil, fmt.Errorf("tenant name is required")
	}
	if creatorID == "" {
		return nil, fmt.Errorf("creator id is required")
	}

	if existing, err := s.repo.GetByName(ctx, name); err == nil && existing != nil {
		return nil, ErrTenantNameTaken
	}

	now := time.Now()
	t := &Tenant{
		ID:        id.NewUUIDv7(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, ErrTenantNameTaken) {
			return nil, ErrTenantNameTaken
		}
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	m := &Membership{
		ID:        id.NewUUIDv7(),
		TenantID:  t.ID,
		UserID:    creatorID,
		Role:      RoleOwner,
		CreatedAt: now,
	}
	if err := s.memberships.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create owner membership: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantCreated,
		TenantID: t.ID,
		ActorID:  creatorID,
		Resource: "tenant",
		Metadata: map[string]any{"name": t.Name},
	})

	return t, nil
}

// ListForUser lists the tenants userID is a member of.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*Tenant, error) {
	return s.repo.ListForUser(ctx, userID)
}

// GetTenant retrieves a tenant by ID, guarded by membership.
func (s *Service) GetTenant(ctx context.Context, tenantID, actorID string) (*Tenant, error) {
	if err := s.guard.CheckMembership(ctx, actorID, tenantID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID)
}

// AddMember links userID to tenantID with the given role. Only owners may
// add members.
func (s *Service) AddMember(ctx context.Context, tenantID, userID, role, actorID string) (*Membership, error) {
	if !ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if err := s.guard.CheckOwner(ctx, actorID, tenantID); err != nil {
		return nil, err
	}

	m := &Membership{
		ID:        id.NewUUIDv7(),
		TenantID:  tenantID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.memberships.Create(ctx, m); err != nil {
		if errors.Is(err, ErrMembershipExists) {
			return nil, ErrMembershipExists
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return m, nil
}

// DeleteTenant removes a tenant. The store cascades removal of its
// memberships, assets and findings. Only owners may delete.
func (s *Service) DeleteTenant(ctx context.Context, tenantID, actorID string) error {
	if err := s.guard.CheckOwner(ctx, actorID, tenantID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, tenantID); err != nil {
		return err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantDeleted,
		TenantID: tenantID,
		ActorID:  actorID,
		Resource: "tenant",
	})

	return nil
}
