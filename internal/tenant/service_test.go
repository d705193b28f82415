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
	"testing"

	"github.com/cloudsentinel/cloudsentinel/internal/audit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, t *Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tenant), args.Error(1)
}

func (m *mockRepo) GetByName(ctx context.Context, name string) (*Tenant, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tenant), args.Error(1)
}

func (m *mockRepo) ListForUser(ctx context.Context, userID string) ([]*Tenant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Tenant), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) Log(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

// TestPurpose: Validates that tenant creation generates a UUIDv7 ID and grants
// the creator an owner membership in the same operation.
// Scope: Unit Test
// Security: A tenant must never exist without an owner
// Expected: Tenant is created with a valid UUIDv7 and an owner membership for the creator.
// Test Case ID: TEN-01
func TestTenant_Service_CreateTenant_OwnerBootstrap(t *testing.T) {
	repo := new(mockRepo)
	memberships := new(mockMembershipRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, memberships, NewGuard(memberships), auditLogger)

	name := "acme"
	creatorID := "user-123"
	ctx := context.Background()

	repo.On("GetByName", ctx, name).Return(nil, ErrTenantNotFound)

	repo.On("Create", ctx, mock.MatchedBy(func(tn *Tenant) bool {
		uid, err := uuid.Parse(tn.ID)
		if err != nil {
			return false
		}
		return uid.Version() == 7 && tn.Name == name
	})).Return(nil)

	memberships.On("Create", ctx, mock.MatchedBy(func(m *Membership) bool {
		return m.UserID == creatorID && m.Role == RoleOwner
	})).Return(nil)

	auditLogger.On("Log", ctx, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeTenantCreated && e.ActorID == creatorID
	})).Return()

	created, err := service.CreateTenant(ctx, name, creatorID)

	assert.NoError(t, err)
	assert.Equal(t, name, created.Name)
	repo.AssertExpectations(t)
	memberships.AssertExpectations(t)
	auditLogger.AssertExpectations(t)
}

// TestPurpose: Validates that a duplicate tenant name is rejected with a conflict.
// Scope: Unit Test
// Security: N/A
// Expected: ErrTenantNameTaken when a tenant with the same name exists.
// Test Case ID: TEN-02
func TestTenant_Service_CreateTenant_DuplicateName(t *testing.T) {
	repo := new(mockRepo)
	memberships := new(mockMembershipRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, memberships, NewGuard(memberships), auditLogger)
	ctx := context.Background()

	repo.On("GetByName", ctx, "acme").Return(&Tenant{ID: "t-1", Name: "acme"}, nil)

	_, err := service.CreateTenant(ctx, "acme", "user-123")
	assert.ErrorIs(t, err, ErrTenantNameTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestPurpose: Validates that listing tenants returns only the caller's memberships.
// Scope: Unit Test
// Security: Tenant isolation in listings
// Expected: The repository is queried scoped to the calling user.
// Test Case ID: TEN-03
func TestTenant_Service_ListForUser(t *testing.T) {
	repo := new(mockRepo)
	memberships := new(mockMembershipRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, memberships, NewGuard(memberships), auditLogger)
	ctx := context.Background()

	repo.On("ListForUser", ctx, "user-123").Return([]*Tenant{
		{ID: "t-1", Name: "acme"},
		{ID: "t-2", Name: "globex"},
	}, nil)

	tenants, err := service.ListForUser(ctx, "user-123")
	assert.NoError(t, err)
	assert.Len(t, tenants, 2)
}

// TestPurpose: Validates that adding a member with an unknown role is rejected
// before any authorization or storage work happens.
// Scope: Unit Test
// Security: Role enum integrity
// Expected: ErrInvalidRole; no repository calls.
// Test Case ID: TEN-04
func TestTenant_Service_AddMember_InvalidRole(t *testing.T) {
	repo := new(mockRepo)
	memberships := new(mockMembershipRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, memberships, NewGuard(memberships), auditLogger)
	ctx := context.Background()

	_, err := service.AddMember(ctx, "t-1", "user-2", "superuser", "user-1")
	assert.ErrorIs(t, err, ErrInvalidRole)
	memberships.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	memberships.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestPurpose: Validates that only owners can delete a tenant.
// Scope: Unit Test
// Security: Destructive operations restricted to owners
// Expected: A plain member gets ErrNotOwner and nothing is deleted.
// Test Case ID: TEN-05
func TestTenant_Service_DeleteTenant_MemberForbidden(t *testing.T) {
	repo := new(mockRepo)
	memberships := new(mockMembershipRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, memberships, NewGuard(memberships), auditLogger)
	ctx := context.Background()

	memberships.On("Get", ctx, "member-1", "t-1").Return(&Membership{
		UserID: "member-1", TenantID: "t-1", Role: RoleMember,
	}, nil)

	err := service.DeleteTenant(ctx, "t-1", "member-1")
	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestPurpose: Validates that an owner can delete their tenant and the action is audited.
// Scope: Unit Test
// Security: Audit trail for destructive operations
// Expected: Delete succeeds and a tenant_deleted audit event is emitted.
// Test Case ID: TEN-06
func TestTenant_Service_DeleteTenant_Owner(t *testing.T) {
	repo := new(mockRepo)
	memberships := new(mockMembershipRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, memberships, NewGuard(memberships), auditLogger)
	ctx := context.Background()

	memberships.On("Get", ctx, "owner-1", "t-1").Return(&Membership{
		UserID: "owner-1", TenantID: "t-1", Role: RoleOwner,
	}, nil)
	repo.On("Delete", ctx, "t-1").Return(nil)
	auditLogger.On("Log", ctx, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeTenantDeleted && e.TenantID == "t-1"
	})).Return()

	err := service.DeleteTenant(ctx, "t-1", "owner-1")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
	auditLogger.AssertExpectations(t)
}
