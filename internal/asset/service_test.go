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

package asset

import (
	"context"
	"testing"

	"github.com/cloudsentinel/cloudsentinel/internal/audit"
	"github.com/cloudsentinel/cloudsentinel/internal/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, a *Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Asset), args.Error(1)
}

func (m *mockRepo) ListByTenant(ctx context.Context, tenantID string) ([]*Asset, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Asset), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type staticGuard struct {
	err error
}

func (g *staticGuard) CheckMembership(ctx context.Context, userID, tenantID string) error {
	return g.err
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) Log(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

// TestPurpose: Validates asset creation for a tenant member.
// Scope: Unit Test
// Security: Membership gate on writes
// Expected: The asset is persisted with the caller's tenant and audited.
// Test Case ID: AST-01
func TestAsset_Service_Create(t *testing.T) {
	repo := new(mockRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, &staticGuard{}, auditLogger)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(a *Asset) bool {
		return a.TenantID == "t-1" && a.Type == "aws_s3_bucket" && a.Name == "logs" && a.ID != ""
	})).Return(nil)
	auditLogger.On("Log", ctx, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeAssetCreated && e.TenantID == "t-1"
	})).Return()

	a, err := service.Create(ctx, "user-1", "t-1", "aws_s3_bucket", "logs", "", Config{"versioning": true})
	require.NoError(t, err)
	assert.Equal(t, "t-1", a.TenantID)
	repo.AssertExpectations(t)
	auditLogger.AssertExpectations(t)
}

// TestPurpose: Validates that non-members cannot create assets.
// Scope: Unit Test
// Security: Tenant isolation on writes
// Expected: ErrNotAMember; nothing is persisted.
// Test Case ID: AST-02
func TestAsset_Service_Create_NonMemberDenied(t *testing.T) {
	repo := new(mockRepo)
	service := NewService(repo, &staticGuard{err: tenant.ErrNotAMember}, new(mockAudit))

	_, err := service.Create(context.Background(), "intruder", "t-1", "aws_s3_bucket", "logs", "", nil)
	assert.ErrorIs(t, err, tenant.ErrNotAMember)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestPurpose: Validates that nested configuration values are rejected.
// Scope: Unit Test
// Security: N/A
// Expected: ErrInvalidConfig before any authorization or storage work.
// Test Case ID: AST-03
func TestAsset_Service_Create_NestedConfigRejected(t *testing.T) {
	repo := new(mockRepo)
	service := NewService(repo, &staticGuard{}, new(mockAudit))

	_, err := service.Create(context.Background(), "user-1", "t-1", "aws_s3_bucket", "logs", "",
		Config{"tags": map[string]any{"env": "dev"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestPurpose: Validates that listing is membership-gated.
// Scope: Unit Test
// Security: Tenant isolation on reads
// Expected: Members get the tenant's assets; non-members get ErrNotAMember.
// Test Case ID: AST-04
func TestAsset_Service_ListByTenant(t *testing.T) {
	repo := new(mockRepo)
	service := NewService(repo, &staticGuard{}, new(mockAudit))
	ctx := context.Background()

	repo.On("ListByTenant", ctx, "t-1").Return([]*Asset{
		{ID: "a-1", TenantID: "t-1"},
	}, nil)

	assets, err := service.ListByTenant(ctx, "user-1", "t-1")
	require.NoError(t, err)
	assert.Len(t, assets, 1)

	denied := NewService(repo, &staticGuard{err: tenant.ErrNotAMember}, new(mockAudit))
	_, err = denied.ListByTenant(ctx, "intruder", "t-1")
	assert.ErrorIs(t, err, tenant.ErrNotAMember)
}

// TestPurpose: Validates that deletion resolves the tenant from the asset itself.
// Scope: Unit Test
// Security: A guessed asset ID in a foreign tenant must fail the membership
// check, not leak via the lookup.
// Expected: ErrNotAMember for a foreign asset; the delete never reaches the store.
// Test Case ID: AST-05
func TestAsset_Service_Delete_ForeignAssetDenied(t *testing.T) {
	repo := new(mockRepo)
	service := NewService(repo, &staticGuard{err: tenant.ErrNotAMember}, new(mockAudit))
	ctx := context.Background()

	repo.On("GetByID", ctx, "a-1").Return(&Asset{ID: "a-1", TenantID: "t-other"}, nil)

	err := service.Delete(ctx, "intruder", "a-1")
	assert.ErrorIs(t, err, tenant.ErrNotAMember)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestPurpose: Validates member deletion of an owned asset.
// Scope: Unit Test
// Security: Audit trail for destructive operations
// Expected: The asset is deleted and an asset_deleted event is emitted.
// Test Case ID: AST-06
func TestAsset_Service_Delete(t *testing.T) {
	repo := new(mockRepo)
	auditLogger := new(mockAudit)
	service := NewService(repo, &staticGuard{}, auditLogger)
	ctx := context.Background()

	repo.On("GetByID", ctx, "a-1").Return(&Asset{ID: "a-1", TenantID: "t-1", Name: "logs"}, nil)
	repo.On("Delete", ctx, "a-1").Return(nil)
	auditLogger.On("Log", ctx, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeAssetDeleted && e.TenantID == "t-1"
	})).Return()

	err := service.Delete(ctx, "user-1", "a-1")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
	auditLogger.AssertExpectations(t)
}

// TestPurpose: Validates that deleting a nonexistent asset reports not found.
// Scope: Unit Test
// Security: N/A
// Expected: ErrAssetNotFound.
// Test Case ID: AST-07
func TestAsset_Service_Delete_NotFound(t *testing.T) {
	repo := new(mockRepo)
	service := NewService(repo, &staticGuard{}, new(mockAudit))
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").Return(nil, ErrAssetNotFound)

	err := service.Delete(ctx, "user-1", "missing")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}
