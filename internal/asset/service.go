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
	"fmt"
	"time"

	"github.com/cloudsentinel/cloudsentinel/internal/audit"
	"github.com/cloudsentinel/cloudsentinel/internal/id"
)

// MembershipChecker is the authorization boundary consulted before every
// tenant-scoped operation. Satisfied by tenant.Guard.
type MembershipChecker interface {
	CheckMembership(ctx context.Context, userID, tenantID string) error
}

// Service provides tenant-scoped asset management
type Service struct {
	repo        Repository
	guard       MembershipChecker
	auditLogger audit.Logger
}

// NewService creates a new asset service
func NewService(repo Repository, guard MembershipChecker, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		guard:       guard,
		auditLogger: auditLogger,
	}
}

// Create attaches a new asset to tenantID on behalf of actorID.
func (s *Service) Create(ctx context.Context, actorID, tenantID, assetType, name, region string, cfg Config) (*Asset, error) {
	if assetType == "" || name == "" {
		return nil, fmt.Errorf("asset type and name are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.guard.CheckMembership(ctx, actorID, tenantID); err != nil {
		return nil, err
	}

	a := &Asset{
		ID:        id.NewUUIDv7(),
		TenantID:  tenantID,
		Type:      assetType,
		Name:      name,
		Region:    region,
		Config:    cfg,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeAssetCreated,
		TenantID: tenantID,
		ActorID:  actorID,
		Resource: "asset",
		Metadata: map[string]any{"asset_id": a.ID, "asset_type": a.Type, "name": a.Name},
	})

	return a, nil
}

// ListByTenant lists the assets of tenantID, guarded by membership.
func (s *Service) ListByTenant(ctx context.Context, actorID, tenantID string) ([]*Asset, error) {
	if err := s.guard.CheckMembership(ctx, actorID, tenantID); err != nil {
		return nil, err
	}
	return s.repo.ListByTenant(ctx, tenantID)
}

// Delete removes an asset. The tenant is resolved from the asset itself,
// so a guessed asset ID in a foreign tenant fails the membership check,
// not the lookup.
func (s *Service) Delete(ctx context.Context, actorID, assetID string) error {
	a, err := s.repo.GetByID(ctx, assetID)
	if err != nil {
		return err
	}

	if err := s.guard.CheckMembership(ctx, actorID, a.TenantID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, assetID); err != nil {
		return err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeAssetDeleted,
		TenantID: a.TenantID,
		ActorID:  actorID,
		Resource: "asset",
		Metadata: map[string]any{"asset_id": a.ID, "name": a.Name},
	})

	return nil
}
