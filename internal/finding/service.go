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

package finding

import (
	"context"

	"github.com/cloudsentinel/cloudsentinel/internal/audit"
)

// Service provides finding listing and triage
type Service struct {
	repo        Repository
	guard       MembershipChecker
	auditLogger audit.Logger
}

// NewService creates a new finding service
func NewService(repo Repository, guard MembershipChecker, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		guard:       guard,
		auditLogger: auditLogger,
	}
}

// ListByTenant lists findings of tenantID newest first, optionally
// filtered by status.
func (s *Service) ListByTenant(ctx context.Context, actorID, tenantID string, status Status) ([]*Finding, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.guard.CheckMembership(ctx, actorID, tenantID); err != nil {
		return nil, err
	}
	return s.repo.ListByTenant(ctx, tenantID, status)
}

// UpdateStatus transitions a finding between open, resolved and ignored.
// The tenant is resolved from the finding itself before the guard check,
// so status values are validated first and foreign findings fail closed.
func (s *Service) UpdateStatus(ctx context.Context, actorID, findingID string, status Status) (*Finding, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	f, err := s.repo.GetByID(ctx, findingID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.CheckMembership(ctx, actorID, f.TenantID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, findingID, status); err != nil {
		return nil, err
	}
	f.Status = status

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeFindingTriaged,
		TenantID: f.TenantID,
		ActorID:  actorID,
		Resource: "finding",
		Metadata: map[string]any{"finding_id": f.ID, audit.AttrStatus: string(status)},
	})

	return f, nil
}
