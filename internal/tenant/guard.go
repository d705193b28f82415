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
)

// Guard is the single access boundary for tenant-scoped data. Every
// tenant-scoped store read or write, and every rule-engine invocation,
// must pass CheckMembership first. A caller holding a valid identity but
// no membership row must be indistinguishable from one guessing tenant
// IDs: both get ErrNotAMember, regardless of whether the tenant exists.
type Guard struct {
	memberships MembershipRepository
}

// NewGuard creates a new authorization guard
func NewGuard(memberships MembershipRepository) *Guard {
	return &Guard{memberships: memberships}
}

// CheckMembership returns nil iff userID has a membership row for
// tenantID. It has no side effects and never creates anything.
func (g *Guard) CheckMembership(ctx context.Context, userID, tenantID string) error {
	if userID == "" || tenantID == "" {
		return ErrNotAMember
	}

	_, err := g.memberships.Get(ctx, userID, tenantID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return ErrNotAMember
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}

	return nil
}

// CheckOwner returns nil iff userID has an owner membership for tenantID.
// Non-members get ErrNotAMember, plain members get ErrNotOwner.
func (g *Guard) CheckOwner(ctx context.Context, userID, tenantID string) error {
	if userID == "" || tenantID == "" {
		return ErrNotAMember
	}

	m, err := g.memberships.Get(ctx, userID, tenantID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return ErrNotAMember
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if m.Role != RoleOwner {
		return ErrNotOwner
	}

	return nil
}
