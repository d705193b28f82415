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

package postgres

import (
	"context"
	"fmt"

	"github.com/cloudsentinel/cloudsentinel/internal/tenant"
	"github.com/jackc/pgx/v5"
)

// MembershipRepository implements tenant.MembershipRepository
type MembershipRepository struct {
	db *DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create links a user to a tenant. The uq_membership constraint makes
// duplicate pairs fail atomically under concurrency.
func (r *MembershipRepository) Create(ctx context.Context, m *tenant.Membership) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO memberships (id, tenant_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.TenantID, m.UserID, m.Role, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return tenant.ErrMembershipExists
		}
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	return nil
}

// Get retrieves the membership of a user in a tenant
func (r *MembershipRepository) Get(ctx context.Context, userID, tenantID string) (*tenant.Membership, error) {
	var m tenant.Membership

	err := r.db.pool.QueryRow(ctx, `
		SELECT id, tenant_id, user_id, role, created_at
		FROM memberships
		WHERE user_id = $1 AND tenant_id = $2
	`, userID, tenantID).Scan(&m.ID, &m.TenantID, &m.UserID, &m.Role, &m.CreatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, tenant.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &m, nil
}
