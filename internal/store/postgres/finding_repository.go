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
	"database/sql"
	"fmt"

	"github.com/cloudsentinel/cloudsentinel/internal/finding"
	"github.com/jackc/pgx/v5"
)

// FindingRepository implements finding.Repository
type FindingRepository struct {
	db *DB
}

// NewFindingRepository creates a new finding repository
func NewFindingRepository(db *DB) *FindingRepository {
	return &FindingRepository{db: db}
}

// ReplaceOpen deletes the open findings of a tenant and inserts the given
// ones in a single transaction, so concurrent readers never observe a
// half-replaced open set. Resolved and ignored rows are untouched;
// deleting zero rows is success.
func (r *FindingRepository) ReplaceOpen(ctx context.Context, tenantID string, findings []*finding.Finding) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM findings
		WHERE tenant_id = $1 AND status = $2
	`, tenantID, finding.StatusOpen); err != nil {
		return fmt.Errorf("failed to clear open findings: %w", err)
	}

	for _, f := range findings {
		var description sql.NullString
		if f.Description != "" {
			description = sql.NullString{String: f.Description, Valid: true}
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO findings (id, tenant_id, asset_id, severity, title, description, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, f.ID, f.TenantID, f.AssetID, f.Severity, f.Title, description, f.Status, f.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit finding replace: %w", err)
	}

	return nil
}

// ListByTenant lists findings of a tenant newest first, optionally
// filtered by status
func (r *FindingRepository) ListByTenant(ctx context.Context, tenantID string, status finding.Status) ([]*finding.Finding, error) {
	query := `
		SELECT id, tenant_id, asset_id, severity, title, description, status, created_at
		FROM findings
		WHERE tenant_id = $1
	`
	args := []any{tenantID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	// id is a UUIDv7, so it breaks ties between rows created in the
	// same transaction with equal timestamps
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list findings: %w", err)
	}
	defer rows.Close()

	var findings []*finding.Finding
	for rows.Next() {
		f, err := scanFinding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, f)
	}

	return findings, rows.Err()
}

// GetByID retrieves a finding by ID
func (r *FindingRepository) GetByID(ctx context.Context, id string) (*finding.Finding, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, tenant_id, asset_id, severity, title, description, status, created_at
		FROM findings
		WHERE id = $1
	`, id)

	f, err := scanFinding(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, finding.ErrFindingNotFound
		}
		return nil, fmt.Errorf("failed to get finding: %w", err)
	}

	return f, nil
}

// UpdateStatus transitions a finding's status
func (r *FindingRepository) UpdateStatus(ctx context.Context, id string, status finding.Status) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE findings SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update finding status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return finding.ErrFindingNotFound
	}

	return nil
}

func scanFinding(row pgx.Row) (*finding.Finding, error) {
	var f finding.Finding
	var description sql.NullString

	if err := row.Scan(&f.ID, &f.TenantID, &f.AssetID, &f.Severity, &f.Title, &description, &f.Status, &f.CreatedAt); err != nil {
		return nil, err
	}

	if description.Valid {
		f.Description = description.String
	}

	return &f, nil
}
