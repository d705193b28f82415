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
	"encoding/json"
	"fmt"

	"github.com/cloudsentinel/cloudsentinel/internal/asset"
	"github.com/jackc/pgx/v5"
)

// AssetRepository implements asset.Repository
type AssetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create creates a new asset
func (r *AssetRepository) Create(ctx context.Context, a *asset.Asset) error {
	var configJSON sql.NullString
	if a.Config != nil {
		raw, err := json.Marshal(a.Config)
		if err != nil {
			return fmt.Errorf("failed to serialize asset config: %w", err)
		}
		configJSON = sql.NullString{String: string(raw), Valid: true}
	}

	var region sql.NullString
	if a.Region != "" {
		region = sql.NullString{String: a.Region, Valid: true}
	}

	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO assets (id, tenant_id, asset_type, name, region, config_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.TenantID, a.Type, a.Name, region, configJSON, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// GetByID retrieves an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id string) (*asset.Asset, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, tenant_id, asset_type, name, region, config_json, created_at
		FROM assets
		WHERE id = $1
	`, id)

	a, err := scanAsset(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, asset.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return a, nil
}

// ListByTenant lists the assets of a tenant
func (r *AssetRepository) ListByTenant(ctx context.Context, tenantID string) ([]*asset.Asset, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, tenant_id, asset_type, name, region, config_json, created_at
		FROM assets
		WHERE tenant_id = $1
		ORDER BY created_at
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*asset.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}

	return assets, rows.Err()
}

// Delete removes an asset. Its findings cascade.
func (r *AssetRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.pool.Exec(ctx, `
		DELETE FROM assets WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	if result.RowsAffected() == 0 {
		return asset.ErrAssetNotFound
	}

	return nil
}

func scanAsset(row pgx.Row) (*asset.Asset, error) {
	var a asset.Asset
	var region, configJSON sql.NullString

	if err := row.Scan(&a.ID, &a.TenantID, &a.Type, &a.Name, &region, &configJSON, &a.CreatedAt); err != nil {
		return nil, err
	}

	if region.Valid {
		a.Region = region.String
	}
	if configJSON.Valid {
		if err := json.Unmarshal([]byte(configJSON.String), &a.Config); err != nil {
			return nil, fmt.Errorf("corrupt asset config: %w", err)
		}
	}

	return &a, nil
}
