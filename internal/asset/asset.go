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
	"errors"
	"fmt"
	"time"
)

// Domain errors
var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrInvalidConfig = errors.New("asset configuration contains non-primitive values")
)

// Config is the schemaless configuration attached to an asset. Values are
// restricted to JSON primitives; the store serializes it as text.
type Config map[string]any

// Validate rejects nested structures so stored configs stay flat.
func (c Config) Validate() error {
	for k, v := range c {
		switch v.(type) {
		case nil, string, bool, float64, int, int64:
		default:
			return fmt.Errorf("%w: key %q", ErrInvalidConfig, k)
		}
	}
	return nil
}

// Asset represents an inventoried cloud resource owned by exactly one
// tenant.
type Asset struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Region    string    `json:"region,omitempty"`
	Config    Config    `json:"config,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines the interface for asset persistence
type Repository interface {
	Create(ctx context.Context, asset *Asset) error
	GetByID(ctx context.Context, id string) (*Asset, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Asset, error)
	Delete(ctx context.Context, id string) error
}
