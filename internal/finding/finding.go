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
	"errors"
	"time"
)

// Domain errors
var (
	ErrFindingNotFound = errors.New("finding not found")
	ErrInvalidStatus   = errors.New("invalid finding status")
	ErrInvalidSeverity = errors.New("invalid finding severity")
)

// Severity classifies how serious a finding is
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether s is a defined severity
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Status is the triage lifecycle state of a finding
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
	StatusIgnored  Status = "ignored"
)

// Valid reports whether s is a defined status
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusResolved, StatusIgnored:
		return true
	}
	return false
}

// Finding is a policy violation detected against an asset. Findings are
// produced exclusively by the rule engine; users only transition Status.
type Finding struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	AssetID     string    `json:"asset_id"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository defines the interface for finding persistence
type Repository interface {
	// ReplaceOpen deletes all open findings of tenantID and inserts the
	// given findings, in a single transaction. Resolved and ignored rows
	// are untouched. Deleting zero rows is success, not an error.
	ReplaceOpen(ctx context.Context, tenantID string, findings []*Finding) error

	// ListByTenant returns findings of tenantID newest first, optionally
	// filtered by status (empty status means all).
	ListByTenant(ctx context.Context, tenantID string, status Status) ([]*Finding, error)

	// GetByID retrieves a finding by ID
	GetByID(ctx context.Context, id string) (*Finding, error)

	// UpdateStatus transitions a finding's status
	UpdateStatus(ctx context.Context, id string, status Status) error
}
