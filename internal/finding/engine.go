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
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudsentinel/cloudsentinel/internal/asset"
	"github.com/cloudsentinel/cloudsentinel/internal/audit"
	"github.com/cloudsentinel/cloudsentinel/internal/id"
	"github.com/cloudsentinel/cloudsentinel/internal/observability/logger"
	"go.opentelemetry.io/otel/metric"
)

// AssetSource provides the current asset set of a tenant. Satisfied by
// asset.Repository.
type AssetSource interface {
	ListByTenant(ctx context.Context, tenantID string) ([]*asset.Asset, error)
}

// MembershipChecker is the authorization boundary consulted before every
// engine run. Satisfied by tenant.Guard.
type MembershipChecker interface {
	CheckMembership(ctx context.Context, userID, tenantID string) error
}

// EngineMetrics holds the engine's OTel instruments
type EngineMetrics struct {
	ChecksRun         metric.Int64Counter
	FindingsGenerated metric.Int64Counter
}

// Engine recomputes the open findings of a tenant from its current asset
// state. Each run is a full replace of the open set, never an incremental
// update, so findings cannot drift from asset state. Rows already triaged
// to resolved or ignored are out of the replace window, which means a
// still-failing condition produces a fresh open row next to its triaged
// predecessor. A content-based dedup key (tenant, asset, rule) would
// avoid that; it is deliberately not applied to keep rerun semantics
// stable for existing callers.
type Engine struct {
	findings    Repository
	assets      AssetSource
	guard       MembershipChecker
	rules       []Rule
	auditLogger audit.Logger
	metrics     *EngineMetrics
}

// NewEngine creates a rule engine over the given stores. metrics may be
// nil when instrumentation is disabled.
func NewEngine(findings Repository, assets AssetSource, guard MembershipChecker, rules []Rule, auditLogger audit.Logger, metrics *EngineMetrics) *Engine {
	return &Engine{
		findings:    findings,
		assets:      assets,
		guard:       guard,
		rules:       rules,
		auditLogger: auditLogger,
		metrics:     metrics,
	}
}

// RunChecks evaluates every rule against every asset of tenantID and
// replaces the tenant's open findings with the matches. It returns the
// full open set after the replace, newest first. Running twice over an
// unchanged asset set yields the same open set (ids aside).
func (e *Engine) RunChecks(ctx context.Context, actorID, tenantID string) ([]*Finding, error) {
	if err := e.guard.CheckMembership(ctx, actorID, tenantID); err != nil {
		return nil, err
	}

	assets, err := e.assets.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	now := time.Now()
	var generated []*Finding
	for _, a := range assets {
		for _, r := range e.rules {
			d := r.Evaluate(a)
			if d == nil {
				continue
			}
			generated = append(generated, &Finding{
				ID:          id.NewUUIDv7(),
				TenantID:    tenantID,
				AssetID:     a.ID,
				Severity:    d.Severity,
				Title:       d.Title,
				Description: d.Description,
				Status:      StatusOpen,
				CreatedAt:   now,
			})
		}
	}

	// Delete-then-insert runs inside one store transaction; a concurrent
	// reader never observes a partially cleared open set.
	if err := e.findings.ReplaceOpen(ctx, tenantID, generated); err != nil {
		return nil, fmt.Errorf("failed to replace open findings: %w", err)
	}

	if e.metrics != nil {
		e.metrics.ChecksRun.Add(ctx, 1)
		e.metrics.FindingsGenerated.Add(ctx, int64(len(generated)))
	}

	slog.InfoContext(ctx, "checks completed",
		logger.Component("engine"),
		logger.TenantID(tenantID),
		slog.Int("assets", len(assets)),
		slog.Int("generated", len(generated)),
	)

	e.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeChecksRun,
		TenantID: tenantID,
		ActorID:  actorID,
		Resource: "findings",
		Metadata: map[string]any{audit.AttrCount: len(generated)},
	})

	return e.findings.ListByTenant(ctx, tenantID, StatusOpen)
}
