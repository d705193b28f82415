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

package http

import (
	"encoding/json"
	"net/http"

	"github.com/cloudsentinel/cloudsentinel/internal/finding"
	"github.com/go-chi/chi/v5"
)

// ListFindings lists a tenant's findings newest first
// @Summary List Findings
// @Description List findings in a tenant, optionally filtered by status
// @Tags Findings
// @Produce json
// @Security BearerAuth
// @Param tenant_id query string true "Tenant ID"
// @Param status query string false "Status filter (open, resolved, ignored)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /findings [get]
func (h *Handler) ListFindings(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenant_id")
	if tenantID == "" {
		respondError(w, http.StatusBadRequest, "tenant_id query parameter is required")
		return
	}

	status := finding.Status(r.URL.Query().Get("status"))

	findings, err := h.findingService.ListByTenant(r.Context(), GetUserID(r.Context()), tenantID, status)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"findings": findingResponses(findings)})
}

// RunChecks evaluates all security rules against a tenant's inventory
// @Summary Run Checks
// @Description Re-evaluate all rules against the tenant's assets and replace its open findings
// @Tags Findings
// @Produce json
// @Security BearerAuth
// @Param tenant_id query string true "Tenant ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /findings/run [post]
func (h *Handler) RunChecks(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenant_id")
	if tenantID == "" {
		respondError(w, http.StatusBadRequest, "tenant_id query parameter is required")
		return
	}

	findings, err := h.engine.RunChecks(r.Context(), GetUserID(r.Context()), tenantID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"findings": findingResponses(findings)})
}

// UpdateFindingStatusRequest represents a triage decision
type UpdateFindingStatusRequest struct {
	Status string `json:"status" binding:"required" example:"resolved"`
}

// UpdateFindingStatus transitions a finding's triage status
// @Summary Update Finding Status
// @Description Set a finding's status to open, resolved, or ignored
// @Tags Findings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param findingID path string true "Finding ID"
// @Param request body UpdateFindingStatusRequest true "New Status"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /findings/{findingID} [patch]
func (h *Handler) UpdateFindingStatus(w http.ResponseWriter, r *http.Request) {
	findingID := chi.URLParam(r, "findingID")

	var req UpdateFindingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := h.findingService.UpdateStatus(r.Context(), GetUserID(r.Context()), findingID, finding.Status(req.Status))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, findingResponse(f))
}

func findingResponse(f *finding.Finding) map[string]any {
	return map[string]any{
		"finding_id":  f.ID,
		"tenant_id":   f.TenantID,
		"asset_id":    f.AssetID,
		"severity":    f.Severity,
		"title":       f.Title,
		"description": f.Description,
		"status":      f.Status,
		"created_at":  f.CreatedAt,
	}
}

func findingResponses(findings []*finding.Finding) []map[string]any {
	items := make([]map[string]any, 0, len(findings))
	for _, f := range findings {
		items = append(items, findingResponse(f))
	}
	return items
}
