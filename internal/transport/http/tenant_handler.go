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
	"strings"

	"github.com/go-chi/chi/v5"
)

// CreateTenantRequest represents tenant creation data
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required" example:"acme"`
}

// CreateTenant creates a tenant with the caller as its owner
// @Summary Create Tenant
// @Description Create a new tenant; the creator becomes the owner
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTenantRequest true "Tenant Data"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tenants [post]
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "tenant name is required")
		return
	}

	t, err := h.tenantService.CreateTenant(r.Context(), req.Name, GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"tenant_id":  t.ID,
		"name":       t.Name,
		"created_at": t.CreatedAt,
	})
}

// ListTenants lists tenants the caller belongs to
// @Summary List My Tenants
// @Description List all tenants the current user is a member of
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router /tenants [get]
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenantService.ListForUser(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(tenants))
	for _, t := range tenants {
		items = append(items, map[string]any{
			"tenant_id":  t.ID,
			"name":       t.Name,
			"created_at": t.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{"tenants": items})
}

// DeleteTenant removes a tenant and everything it owns
// @Summary Delete Tenant
// @Description Delete a tenant; only the owner may do this
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tenants/{tenantID} [delete]
func (h *Handler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	if err := h.tenantService.DeleteTenant(r.Context(), tenantID, GetUserID(r.Context())); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "tenant deleted",
	})
}
