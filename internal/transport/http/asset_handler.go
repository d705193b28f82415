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

	"github.com/cloudsentinel/cloudsentinel/internal/asset"
	"github.com/go-chi/chi/v5"
)

// CreateAssetRequest represents asset registration data
type CreateAssetRequest struct {
	TenantID string       `json:"tenant_id" binding:"required"`
	Type     string       `json:"type" binding:"required" example:"aws_s3_bucket"`
	Name     string       `json:"name" binding:"required" example:"billing-logs"`
	Region   string       `json:"region" example:"eu-west-1"`
	Config   asset.Config `json:"config"`
}

// CreateAsset registers a cloud asset in a tenant's inventory
// @Summary Create Asset
// @Description Register a new cloud asset in a tenant
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAssetRequest true "Asset Data"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /assets [post]
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req CreateAssetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.TenantID == "" {
		respondError(w, http.StatusBadRequest, "tenant_id is required")
		return
	}
	if req.Type == "" || req.Name == "" {
		respondError(w, http.StatusUnprocessableEntity, "asset type and name are required")
		return
	}

	a, err := h.assetService.Create(r.Context(), GetUserID(r.Context()), req.TenantID, req.Type, req.Name, req.Region, req.Config)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, assetResponse(a))
}

// ListAssets lists a tenant's asset inventory
// @Summary List Assets
// @Description List all assets in a tenant
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param tenant_id query string true "Tenant ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /assets [get]
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenant_id")
	if tenantID == "" {
		respondError(w, http.StatusBadRequest, "tenant_id query parameter is required")
		return
	}

	assets, err := h.assetService.ListByTenant(r.Context(), GetUserID(r.Context()), tenantID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(assets))
	for _, a := range assets {
		items = append(items, assetResponse(a))
	}

	respondJSON(w, http.StatusOK, map[string]any{"assets": items})
}

// DeleteAsset removes an asset and its findings
// @Summary Delete Asset
// @Description Delete an asset; findings attached to it are removed as well
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param assetID path string true "Asset ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /assets/{assetID} [delete]
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")

	if err := h.assetService.Delete(r.Context(), GetUserID(r.Context()), assetID); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "asset deleted",
	})
}

func assetResponse(a *asset.Asset) map[string]any {
	return map[string]any{
		"asset_id":   a.ID,
		"tenant_id":  a.TenantID,
		"type":       a.Type,
		"name":       a.Name,
		"region":     a.Region,
		"config":     a.Config,
		"created_at": a.CreatedAt,
	}
}
