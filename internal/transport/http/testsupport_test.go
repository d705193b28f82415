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
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cloudsentinel/cloudsentinel/internal/asset"
	"github.com/cloudsentinel/cloudsentinel/internal/audit"
	"github.com/cloudsentinel/cloudsentinel/internal/finding"
	"github.com/cloudsentinel/cloudsentinel/internal/identity"
	"github.com/cloudsentinel/cloudsentinel/internal/tenant"
	"github.com/cloudsentinel/cloudsentinel/internal/token"
)

// memStore backs all repositories for handler tests. Deletes cascade the
// way the postgres schema does: tenant removal takes memberships, assets
// and findings with it; asset removal takes its findings.
type memStore struct {
	mu          sync.Mutex
	users       map[string]*identity.User
	tenants     map[string]*tenant.Tenant
	memberships []*tenant.Membership
	assets      map[string]*asset.Asset
	findings    []*finding.Finding
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[string]*identity.User),
		tenants: make(map[string]*tenant.Tenant),
		assets:  make(map[string]*asset.Asset),
	}
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(ctx context.Context, user *identity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return identity.ErrEmailTaken
		}
	}
	r.s.users[user.ID] = user
	return nil
}

func (r memUserRepo) GetByID(ctx context.Context, id string) (*identity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return u, nil
	}
	return nil, identity.ErrUserNotFound
}

func (r memUserRepo) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

type memTenantRepo struct{ s *memStore }

func (r memTenantRepo) Create(ctx context.Context, t *tenant.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.tenants {
		if existing.Name == t.Name {
			return tenant.ErrTenantNameTaken
		}
	}
	r.s.tenants[t.ID] = t
	return nil
}

func (r memTenantRepo) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tenants[id]; ok {
		return t, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (r memTenantRepo) GetByName(ctx context.Context, name string) (*tenant.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tenants {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (r memTenantRepo) ListForUser(ctx context.Context, userID string) ([]*tenant.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*tenant.Tenant
	for _, m := range r.s.memberships {
		if m.UserID == userID {
			if t, ok := r.s.tenants[m.TenantID]; ok {
				out = append(out, t)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r memTenantRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tenants[id]; !ok {
		return tenant.ErrTenantNotFound
	}
	delete(r.s.tenants, id)
	kept := r.s.memberships[:0]
	for _, m := range r.s.memberships {
		if m.TenantID != id {
			kept = append(kept, m)
		}
	}
	r.s.memberships = kept
	for aid, a := range r.s.assets {
		if a.TenantID == id {
			delete(r.s.assets, aid)
		}
	}
	keptFindings := r.s.findings[:0]
	for _, f := range r.s.findings {
		if f.TenantID != id {
			keptFindings = append(keptFindings, f)
		}
	}
	r.s.findings = keptFindings
	return nil
}

type memMembershipRepo struct{ s *memStore }

func (r memMembershipRepo) Create(ctx context.Context, m *tenant.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.memberships {
		if existing.UserID == m.UserID && existing.TenantID == m.TenantID {
			return tenant.ErrMembershipExists
		}
	}
	r.s.memberships = append(r.s.memberships, m)
	return nil
}

func (r memMembershipRepo) Get(ctx context.Context, userID, tenantID string) (*tenant.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.memberships {
		if m.UserID == userID && m.TenantID == tenantID {
			return m, nil
		}
	}
	return nil, tenant.ErrMembershipNotFound
}

type memAssetRepo struct{ s *memStore }

func (r memAssetRepo) Create(ctx context.Context, a *asset.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.assets[a.ID] = a
	return nil
}

func (r memAssetRepo) GetByID(ctx context.Context, id string) (*asset.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.assets[id]; ok {
		return a, nil
	}
	return nil, asset.ErrAssetNotFound
}

func (r memAssetRepo) ListByTenant(ctx context.Context, tenantID string) ([]*asset.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*asset.Asset
	for _, a := range r.s.assets {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r memAssetRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assets[id]; !ok {
		return asset.ErrAssetNotFound
	}
	delete(r.s.assets, id)
	kept := r.s.findings[:0]
	for _, f := range r.s.findings {
		if f.AssetID != id {
			kept = append(kept, f)
		}
	}
	r.s.findings = kept
	return nil
}

type memFindingRepo struct{ s *memStore }

func (r memFindingRepo) ReplaceOpen(ctx context.Context, tenantID string, findings []*finding.Finding) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.findings[:0]
	for _, f := range r.s.findings {
		if f.TenantID == tenantID && f.Status == finding.StatusOpen {
			continue
		}
		kept = append(kept, f)
	}
	r.s.findings = append(kept, findings...)
	return nil
}

func (r memFindingRepo) ListByTenant(ctx context.Context, tenantID string, status finding.Status) ([]*finding.Finding, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*finding.Finding
	for _, f := range r.s.findings {
		if f.TenantID != tenantID {
			continue
		}
		if status != "" && f.Status != status {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r memFindingRepo) GetByID(ctx context.Context, id string) (*finding.Finding, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.findings {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, finding.ErrFindingNotFound
}

func (r memFindingRepo) UpdateStatus(ctx context.Context, id string, status finding.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.findings {
		if f.ID == id {
			f.Status = status
			return nil
		}
	}
	return finding.ErrFindingNotFound
}

// newTestHandler wires a full handler over the in-memory store.
func newTestHandler(s *memStore) *Handler {
	auditLogger := audit.NewSlogLogger()
	hasher := identity.NewPasswordHasher(8*1024, 1, 1, 16, 32)
	guard := tenant.NewGuard(memMembershipRepo{s})

	identityService := identity.NewService(memUserRepo{s}, hasher, auditLogger)
	tokenService := token.NewService("test-secret", time.Hour, "cloudsentinel-test")
	tenantService := tenant.NewService(memTenantRepo{s}, memMembershipRepo{s}, guard, auditLogger)
	assetService := asset.NewService(memAssetRepo{s}, guard, auditLogger)
	findingService := finding.NewService(memFindingRepo{s}, guard, auditLogger)
	engine := finding.NewEngine(memFindingRepo{s}, memAssetRepo{s}, guard, finding.DefaultRules(), auditLogger, nil)

	return NewHandler(identityService, tokenService, tenantService, assetService, findingService, engine, auditLogger)
}
