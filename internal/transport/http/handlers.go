// @title CloudSentinel API
// @version 1.0.0
// @description Multi-tenant cloud asset inventory and security finding tracker

// @contact.name API Support
// @contact.email support@cloudsentinel.dev

// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cloudsentinel/cloudsentinel/internal/asset"
	"github.com/cloudsentinel/cloudsentinel/internal/audit"
	"github.com/cloudsentinel/cloudsentinel/internal/finding"
	"github.com/cloudsentinel/cloudsentinel/internal/identity"
	"github.com/cloudsentinel/cloudsentinel/internal/observability/logger"
	"github.com/cloudsentinel/cloudsentinel/internal/tenant"
	"github.com/cloudsentinel/cloudsentinel/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	identityService *identity.Service
	tokenService    *token.Service
	tenantService   *tenant.Service
	assetService    *asset.Service
	findingService  *finding.Service
	engine          *finding.Engine
	auditLogger     audit.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	identityService *identity.Service,
	tokenService *token.Service,
	tenantService *tenant.Service,
	assetService *asset.Service,
	findingService *finding.Service,
	engine *finding.Engine,
	auditLogger audit.Logger,
) *Handler {
	return &Handler{
		identityService: identityService,
		tokenService:    tokenService,
		tenantService:   tenantService,
		assetService:    assetService,
		findingService:  findingService,
		engine:          engine,
		auditLogger:     auditLogger,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", h.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Get("/auth/me", h.GetCurrentUser)

			r.Route("/tenants", func(r chi.Router) {
				r.Post("/", h.CreateTenant)
				r.Get("/", h.ListTenants)
				r.Delete("/{tenantID}", h.DeleteTenant)
			})

			r.Route("/assets", func(r chi.Router) {
				r.Post("/", h.CreateAsset)
				r.Get("/", h.ListAssets)
				r.Delete("/{assetID}", h.DeleteAsset)
			})

			r.Route("/findings", func(r chi.Router) {
				r.Get("/", h.ListFindings)
				r.Post("/run", h.RunChecks)
				r.Patch("/{findingID}", h.UpdateFindingStatus)
			})
		})
	})

	return r
}

// HealthCheck returns the health status
// @Summary Health Check
// @Description Checks if the service is up and running
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "cloudsentinel",
	})
}

// RegisterRequest represents registration data
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration Data"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.identityService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to register user",
			logger.Error(err),
			logger.Email(req.Email),
		)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// Login handles user login
// @Summary Login
// @Description Authenticate user and issue a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.identityService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tok, err := h.tokenService.Issue(user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to issue token", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.auditLogger.Log(r.Context(), audit.Event{
		Type:      audit.TypeLoginSuccess,
		ActorID:   user.ID,
		Resource:  "token",
		IPAddress: getIPAddress(r),
		UserAgent: r.UserAgent(),
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"token":   tok,
		"user_id": user.ID,
		"email":   user.Email,
	})
}

// GetCurrentUser returns the current authenticated user identity
// @Summary Get Current User
// @Description Retrieve details of the currently logged-in user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	user, err := h.identityService.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondDomainError maps domain errors to HTTP statuses. Membership
// failures map to 403 only after the resource itself was found, so
// cross-tenant probing cannot distinguish "absent" from "not yours"
// for resources addressed by ID.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tenant.ErrNotAMember), errors.Is(err, tenant.ErrNotOwner):
		respondError(w, http.StatusForbidden, "not a member of this tenant")
	case errors.Is(err, tenant.ErrTenantNotFound):
		respondError(w, http.StatusNotFound, "tenant not found")
	case errors.Is(err, asset.ErrAssetNotFound):
		respondError(w, http.StatusNotFound, "asset not found")
	case errors.Is(err, finding.ErrFindingNotFound):
		respondError(w, http.StatusNotFound, "finding not found")
	case errors.Is(err, identity.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, identity.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, tenant.ErrTenantNameTaken):
		respondError(w, http.StatusConflict, "tenant name already taken")
	case errors.Is(err, tenant.ErrMembershipExists):
		respondError(w, http.StatusConflict, "user is already a member")
	case errors.Is(err, identity.ErrInvalidEmail):
		respondError(w, http.StatusUnprocessableEntity, "invalid email address")
	case errors.Is(err, identity.ErrWeakPassword):
		respondError(w, http.StatusUnprocessableEntity, "password does not meet security requirements")
	case errors.Is(err, asset.ErrInvalidConfig):
		respondError(w, http.StatusUnprocessableEntity, "invalid asset configuration")
	case errors.Is(err, finding.ErrInvalidStatus):
		respondError(w, http.StatusUnprocessableEntity, "invalid finding status")
	case errors.Is(err, tenant.ErrInvalidRole):
		respondError(w, http.StatusUnprocessableEntity, "invalid role")
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func getIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
