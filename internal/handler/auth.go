package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/multimark/motos/internal/auth"
	"github.com/multimark/motos/internal/domain"
	"github.com/multimark/motos/internal/metrics"
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	manager  *auth.Manager
	logger   *slog.Logger
	isSecure bool
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(manager *auth.Manager, logger *slog.Logger, isSecure bool) *AuthHandler {
	return &AuthHandler{
		manager:  manager,
		logger:   logger,
		isSecure: isSecure,
	}
}

// RegisterRoutes registers auth endpoints on the mux.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}

// Login authenticates the admin and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.Login"

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}

	token, err := h.manager.Login(req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		ErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.logger.Info("admin login", "ip", r.RemoteAddr)

	auth.SetSessionCookie(w, token, h.isSecure)

	// Echo the normalized email, which is what the token carries.
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Email: auth.NormalizeEmail(req.Email)})
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; there is no server-side session state to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.isSecure)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
