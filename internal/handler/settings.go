package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/multimark/motos/internal/auth"
	"github.com/multimark/motos/internal/domain"
	"github.com/multimark/motos/internal/service"
)

// SettingsHandler exposes site settings. The public subset is open, the
// full map and mutations require an admin session.
type SettingsHandler struct {
	settings service.SettingsService
	manager  *auth.Manager
	logger   *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settings service.SettingsService, manager *auth.Manager, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		manager:  manager,
		logger:   logger,
	}
}

// RegisterRoutes registers settings endpoints on the mux.
func (h *SettingsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/settings/public", h.Public)
	mux.HandleFunc("GET /api/settings", h.All)
	mux.HandleFunc("POST /api/settings", h.Upsert)
}

// Public returns the public subset of settings with defaults filled in.
// Never fails; a storage outage serves the defaults.
func (h *SettingsHandler) Public(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.Public(r.Context()))
}

// All returns every setting. Admin only.
func (h *SettingsHandler) All(w http.ResponseWriter, r *http.Request) {
	if !h.manager.IsAuthorized(r) {
		UnauthorizedResponse(w, r, h.logger)
		return
	}

	values, err := h.settings.All(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, values)
}

type upsertSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Upsert creates or replaces a setting. Admin only.
func (h *SettingsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	const op = "SettingsHandler.Upsert"

	if !h.manager.IsAuthorized(r) {
		UnauthorizedResponse(w, r, h.logger)
		return
	}

	var req upsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}

	setting, err := h.settings.Upsert(r.Context(), req.Key, req.Value)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, setting)
}
