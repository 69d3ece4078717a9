package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"

	"github.com/multimark/motos/internal/auth"
	"github.com/multimark/motos/internal/domain"
	"github.com/multimark/motos/internal/service"
)

// ImagePathRewriter updates catalog rows that still reference an old image
// location, used when assets move between storage providers.
type ImagePathRewriter interface {
	UpdateMotoImageByPath(ctx context.Context, oldPath, newURL, publicID string) ([]string, error)
}

// MaintenanceHandler exposes admin maintenance endpoints: duplicate
// cleanup, image path migration, a debug snapshot, and the retired seeding
// endpoints.
type MaintenanceHandler struct {
	motos    service.MotoService
	settings service.SettingsService
	rewriter ImagePathRewriter
	manager  *auth.Manager
	logger   *slog.Logger
	env      string
	provider string
}

// NewMaintenanceHandler creates a MaintenanceHandler.
func NewMaintenanceHandler(motos service.MotoService, settings service.SettingsService, rewriter ImagePathRewriter, manager *auth.Manager, logger *slog.Logger, env, provider string) *MaintenanceHandler {
	return &MaintenanceHandler{
		motos:    motos,
		settings: settings,
		rewriter: rewriter,
		manager:  manager,
		logger:   logger,
		env:      env,
		provider: provider,
	}
}

// RegisterRoutes registers maintenance endpoints on the mux.
func (h *MaintenanceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/cleanup", h.Cleanup)
	mux.HandleFunc("POST /api/migrate-images", h.MigrateImages)
	mux.HandleFunc("GET /api/debug", h.Debug)

	// No method pattern: the retired endpoints answer 410 to anything.
	mux.HandleFunc("/api/seed", h.Retired)
	mux.HandleFunc("/api/reseed", h.Retired)
}

// Cleanup removes duplicate catalog entries, keeping the oldest of each
// marca+nombre pair. Admin only.
func (h *MaintenanceHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	if !h.manager.IsAuthorized(r) {
		UnauthorizedResponse(w, r, h.logger)
		return
	}

	result, err := h.motos.CleanupDuplicates(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type migrateImagesRequest struct {
	OldPath  string `json:"oldPath"`
	NewURL   string `json:"newUrl"`
	PublicID string `json:"publicId"`
}

type migrateImagesResponse struct {
	UpdatedIDs []string `json:"updatedIds"`
}

// MigrateImages repoints every catalog row referencing an old image path at
// its new delivery URL. Admin only.
func (h *MaintenanceHandler) MigrateImages(w http.ResponseWriter, r *http.Request) {
	const op = "MaintenanceHandler.MigrateImages"

	if !h.manager.IsAuthorized(r) {
		UnauthorizedResponse(w, r, h.logger)
		return
	}

	var req migrateImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}
	if req.OldPath == "" || req.NewURL == "" {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "oldPath and newUrl are required"))
		return
	}

	ids, err := h.rewriter.UpdateMotoImageByPath(r.Context(), req.OldPath, req.NewURL, req.PublicID)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to migrate images"))
		return
	}

	h.logger.Info("image paths migrated", "old_path", req.OldPath, "updated", len(ids))

	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, migrateImagesResponse{UpdatedIDs: ids})
}

type debugMoto struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	Marca      string `json:"marca"`
	Imagen     string `json:"imagen"`
	ShowInHero bool   `json:"show_in_hero"`
}

type debugResponse struct {
	Environment     string      `json:"environment"`
	StorageProvider string      `json:"storageProvider"`
	MotoCount       int         `json:"motoCount"`
	SettingCount    int         `json:"settingCount"`
	Motos           []debugMoto `json:"motos"`
}

// Debug returns an operational snapshot of the catalog. Admin only;
// nothing here is secret but there is no reason to expose it.
func (h *MaintenanceHandler) Debug(w http.ResponseWriter, r *http.Request) {
	if !h.manager.IsAuthorized(r) {
		UnauthorizedResponse(w, r, h.logger)
		return
	}

	motos, err := h.motos.List(r.Context(), service.MotoFilter{})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	settings, err := h.settings.All(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	sort.Slice(motos, func(i, j int) bool { return motos[i].Marca < motos[j].Marca })

	rows := make([]debugMoto, 0, len(motos))
	for _, m := range motos {
		rows = append(rows, debugMoto{
			ID:         m.ID,
			Nombre:     m.Nombre,
			Marca:      m.Marca,
			Imagen:     m.Imagen,
			ShowInHero: m.ShowInHero,
		})
	}

	writeJSON(w, http.StatusOK, debugResponse{
		Environment:     h.env,
		StorageProvider: h.provider,
		MotoCount:       len(motos),
		SettingCount:    len(settings),
		Motos:           rows,
	})
}

// Retired answers for the old seeding endpoints. The catalog is managed
// through the admin panel now; bulk seeding was removed and the routes
// stay registered only to signal that clearly.
func (h *MaintenanceHandler) Retired(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, h.logger, domain.Gone("", "This endpoint has been retired"))
}
