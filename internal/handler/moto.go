package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/multimark/motos/internal/auth"
	"github.com/multimark/motos/internal/domain"
	"github.com/multimark/motos/internal/metrics"
	"github.com/multimark/motos/internal/service"
)

// MotoHandler exposes the catalog API. Reads are public, mutations require
// an admin session.
type MotoHandler struct {
	motos   service.MotoService
	repo    service.MotoRepository
	manager *auth.Manager
	logger  *slog.Logger
}

// NewMotoHandler creates a MotoHandler.
func NewMotoHandler(motos service.MotoService, repo service.MotoRepository, manager *auth.Manager, logger *slog.Logger) *MotoHandler {
	return &MotoHandler{
		motos:   motos,
		repo:    repo,
		manager: manager,
		logger:  logger,
	}
}

// RegisterRoutes registers catalog endpoints on the mux.
func (h *MotoHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/motos", h.List)
	mux.HandleFunc("GET /api/motos/{id}", h.Get)
	mux.HandleFunc("POST /api/motos", h.Create)
	mux.HandleFunc("PUT /api/motos/{id}", h.Update)
	mux.HandleFunc("DELETE /api/motos/{id}", h.Delete)
}

// List returns catalog entries, optionally filtered by marca, free-text
// query and the hero flag.
func (h *MotoHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	hero := query.Get("hero")
	filter := service.MotoFilter{
		Marca:    query.Get("marca"),
		Query:    query.Get("q"),
		HeroOnly: hero == "true" || hero == "1",
	}

	motos, err := h.motos.List(r.Context(), filter)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if motos == nil {
		motos = []domain.Moto{}
	}
	writeJSON(w, http.StatusOK, motos)
}

// Get returns a single catalog entry by ID.
func (h *MotoHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "MotoHandler.Get"

	id := r.PathValue("id")

	moto, err := h.repo.GetMoto(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ErrorResponse(w, r, h.logger, domain.NotFound(op, "Moto", id))
			return
		}
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to load moto"))
		return
	}

	writeJSON(w, http.StatusOK, moto)
}

// Create adds a catalog entry. Admin only; the session check runs before
// anything touches the database.
func (h *MotoHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "MotoHandler.Create"

	if !h.manager.IsAuthorized(r) {
		UnauthorizedResponse(w, r, h.logger)
		return
	}

	var moto domain.Moto
	if err := json.NewDecoder(r.Body).Decode(&moto); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}

	created, err := h.motos.Create(r.Context(), moto)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.MotosCreatedTotal.Inc()

	writeJSON(w, http.StatusCreated, created)
}

// Update replaces a catalog entry. Admin only.
func (h *MotoHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "MotoHandler.Update"

	if !h.manager.IsAuthorized(r) {
		UnauthorizedResponse(w, r, h.logger)
		return
	}

	var moto domain.Moto
	if err := json.NewDecoder(r.Body).Decode(&moto); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}
	moto.ID = r.PathValue("id")

	updated, err := h.motos.Update(r.Context(), moto)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a catalog entry. Admin only.
func (h *MotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.manager.IsAuthorized(r) {
		UnauthorizedResponse(w, r, h.logger)
		return
	}

	if err := h.motos.Delete(r.Context(), r.PathValue("id")); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
