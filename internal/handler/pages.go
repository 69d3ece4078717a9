package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/multimark/motos/internal/auth"
	"github.com/multimark/motos/internal/domain"
	"github.com/multimark/motos/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageHandler renders the storefront and admin pages.
type PageHandler struct {
	motos     service.MotoService
	settings  service.SettingsService
	logger    *slog.Logger
	templates *template.Template
}

// NewPageHandler creates a PageHandler, parsing the embedded templates.
func NewPageHandler(motos service.MotoService, settings service.SettingsService, logger *slog.Logger) (*PageHandler, error) {
	templates, err := template.New("").Funcs(template.FuncMap{
		"whatsappLink": domain.WhatsAppLink,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		motos:     motos,
		settings:  settings,
		logger:    logger,
		templates: templates,
	}, nil
}

// RegisterRoutes registers page endpoints on the mux. The admin pages rely
// on the AdminPages middleware for cookie-presence redirects; the dashboard
// additionally requires the verified claims the WithSession middleware
// loads into the request context.
func (h *PageHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /admin/login", h.LoginPage)
	mux.HandleFunc("GET /admin/dashboard", h.Dashboard)
}

type homePageData struct {
	Motos    []domain.Moto
	Hero     []domain.Moto
	Marcas   []domain.Marca
	Settings domain.PublicSettings
	Marca    string
	Query    string
}

// Home renders the public catalog page.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	motos, err := h.motos.List(r.Context(), service.MotoFilter{
		Marca: query.Get("marca"),
		Query: query.Get("q"),
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	hero, err := h.motos.List(r.Context(), service.MotoFilter{HeroOnly: true})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	h.render(w, r, "home.html", homePageData{
		Motos:    motos,
		Hero:     hero,
		Marcas:   domain.Marcas,
		Settings: h.settings.Public(r.Context()),
		Marca:    query.Get("marca"),
		Query:    query.Get("q"),
	})
}

// LoginPage renders the admin login form. Requests arriving here with a
// session cookie were already redirected to the dashboard by the edge
// middleware.
func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", h.settings.Public(r.Context()))
}

type dashboardData struct {
	Email    string
	Motos    []domain.Moto
	Settings map[string]string
}

// Dashboard renders the admin panel. The edge middleware only checks that
// a cookie exists; the real gate is the verified session the WithSession
// middleware put in the context. Absent claims (forged, expired, or the
// middleware is not mounted) fail closed into a redirect.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetSessionFromRequest(r)
	if claims == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
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

	h.render(w, r, "dashboard.html", dashboardData{
		Email:    claims.Email,
		Motos:    motos,
		Settings: settings,
	})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("template render failed", "template", name, "error", err)
	}
}
