package handler

import (
	"log/slog"
	"net/http"

	"github.com/multimark/motos/internal/auth"
	"github.com/multimark/motos/internal/cdn"
	"github.com/multimark/motos/internal/domain"
	"github.com/multimark/motos/internal/metrics"
	"github.com/multimark/motos/internal/service"
)

// UploadHandler accepts multipart image uploads. Admin only.
type UploadHandler struct {
	images  service.ImageService
	manager *auth.Manager
	logger  *slog.Logger
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(images service.ImageService, manager *auth.Manager, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		images:  images,
		manager: manager,
		logger:  logger,
	}
}

// RegisterRoutes registers the upload endpoint on the mux.
func (h *UploadHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/upload", h.Upload)
}

// Upload reads the multipart "file" field and processes it according to
// the "kind" field (moto or logo, defaulting to moto).
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "UploadHandler.Upload"

	if !h.manager.IsAuthorized(r) {
		UnauthorizedResponse(w, r, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageSize+1<<20)

	if err := r.ParseMultipartForm(4 << 20); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "No file provided"))
		return
	}
	defer file.Close()

	kind := cdn.KindMoto
	if r.FormValue("kind") == string(cdn.KindLogo) {
		kind = cdn.KindLogo
	}

	uploaded, err := h.images.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, kind)
	if err != nil {
		metrics.ImagesUploadedTotal.WithLabelValues(string(kind), "failure").Inc()
		ErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.ImagesUploadedTotal.WithLabelValues(string(kind), "success").Inc()

	writeJSON(w, http.StatusOK, uploaded)
}
