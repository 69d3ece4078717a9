package handler

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// RegisterStaticRoutes serves the embedded stylesheet and admin scripts.
func RegisterStaticRoutes(mux *http.ServeMux) {
	assets, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(assets)))
}
