package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/kimocks-netizen/docproc-client/internal/web/middleware"
)

// NewRouter builds the chi router with the middleware stack and all pages.
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/", h.UploadForm)
	r.Post("/upload", h.Upload)

	r.Get("/results/{jobID}", h.Result)

	r.Get("/documents", h.Documents)
	r.Get("/documents/{jobID}/compare", h.Compare)
	r.Get("/documents/{jobID}/confirm", h.ConfirmDelete)
	r.Post("/documents/{jobID}/delete", h.Delete)
	r.Get("/documents/download", h.Download)

	r.Get("/report", h.Report)
	r.Get("/health", h.Health)

	r.Post("/theme", h.ToggleTheme)

	r.NotFound(h.NotFoundPage)

	return r
}
