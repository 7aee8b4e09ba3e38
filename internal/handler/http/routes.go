package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Get("/api/version", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.verifyHash)

		r.Post("/api/vaults", h.createVault)
		r.Get("/api/vaults/{id}", h.getVault)

		r.Post("/api/sync/diff", h.diff)
		r.Post("/api/sync/commit", h.commit)

		r.Put("/api/files/content", h.uploadFile)
		r.Get("/api/files/content", h.downloadFile)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
