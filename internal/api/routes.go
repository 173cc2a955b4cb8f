package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// The viewer is hosted separately, so every response carries permissive
	// CORS headers.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)

	r.Get("/recording-log", h.GetRecordingLogs)
	r.Get("/recording-log/{taskId}/document", func(w http.ResponseWriter, r *http.Request) {
		h.GetConvertedDocument(w, r, chi.URLParam(r, "taskId"))
	})
	r.Post("/recording", h.RequeueRecording)

	return r
}
