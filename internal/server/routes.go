package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/furiarock/mockstudio/pkg/buildinfo"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/session"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/zones", s.handleZones)
		r.Get("/garment/{view}/{mode}.svg", s.handleGarment)

		r.Post("/projects", s.handleCreateProject)
		r.Route("/projects/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetProject)
			r.Patch("/", s.handlePatchProject)
			r.Delete("/", s.handleDeleteProject)
			r.Post("/reset", s.handleResetProject)
			r.Post("/pointer", s.handlePointer)

			r.Route("/layers/{zone}", func(r chi.Router) {
				r.Patch("/", s.handlePatchLayer)
				r.Post("/reset", s.handleResetLayer)
				r.Put("/artwork", s.handleUploadArtwork)
				r.Delete("/artwork", s.handleRemoveArtwork)
			})

			r.Get("/preview.svg", s.handlePreview)
			r.Post("/export", s.handleExport)
			r.Post("/tryon", s.handleTryOn)
			r.Get("/quote", s.handleQuote)
			r.Get("/quote.png", s.handleQuoteQR)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusNotFound, errorBody{Code: errors.ErrCodeNotFound, Message: "no such route"})
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  buildinfo.Version,
		"sessions": s.Store.Len(),
	})
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, garment.Zones())
}

// session resolves the {id} URL parameter. On failure the error response
// has already been written.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.Store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

func zoneParam(r *http.Request) (garment.ZoneID, error) {
	return garment.ParseZoneID(chi.URLParam(r, "zone"))
}
