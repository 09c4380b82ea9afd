package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/arithmetica/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger, recoverer, securityHeaders)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Delete("/leaderboard", s.handleResetLeaderboard)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleLeaveSession)
			r.Post("/answer", s.handleSubmitAnswer)
			r.Post("/level-up", s.handleLevelUp)
			r.Post("/power-up", s.handleActivatePowerUp)
			r.Get("/result", s.handleSessionResult)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewBadRequestError("method not allowed"))
	})
	return r
}
