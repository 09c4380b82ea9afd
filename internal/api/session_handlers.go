package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/arithmetica/internal/logger"
	"github.com/vytor/arithmetica/internal/models"
	"github.com/vytor/arithmetica/internal/services"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("starting training session")

	res, err := s.GameService.Start(r.Context())
	if err != nil {
		s.writeActionError(w, r, res, err)
		return
	}

	w.Header().Set("Location", "/sessions/"+res.Snapshot.ID)
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.GameService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	answer, err := formValue(w, r, "answer")
	if err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.GameService.Submit(r.Context(), chi.URLParam(r, "id"), answer)
	s.writeAction(w, r, res, err)
}

func (s *Server) handleLevelUp(w http.ResponseWriter, r *http.Request) {
	res, err := s.GameService.LevelUp(r.Context(), chi.URLParam(r, "id"))
	s.writeAction(w, r, res, err)
}

func (s *Server) handleActivatePowerUp(w http.ResponseWriter, r *http.Request) {
	kind, err := formValue(w, r, "kind")
	if err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.GameService.ActivatePowerUp(r.Context(), chi.URLParam(r, "id"), models.PowerUpKind(kind))
	s.writeAction(w, r, res, err)
}

func (s *Server) handleSessionResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.GameService.Result(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLeaveSession(w http.ResponseWriter, r *http.Request) {
	if err := s.GameService.Leave(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeAction(w http.ResponseWriter, r *http.Request, res *services.ActionResult, err error) {
	if err != nil {
		s.writeActionError(w, r, res, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// writeActionError renders a rejected action. The session snapshot, with the
// notice explaining the rejection, travels alongside the error.
func (s *Server) writeActionError(w http.ResponseWriter, r *http.Request, res *services.ActionResult, err error) {
	if res == nil {
		handleError(w, r, err)
		return
	}
	handleError(w, r, err, map[string]any{"session": res.Snapshot})
}
