package api

import (
	"context"
	"net/http"

	"github.com/vytor/arithmetica/internal/errors"
	"github.com/vytor/arithmetica/internal/logger"
	"github.com/vytor/arithmetica/internal/services"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	GameService        services.GameService
	LeaderboardService services.LeaderboardService
	DB                 Pinger
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("listing leaderboard")

	board, err := s.LeaderboardService.List(r.Context())
	if err != nil {
		// Storage failures still serve the in-memory copy.
		if board != nil && errors.HasCode(err, errors.ErrCodePersistenceUnavailable) {
			appErr := asAppError(err)
			log.Warn("serving in-memory leaderboard: %v", appErr)
			writeJSON(w, http.StatusOK, map[string]any{
				"entries": board.Entries,
				"message": board.Message,
				"warning": errorBody{Code: appErr.Code, Message: appErr.Message},
			})
			return
		}
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, board)
}

func (s *Server) handleResetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if err := s.LeaderboardService.Reset(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
