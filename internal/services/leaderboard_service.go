package services

import (
	"context"
	"sync"

	"github.com/vytor/arithmetica/internal/errors"
	"github.com/vytor/arithmetica/internal/leaderboard"
	"github.com/vytor/arithmetica/internal/logger"
	"github.com/vytor/arithmetica/internal/models"
)

// EmptyLeaderboardMessage is shown when no score has been recorded yet.
const EmptyLeaderboardMessage = "No scores yet!"

// LeaderboardService handles the local high-score list
type LeaderboardService interface {
	// List returns the ranked leaderboard. When storage fails it returns the
	// in-memory copy together with a PERSISTENCE_UNAVAILABLE error.
	List(ctx context.Context) (*models.Leaderboard, error)
	// Record merges a final score and persists the result. Storage failures
	// are reported the same way as in List.
	Record(ctx context.Context, score int) ([]int, error)
	// Reset clears the stored scores and the in-memory copy.
	Reset(ctx context.Context) error
}

type leaderboardService struct {
	store leaderboard.Store
	limit int

	mu    sync.Mutex
	cache []int
	// loaded is set once cache mirrors the stored list.
	loaded bool
}

// NewLeaderboardService creates a new LeaderboardService. A positive limit
// caps the number of stored scores.
func NewLeaderboardService(store leaderboard.Store, limit int) LeaderboardService {
	return &leaderboardService{
		store: store,
		limit: limit,
		cache: []int{},
	}
}

func (s *leaderboardService) List(ctx context.Context) (*models.Leaderboard, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing leaderboard")

	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.store.Get(ctx)
	if err != nil {
		log.Warn("failed to read leaderboard, using in-memory copy: %v", err)
		return s.render(s.cache), errors.NewPersistenceUnavailableError(err)
	}
	s.cache = leaderboard.Normalize(scores, s.limit)
	s.loaded = true
	return s.render(s.cache), nil
}

func (s *leaderboardService) Record(ctx context.Context, score int) ([]int, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording score: %d", score)

	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.store.Record(ctx, score, s.limit)
	if err != nil {
		s.loadLocked(ctx)
		s.cache = leaderboard.Merge(s.cache, score, s.limit)
		log.Warn("failed to persist score %d, kept in memory: %v", score, err)
		return append([]int(nil), s.cache...), errors.NewPersistenceUnavailableError(err)
	}
	s.cache = scores
	s.loaded = true
	log.Info("score recorded: score=%d, entries=%d", score, len(scores))
	return append([]int(nil), scores...), nil
}

func (s *leaderboardService) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		log.Error("failed to clear leaderboard: %v", err)
		return errors.NewPersistenceUnavailableError(err)
	}
	s.cache = []int{}
	s.loaded = true
	log.Info("leaderboard cleared")
	return nil
}

// loadLocked fills the cache from the store if it has never been read, so a
// failed write does not hide scores saved by earlier runs.
func (s *leaderboardService) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	scores, err := s.store.Get(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to load leaderboard: %v", err)
		return
	}
	s.cache = leaderboard.Normalize(scores, s.limit)
	s.loaded = true
}

func (s *leaderboardService) render(scores []int) *models.Leaderboard {
	lb := &models.Leaderboard{Entries: leaderboard.Entries(scores)}
	if len(lb.Entries) == 0 {
		lb.Message = EmptyLeaderboardMessage
	}
	return lb
}
