package services

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/arithmetica/internal/clock"
	"github.com/vytor/arithmetica/internal/errors"
	"github.com/vytor/arithmetica/internal/game"
	"github.com/vytor/arithmetica/internal/logger"
	"github.com/vytor/arithmetica/internal/models"
	"github.com/vytor/arithmetica/internal/problem"
	"github.com/vytor/arithmetica/internal/random"
	"github.com/vytor/arithmetica/internal/session"
)

// ActionResult is the session state after a player action.
type ActionResult struct {
	Snapshot models.SessionSnapshot `json:"session"`
	Outcome  game.Outcome           `json:"outcome,omitempty"`
}

// GameService handles training sessions.
//
// Rejected actions (blank answer, level up or power-up without meeting the
// requirement) return both a result, whose snapshot carries the notice for
// the player, and an *errors.AppError.
type GameService interface {
	Start(ctx context.Context) (*ActionResult, error)
	Get(ctx context.Context, id string) (*models.SessionSnapshot, error)
	Submit(ctx context.Context, id string, input string) (*ActionResult, error)
	LevelUp(ctx context.Context, id string) (*ActionResult, error)
	ActivatePowerUp(ctx context.Context, id string, kind models.PowerUpKind) (*ActionResult, error)
	// Leave discards a session. An unfinished session is not recorded.
	Leave(ctx context.Context, id string) error
	// Result returns the final score of a finished session.
	Result(ctx context.Context, id string) (*models.SessionResult, error)
	// Sessions lists the IDs of live sessions.
	Sessions() []string
	Shutdown()
}

// maxFinished bounds how many finished sessions are kept for Get and Result.
const maxFinished = 256

// finished is what remains of a session once its score has been handed on.
type finished struct {
	result models.SessionResult
	final  models.SessionSnapshot
}

// SourceFactory returns the random source for a new session's problems.
type SourceFactory func() (problem.Source, error)

// GameServiceOptions configures NewGameService. Zero values select the
// defaults: real clock, one-second ticks, crypto-seeded sources.
type GameServiceOptions struct {
	Clock        clock.Clock
	TickInterval time.Duration
	NewSource    SourceFactory
	Logger       *logger.Logger
}

type gameService struct {
	leaderboard LeaderboardService
	clock       clock.Clock
	interval    time.Duration
	newSource   SourceFactory
	log         *logger.Logger

	baseCtx context.Context
	cancel  context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*session.Runner
	finished map[string]finished
	// order lists finished IDs oldest first.
	order []string
}

// NewGameService creates a new GameService
func NewGameService(lb LeaderboardService, opts GameServiceOptions) GameService {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = session.DefaultTickInterval
	}
	if opts.NewSource == nil {
		opts.NewSource = func() (problem.Source, error) {
			return random.NewRand()
		}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &gameService{
		leaderboard: lb,
		clock:       opts.Clock,
		interval:    opts.TickInterval,
		newSource:   opts.NewSource,
		log:         opts.Logger,
		baseCtx:     ctx,
		cancel:      cancel,
		sessions:    make(map[string]*session.Runner),
		finished:    make(map[string]finished),
	}
}

func (s *gameService) Start(ctx context.Context) (*ActionResult, error) {
	log := logger.FromContext(ctx)

	src, err := s.newSource()
	if err != nil {
		log.Error("failed to seed problem generator: %v", err)
		return nil, errors.NewInternalError(err)
	}

	id := uuid.NewString()
	runner := session.New(id, problem.NewGenerator(src), s.clock, s.leaderboard, s,
		session.WithTickInterval(s.interval),
		session.WithLogger(s.log),
	)

	s.mu.Lock()
	if s.baseCtx.Err() != nil {
		s.mu.Unlock()
		return nil, errors.NewBadRequestError("server is shutting down")
	}
	s.sessions[id] = runner
	s.mu.Unlock()

	res, err := runner.Start(s.baseCtx)
	if err != nil {
		log.Error("failed to start session %s: %v", id, err)
		s.remove(id)
		runner.Close()
		return nil, errors.NewInternalError(err)
	}

	log.Info("training session started: id=%s", id)
	return &ActionResult{Snapshot: res.Snapshot, Outcome: res.Outcome}, res.Err
}

func (s *gameService) Get(ctx context.Context, id string) (*models.SessionSnapshot, error) {
	runner, done, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if done != nil {
		snap := done.snapshot()
		return &snap, nil
	}
	snap, err := runner.Snapshot(ctx)
	if err != nil {
		if done := s.finishedSession(id); done != nil && stderrors.Is(err, session.ErrClosed) {
			snap := done.snapshot()
			return &snap, nil
		}
		return nil, s.runnerError(ctx, id, err)
	}
	return &snap, nil
}

func (s *gameService) Submit(ctx context.Context, id string, input string) (*ActionResult, error) {
	logger.FromContext(ctx).Debug("submitting answer: session_id=%s", id)
	return s.do(ctx, id, game.Submit{Input: input})
}

func (s *gameService) LevelUp(ctx context.Context, id string) (*ActionResult, error) {
	logger.FromContext(ctx).Debug("level up requested: session_id=%s", id)
	return s.do(ctx, id, game.LevelUp{})
}

func (s *gameService) ActivatePowerUp(ctx context.Context, id string, kind models.PowerUpKind) (*ActionResult, error) {
	log := logger.FromContext(ctx)
	kind = models.PowerUpKind(strings.ToLower(strings.TrimSpace(string(kind))))
	if !kind.Known() {
		log.Warn("unrecognized power-up kind %q, charge will be spent", kind)
	}
	return s.do(ctx, id, game.ActivatePowerUp{Kind: kind})
}

func (s *gameService) Leave(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	runner, live := s.sessions[id]
	_, done := s.finished[id]
	delete(s.sessions, id)
	s.forgetLocked(id)
	s.mu.Unlock()

	if !live && !done {
		return errors.NewNotFoundError("session", id)
	}
	if live {
		runner.Close()
	}
	log.Info("training session left: id=%s", id)
	return nil
}

func (s *gameService) Result(ctx context.Context, id string) (*models.SessionResult, error) {
	s.mu.Lock()
	done, ok := s.finished[id]
	_, live := s.sessions[id]
	s.mu.Unlock()

	if ok {
		res := done.result
		return &res, nil
	}
	if live {
		return nil, errors.NewInvalidPreconditionError("session is still in progress")
	}
	return nil, errors.NewNotFoundError("session", id)
}

// ShowResult receives the final snapshot from a session runner. The session
// is retired: its runner is closed and later reads are served from the
// snapshot.
func (s *gameService) ShowResult(ctx context.Context, final models.SessionSnapshot) {
	score := final.Score
	if final.FinalScore != nil {
		score = *final.FinalScore
	}
	logger.FromContext(ctx).Info("training finished: final_score=%d", score)

	s.mu.Lock()
	runner, live := s.sessions[final.ID]
	delete(s.sessions, final.ID)
	s.forgetLocked(final.ID)
	s.finished[final.ID] = finished{
		result: models.SessionResult{
			SessionID:  final.ID,
			Score:      score,
			FinishedAt: s.clock.Now(),
		},
		final: final,
	}
	s.order = append(s.order, final.ID)
	for len(s.order) > maxFinished {
		delete(s.finished, s.order[0])
		s.order = s.order[1:]
	}
	s.mu.Unlock()

	// Called from the runner's own goroutine, which Close waits for.
	if live {
		go runner.Close()
	}
}

func (s *gameService) Sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *gameService) Shutdown() {
	s.mu.Lock()
	s.cancel()
	runners := make([]*session.Runner, 0, len(s.sessions))
	for id, r := range s.sessions {
		runners = append(runners, r)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, r := range runners {
		r.Close()
	}
	s.log.Debug("closed %d sessions", len(runners))
}

func (s *gameService) do(ctx context.Context, id string, action game.Action) (*ActionResult, error) {
	runner, done, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if done != nil {
		return done.reject(action)
	}
	res, err := runner.Do(ctx, action)
	if err != nil {
		if done := s.finishedSession(id); done != nil && stderrors.Is(err, session.ErrClosed) {
			return done.reject(action)
		}
		return nil, s.runnerError(ctx, id, err)
	}
	return &ActionResult{Snapshot: res.Snapshot, Outcome: res.Outcome}, res.Err
}

// lookup returns the live runner or, for a retired session, what is left of it.
func (s *gameService) lookup(id string) (*session.Runner, *finished, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.sessions[id]; ok {
		return r, nil, nil
	}
	if f, ok := s.finished[id]; ok {
		return nil, &f, nil
	}
	return nil, nil, errors.NewNotFoundError("session", id)
}

func (s *gameService) finishedSession(id string) *finished {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.finished[id]; ok {
		return &f
	}
	return nil
}

func (s *gameService) forgetLocked(id string) {
	if _, ok := s.finished[id]; !ok {
		return
	}
	delete(s.finished, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (f *finished) snapshot() models.SessionSnapshot {
	snap := f.final
	snap.Notices = append([]models.Notice(nil), f.final.Notices...)
	return snap
}

// reject answers an action on a retired session the way the game does for
// any session that is over.
func (f *finished) reject(action game.Action) (*ActionResult, error) {
	d := game.Decide(game.State{Phase: models.PhaseGameOver}, action, nil)
	snap := f.snapshot()
	snap.Notices = append(snap.Notices, d.Notices()...)
	msg := "This training session is over."
	if d.Rejection != nil {
		msg = d.Rejection.Message
	}
	return &ActionResult{Snapshot: snap}, errors.NewInvalidPreconditionError(msg)
}

func (s *gameService) runnerError(ctx context.Context, id string, err error) error {
	if stderrors.Is(err, session.ErrClosed) {
		s.remove(id)
		return errors.NewNotFoundError("session", id)
	}
	if ctx.Err() != nil {
		return errors.NewBadRequestError("request cancelled")
	}
	logger.FromContext(ctx).Error("session %s failed: %v", id, err)
	return errors.NewInternalError(err)
}

func (s *gameService) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
