// Package session runs one game session: it owns the session state, feeds it
// clock ticks and player actions one at a time, and carries out the effects
// the state machine asks for.
package session

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vytor/arithmetica/internal/clock"
	"github.com/vytor/arithmetica/internal/errors"
	"github.com/vytor/arithmetica/internal/game"
	"github.com/vytor/arithmetica/internal/logger"
	"github.com/vytor/arithmetica/internal/models"
)

// DefaultTickInterval is one game second.
const DefaultTickInterval = time.Second

// ErrClosed is returned for requests to a runner that has shut down.
var ErrClosed = stderrors.New("session closed")

// Recorder merges a final score into the leaderboard.
type Recorder interface {
	Record(ctx context.Context, score int) ([]int, error)
}

// ResultSink receives the final snapshot when a session ends. Its FinalScore
// is set and its Notices hold the game over messages.
type ResultSink interface {
	ShowResult(ctx context.Context, final models.SessionSnapshot)
}

// Result is what a player action produced.
type Result struct {
	Snapshot models.SessionSnapshot
	Outcome  game.Outcome
	// Err is an *errors.AppError when the action was rejected.
	Err error
}

type request struct {
	action game.Action // nil asks for a snapshot only
	reply  chan Result
}

// Runner drives a single session.
type Runner struct {
	id       string
	gen      game.Generator
	clock    clock.Clock
	recorder Recorder
	sink     ResultSink
	interval time.Duration
	log      *logger.Logger

	requests  chan request
	done      chan struct{}
	closing   chan struct{}
	closeOnce sync.Once
	started   atomic.Bool

	// Owned by the run goroutine.
	state     game.State
	ticker    clock.Ticker
	startedAt time.Time
	// final holds the game over notices. Every snapshot of a finished
	// session carries them.
	final []models.Notice
}

// Option configures a Runner.
type Option func(*Runner)

// WithTickInterval changes how often the session timer ticks.
func WithTickInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithLogger sets the base logger; the runner adds a session_id field.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// New creates an idle runner. Call Start to begin play.
func New(id string, gen game.Generator, clk clock.Clock, recorder Recorder, sink ResultSink, opts ...Option) *Runner {
	r := &Runner{
		id:       id,
		gen:      gen,
		clock:    clk,
		recorder: recorder,
		sink:     sink,
		interval: DefaultTickInterval,
		log:      logger.Default(),
		requests: make(chan request),
		done:     make(chan struct{}),
		closing:  make(chan struct{}),
		state:    game.NewState(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithPrefix("session").WithField("session_id", id)
	return r
}

func (r *Runner) ID() string {
	return r.id
}

// Start launches the session goroutine and issues the first problem. The
// goroutine lives until ctx is cancelled or Close is called, so ctx should be
// long-lived rather than scoped to a single request.
func (r *Runner) Start(ctx context.Context) (Result, error) {
	if !r.started.Swap(true) {
		go r.run(logger.NewContext(ctx, r.log))
	}
	return r.Do(ctx, game.Start{})
}

// Do submits an action and waits for its result.
func (r *Runner) Do(ctx context.Context, action game.Action) (Result, error) {
	return r.send(ctx, request{action: action, reply: make(chan Result, 1)})
}

// Snapshot returns the current state without changing it.
func (r *Runner) Snapshot(ctx context.Context) (models.SessionSnapshot, error) {
	res, err := r.send(ctx, request{reply: make(chan Result, 1)})
	if err != nil {
		return models.SessionSnapshot{}, err
	}
	return res.Snapshot, nil
}

// Close stops the timer and the session goroutine. It is safe to call more
// than once and before Start.
func (r *Runner) Close() {
	r.closeOnce.Do(func() { close(r.closing) })
	if r.started.Load() {
		<-r.done
	}
}

func (r *Runner) send(ctx context.Context, req request) (Result, error) {
	select {
	case r.requests <- req:
	case <-r.done:
		return Result{}, ErrClosed
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (r *Runner) run(ctx context.Context) {
	defer close(r.done)
	defer r.stopTimer()

	r.log.Debug("session loop started")
	for {
		var ticks <-chan time.Time
		if r.ticker != nil {
			ticks = r.ticker.C()
		}

		select {
		case <-r.closing:
			r.log.Debug("session closed (phase=%s, score=%d)", r.state.Phase, r.state.Score)
			return
		case <-ctx.Done():
			r.log.Debug("session loop stopped (phase=%s, score=%d)", r.state.Phase, r.state.Score)
			return
		case <-ticks:
			r.apply(ctx, game.Tick{})
		case req := <-r.requests:
			if req.action == nil {
				req.reply <- Result{Snapshot: r.snapshot()}
				continue
			}
			req.reply <- r.apply(ctx, req.action)
		}
	}
}

func (r *Runner) apply(ctx context.Context, action game.Action) Result {
	d := game.Decide(r.state, action, r.gen)
	r.state = d.State

	if d.Outcome == game.OutcomeStarted {
		r.startedAt = r.clock.Now()
		r.startTimer()
		r.log.Info("session started: question=%q, time_limit=%d", d.State.Problem.Question(), d.State.TimeRemaining)
	}

	var (
		notices    []models.Notice
		showResult bool
	)
	for _, effect := range d.Effects {
		switch e := effect.(type) {
		case game.ShowNotice:
			notices = append(notices, e.Notice)
		case game.StopTimer:
			r.stopTimer()
		case game.RecordScore:
			if n := r.record(ctx, e.Score); n != nil {
				notices = append(notices, *n)
			}
		case game.ShowResult:
			showResult = r.sink != nil
		}
	}
	if d.Outcome == game.OutcomeTimeExpired {
		r.final = notices
		notices = nil
	}

	res := Result{Outcome: d.Outcome}
	if d.Rejection != nil {
		res.Err = rejectionError(d.Rejection)
		r.log.Debug("action %T rejected: %s", action, d.Rejection.Code)
	} else if d.Outcome != game.OutcomeTicked && d.Outcome != game.OutcomeNone {
		r.log.Debug("action %T: outcome=%s score=%d streak=%d tier=%s", action, d.Outcome, r.state.Score, r.state.CorrectStreak, r.state.Tier)
	}
	if d.Outcome == game.OutcomeTimeExpired {
		r.log.Info("time expired: final_score=%d", r.state.Score)
	}

	res.Snapshot = r.snapshot()
	res.Snapshot.Notices = append(res.Snapshot.Notices, notices...)
	if showResult {
		r.sink.ShowResult(ctx, r.snapshot())
	}
	return res
}

func (r *Runner) snapshot() models.SessionSnapshot {
	snap := r.state.Snapshot(r.id)
	snap.StartedAt = r.startedAt
	if r.state.Over() && len(r.final) > 0 {
		snap.Notices = append([]models.Notice(nil), r.final...)
	}
	return snap
}

// record persists the final score. A failure is not fatal: the player gets a
// warning notice and the session still ends normally.
func (r *Runner) record(ctx context.Context, score int) *models.Notice {
	if r.recorder == nil {
		return nil
	}
	if _, err := r.recorder.Record(ctx, score); err != nil {
		r.log.Warn("failed to record score %d: %v", score, err)
		return &models.Notice{
			Kind:    models.NoticeWarning,
			Title:   "Leaderboard Unavailable",
			Message: "Your score could not be saved to the leaderboard.",
		}
	}
	return nil
}

func (r *Runner) startTimer() {
	if r.ticker != nil {
		return
	}
	r.ticker = r.clock.NewTicker(r.interval)
}

func (r *Runner) stopTimer() {
	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	r.ticker = nil
	r.log.Debug("timer stopped")
}

func rejectionError(rej *game.Rejection) error {
	if rej.Code == errors.ErrCodeEmptyInput {
		return errors.NewEmptyInputError(rej.Message)
	}
	return errors.NewInvalidPreconditionError(rej.Message)
}
