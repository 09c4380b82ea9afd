package services_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/arithmetica/internal/clock"
	apperrors "github.com/vytor/arithmetica/internal/errors"
	"github.com/vytor/arithmetica/internal/game"
	"github.com/vytor/arithmetica/internal/leaderboard"
	"github.com/vytor/arithmetica/internal/models"
	"github.com/vytor/arithmetica/internal/problem"
	"github.com/vytor/arithmetica/internal/repository"
	"github.com/vytor/arithmetica/internal/repository/sqlite"
	"github.com/vytor/arithmetica/internal/services"
	"github.com/vytor/arithmetica/internal/testutil"
)

// cyclicSource replays its values forever. 5, 3, 0 always draws "6 + 4".
type cyclicSource struct {
	values []int
	i      int
}

func (c *cyclicSource) IntN(n int) int {
	v := c.values[c.i%len(c.values)]
	c.i++
	return v % n
}

type GameServiceSuite struct {
	suite.Suite
	db    *sql.DB
	clock *clock.Manual
	repo  repository.KeyValueRepository
	store leaderboard.Store
	board services.LeaderboardService
	svc   services.GameService
	ctx   context.Context
}

func (s *GameServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewTestDB(s.T())
	s.clock = clock.NewManual(time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC))
	s.repo = sqlite.NewKeyValueRepository(s.db)
	s.store = leaderboard.NewStore(s.repo)
	s.board = services.NewLeaderboardService(s.store, 0)
	s.svc = services.NewGameService(s.board, services.GameServiceOptions{
		Clock: s.clock,
		NewSource: func() (problem.Source, error) {
			return &cyclicSource{values: []int{5, 3, 0}}, nil
		},
	})
}

func (s *GameServiceSuite) TearDownTest() {
	s.svc.Shutdown()
	testutil.MustClose(s.T(), s.db)
}

func (s *GameServiceSuite) seed(scores string) {
	err := s.repo.Update(s.ctx, leaderboard.Key, func(string, bool) (string, error) {
		return scores, nil
	})
	s.Require().NoError(err)
}

func (s *GameServiceSuite) expire() {
	for i := 0; i < models.DefaultTimeLimit; i++ {
		s.clock.Tick()
	}
}

func (s *GameServiceSuite) TestStartAndAnswer() {
	started, err := s.svc.Start(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(game.OutcomeStarted, started.Outcome)
	s.Assert().Equal("6 + 4", started.Snapshot.Question)
	s.Assert().Equal(30, started.Snapshot.TimeRemaining)
	s.Assert().Equal(models.Apprentice, started.Snapshot.Tier)

	res, err := s.svc.Submit(s.ctx, started.Snapshot.ID, "10")
	s.Require().NoError(err)
	s.Assert().Equal(1, res.Snapshot.Score)
	s.Assert().Equal(30, res.Snapshot.TimeRemaining)
	s.Assert().NotEqual(started.Snapshot.Round, res.Snapshot.Round)
}

func (s *GameServiceSuite) TestEmptyAnswerReturnsSnapshotAndError() {
	started, err := s.svc.Start(s.ctx)
	s.Require().NoError(err)

	res, err := s.svc.Submit(s.ctx, started.Snapshot.ID, "")

	s.Assert().True(apperrors.HasCode(err, apperrors.ErrCodeEmptyInput))
	s.Require().NotNil(res)
	s.Assert().Equal(0, res.Snapshot.Score)
	s.Assert().Equal(started.Snapshot.Round, res.Snapshot.Round)
	s.Require().Len(res.Snapshot.Notices, 1)
}

func (s *GameServiceSuite) TestUnknownSession() {
	_, err := s.svc.Get(s.ctx, "missing")
	s.Assert().True(apperrors.HasCode(err, apperrors.ErrCodeNotFound))

	_, err = s.svc.Submit(s.ctx, "missing", "1")
	s.Assert().True(apperrors.HasCode(err, apperrors.ErrCodeNotFound))

	err = s.svc.Leave(s.ctx, "missing")
	s.Assert().True(apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}

func (s *GameServiceSuite) TestLevelUpAndPowerUp() {
	started, err := s.svc.Start(s.ctx)
	s.Require().NoError(err)
	id := started.Snapshot.ID

	_, err = s.svc.LevelUp(s.ctx, id)
	s.Assert().True(apperrors.HasCode(err, apperrors.ErrCodeInvalidPrecondition))

	for i := 0; i < 10; i++ {
		_, err = s.svc.Submit(s.ctx, id, "10")
		s.Require().NoError(err)
	}

	res, err := s.svc.ActivatePowerUp(s.ctx, id, " Double_Score ")
	s.Require().NoError(err)
	s.Assert().Equal(20, res.Snapshot.Score)
	s.Assert().Equal(0, res.Snapshot.PowerUpCharge)

	_, err = s.svc.ActivatePowerUp(s.ctx, id, models.FreezeTimer)
	s.Assert().True(apperrors.HasCode(err, apperrors.ErrCodeInvalidPrecondition))

	res, err = s.svc.LevelUp(s.ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(models.Wizard, res.Snapshot.Tier)
	s.Assert().Equal(0, res.Snapshot.CorrectStreak)
	s.Assert().False(res.Snapshot.CanLevelUp)
}

func (s *GameServiceSuite) TestGameOverUpdatesLeaderboard() {
	s.seed("[10,7]")

	started, err := s.svc.Start(s.ctx)
	s.Require().NoError(err)
	id := started.Snapshot.ID

	_, err = s.svc.Result(s.ctx, id)
	s.Assert().True(apperrors.HasCode(err, apperrors.ErrCodeInvalidPrecondition))

	for i := 0; i < 7; i++ {
		_, err = s.svc.Submit(s.ctx, id, "10")
		s.Require().NoError(err)
	}
	s.expire()

	snap, err := s.svc.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(models.PhaseGameOver, snap.Phase)

	result, err := s.svc.Result(s.ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(7, result.Score)
	s.Assert().Equal(s.clock.Now(), result.FinishedAt)

	scores, err := s.store.Get(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]int{10, 7}, scores, "duplicate score collapses")
}

func (s *GameServiceSuite) TestGameOverAddsNewHighScore() {
	s.seed("[10,7]")

	started, err := s.svc.Start(s.ctx)
	s.Require().NoError(err)
	for i := 0; i < 12; i++ {
		_, err = s.svc.Submit(s.ctx, started.Snapshot.ID, "10")
		s.Require().NoError(err)
	}
	s.expire()

	// The final tick is handled before the runner answers another request.
	_, err = s.svc.Get(s.ctx, started.Snapshot.ID)
	s.Require().NoError(err)

	lb, err := s.board.List(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]models.LeaderboardEntry{
		{Rank: 1, Score: 12},
		{Rank: 2, Score: 10},
		{Rank: 3, Score: 7},
	}, lb.Entries)
}

func (s *GameServiceSuite) TestFinishedSessionsAreRetired() {
	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		started, err := s.svc.Start(s.ctx)
		s.Require().NoError(err)
		ids = append(ids, started.Snapshot.ID)
	}
	s.Require().Len(s.svc.Sessions(), 3)

	s.expire()

	for _, id := range ids {
		snap, err := s.svc.Get(s.ctx, id)
		s.Require().NoError(err)
		s.Assert().Equal(models.PhaseGameOver, snap.Phase)
		s.Require().Len(snap.Notices, 1)
		s.Assert().Equal("Time is up!", snap.Notices[0].Title)
	}
	s.Assert().Empty(s.svc.Sessions(), "finished sessions are not live")
	s.Assert().Equal(0, s.clock.Active())

	// The final snapshot keeps answering reads and rejecting actions.
	snap, err := s.svc.Get(s.ctx, ids[0])
	s.Require().NoError(err)
	s.Assert().Len(snap.Notices, 1)

	res, err := s.svc.Submit(s.ctx, ids[0], "10")
	s.Assert().True(apperrors.HasCode(err, apperrors.ErrCodeInvalidPrecondition))
	s.Require().NotNil(res)
	s.Require().Len(res.Snapshot.Notices, 2)
	s.Assert().Equal("Game Over", res.Snapshot.Notices[1].Title)

	result, err := s.svc.Result(s.ctx, ids[0])
	s.Require().NoError(err)
	s.Assert().Equal(0, result.Score)

	s.Require().NoError(s.svc.Leave(s.ctx, ids[0]))
	_, err = s.svc.Result(s.ctx, ids[0])
	s.Assert().True(apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}

func (s *GameServiceSuite) TestLeaveDiscardsWithoutRecording() {
	started, err := s.svc.Start(s.ctx)
	s.Require().NoError(err)
	id := started.Snapshot.ID
	_, err = s.svc.Submit(s.ctx, id, "10")
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Leave(s.ctx, id))

	s.Assert().Equal(0, s.clock.Active(), "timer is cancelled")
	s.Assert().Empty(s.svc.Sessions())
	_, err = s.svc.Get(s.ctx, id)
	s.Assert().True(apperrors.HasCode(err, apperrors.ErrCodeNotFound))

	scores, err := s.store.Get(s.ctx)
	s.Require().NoError(err)
	s.Assert().Empty(scores)
}

func (s *GameServiceSuite) TestShutdownClosesSessions() {
	_, err := s.svc.Start(s.ctx)
	s.Require().NoError(err)
	_, err = s.svc.Start(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(s.svc.Sessions(), 2)

	s.svc.Shutdown()

	s.Assert().Empty(s.svc.Sessions())
	s.Assert().Equal(0, s.clock.Active())
	_, err = s.svc.Start(s.ctx)
	s.Assert().Error(err)
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceSuite))
}
