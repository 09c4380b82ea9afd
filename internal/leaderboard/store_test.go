package leaderboard_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/arithmetica/internal/leaderboard"
	"github.com/vytor/arithmetica/internal/repository/sqlite"
	"github.com/vytor/arithmetica/internal/testutil"
	"github.com/vytor/arithmetica/internal/testutil/mocks"
)

type StoreSuite struct {
	suite.Suite
	db    *sql.DB
	store leaderboard.Store
}

func (s *StoreSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.store = leaderboard.NewStore(sqlite.NewKeyValueRepository(s.db))
}

func (s *StoreSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StoreSuite) TestGet_NeverWritten() {
	scores, err := s.store.Get(context.Background())
	s.Require().NoError(err)
	s.Assert().Equal([]int{}, scores)
}

func (s *StoreSuite) seed(value string) {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO kv_store (key, value) VALUES (?, ?)`, leaderboard.Key, value)
	s.Require().NoError(err)
}

func (s *StoreSuite) TestGet_Stored() {
	s.seed("[12,10,7]")

	scores, err := s.store.Get(context.Background())
	s.Require().NoError(err)
	s.Assert().Equal([]int{12, 10, 7}, scores)
}

func (s *StoreSuite) TestClear() {
	ctx := context.Background()
	s.seed("[12,10,7]")

	s.Require().NoError(s.store.Clear(ctx))
	scores, err := s.store.Get(ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]int{}, scores)

	s.Assert().NoError(s.store.Clear(ctx), "clearing twice is fine")
}

func (s *StoreSuite) TestRecord() {
	ctx := context.Background()
	s.seed("[10,7]")

	scores, err := s.store.Record(ctx, 7, 0)
	s.Require().NoError(err)
	s.Assert().Equal([]int{10, 7}, scores)

	scores, err = s.store.Record(ctx, 12, 0)
	s.Require().NoError(err)
	s.Assert().Equal([]int{12, 10, 7}, scores)

	stored, err := s.store.Get(ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]int{12, 10, 7}, stored)
}

func (s *StoreSuite) TestRecord_FirstScore() {
	scores, err := s.store.Record(context.Background(), 0, 0)
	s.Require().NoError(err)
	s.Assert().Equal([]int{0}, scores)
}

func (s *StoreSuite) TestRecord_CorruptValue() {
	ctx := context.Background()
	s.seed("{oops")

	_, err := s.store.Record(ctx, 5, 0)
	s.Assert().Error(err)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func TestStore_GetPropagatesRepositoryError(t *testing.T) {
	repo := new(mocks.MockKeyValueRepository)
	repo.On("Get", mock.Anything, leaderboard.Key).Return("", false, errors.New("disk I/O error"))

	_, err := leaderboard.NewStore(repo).Get(context.Background())

	assert.Error(t, err)
	repo.AssertExpectations(t)
}
