package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/leaderboard"
	mLeaderboard "github.com/bidhaus/goapi/domain/leaderboard/mocks"
)

type leaderboardSuite struct {
	suite.Suite

	repo *mLeaderboard.Repo
	im   leaderboard.Usecase
}

func TestLeaderboardSuite(t *testing.T) {
	suite.Run(t, new(leaderboardSuite))
}

func (s *leaderboardSuite) SetupTest() {
	s.repo = &mLeaderboard.Repo{}
	s.im = NewLeaderboard(s.repo)
}

func (s *leaderboardSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func (s *leaderboardSuite) TestGet() {
	c := ctx.Background()
	entry := &leaderboard.Entry{UserId: "alice", Score: 25}
	s.repo.On("Get", mock.Anything, domain.UserId("alice")).Return(entry, nil)

	res, err := s.im.Get(c, "alice")
	s.NoError(err)
	s.Equal(entry, res)
}

func (s *leaderboardSuite) TestGetUnknownUserHasZeroScore() {
	c := ctx.Background()
	s.repo.On("Get", mock.Anything, domain.UserId("Nobody")).Return(nil, domain.ErrUserNotFound)

	res, err := s.im.Get(c, "Nobody")
	s.NoError(err)
	s.Equal(domain.UserId("nobody"), res.UserId)
	s.Equal(int64(0), res.Score)
}

func (s *leaderboardSuite) TestTopClampsLimit() {
	c := ctx.Background()
	entries := []*leaderboard.Entry{
		{UserId: "alice", Score: 25},
		{UserId: "bob", Score: 10},
	}
	s.repo.On("Top", mock.Anything, int32(defaultTopLimit)).Return(entries, nil)

	res, err := s.im.Top(c, 0)
	s.NoError(err)
	s.Equal(entries, res)
}
