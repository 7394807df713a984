package usecase

import (
	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/leaderboard"
)

const defaultTopLimit = 100

type leaderboardImpl struct {
	leaderboard leaderboard.Repo
}

func NewLeaderboard(lb leaderboard.Repo) leaderboard.Usecase {
	return &leaderboardImpl{lb}
}

func (im *leaderboardImpl) Get(c ctx.Ctx, userId domain.UserId) (*leaderboard.Entry, error) {
	entry, err := im.leaderboard.Get(c, userId)
	if err == domain.ErrUserNotFound {
		// users who never bid simply have no score yet
		return &leaderboard.Entry{UserId: userId.ToLower(), Score: 0}, nil
	} else if err != nil {
		c.WithField("err", err).Error("leaderboard.Get failed")
		return nil, err
	}
	return entry, nil
}

func (im *leaderboardImpl) Top(c ctx.Ctx, limit int32) ([]*leaderboard.Entry, error) {
	if limit <= 0 || limit > defaultTopLimit {
		limit = defaultTopLimit
	}

	entries, err := im.leaderboard.Top(c, limit)
	if err != nil {
		c.WithField("err", err).Error("leaderboard.Top failed")
		return nil, err
	}
	return entries, nil
}
