package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/leaderboard"
	"github.com/bidhaus/goapi/service/query"
)

type leaderboardImpl struct {
	q query.Mongo
}

func NewLeaderboard(q query.Mongo) leaderboard.Repo {
	return &leaderboardImpl{q}
}

func (im *leaderboardImpl) IncrementScore(c ctx.Ctx, userId domain.UserId, delta int64) error {
	slt := bson.M{"userId": userId.ToLower()}

	res := &leaderboard.Entry{}
	if err := im.q.Increment(c, domain.TableLeaderboard, slt, res, "score", delta); err != nil {
		c.WithField("err", err).Error("q.Increment failed")
		return err
	}
	return nil
}

func (im *leaderboardImpl) Get(c ctx.Ctx, userId domain.UserId) (*leaderboard.Entry, error) {
	qry := bson.M{"userId": userId.ToLower()}

	res := &leaderboard.Entry{}
	if err := im.q.FindOne(c, domain.TableLeaderboard, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrUserNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *leaderboardImpl) Top(c ctx.Ctx, limit int32) ([]*leaderboard.Entry, error) {
	res := []*leaderboard.Entry{}
	if err := im.q.Search(c, domain.TableLeaderboard, 0, int(limit), "-score", bson.M{}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
