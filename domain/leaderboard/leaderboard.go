package leaderboard

import (
	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
)

// BidReward is credited to both bidder and seller inside every accepted
// bid's transaction.
const BidReward = 5

type Entry struct {
	UserId domain.UserId `json:"userId" bson:"userId"`
	Score  int64         `json:"score" bson:"score"`
}

type Repo interface {
	// IncrementScore adds delta to the user's score, creating the entry on
	// first write.
	IncrementScore(c ctx.Ctx, userId domain.UserId, delta int64) error
	Get(c ctx.Ctx, userId domain.UserId) (*Entry, error)
	Top(c ctx.Ctx, limit int32) ([]*Entry, error)
}

type Usecase interface {
	Get(c ctx.Ctx, userId domain.UserId) (*Entry, error)
	Top(c ctx.Ctx, limit int32) ([]*Entry, error)
}
