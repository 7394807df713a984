package wallet

import (
	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
)

// TokenKind names the consumable credit types the engine spends.
type TokenKind string

const (
	TokenExtend    TokenKind = "extend"
	TokenPromotion TokenKind = "promotion"
)

// Wallet holds a user's consumable token balances and subscription tier.
// Balances are never negative and are only debited inside the transaction
// that commits the funded auction mutation.
type Wallet struct {
	UserId                domain.UserId           `json:"userId" bson:"userId"`
	ExtendTokenBalance    int                     `json:"extendTokenBalance" bson:"extendTokenBalance"`
	PromotionTokenBalance int                     `json:"promotionTokenBalance" bson:"promotionTokenBalance"`
	Tier                  domain.SubscriptionTier `json:"tier" bson:"tier"`
}

type Repo interface {
	FindOne(c ctx.Ctx, userId domain.UserId) (*Wallet, error)
	// Debit decrements one token of the given kind. The guard that the
	// balance stays non-negative lives in the selector, so a concurrent
	// debit of the last token fails with domain.ErrNoTokens.
	Debit(c ctx.Ctx, userId domain.UserId, kind TokenKind) error
	// Credit adds tokens, creating the wallet on first write. This is the
	// path the billing collaborator calls after a successful purchase.
	Credit(c ctx.Ctx, userId domain.UserId, kind TokenKind, amount int) error
}

type Usecase interface {
	Get(c ctx.Ctx, userId domain.UserId) (*Wallet, error)
	Credit(c ctx.Ctx, userId domain.UserId, kind TokenKind, amount int) (*Wallet, error)
}
