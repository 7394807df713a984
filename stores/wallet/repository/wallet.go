package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/wallet"
	"github.com/bidhaus/goapi/service/query"
)

type walletImpl struct {
	q query.Mongo
}

func NewWallet(q query.Mongo) wallet.Repo {
	return &walletImpl{q}
}

func balanceField(kind wallet.TokenKind) string {
	if kind == wallet.TokenPromotion {
		return "promotionTokenBalance"
	}
	return "extendTokenBalance"
}

func (im *walletImpl) FindOne(c ctx.Ctx, userId domain.UserId) (*wallet.Wallet, error) {
	qry := bson.M{"userId": userId.ToLower()}

	res := &wallet.Wallet{}
	if err := im.q.FindOne(c, domain.TableWallets, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrUserNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *walletImpl) Debit(c ctx.Ctx, userId domain.UserId, kind wallet.TokenKind) error {
	field := balanceField(kind)

	// the selector only matches while a token is left, so draining the
	// last one concurrently comes back as not found
	slt := bson.M{
		"userId": userId.ToLower(),
		field:    bson.M{"$gt": 0},
	}
	update := bson.M{"$inc": bson.M{field: -1}}

	if err := im.q.CustomPatch(c, domain.TableWallets, slt, update, false); err == query.ErrNotFound {
		return domain.ErrNoTokens
	} else if err != nil {
		c.WithField("err", err).Error("q.CustomPatch failed")
		return err
	}
	return nil
}

func (im *walletImpl) Credit(c ctx.Ctx, userId domain.UserId, kind wallet.TokenKind, amount int) error {
	slt := bson.M{"userId": userId.ToLower()}
	update := bson.M{
		"$inc":         bson.M{balanceField(kind): amount},
		"$setOnInsert": bson.M{"tier": domain.TierFree},
	}

	if err := im.q.CustomPatch(c, domain.TableWallets, slt, update, true); err != nil {
		c.WithField("err", err).Error("q.CustomPatch failed")
		return err
	}
	return nil
}
