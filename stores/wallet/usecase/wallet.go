package usecase

import (
	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/wallet"
)

type walletImpl struct {
	wallet wallet.Repo
}

func NewWallet(walletRepo wallet.Repo) wallet.Usecase {
	return &walletImpl{walletRepo}
}

func (im *walletImpl) Get(c ctx.Ctx, userId domain.UserId) (*wallet.Wallet, error) {
	w, err := im.wallet.FindOne(c, userId)
	if err != nil {
		c.WithField("err", err).Error("wallet.FindOne failed")
		return nil, err
	}
	return w, nil
}

func (im *walletImpl) Credit(c ctx.Ctx, userId domain.UserId, kind wallet.TokenKind, amount int) (*wallet.Wallet, error) {
	if userId.IsEmpty() || amount <= 0 {
		return nil, domain.ErrBadParamInput
	}
	if kind != wallet.TokenExtend && kind != wallet.TokenPromotion {
		return nil, domain.ErrBadParamInput
	}

	if err := im.wallet.Credit(c, userId, kind, amount); err != nil {
		c.WithField("err", err).Error("wallet.Credit failed")
		return nil, err
	}

	w, err := im.wallet.FindOne(c, userId)
	if err != nil {
		c.WithField("err", err).Error("wallet.FindOne failed")
		return nil, err
	}
	return w, nil
}
