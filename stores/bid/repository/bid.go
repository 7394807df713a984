package repository

import (
	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/database/mongoclient"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/bid"
	"github.com/bidhaus/goapi/service/query"
)

type bidImpl struct {
	q query.Mongo
}

func NewBid(q query.Mongo) bid.Repo {
	return &bidImpl{q}
}

func (im *bidImpl) Insert(c ctx.Ctx, value *bid.Bid) error {
	value.BidderId = value.BidderId.ToLower()
	if err := im.q.Insert(c, domain.TableBids, value); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *bidImpl) FindAll(c ctx.Ctx, optFns ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	opts, err := bid.ParseFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("bid.ParseFindAllOptions failed")
		return nil, err
	}

	offset := int(0)
	limit := int(0)
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	qry, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	// ledger order is ascending acceptance time, which also means
	// ascending amount
	res := []*bid.Bid{}
	if err := im.q.Search(c, domain.TableBids, offset, limit, "acceptedAt", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *bidImpl) Count(c ctx.Ctx, optFns ...bid.FindAllOptionsFunc) (int, error) {
	opts, err := bid.ParseFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("bid.ParseFindAllOptions failed")
		return 0, err
	}

	if qry, err := mongoclient.MakeBsonM(opts); err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return 0, err
	} else if count, err := im.q.Count(c, domain.TableBids, qry); err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	} else {
		return count, nil
	}
}
