package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/database/mongoclient"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/service/query"
)

type auctionImpl struct {
	q query.Mongo
}

func NewAuction(q query.Mongo) auction.Repo {
	return &auctionImpl{q}
}

func (im *auctionImpl) FindOne(c ctx.Ctx, id auction.Id) (*auction.Auction, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	res := &auction.Auction{}
	if err := im.q.FindOne(c, domain.TableAuctions, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrAuctionNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *auctionImpl) FindAll(c ctx.Ctx, optFns ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	opts, err := auction.ParseFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("auction.ParseFindAllOptions failed")
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

	res := []*auction.Auction{}
	if err := im.q.Search(c, domain.TableAuctions, offset, limit, "-createdAt", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *auctionImpl) Create(c ctx.Ctx, value *auction.Auction) error {
	value.SellerId = value.SellerId.ToLower()
	if err := im.q.Insert(c, domain.TableAuctions, value); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *auctionImpl) Update(c ctx.Ctx, id auction.Id, updater *auction.Updater) error {
	slt, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	val, err := mongoclient.MakeBsonM(updater)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.q.Patch(c, domain.TableAuctions, slt, val); err == query.ErrNotFound {
		return domain.ErrAuctionNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *auctionImpl) IncrementViewCount(c ctx.Ctx, id auction.Id) error {
	slt, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	update := bson.M{"$inc": bson.M{"viewCount": 1}}
	if err := im.q.CustomPatch(c, domain.TableAuctions, slt, update, false); err == query.ErrNotFound {
		return domain.ErrAuctionNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.CustomPatch failed")
		return err
	}
	return nil
}
