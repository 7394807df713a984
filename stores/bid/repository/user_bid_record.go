package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/domain/bid"
	"github.com/bidhaus/goapi/service/query"
)

var timeNow = time.Now

type userBidRecordImpl struct {
	q query.Mongo
}

func NewUserBidRecord(q query.Mongo) bid.RecordRepo {
	return &userBidRecordImpl{q}
}

func (im *userBidRecordImpl) Append(c ctx.Ctx, value *bid.AppendHistory) error {
	slt := bson.M{
		"userId":    value.UserId.ToLower(),
		"category":  value.Key.Category,
		"auctionId": value.Key.AuctionId,
	}

	update := bson.M{
		"$set": bson.M{
			"title":       value.Title,
			"endTime":     value.EndTime,
			"lastUpdated": timeNow(),
		},
		"$push": bson.M{"history": value.Entry},
	}

	if err := im.q.CustomPatch(c, domain.TableUserBidRecords, slt, update, true); err != nil {
		c.WithField("err", err).Error("q.CustomPatch failed")
		return err
	}
	return nil
}

func (im *userBidRecordImpl) FindByUser(c ctx.Ctx, userId domain.UserId) ([]*bid.UserBidRecord, error) {
	qry := bson.M{"userId": userId.ToLower()}

	res := []*bid.UserBidRecord{}
	if err := im.q.Search(c, domain.TableUserBidRecords, 0, 0, "-lastUpdated", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *userBidRecordImpl) FindOne(c ctx.Ctx, userId domain.UserId, key auction.Id) (*bid.UserBidRecord, error) {
	qry := bson.M{
		"userId":    userId.ToLower(),
		"category":  key.Category,
		"auctionId": key.AuctionId,
	}

	res := &bid.UserBidRecord{}
	if err := im.q.FindOne(c, domain.TableUserBidRecords, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}
