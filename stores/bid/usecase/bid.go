package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	"github.com/bidhaus/goapi/base/backoff"
	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/goroutine"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/domain/bid"
	"github.com/bidhaus/goapi/domain/leaderboard"
	"github.com/bidhaus/goapi/domain/notification"
	"github.com/bidhaus/goapi/service/query"
)

const (
	maxCommitAttempts = 3
	backoffStart      = 10 * time.Millisecond
	backoffLimit      = 100 * time.Millisecond
	enrichPoolSize    = 16
)

var timeNow = time.Now

// displaced captures who lost the highest-bidder slot in a committed bid.
type displaced struct {
	userId domain.UserId
	key    auction.Id
	title  string
}

type bidImpl struct {
	q            query.Mongo
	auction      auction.Repo
	bid          bid.Repo
	record       bid.RecordRepo
	leaderboard  leaderboard.Repo
	notification notification.Usecase
	enrichPool   *goroutines.Pool
}

func NewBid(
	q query.Mongo,
	auctionRepo auction.Repo,
	bidRepo bid.Repo,
	record bid.RecordRepo,
	lb leaderboard.Repo,
	noti notification.Usecase,
) bid.Usecase {
	return &bidImpl{
		q:            q,
		auction:      auctionRepo,
		bid:          bidRepo,
		record:       record,
		leaderboard:  lb,
		notification: noti,
		enrichPool:   goroutines.NewPool(enrichPoolSize),
	}
}

func (im *bidImpl) PlaceBid(c ctx.Ctx, req *bid.PlaceBidRequest) (*bid.PlaceBidResult, error) {
	if req.BidderId.IsEmpty() || req.Amount <= 0 {
		return nil, domain.ErrBadParamInput
	}
	if !req.AuctionKey.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}

	bo := backoff.NewExponential(backoffStart, backoffLimit)
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		res, out, err := im.placeBidOnce(c, req)
		if err == query.ErrTxConflict {
			if err := bo.Backoff(c); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return res, err
		}

		if !out.userId.IsEmpty() && !out.userId.Equals(req.BidderId) {
			im.notifyOutbid(out)
		}
		return res, nil
	}
	return nil, domain.ErrContention
}

// placeBidOnce commits a single attempt. Validation runs against the record
// read inside the transaction, so a concurrently accepted raise either
// aborts this one with a conflict or fails the floor check honestly.
func (im *bidImpl) placeBidOnce(c ctx.Ctx, req *bid.PlaceBidRequest) (*bid.PlaceBidResult, displaced, error) {
	res := &bid.PlaceBidResult{}
	out := displaced{}

	err := im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		a, err := im.auction.FindOne(c, req.AuctionKey)
		if err != nil {
			return err
		}

		now := timeNow()
		if err := a.ValidateBid(now, req.BidderId, req.Amount); err != nil {
			res.BidCount = a.BidCount
			res.Floor, res.Ceiling = a.BidBounds()
			return err
		}

		out = displaced{
			userId: a.HighestBidderId,
			key:    req.AuctionKey,
			title:  a.Title,
		}

		id, err := uuid.NewRandom()
		if err != nil {
			c.WithField("err", err).Error("uuid.NewRandom failed")
			return err
		}

		if err := im.bid.Insert(c, &bid.Bid{
			BidId:             id.String(),
			Category:          req.AuctionKey.Category,
			AuctionId:         req.AuctionKey.AuctionId,
			BidderId:          req.BidderId,
			BidderDisplayName: req.BidderName,
			Amount:            req.Amount,
			AcceptedAt:        now,
		}); err != nil {
			return err
		}

		bidCount := a.BidCount + 1
		if err := im.auction.Update(c, req.AuctionKey, &auction.Updater{
			CurrentPrice:    &req.Amount,
			BidCount:        &bidCount,
			HighestBidderId: req.BidderId.ToLowerPtr(),
		}); err != nil {
			return err
		}

		if err := im.record.Append(c, &bid.AppendHistory{
			UserId:  req.BidderId,
			Key:     req.AuctionKey,
			Title:   a.Title,
			EndTime: a.EndTime,
			Entry:   bid.HistoryEntry{Amount: req.Amount, BidAt: now},
		}); err != nil {
			return err
		}

		if err := im.leaderboard.IncrementScore(c, req.BidderId, leaderboard.BidReward); err != nil {
			return err
		}
		if err := im.leaderboard.IncrementScore(c, a.SellerId, leaderboard.BidReward); err != nil {
			return err
		}

		a.CurrentPrice = req.Amount
		res.AcceptedAmount = req.Amount
		res.BidCount = bidCount
		res.Floor, res.Ceiling = a.BidBounds()
		return nil
	})
	if err != nil {
		return res, displaced{}, err
	}
	return res, out, nil
}

// notifyOutbid runs after commit on a detached context. A lost or failed
// notification never unwinds the accepted bid.
func (im *bidImpl) notifyOutbid(d displaced) {
	c := ctx.Background()
	goroutine.RecoverableGo(func() {
		if err := im.notification.NotifyOutbid(c, d.userId, d.key, d.title); err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"userId": d.userId,
			}).Warn("NotifyOutbid failed")
		}
	})
}

func (im *bidImpl) GetLedger(c ctx.Ctx, id auction.Id, offset, limit int32) ([]*bid.Bid, int, error) {
	items, err := im.bid.FindAll(c, bid.WithAuction(id), bid.WithPagination(offset, limit))
	if err != nil {
		c.WithField("err", err).Error("bid.FindAll failed")
		return nil, 0, err
	}

	count, err := im.bid.Count(c, bid.WithAuction(id))
	if err != nil {
		c.WithField("err", err).Error("bid.Count failed")
		return nil, 0, err
	}
	return items, count, nil
}

func (im *bidImpl) GetUserRecords(c ctx.Ctx, userId domain.UserId) ([]*bid.UserBidRecordInfo, error) {
	records, err := im.record.FindByUser(c, userId)
	if err != nil {
		c.WithField("err", err).Error("record.FindByUser failed")
		return nil, err
	}

	now := timeNow()
	res := make([]*bid.UserBidRecordInfo, len(records))
	done := make(chan struct{}, len(records))
	for i, r := range records {
		i, r := i, r
		im.enrichPool.Schedule(func() {
			defer func() { done <- struct{}{} }()

			info := &bid.UserBidRecordInfo{UserBidRecord: *r}
			key := auction.Id{Category: r.Category, AuctionId: r.AuctionId}
			if a, err := im.auction.FindOne(c, key); err != nil {
				c.WithFields(log.Fields{
					"err":       err,
					"category":  r.Category,
					"auctionId": r.AuctionId,
				}).Warn("auction.FindOne failed")
			} else {
				info.Auction = auction.MakeSnapshot(a, now)
			}
			res[i] = info
		})
	}
	for range records {
		<-done
	}
	return res, nil
}
