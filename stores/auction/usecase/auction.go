package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/bidhaus/goapi/base/backoff"
	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/ptr"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/domain/keys"
	"github.com/bidhaus/goapi/domain/wallet"
	"github.com/bidhaus/goapi/service/cache"
	compoundcache "github.com/bidhaus/goapi/service/cache/compoundCache"
	"github.com/bidhaus/goapi/service/cache/provider/primitive"
	redisCache "github.com/bidhaus/goapi/service/cache/provider/redis"
	"github.com/bidhaus/goapi/service/query"
	"github.com/bidhaus/goapi/service/redis"
)

const (
	maxCommitAttempts = 3
	backoffStart      = 10 * time.Millisecond
	backoffLimit      = 100 * time.Millisecond

	// snapshots go stale within seconds because the phase is derived from
	// the clock, so the cache only shaves hot-auction read bursts
	snapshotTtl   = 5 * time.Second
	viewDedupeTtl = 24 * time.Hour
)

var timeNow = time.Now

type auctionImpl struct {
	q             query.Mongo
	auction       auction.Repo
	wallet        wallet.Repo
	redis         redis.Service
	snapshotCache cache.Service
}

func NewAuction(q query.Mongo, auctionRepo auction.Repo, walletRepo wallet.Repo, redisService redis.Service) auction.Usecase {
	cacheServices := []cache.Service{
		cache.New(cache.ServiceConfig{
			Ttl:   snapshotTtl,
			Pfx:   keys.PfxAuctionSnapshot,
			Cache: primitive.NewPrimitive(keys.PfxAuctionSnapshot, 512),
		}),
	}

	if redisService != nil {
		cacheServices = append(cacheServices, cache.New(cache.ServiceConfig{
			Ttl:   snapshotTtl,
			Pfx:   keys.PfxAuctionSnapshot,
			Cache: redisCache.NewRedis(redisService),
		}))
	}

	return &auctionImpl{
		q:             q,
		auction:       auctionRepo,
		wallet:        walletRepo,
		redis:         redisService,
		snapshotCache: compoundcache.NewCompoundCache(cacheServices),
	}
}

func (im *auctionImpl) Get(c ctx.Ctx, id auction.Id) (*auction.Snapshot, error) {
	res := &auction.Snapshot{}
	key := keys.RedisKey(string(id.Category), id.AuctionId)

	if err := im.snapshotCache.GetByFunc(c, key, res, func() (interface{}, error) {
		a, err := im.auction.FindOne(c, id)
		if err != nil {
			return nil, err
		}
		return auction.MakeSnapshot(a, timeNow()), nil
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *auctionImpl) Create(c ctx.Ctx, value *auction.Auction) (*auction.Auction, error) {
	if value.Title == "" || value.SellerId.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}
	if value.StartingPrice <= 0 || value.MinIncrement <= 0 {
		return nil, domain.ErrBadParamInput
	}
	if !value.EndTime.After(value.StartTime) {
		return nil, domain.ErrBadParamInput
	}
	if !value.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	if err := value.Attributes.Validate(value.Category); err != nil {
		return nil, err
	}

	if value.AuctionId == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			c.WithField("err", err).Error("uuid.NewRandom failed")
			return nil, err
		}
		value.AuctionId = id.String()
	}

	now := timeNow()
	value.CurrentPrice = value.StartingPrice
	value.BidCount = 0
	value.ExtendCount = 0
	value.HighestBidderId = ""
	value.WinnerId = ""
	value.CreatedAt = now
	value.Status = value.PhaseAt(now)

	if err := im.auction.Create(c, value); err != nil {
		c.WithField("err", err).Error("auction.Create failed")
		return nil, err
	}
	return value, nil
}

func (im *auctionImpl) Extend(c ctx.Ctx, id auction.Id, userId domain.UserId) (*auction.ExtendResult, error) {
	if userId.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}

	res := &auction.ExtendResult{}
	commit := func(c ctx.Ctx) error {
		a, err := im.auction.FindOne(c, id)
		if err != nil {
			return err
		}
		if a.PhaseAt(timeNow()) == auction.PhaseCompleted {
			return domain.ErrAuctionEnded
		}
		if !a.SellerId.Equals(userId) {
			return domain.ErrBadParamInput
		}
		if a.ExtendCount >= auction.MaxExtensionCount {
			return domain.ErrMaxExtensions
		}

		if err := im.wallet.Debit(c, userId, wallet.TokenExtend); err != nil {
			return err
		}

		extendCount := a.ExtendCount + 1
		newEndTime := a.EndTime.Add(auction.ExtensionDuration)
		if err := im.auction.Update(c, id, &auction.Updater{
			ExtendCount: &extendCount,
			EndTime:     &newEndTime,
		}); err != nil {
			return err
		}

		res.NewEndTime = newEndTime
		res.ExtendCount = extendCount
		return nil
	}

	if err := im.runBounded(c, commit); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *auctionImpl) Promote(c ctx.Ctx, id auction.Id, userId domain.UserId) (*auction.PromoteResult, error) {
	if userId.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}

	res := &auction.PromoteResult{}
	commit := func(c ctx.Ctx) error {
		a, err := im.auction.FindOne(c, id)
		if err != nil {
			return err
		}
		if a.IsPromoted {
			res.Promoted = true
			return nil
		}

		w, err := im.wallet.FindOne(c, userId)
		if err != nil {
			return err
		}

		// free tier is handed off to the paid flow instead of spending a
		// token it may even hold
		if !w.Tier.GrantsFreePromotion() {
			res.RequiresPayment = true
			return nil
		}

		if err := im.wallet.Debit(c, userId, wallet.TokenPromotion); err != nil {
			return err
		}

		if err := im.auction.Update(c, id, &auction.Updater{
			IsPromoted: ptr.Bool(true),
		}); err != nil {
			return err
		}

		res.Promoted = true
		return nil
	}

	if err := im.runBounded(c, commit); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *auctionImpl) Finalize(c ctx.Ctx, id auction.Id) (*auction.Auction, error) {
	var finalized *auction.Auction
	commit := func(c ctx.Ctx) error {
		a, err := im.auction.FindOne(c, id)
		if err != nil {
			return err
		}
		if a.PhaseAt(timeNow()) != auction.PhaseCompleted {
			return domain.ErrAuctionNotEnded
		}
		if !a.WinnerId.IsEmpty() {
			return domain.ErrAlreadyFinalized
		}

		status := auction.PhaseCompleted
		updater := &auction.Updater{Status: &status}
		if !a.HighestBidderId.IsEmpty() {
			updater.WinnerId = a.HighestBidderId.ToLowerPtr()
		}
		if err := im.auction.Update(c, id, updater); err != nil {
			return err
		}

		a.WinnerId = a.HighestBidderId
		a.Status = status
		finalized = a
		return nil
	}

	if err := im.runBounded(c, commit); err != nil {
		return nil, err
	}
	return finalized, nil
}

func (im *auctionImpl) IncrementViewCount(c ctx.Ctx, id auction.Id, viewerKey string) error {
	if viewerKey == "" {
		return domain.ErrBadParamInput
	}

	key := keys.RedisKey(keys.PfxAuctionView, string(id.Category), id.AuctionId, viewerKey)
	claimed, err := im.redis.SetNX(c, key, []byte("1"), viewDedupeTtl)
	if err != nil {
		c.WithField("err", err).Error("redis.SetNX failed")
		return err
	}
	if !claimed {
		return nil
	}

	if err := im.auction.IncrementViewCount(c, id); err != nil {
		c.WithField("err", err).Error("auction.IncrementViewCount failed")
		return err
	}
	return nil
}

// runBounded commits fn inside a transaction, retrying transient conflicts a
// fixed number of times before giving up with ErrContention.
func (im *auctionImpl) runBounded(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	bo := backoff.NewExponential(backoffStart, backoffLimit)
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		err := im.q.RunWithTransaction(c, fn)
		if err == query.ErrTxConflict {
			if err := bo.Backoff(c); err != nil {
				return err
			}
			continue
		}
		return err
	}
	return domain.ErrContention
}
