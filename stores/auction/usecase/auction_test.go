package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	mAuction "github.com/bidhaus/goapi/domain/auction/mocks"
	"github.com/bidhaus/goapi/domain/wallet"
	mWallet "github.com/bidhaus/goapi/domain/wallet/mocks"
	"github.com/bidhaus/goapi/service/query"
	mRedis "github.com/bidhaus/goapi/service/redis/mocks"
)

// fakeMongo runs transactions inline, optionally failing the first few
// attempts with a transient conflict.
type fakeMongo struct {
	query.Mongo
	conflicts int
}

func (f *fakeMongo) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	if f.conflicts > 0 {
		f.conflicts--
		return query.ErrTxConflict
	}
	return run(c)
}

type auctionSuite struct {
	suite.Suite

	mongo       *fakeMongo
	auctionRepo *mAuction.Repo
	walletRepo  *mWallet.Repo
	redis       *mRedis.Service

	now time.Time
	im  *auctionImpl
}

func TestAuctionSuite(t *testing.T) {
	suite.Run(t, new(auctionSuite))
}

func (s *auctionSuite) SetupTest() {
	s.mongo = &fakeMongo{}
	s.auctionRepo = &mAuction.Repo{}
	s.walletRepo = &mWallet.Repo{}
	s.redis = &mRedis.Service{}

	s.now = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return s.now }

	s.im = NewAuction(s.mongo, s.auctionRepo, s.walletRepo, nil).(*auctionImpl)
	s.im.redis = s.redis
}

func (s *auctionSuite) TearDownTest() {
	timeNow = time.Now
	s.auctionRepo.AssertExpectations(s.T())
	s.walletRepo.AssertExpectations(s.T())
	s.redis.AssertExpectations(s.T())
}

func (s *auctionSuite) mockAuction() *auction.Auction {
	return &auction.Auction{
		Category:      auction.CategoryArt,
		AuctionId:     "a1",
		SellerId:      "seller1",
		Title:         "sunset oil painting",
		StartingPrice: 100,
		CurrentPrice:  130,
		BidCount:      3,
		MinIncrement:  10,
		StartTime:     s.now.Add(-time.Hour),
		EndTime:       s.now.Add(time.Hour),
	}
}

func (s *auctionSuite) key() auction.Id {
	return auction.Id{Category: auction.CategoryArt, AuctionId: "a1"}
}

func (s *auctionSuite) TestGetServesFromSnapshotCache() {
	c := ctx.Background()
	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(s.mockAuction(), nil).Once()

	first, err := s.im.Get(c, s.key())
	s.NoError(err)
	s.Equal(auction.PhaseLive, first.Phase)
	s.Equal(int64(140), first.Floor)
	s.Equal(int64(230), first.Ceiling)

	// second read within the ttl never touches the repository
	second, err := s.im.Get(c, s.key())
	s.NoError(err)
	s.Equal(first.Floor, second.Floor)
}

func (s *auctionSuite) TestCreate() {
	c := ctx.Background()
	s.auctionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	created, err := s.im.Create(c, &auction.Auction{
		Category:      auction.CategoryArt,
		SellerId:      "seller1",
		Title:         "sunset oil painting",
		StartingPrice: 100,
		MinIncrement:  10,
		StartTime:     s.now.Add(time.Hour),
		EndTime:       s.now.Add(2 * time.Hour),
	})
	s.NoError(err)
	s.NotEmpty(created.AuctionId)
	s.Equal(int64(100), created.CurrentPrice)
	s.Equal(auction.PhaseUpcoming, created.Status)
	s.True(created.CreatedAt.Equal(s.now))
}

func (s *auctionSuite) TestCreateRejectsBadInput() {
	c := ctx.Background()

	_, err := s.im.Create(c, &auction.Auction{
		Category: auction.CategoryArt, SellerId: "seller1", Title: "x",
		StartingPrice: 0, MinIncrement: 10,
		StartTime: s.now, EndTime: s.now.Add(time.Hour),
	})
	s.Equal(domain.ErrBadParamInput, err)

	_, err = s.im.Create(c, &auction.Auction{
		Category: "furniture", SellerId: "seller1", Title: "x",
		StartingPrice: 100, MinIncrement: 10,
		StartTime: s.now, EndTime: s.now.Add(time.Hour),
	})
	s.Equal(domain.ErrInvalidCategory, err)

	// plate auctions have to carry the plate number
	_, err = s.im.Create(c, &auction.Auction{
		Category: auction.CategoryPlate, SellerId: "seller1", Title: "x",
		StartingPrice: 100, MinIncrement: 10,
		StartTime: s.now, EndTime: s.now.Add(time.Hour),
	})
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *auctionSuite) TestExtend() {
	c := ctx.Background()
	a := s.mockAuction()
	a.ExtendCount = 1

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)
	s.walletRepo.On("Debit", mock.Anything, domain.UserId("seller1"), wallet.TokenExtend).Return(nil)
	s.auctionRepo.On("Update", mock.Anything, s.key(), mock.MatchedBy(func(u *auction.Updater) bool {
		return *u.ExtendCount == 2 && u.EndTime.Equal(a.EndTime.Add(time.Hour))
	})).Return(nil)

	res, err := s.im.Extend(c, s.key(), "seller1")
	s.NoError(err)
	s.Equal(2, res.ExtendCount)
	s.True(res.NewEndTime.Equal(a.EndTime.Add(time.Hour)))
}

func (s *auctionSuite) TestExtendOnlySeller() {
	c := ctx.Background()
	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(s.mockAuction(), nil)

	_, err := s.im.Extend(c, s.key(), "alice")
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *auctionSuite) TestExtendAfterEnd() {
	c := ctx.Background()
	a := s.mockAuction()
	a.EndTime = s.now.Add(-time.Minute)

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)

	_, err := s.im.Extend(c, s.key(), "seller1")
	s.Equal(domain.ErrAuctionEnded, err)
}

func (s *auctionSuite) TestExtendCapReached() {
	c := ctx.Background()
	a := s.mockAuction()
	a.ExtendCount = auction.MaxExtensionCount

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)

	_, err := s.im.Extend(c, s.key(), "seller1")
	s.Equal(domain.ErrMaxExtensions, err)
}

func (s *auctionSuite) TestExtendWithoutTokens() {
	c := ctx.Background()
	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(s.mockAuction(), nil)
	s.walletRepo.On("Debit", mock.Anything, domain.UserId("seller1"), wallet.TokenExtend).
		Return(domain.ErrNoTokens)

	_, err := s.im.Extend(c, s.key(), "seller1")
	s.Equal(domain.ErrNoTokens, err)
}

func (s *auctionSuite) TestExtendContention() {
	c := ctx.Background()
	s.mongo.conflicts = maxCommitAttempts

	_, err := s.im.Extend(c, s.key(), "seller1")
	s.Equal(domain.ErrContention, err)
}

func (s *auctionSuite) TestPromoteFreeTierRequiresPayment() {
	c := ctx.Background()
	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(s.mockAuction(), nil)
	s.walletRepo.On("FindOne", mock.Anything, domain.UserId("seller1")).
		Return(&wallet.Wallet{UserId: "seller1", PromotionTokenBalance: 4, Tier: domain.TierFree}, nil)

	res, err := s.im.Promote(c, s.key(), "seller1")
	s.NoError(err)
	s.False(res.Promoted)
	s.True(res.RequiresPayment)
	s.walletRepo.AssertNotCalled(s.T(), "Debit", mock.Anything, mock.Anything, mock.Anything)
}

func (s *auctionSuite) TestPromotePlusTierSpendsToken() {
	c := ctx.Background()
	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(s.mockAuction(), nil)
	s.walletRepo.On("FindOne", mock.Anything, domain.UserId("seller1")).
		Return(&wallet.Wallet{UserId: "seller1", PromotionTokenBalance: 1, Tier: domain.TierPlus}, nil)
	s.walletRepo.On("Debit", mock.Anything, domain.UserId("seller1"), wallet.TokenPromotion).Return(nil)
	s.auctionRepo.On("Update", mock.Anything, s.key(), mock.MatchedBy(func(u *auction.Updater) bool {
		return u.IsPromoted != nil && *u.IsPromoted
	})).Return(nil)

	res, err := s.im.Promote(c, s.key(), "seller1")
	s.NoError(err)
	s.True(res.Promoted)
	s.False(res.RequiresPayment)
}

func (s *auctionSuite) TestPromoteWithoutTokens() {
	c := ctx.Background()
	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(s.mockAuction(), nil)
	s.walletRepo.On("FindOne", mock.Anything, domain.UserId("seller1")).
		Return(&wallet.Wallet{UserId: "seller1", Tier: domain.TierPro}, nil)
	s.walletRepo.On("Debit", mock.Anything, domain.UserId("seller1"), wallet.TokenPromotion).
		Return(domain.ErrNoTokens)

	_, err := s.im.Promote(c, s.key(), "seller1")
	s.Equal(domain.ErrNoTokens, err)
}

func (s *auctionSuite) TestPromoteAlreadyPromoted() {
	c := ctx.Background()
	a := s.mockAuction()
	a.IsPromoted = true

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)

	res, err := s.im.Promote(c, s.key(), "seller1")
	s.NoError(err)
	s.True(res.Promoted)
	s.walletRepo.AssertNotCalled(s.T(), "FindOne", mock.Anything, mock.Anything)
}

func (s *auctionSuite) TestFinalize() {
	c := ctx.Background()
	a := s.mockAuction()
	a.EndTime = s.now.Add(-time.Minute)
	a.HighestBidderId = "Alice"

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)
	s.auctionRepo.On("Update", mock.Anything, s.key(), mock.MatchedBy(func(u *auction.Updater) bool {
		return u.WinnerId != nil && *u.WinnerId == "alice" && *u.Status == auction.PhaseCompleted
	})).Return(nil)

	res, err := s.im.Finalize(c, s.key())
	s.NoError(err)
	s.Equal(domain.UserId("Alice"), res.WinnerId)
	s.Equal(auction.PhaseCompleted, res.Status)
}

func (s *auctionSuite) TestFinalizeWithoutBids() {
	c := ctx.Background()
	a := s.mockAuction()
	a.EndTime = s.now.Add(-time.Minute)

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)
	s.auctionRepo.On("Update", mock.Anything, s.key(), mock.MatchedBy(func(u *auction.Updater) bool {
		return u.WinnerId == nil && *u.Status == auction.PhaseCompleted
	})).Return(nil)

	res, err := s.im.Finalize(c, s.key())
	s.NoError(err)
	s.True(res.WinnerId.IsEmpty())
}

func (s *auctionSuite) TestFinalizeBeforeEnd() {
	c := ctx.Background()
	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(s.mockAuction(), nil)

	_, err := s.im.Finalize(c, s.key())
	s.Equal(domain.ErrAuctionNotEnded, err)
}

func (s *auctionSuite) TestFinalizeTwice() {
	c := ctx.Background()
	a := s.mockAuction()
	a.EndTime = s.now.Add(-time.Minute)
	a.WinnerId = "alice"

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)

	_, err := s.im.Finalize(c, s.key())
	s.Equal(domain.ErrAlreadyFinalized, err)
}

func (s *auctionSuite) TestIncrementViewCount() {
	c := ctx.Background()
	s.redis.On("SetNX", mock.Anything, mock.Anything, mock.Anything, viewDedupeTtl).Return(true, nil)
	s.auctionRepo.On("IncrementViewCount", mock.Anything, s.key()).Return(nil)

	s.NoError(s.im.IncrementViewCount(c, s.key(), "viewer-1"))
}

func (s *auctionSuite) TestIncrementViewCountDuplicateView() {
	c := ctx.Background()
	s.redis.On("SetNX", mock.Anything, mock.Anything, mock.Anything, viewDedupeTtl).Return(false, nil)

	s.NoError(s.im.IncrementViewCount(c, s.key(), "viewer-1"))
	s.auctionRepo.AssertNotCalled(s.T(), "IncrementViewCount", mock.Anything, mock.Anything)
}

func (s *auctionSuite) TestIncrementViewCountNeedsViewerKey() {
	c := ctx.Background()
	s.Equal(domain.ErrBadParamInput, s.im.IncrementViewCount(c, s.key(), ""))
}
