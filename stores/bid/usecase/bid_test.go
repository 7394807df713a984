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
	"github.com/bidhaus/goapi/domain/bid"
	mBid "github.com/bidhaus/goapi/domain/bid/mocks"
	mLeaderboard "github.com/bidhaus/goapi/domain/leaderboard/mocks"
	mNotification "github.com/bidhaus/goapi/domain/notification/mocks"
	"github.com/bidhaus/goapi/service/query"
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

type bidSuite struct {
	suite.Suite

	mongo        *fakeMongo
	auctionRepo  *mAuction.Repo
	bidRepo      *mBid.Repo
	recordRepo   *mBid.RecordRepo
	leaderboard  *mLeaderboard.Repo
	notification *mNotification.Usecase

	now time.Time
	im  *bidImpl
}

func TestBidSuite(t *testing.T) {
	suite.Run(t, new(bidSuite))
}

func (s *bidSuite) SetupTest() {
	s.mongo = &fakeMongo{}
	s.auctionRepo = &mAuction.Repo{}
	s.bidRepo = &mBid.Repo{}
	s.recordRepo = &mBid.RecordRepo{}
	s.leaderboard = &mLeaderboard.Repo{}
	s.notification = &mNotification.Usecase{}

	s.now = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return s.now }

	s.im = NewBid(s.mongo, s.auctionRepo, s.bidRepo, s.recordRepo, s.leaderboard, s.notification).(*bidImpl)
}

func (s *bidSuite) TearDownTest() {
	timeNow = time.Now
	s.auctionRepo.AssertExpectations(s.T())
	s.bidRepo.AssertExpectations(s.T())
	s.recordRepo.AssertExpectations(s.T())
	s.leaderboard.AssertExpectations(s.T())
	s.notification.AssertExpectations(s.T())
}

func (s *bidSuite) mockAuction() *auction.Auction {
	return &auction.Auction{
		Category:      auction.CategoryArt,
		AuctionId:     "a1",
		SellerId:      "seller1",
		Title:         "sunset oil painting",
		StartingPrice: 100,
		CurrentPrice:  100,
		MinIncrement:  10,
		StartTime:     s.now.Add(-time.Hour),
		EndTime:       s.now.Add(time.Hour),
	}
}

func (s *bidSuite) key() auction.Id {
	return auction.Id{Category: auction.CategoryArt, AuctionId: "a1"}
}

func (s *bidSuite) TestPlaceBidFirstBid() {
	c := ctx.Background()
	a := s.mockAuction()

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)
	s.bidRepo.On("Insert", mock.Anything, mock.MatchedBy(func(b *bid.Bid) bool {
		return b.BidderId == "alice" && b.Amount == 110 && b.AcceptedAt.Equal(s.now)
	})).Return(nil)
	s.auctionRepo.On("Update", mock.Anything, s.key(), mock.MatchedBy(func(u *auction.Updater) bool {
		return *u.CurrentPrice == 110 && *u.BidCount == 1 && *u.HighestBidderId == "alice"
	})).Return(nil)
	s.recordRepo.On("Append", mock.Anything, mock.MatchedBy(func(h *bid.AppendHistory) bool {
		return h.UserId == "alice" && h.Entry.Amount == 110 && h.Title == "sunset oil painting"
	})).Return(nil)
	s.leaderboard.On("IncrementScore", mock.Anything, domain.UserId("alice"), int64(5)).Return(nil)
	s.leaderboard.On("IncrementScore", mock.Anything, domain.UserId("seller1"), int64(5)).Return(nil)

	res, err := s.im.PlaceBid(c, &bid.PlaceBidRequest{
		AuctionKey: s.key(),
		BidderId:   "alice",
		BidderName: "Alice",
		Amount:     110,
	})
	s.NoError(err)
	s.Equal(int64(110), res.AcceptedAmount)
	s.Equal(1, res.BidCount)
	s.Equal(int64(120), res.Floor)
	s.Equal(int64(210), res.Ceiling)

	// nobody was displaced on the first bid
	time.Sleep(20 * time.Millisecond)
	s.notification.AssertNotCalled(s.T(), "NotifyOutbid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *bidSuite) TestPlaceBidNotifiesDisplacedBidder() {
	c := ctx.Background()
	a := s.mockAuction()
	a.CurrentPrice = 110
	a.BidCount = 1
	a.HighestBidderId = "bob"

	notified := make(chan struct{})

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)
	s.bidRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.auctionRepo.On("Update", mock.Anything, s.key(), mock.Anything).Return(nil)
	s.recordRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	s.leaderboard.On("IncrementScore", mock.Anything, domain.UserId("alice"), int64(5)).Return(nil)
	s.leaderboard.On("IncrementScore", mock.Anything, domain.UserId("seller1"), int64(5)).Return(nil)
	s.notification.On("NotifyOutbid", mock.Anything, domain.UserId("bob"), s.key(), "sunset oil painting").
		Return(nil).
		Run(func(mock.Arguments) { close(notified) })

	res, err := s.im.PlaceBid(c, &bid.PlaceBidRequest{
		AuctionKey: s.key(),
		BidderId:   "alice",
		Amount:     125,
	})
	s.NoError(err)
	s.Equal(int64(125), res.AcceptedAmount)

	select {
	case <-notified:
	case <-time.After(time.Second):
		s.Fail("displaced bidder was not notified")
	}
}

func (s *bidSuite) TestPlaceBidRaisingOwnHighBidNotifiesNobody() {
	c := ctx.Background()
	a := s.mockAuction()
	a.CurrentPrice = 110
	a.BidCount = 1
	a.HighestBidderId = "alice"

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)
	s.bidRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.auctionRepo.On("Update", mock.Anything, s.key(), mock.Anything).Return(nil)
	s.recordRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	s.leaderboard.On("IncrementScore", mock.Anything, domain.UserId("alice"), int64(5)).Return(nil)
	s.leaderboard.On("IncrementScore", mock.Anything, domain.UserId("seller1"), int64(5)).Return(nil)

	_, err := s.im.PlaceBid(c, &bid.PlaceBidRequest{
		AuctionKey: s.key(),
		BidderId:   "alice",
		Amount:     125,
	})
	s.NoError(err)

	time.Sleep(20 * time.Millisecond)
	s.notification.AssertNotCalled(s.T(), "NotifyOutbid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *bidSuite) TestPlaceBidSelfBid() {
	c := ctx.Background()
	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(s.mockAuction(), nil)

	_, err := s.im.PlaceBid(c, &bid.PlaceBidRequest{
		AuctionKey: s.key(),
		BidderId:   "Seller1",
		Amount:     110,
	})
	s.Equal(domain.ErrSelfBid, err)
}

func (s *bidSuite) TestPlaceBidBeforeStart() {
	c := ctx.Background()
	a := s.mockAuction()
	a.StartTime = s.now.Add(time.Minute)

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)

	_, err := s.im.PlaceBid(c, &bid.PlaceBidRequest{
		AuctionKey: s.key(),
		BidderId:   "alice",
		Amount:     110,
	})
	s.Equal(domain.ErrAuctionNotStarted, err)
}

func (s *bidSuite) TestPlaceBidAfterEnd() {
	c := ctx.Background()
	a := s.mockAuction()
	a.EndTime = s.now

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)

	_, err := s.im.PlaceBid(c, &bid.PlaceBidRequest{
		AuctionKey: s.key(),
		BidderId:   "alice",
		Amount:     110,
	})
	s.Equal(domain.ErrAuctionEnded, err)
}

func (s *bidSuite) TestPlaceBidOutOfRangeReturnsBounds() {
	c := ctx.Background()
	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(s.mockAuction(), nil)

	res, err := s.im.PlaceBid(c, &bid.PlaceBidRequest{
		AuctionKey: s.key(),
		BidderId:   "alice",
		Amount:     105,
	})
	s.Equal(domain.ErrBidOutOfRange, err)
	s.Equal(int64(110), res.Floor)
	s.Equal(int64(200), res.Ceiling)
}

func (s *bidSuite) TestPlaceBidEqualToCurrentPriceRejected() {
	c := ctx.Background()
	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(s.mockAuction(), nil)

	_, err := s.im.PlaceBid(c, &bid.PlaceBidRequest{
		AuctionKey: s.key(),
		BidderId:   "alice",
		Amount:     100,
	})
	s.Equal(domain.ErrBidOutOfRange, err)
}

func (s *bidSuite) TestPlaceBidRetriesThenSucceeds() {
	c := ctx.Background()
	s.mongo.conflicts = 1

	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(s.mockAuction(), nil)
	s.bidRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.auctionRepo.On("Update", mock.Anything, s.key(), mock.Anything).Return(nil)
	s.recordRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	s.leaderboard.On("IncrementScore", mock.Anything, domain.UserId("alice"), int64(5)).Return(nil)
	s.leaderboard.On("IncrementScore", mock.Anything, domain.UserId("seller1"), int64(5)).Return(nil)

	res, err := s.im.PlaceBid(c, &bid.PlaceBidRequest{
		AuctionKey: s.key(),
		BidderId:   "alice",
		Amount:     110,
	})
	s.NoError(err)
	s.Equal(int64(110), res.AcceptedAmount)
}

func (s *bidSuite) TestPlaceBidContentionAfterRetriesExhausted() {
	c := ctx.Background()
	s.mongo.conflicts = maxCommitAttempts

	_, err := s.im.PlaceBid(c, &bid.PlaceBidRequest{
		AuctionKey: s.key(),
		BidderId:   "alice",
		Amount:     110,
	})
	s.Equal(domain.ErrContention, err)
}

func (s *bidSuite) TestPlaceBidBadParams() {
	c := ctx.Background()

	_, err := s.im.PlaceBid(c, &bid.PlaceBidRequest{AuctionKey: s.key(), BidderId: "", Amount: 110})
	s.Equal(domain.ErrBadParamInput, err)

	_, err = s.im.PlaceBid(c, &bid.PlaceBidRequest{AuctionKey: s.key(), BidderId: "alice", Amount: 0})
	s.Equal(domain.ErrBadParamInput, err)

	badKey := auction.Id{Category: "furniture", AuctionId: "a1"}
	_, err = s.im.PlaceBid(c, &bid.PlaceBidRequest{AuctionKey: badKey, BidderId: "alice", Amount: 110})
	s.Equal(domain.ErrInvalidCategory, err)
}

func (s *bidSuite) TestGetLedger() {
	c := ctx.Background()
	ledger := []*bid.Bid{
		{BidId: "b1", Amount: 110},
		{BidId: "b2", Amount: 125},
	}

	s.bidRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(ledger, nil)
	s.bidRepo.On("Count", mock.Anything, mock.Anything).Return(7, nil)

	items, total, err := s.im.GetLedger(c, s.key(), 0, 2)
	s.NoError(err)
	s.Equal(ledger, items)
	s.Equal(7, total)
}

func (s *bidSuite) TestGetUserRecordsEnrichesWithSnapshots() {
	c := ctx.Background()
	a := s.mockAuction()

	records := []*bid.UserBidRecord{
		{UserId: "alice", Category: auction.CategoryArt, AuctionId: "a1", Title: a.Title},
		{UserId: "alice", Category: auction.CategoryPlate, AuctionId: "gone"},
	}

	s.recordRepo.On("FindByUser", mock.Anything, domain.UserId("alice")).Return(records, nil)
	s.auctionRepo.On("FindOne", mock.Anything, s.key()).Return(a, nil)
	s.auctionRepo.On("FindOne", mock.Anything, auction.Id{Category: auction.CategoryPlate, AuctionId: "gone"}).
		Return(nil, domain.ErrAuctionNotFound)

	res, err := s.im.GetUserRecords(c, "alice")
	s.NoError(err)
	s.Len(res, 2)

	s.NotNil(res[0].Auction)
	s.Equal(auction.PhaseLive, res[0].Auction.Phase)
	s.Equal(int64(110), res[0].Auction.Floor)

	// vanished auctions still return the bare record
	s.Nil(res[1].Auction)
}
