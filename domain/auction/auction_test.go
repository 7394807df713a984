package auction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bidhaus/goapi/domain"
)

func liveAuction() *Auction {
	start := time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)
	return &Auction{
		Category:      CategoryArt,
		AuctionId:     "a-1",
		SellerId:      "seller",
		Title:         "oil on canvas",
		StartingPrice: 100,
		CurrentPrice:  100,
		MinIncrement:  10,
		StartTime:     start,
		EndTime:       start.Add(24 * time.Hour),
	}
}

func TestBidBounds(t *testing.T) {
	req := require.New(t)

	a := liveAuction()
	floor, ceiling := a.BidBounds()
	req.Equal(int64(110), floor)
	req.Equal(int64(200), ceiling)

	a.CurrentPrice = 115
	floor, ceiling = a.BidBounds()
	req.Equal(int64(125), floor)
	req.Equal(int64(215), ceiling)
}

func TestValidateBid(t *testing.T) {
	a := liveAuction()
	now := a.StartTime.Add(time.Hour)

	cases := []struct {
		name   string
		now    time.Time
		bidder domain.UserId
		amount int64
		want   error
	}{
		{"not started", a.StartTime.Add(-time.Minute), "alice", 110, domain.ErrAuctionNotStarted},
		{"ended", a.EndTime, "alice", 110, domain.ErrAuctionEnded},
		{"self bid", now, "seller", 110, domain.ErrSelfBid},
		{"self bid case-insensitive", now, "SELLER", 110, domain.ErrSelfBid},
		{"self bid ignores amount", now, "seller", 150, domain.ErrSelfBid},
		{"equal to current price", now, "alice", 100, domain.ErrBidOutOfRange},
		{"below floor", now, "alice", 105, domain.ErrBidOutOfRange},
		{"just below floor", now, "alice", 109, domain.ErrBidOutOfRange},
		{"at floor", now, "alice", 110, nil},
		{"mid range", now, "alice", 150, nil},
		{"at ceiling", now, "alice", 200, nil},
		{"above ceiling", now, "alice", 201, domain.ErrBidOutOfRange},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := a.ValidateBid(c.now, c.bidder, c.amount)
			if c.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, c.want)
			}
		})
	}
}

func TestValidateBidAnyPositiveIncrement(t *testing.T) {
	req := require.New(t)

	a := liveAuction()
	now := a.StartTime.Add(time.Hour)

	for _, inc := range []int64{1, 3, 10, 250} {
		a.MinIncrement = inc
		req.ErrorIs(a.ValidateBid(now, "alice", a.CurrentPrice), domain.ErrBidOutOfRange)
		req.ErrorIs(a.ValidateBid(now, "alice", a.CurrentPrice+inc-1), domain.ErrBidOutOfRange)
		req.NoError(a.ValidateBid(now, "alice", a.CurrentPrice+inc))
		req.NoError(a.ValidateBid(now, "alice", a.CurrentPrice+MaxIncrementMultiplier*inc))
		req.ErrorIs(a.ValidateBid(now, "alice", a.CurrentPrice+MaxIncrementMultiplier*inc+1), domain.ErrBidOutOfRange)
	}
}

func TestParseCategory(t *testing.T) {
	req := require.New(t)

	for _, s := range []string{"alcohol", "art", "apparel", "collectible", "plate", "phone-number", "misc"} {
		c, err := ParseCategory(s)
		req.NoError(err)
		req.True(c.IsValid())
	}

	_, err := ParseCategory("real-estate")
	req.ErrorIs(err, domain.ErrInvalidCategory)
}

func TestAttributesValidate(t *testing.T) {
	req := require.New(t)

	plate := "KWT 777"
	req.NoError(Attributes{PlateNumber: &plate}.Validate(CategoryPlate))
	req.ErrorIs(Attributes{}.Validate(CategoryPlate), domain.ErrBadParamInput)
	req.ErrorIs(Attributes{}.Validate(CategoryPhoneNumber), domain.ErrBadParamInput)
	req.NoError(Attributes{}.Validate(CategoryArt))
}
