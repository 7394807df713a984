package bid

import (
	"time"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
)

// Bid is one accepted ledger entry. Immutable once written; amounts across
// an auction's ledger are strictly increasing.
type Bid struct {
	BidId             string           `json:"bidId" bson:"bidId"`
	Category          auction.Category `json:"category" bson:"category"`
	AuctionId         string           `json:"auctionId" bson:"auctionId"`
	BidderId          domain.UserId    `json:"bidderId" bson:"bidderId"`
	BidderDisplayName string           `json:"bidderDisplayName" bson:"bidderDisplayName"`
	Amount            int64            `json:"amount" bson:"amount"`
	AcceptedAt        time.Time        `json:"acceptedAt" bson:"acceptedAt"`
}

type PlaceBidRequest struct {
	AuctionKey auction.Id
	BidderId   domain.UserId
	BidderName string
	Amount     int64
}

// PlaceBidResult always carries the bounds of the next valid raise so
// clients can offer a corrected amount without another round-trip. On a
// rejected bid the same bounds travel back attached to the error response.
type PlaceBidResult struct {
	AcceptedAmount int64 `json:"acceptedAmount"`
	BidCount       int   `json:"bidCount"`
	Floor          int64 `json:"floor"`
	Ceiling        int64 `json:"ceiling"`
}

type FindAllOptions struct {
	Category  *auction.Category `bson:"category,omitempty"`
	AuctionId *string           `bson:"auctionId,omitempty"`
	BidderId  *domain.UserId    `bson:"bidderId,omitempty"`
	Offset    *int32            `bson:"-"`
	Limit     *int32            `bson:"-"`
}

type FindAllOptionsFunc func(*FindAllOptions) error

func ParseFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithAuction(id auction.Id) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Category = &id.Category
		o.AuctionId = &id.AuctionId
		return nil
	}
}

func WithBidder(bidderId domain.UserId) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		id := bidderId.ToLower()
		o.BidderId = &id
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Offset = &offset
		o.Limit = &limit
		return nil
	}
}

type Repo interface {
	Insert(c ctx.Ctx, value *Bid) error
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Bid, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
}

type Usecase interface {
	PlaceBid(c ctx.Ctx, req *PlaceBidRequest) (*PlaceBidResult, error)
	GetLedger(c ctx.Ctx, id auction.Id, offset, limit int32) ([]*Bid, int, error)
	GetUserRecords(c ctx.Ctx, userId domain.UserId) ([]*UserBidRecordInfo, error)
}
