package bid

import (
	"time"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
)

// HistoryEntry is one private bid-amount record under a UserBidRecord.
type HistoryEntry struct {
	Amount int64     `json:"amount" bson:"amount"`
	BidAt  time.Time `json:"bidAt" bson:"bidAt"`
}

// UserBidRecord is the denormalized per-(user, auction) pointer backing
// "my bids" views. Upserted on every accepted bid, never deleted here.
type UserBidRecord struct {
	UserId      domain.UserId    `json:"userId" bson:"userId"`
	Category    auction.Category `json:"category" bson:"category"`
	AuctionId   string           `json:"auctionId" bson:"auctionId"`
	Title       string           `json:"title" bson:"title"`
	EndTime     time.Time        `json:"endTime" bson:"endTime"`
	LastUpdated time.Time        `json:"lastUpdated" bson:"lastUpdated"`
	History     []HistoryEntry   `json:"history" bson:"history"`
}

// UserBidRecordInfo enriches a record with the live auction snapshot.
type UserBidRecordInfo struct {
	UserBidRecord
	Auction *auction.Snapshot `json:"auction,omitempty"`
}

// AppendHistory captures the fields upserted on every accepted bid.
type AppendHistory struct {
	UserId  domain.UserId
	Key     auction.Id
	Title   string
	EndTime time.Time
	Entry   HistoryEntry
}

type RecordRepo interface {
	// Append upserts the (user, auction) record, refreshes the cached
	// display fields and pushes one history entry.
	Append(c ctx.Ctx, value *AppendHistory) error
	FindByUser(c ctx.Ctx, userId domain.UserId) ([]*UserBidRecord, error)
	FindOne(c ctx.Ctx, userId domain.UserId, key auction.Id) (*UserBidRecord, error)
}
