package auction

import (
	"time"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/pricefmt"
	"github.com/bidhaus/goapi/domain"
)

const (
	// MaxExtensionCount caps how many times one auction can be extended
	MaxExtensionCount = 3
	// ExtensionDuration is how far a single extend token pushes the end time
	ExtensionDuration = time.Hour
	// MaxIncrementMultiplier bounds the ceiling of a single raise
	MaxIncrementMultiplier = 10
)

// Id is the composite auction key. Auctions are partitioned by category.
type Id struct {
	Category  Category `json:"category" bson:"category"`
	AuctionId string   `json:"auctionId" bson:"auctionId"`
}

type Auction struct {
	Category        Category      `json:"category" bson:"category"`
	AuctionId       string        `json:"auctionId" bson:"auctionId"`
	SellerId        domain.UserId `json:"sellerId" bson:"sellerId"`
	Title           string        `json:"title" bson:"title"`
	StartingPrice   int64         `json:"startingPrice" bson:"startingPrice"`
	CurrentPrice    int64         `json:"currentPrice" bson:"currentPrice"`
	BidCount        int           `json:"bidCount" bson:"bidCount"`
	MinIncrement    int64         `json:"minIncrement" bson:"minIncrement"`
	StartTime       time.Time     `json:"startTime" bson:"startTime"`
	EndTime         time.Time     `json:"endTime" bson:"endTime"`
	HighestBidderId domain.UserId `json:"highestBidderId,omitempty" bson:"highestBidderId,omitempty"`
	WinnerId        domain.UserId `json:"winnerId,omitempty" bson:"winnerId,omitempty"`
	ExtendCount     int           `json:"extendCount" bson:"extendCount"`
	IsPromoted      bool          `json:"isPromoted" bson:"isPromoted"`
	IsFlashAuction  bool          `json:"isFlashAuction" bson:"isFlashAuction"`
	ViewCount       int64         `json:"viewCount" bson:"viewCount"`
	Attributes      Attributes    `json:"attributes" bson:"attributes"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`

	// Status is a cache written for browse surfaces. Lifecycle decisions
	// never branch on it, only on the timestamps.
	Status Phase `json:"status" bson:"status"`
}

func (a *Auction) ToId() *Id {
	return &Id{Category: a.Category, AuctionId: a.AuctionId}
}

// PhaseAt derives the lifecycle phase from the stored timestamps.
func (a *Auction) PhaseAt(now time.Time) Phase {
	return PhaseAt(now, a.StartTime, a.EndTime)
}

// BidBounds returns the valid [floor, ceiling] for the next bid given the
// committed price. The floor requires a meaningful raise, the ceiling guards
// against fat-finger overbids.
func (a *Auction) BidBounds() (floor, ceiling int64) {
	floor = a.CurrentPrice + a.MinIncrement
	ceiling = a.CurrentPrice + MaxIncrementMultiplier*a.MinIncrement
	return floor, ceiling
}

// ValidateBid checks a bid against this snapshot of the auction. Callers
// performing the commit must re-run it on the record read inside the
// transaction, never on a cached copy.
func (a *Auction) ValidateBid(now time.Time, bidderId domain.UserId, amount int64) error {
	switch a.PhaseAt(now) {
	case PhaseUpcoming:
		return domain.ErrAuctionNotStarted
	case PhaseCompleted:
		return domain.ErrAuctionEnded
	}
	if a.SellerId.Equals(bidderId) {
		return domain.ErrSelfBid
	}
	if floor, ceiling := a.BidBounds(); amount < floor || amount > ceiling {
		return domain.ErrBidOutOfRange
	}
	return nil
}

type Updater struct {
	CurrentPrice    *int64         `bson:"currentPrice,omitempty"`
	BidCount        *int           `bson:"bidCount,omitempty"`
	HighestBidderId *domain.UserId `bson:"highestBidderId,omitempty"`
	WinnerId        *domain.UserId `bson:"winnerId,omitempty"`
	ExtendCount     *int           `bson:"extendCount,omitempty"`
	EndTime         *time.Time     `bson:"endTime,omitempty"`
	IsPromoted      *bool          `bson:"isPromoted,omitempty"`
	Status          *Phase         `bson:"status,omitempty"`
}

type FindAllOptions struct {
	Category   *Category      `bson:"category,omitempty"`
	SellerId   *domain.UserId `bson:"sellerId,omitempty"`
	IsPromoted *bool          `bson:"isPromoted,omitempty"`
	IsFlash    *bool          `bson:"isFlashAuction,omitempty"`
	Offset     *int32         `bson:"-"`
	Limit      *int32         `bson:"-"`
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

func WithCategory(category Category) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Category = &category
		return nil
	}
}

func WithSeller(sellerId domain.UserId) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		id := sellerId.ToLower()
		o.SellerId = &id
		return nil
	}
}

func WithPromoted(isPromoted bool) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.IsPromoted = &isPromoted
		return nil
	}
}

func WithFlash(isFlash bool) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.IsFlash = &isFlash
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

// Snapshot is the read model returned to clients: the record plus everything
// derived from it at read time.
type Snapshot struct {
	Auction
	Phase        Phase  `json:"phase"`
	Floor        int64  `json:"floor"`
	Ceiling      int64  `json:"ceiling"`
	DisplayPrice string `json:"displayPrice"`
}

// MakeSnapshot derives the read model from a record at the given instant.
func MakeSnapshot(a *Auction, now time.Time) *Snapshot {
	floor, ceiling := a.BidBounds()
	return &Snapshot{
		Auction:      *a,
		Phase:        a.PhaseAt(now),
		Floor:        floor,
		Ceiling:      ceiling,
		DisplayPrice: pricefmt.FormatPrice(a.CurrentPrice),
	}
}

type ExtendResult struct {
	NewEndTime  time.Time `json:"newEndTime"`
	ExtendCount int       `json:"extendCount"`
}

type PromoteResult struct {
	Promoted        bool `json:"promoted"`
	RequiresPayment bool `json:"requiresPayment"`
}

type Repo interface {
	FindOne(c ctx.Ctx, id Id) (*Auction, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	Create(c ctx.Ctx, value *Auction) error
	Update(c ctx.Ctx, id Id, updater *Updater) error
	IncrementViewCount(c ctx.Ctx, id Id) error
}

type Usecase interface {
	Get(c ctx.Ctx, id Id) (*Snapshot, error)
	Create(c ctx.Ctx, value *Auction) (*Auction, error)
	Extend(c ctx.Ctx, id Id, userId domain.UserId) (*ExtendResult, error)
	Promote(c ctx.Ctx, id Id, userId domain.UserId) (*PromoteResult, error)
	Finalize(c ctx.Ctx, id Id) (*Auction, error)
	IncrementViewCount(c ctx.Ctx, id Id, viewerKey string) error
}
