package notification

import (
	"time"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
)

type Type string

const (
	// TypeOutbid tells a user their highest bid was just superseded
	TypeOutbid Type = "outbid"
)

// Notification is one inbox record. Writes are best-effort, at-most-once;
// duplicates from client retries are acceptable and not deduplicated.
type Notification struct {
	NotificationId string           `json:"notificationId" bson:"notificationId"`
	UserId         domain.UserId    `json:"userId" bson:"userId"`
	Type           Type             `json:"type" bson:"type"`
	Category       auction.Category `json:"category" bson:"category"`
	AuctionId      string           `json:"auctionId" bson:"auctionId"`
	Title          string           `json:"title" bson:"title"`
	IsRead         bool             `json:"isRead" bson:"isRead"`
	CreatedAt      time.Time        `json:"createdAt" bson:"createdAt"`
}

type Repo interface {
	Insert(c ctx.Ctx, value *Notification) error
	FindByUser(c ctx.Ctx, userId domain.UserId, offset, limit int32) ([]*Notification, error)
	MarkRead(c ctx.Ctx, userId domain.UserId, notificationId string) error
}

type Usecase interface {
	// NotifyOutbid writes one unread inbox record for the displaced
	// bidder. Callers fire it after commit and must not fail the bid on
	// its error.
	NotifyOutbid(c ctx.Ctx, userId domain.UserId, key auction.Id, title string) error
	List(c ctx.Ctx, userId domain.UserId, offset, limit int32) ([]*Notification, error)
	MarkRead(c ctx.Ctx, userId domain.UserId, notificationId string) error
}
