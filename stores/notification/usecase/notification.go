package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/domain/notification"
)

const defaultInboxLimit = 50

var timeNow = time.Now

type notificationImpl struct {
	notification notification.Repo
}

func NewNotification(repo notification.Repo) notification.Usecase {
	return &notificationImpl{repo}
}

func (im *notificationImpl) NotifyOutbid(c ctx.Ctx, userId domain.UserId, key auction.Id, title string) error {
	id, err := uuid.NewRandom()
	if err != nil {
		c.WithField("err", err).Error("uuid.NewRandom failed")
		return err
	}

	if err := im.notification.Insert(c, &notification.Notification{
		NotificationId: id.String(),
		UserId:         userId,
		Type:           notification.TypeOutbid,
		Category:       key.Category,
		AuctionId:      key.AuctionId,
		Title:          title,
		IsRead:         false,
		CreatedAt:      timeNow(),
	}); err != nil {
		c.WithField("err", err).Error("notification.Insert failed")
		return err
	}
	return nil
}

func (im *notificationImpl) List(c ctx.Ctx, userId domain.UserId, offset, limit int32) ([]*notification.Notification, error) {
	if limit <= 0 || limit > defaultInboxLimit {
		limit = defaultInboxLimit
	}

	items, err := im.notification.FindByUser(c, userId, offset, limit)
	if err != nil {
		c.WithField("err", err).Error("notification.FindByUser failed")
		return nil, err
	}
	return items, nil
}

func (im *notificationImpl) MarkRead(c ctx.Ctx, userId domain.UserId, notificationId string) error {
	if notificationId == "" {
		return domain.ErrBadParamInput
	}

	if err := im.notification.MarkRead(c, userId, notificationId); err != nil {
		if err != domain.ErrNotFound {
			c.WithField("err", err).Error("notification.MarkRead failed")
		}
		return err
	}
	return nil
}
