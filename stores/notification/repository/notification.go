package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/notification"
	"github.com/bidhaus/goapi/service/query"
)

type notificationImpl struct {
	q query.Mongo
}

func NewNotification(q query.Mongo) notification.Repo {
	return &notificationImpl{q}
}

func (im *notificationImpl) Insert(c ctx.Ctx, value *notification.Notification) error {
	value.UserId = value.UserId.ToLower()
	if err := im.q.Insert(c, domain.TableNotifications, value); err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *notificationImpl) FindByUser(c ctx.Ctx, userId domain.UserId, offset, limit int32) ([]*notification.Notification, error) {
	qry := bson.M{"userId": userId.ToLower()}

	res := []*notification.Notification{}
	if err := im.q.Search(c, domain.TableNotifications, int(offset), int(limit), "-createdAt", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *notificationImpl) MarkRead(c ctx.Ctx, userId domain.UserId, notificationId string) error {
	slt := bson.M{
		"userId":         userId.ToLower(),
		"notificationId": notificationId,
	}
	update := bson.M{"isRead": true}

	if err := im.q.Patch(c, domain.TableNotifications, slt, update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Patch failed")
		return err
	}
	return nil
}
