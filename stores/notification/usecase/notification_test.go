package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/domain/notification"
	mNotification "github.com/bidhaus/goapi/domain/notification/mocks"
)

type notificationSuite struct {
	suite.Suite

	repo *mNotification.Repo
	now  time.Time
	im   notification.Usecase
}

func TestNotificationSuite(t *testing.T) {
	suite.Run(t, new(notificationSuite))
}

func (s *notificationSuite) SetupTest() {
	s.repo = &mNotification.Repo{}
	s.now = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return s.now }
	s.im = NewNotification(s.repo)
}

func (s *notificationSuite) TearDownTest() {
	timeNow = time.Now
	s.repo.AssertExpectations(s.T())
}

func (s *notificationSuite) TestNotifyOutbid() {
	c := ctx.Background()
	key := auction.Id{Category: auction.CategoryArt, AuctionId: "a1"}

	s.repo.On("Insert", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.NotificationId != "" &&
			n.UserId == "bob" &&
			n.Type == notification.TypeOutbid &&
			n.AuctionId == "a1" &&
			!n.IsRead &&
			n.CreatedAt.Equal(s.now)
	})).Return(nil)

	s.NoError(s.im.NotifyOutbid(c, "bob", key, "sunset oil painting"))
}

func (s *notificationSuite) TestListClampsLimit() {
	c := ctx.Background()
	s.repo.On("FindByUser", mock.Anything, domain.UserId("bob"), int32(0), int32(defaultInboxLimit)).
		Return([]*notification.Notification{}, nil)

	items, err := s.im.List(c, "bob", 0, 9999)
	s.NoError(err)
	s.Empty(items)
}

func (s *notificationSuite) TestMarkRead() {
	c := ctx.Background()
	s.repo.On("MarkRead", mock.Anything, domain.UserId("bob"), "n1").Return(nil)

	s.NoError(s.im.MarkRead(c, "bob", "n1"))
	s.Equal(domain.ErrBadParamInput, s.im.MarkRead(c, "bob", ""))
}

func (s *notificationSuite) TestMarkReadUnknownId() {
	c := ctx.Background()
	s.repo.On("MarkRead", mock.Anything, domain.UserId("bob"), "missing").Return(domain.ErrNotFound)

	s.Equal(domain.ErrNotFound, s.im.MarkRead(c, "bob", "missing"))
}
