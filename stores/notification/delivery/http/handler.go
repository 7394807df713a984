package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/notification"
)

type handler struct {
	notification notification.Usecase
}

func New(e *echo.Echo, notificationUsecase notification.Usecase) {
	h := &handler{notificationUsecase}

	e.GET("/accounts/:userId/notifications", h.list)
	e.POST("/accounts/:userId/notifications/:notificationId/read", h.markRead)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	userId := domain.UserId(c.Param("userId"))
	if userId.IsEmpty() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid userId")
	}

	type params struct {
		Offset int32 `query:"offset"`
		Limit  int32 `query:"limit"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if res, err := h.notification.List(ctx, userId, p.Offset, p.Limit); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) markRead(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	userId := domain.UserId(c.Param("userId"))
	notificationId := c.Param("notificationId")
	if userId.IsEmpty() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid userId")
	}

	if err := h.notification.MarkRead(ctx, userId, notificationId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
