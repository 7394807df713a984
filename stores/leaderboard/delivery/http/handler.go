package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/leaderboard"
)

type handler struct {
	leaderboard leaderboard.Usecase
}

func New(e *echo.Echo, lb leaderboard.Usecase) {
	h := &handler{lb}

	gs := e.Group("/leaderboard")

	gs.GET("", h.top)
	gs.GET("/:userId", h.get)
}

func (h *handler) top(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Limit int32 `query:"limit"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if res, err := h.leaderboard.Top(ctx, p.Limit); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	userId := domain.UserId(c.Param("userId"))
	if userId.IsEmpty() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid userId")
	}

	if res, err := h.leaderboard.Get(ctx, userId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
