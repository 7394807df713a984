package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/wallet"
)

type handler struct {
	wallet wallet.Usecase
}

func New(e *echo.Echo, walletUsecase wallet.Usecase) {
	h := &handler{walletUsecase}

	gs := e.Group("/wallets")

	gs.GET("/:userId", h.get)
	gs.POST("/:userId/credits", h.credit)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	userId := domain.UserId(c.Param("userId"))
	if userId.IsEmpty() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid userId")
	}

	if res, err := h.wallet.Get(ctx, userId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) credit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	userId := domain.UserId(c.Param("userId"))
	if userId.IsEmpty() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid userId")
	}

	type payload struct {
		Kind   wallet.TokenKind `json:"kind" validate:"required,oneof=extend promotion"`
		Amount int              `json:"amount" validate:"required,gt=0"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.wallet.Credit(ctx, userId, p.Kind, p.Amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
