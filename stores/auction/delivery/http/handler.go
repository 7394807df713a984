package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
)

type handler struct {
	auction auction.Usecase
}

func New(e *echo.Echo, auctionUsecase auction.Usecase) {
	h := &handler{auctionUsecase}

	gs := e.Group("/auctions")

	gs.POST("", h.create)
	gs.GET("/:category/:auctionId", h.get)
	gs.POST("/:category/:auctionId/extend", h.extend)
	gs.POST("/:category/:auctionId/promote", h.promote)
	gs.POST("/:category/:auctionId/finalize", h.finalize)
	gs.POST("/:category/:auctionId/views", h.incrementViewCount)
}

func bindAuctionId(c echo.Context) (auction.Id, error) {
	category, err := auction.ParseCategory(c.Param("category"))
	if err != nil {
		return auction.Id{}, err
	}
	return auction.Id{Category: category, AuctionId: c.Param("auctionId")}, nil
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Category       auction.Category   `json:"category" validate:"required,category"`
		SellerId       domain.UserId      `json:"sellerId" validate:"required"`
		Title          string             `json:"title" validate:"required"`
		StartingPrice  int64              `json:"startingPrice" validate:"required,gt=0"`
		MinIncrement   int64              `json:"minIncrement" validate:"required,gt=0"`
		StartTime      int64              `json:"startTime" validate:"required"`
		EndTime        int64              `json:"endTime" validate:"required"`
		IsFlashAuction bool               `json:"isFlashAuction"`
		Attributes     auction.Attributes `json:"attributes"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	value := &auction.Auction{
		Category:       p.Category,
		SellerId:       p.SellerId,
		Title:          p.Title,
		StartingPrice:  p.StartingPrice,
		MinIncrement:   p.MinIncrement,
		StartTime:      time.Unix(p.StartTime, 0),
		EndTime:        time.Unix(p.EndTime, 0),
		IsFlashAuction: p.IsFlashAuction,
		Attributes:     p.Attributes,
	}

	if res, err := h.auction.Create(ctx, value); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := bindAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.auction.Get(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) extend(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := bindAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		UserId domain.UserId `json:"userId" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.auction.Extend(ctx, id, p.UserId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) promote(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := bindAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		UserId domain.UserId `json:"userId" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.Promote(ctx, id, p.UserId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	// not an error: the caller has to go through the paid flow
	if res.RequiresPayment {
		return delivery.MakeJsonResp(c, http.StatusPaymentRequired, res)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) finalize(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := bindAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.auction.Finalize(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) incrementViewCount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := bindAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		ViewerKey string `json:"viewerKey" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auction.IncrementViewCount(ctx, id, p.ViewerKey); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
