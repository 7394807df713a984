package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/domain/bid"
)

type handler struct {
	bid bid.Usecase
}

func New(e *echo.Echo, bidUsecase bid.Usecase) {
	h := &handler{bidUsecase}

	e.POST("/auctions/:category/:auctionId/bids", h.placeBid)
	e.GET("/auctions/:category/:auctionId/bids", h.getLedger)
	e.GET("/accounts/:userId/bids", h.getUserRecords)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	category, err := auction.ParseCategory(c.Param("category"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		BidderId   domain.UserId `json:"bidderId" validate:"required"`
		BidderName string        `json:"bidderName"`
		Amount     int64         `json:"amount" validate:"required,gt=0"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	req := &bid.PlaceBidRequest{
		AuctionKey: auction.Id{Category: category, AuctionId: c.Param("auctionId")},
		BidderId:   p.BidderId,
		BidderName: p.BidderName,
		Amount:     p.Amount,
	}

	res, err := h.bid.PlaceBid(ctx, req)
	if err == domain.ErrBidOutOfRange && res != nil {
		// a rejected raise still tells the client what would be accepted
		type outOfRange struct {
			Message string `json:"message"`
			Floor   int64  `json:"floor"`
			Ceiling int64  `json:"ceiling"`
		}
		return delivery.MakeJsonResp(c, http.StatusUnprocessableEntity, outOfRange{
			Message: err.Error(),
			Floor:   res.Floor,
			Ceiling: res.Ceiling,
		})
	}
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) getLedger(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	category, err := auction.ParseCategory(c.Param("category"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Offset int32 `query:"offset"`
		Limit  int32 `query:"limit"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 100
	}

	id := auction.Id{Category: category, AuctionId: c.Param("auctionId")}

	items, total, err := h.bid.GetLedger(ctx, id, p.Offset, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	type response struct {
		Items []*bid.Bid `json:"items"`
		Total int        `json:"total"`
	}
	return delivery.MakeJsonResp(c, http.StatusOK, response{items, total})
}

func (h *handler) getUserRecords(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	userId := domain.UserId(c.Param("userId"))
	if userId.IsEmpty() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid userId")
	}

	if res, err := h.bid.GetUserRecords(ctx, userId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
