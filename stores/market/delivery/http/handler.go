package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/delivery"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/market"
	authMiddleware "github.com/pixeldonor/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	mu market.UseCase
}

// New registers order book routes
func New(e *echo.Echo, mu market.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{mu: mu}
	g := e.Group("/market")
	g.GET("/:assetId/ask", h.getAsk)
	g.GET("/:assetId/bid", h.getBid)
	g.PUT("/:assetId/ask", h.setAsk, authMiddleware.Auth())
	g.PUT("/:assetId/bid", h.setBid, authMiddleware.Auth())
	g.DELETE("/:assetId/bid", h.withdrawBid, authMiddleware.Auth())

	// admin
	g.PUT("/settings/bidLock", h.setBidLock, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func paramAssetId(c echo.Context) (domain.AssetId, error) {
	id, err := strconv.ParseUint(c.Param("assetId"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return domain.AssetId(id), nil
}

func marketErrStatus(err error) int {
	switch err {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrNotOwner, domain.ErrNotBidder:
		return http.StatusMethodNotAllowed
	case domain.ErrNoOwner, domain.ErrInvalidNumberFormat, domain.ErrBadParamInput:
		return http.StatusBadRequest
	case domain.ErrBidTooLow, domain.ErrInsufficientFunds, domain.ErrBidLocked, domain.ErrPaymentRejected:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) getAsk(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	ask, err := h.mu.GetAsk(ctx, assetId)
	if err != nil {
		return delivery.MakeJsonResp(c, marketErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, ask)
}

func (h *handler) getBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	bid, err := h.mu.GetBid(ctx, assetId)
	if err != nil {
		return delivery.MakeJsonResp(c, marketErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, bid)
}

func (h *handler) setAsk(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Price   string `json:"price"`
		AuxData string `json:"auxData"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	trade, err := h.mu.SetAsk(ctx, caller, assetId, p.Price, p.AuxData)
	if err != nil {
		return delivery.MakeJsonResp(c, marketErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, trade)
}

func (h *handler) setBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Amount  string `json:"amount"`
		AuxData string `json:"auxData"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	trade, err := h.mu.SetBid(ctx, caller, assetId, p.Amount, p.AuxData)
	if err != nil {
		return delivery.MakeJsonResp(c, marketErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, trade)
}

func (h *handler) withdrawBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.mu.WithdrawBid(ctx, caller, assetId); err != nil {
		return delivery.MakeJsonResp(c, marketErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) setBidLock(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Seconds int64 `json:"seconds"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.mu.SetBidLock(ctx, caller, time.Duration(p.Seconds)*time.Second); err != nil {
		return delivery.MakeJsonResp(c, marketErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
