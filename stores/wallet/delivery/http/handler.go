package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/delivery"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/wallet"
	"github.com/pixeldonor/goapi/middleware"
	authMiddleware "github.com/pixeldonor/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	wu wallet.Usecase
}

// New registers wallet routes
func New(e *echo.Echo, wu wallet.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{wu: wu}
	g := e.Group("/wallet")
	g.GET("/:account/balance", h.getBalance, middleware.IsValidAddress("account"))
	g.GET("/escrow", h.getEscrowBalance)

	// admin
	g.POST("/deposit", h.deposit, authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.POST("/freeze", h.freeze, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := domain.Address(c.Param("account"))
	balance, err := h.wu.BalanceOf(ctx, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	res := struct {
		Address domain.Address `json:"address"`
		Balance string         `json:"balance"`
	}{Address: address.ToLower(), Balance: domain.AmountString(balance)}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getEscrowBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	balance, err := h.wu.EscrowBalance(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	res := struct {
		Balance string `json:"balance"`
	}{Balance: domain.AmountString(balance)}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Address domain.Address `json:"address"`
		Amount  string         `json:"amount"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.wu.Deposit(ctx, caller, p.Address, amount); err == domain.ErrNotAdmin {
		return delivery.MakeJsonResp(c, http.StatusMethodNotAllowed, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) freeze(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Address domain.Address `json:"address"`
		Frozen  bool           `json:"frozen"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.wu.Freeze(ctx, caller, p.Address, p.Frozen); err == domain.ErrNotAdmin {
		return delivery.MakeJsonResp(c, http.StatusMethodNotAllowed, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
