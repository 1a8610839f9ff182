package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/delivery"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/account"
	"github.com/pixeldonor/goapi/middleware"
	authMiddleware "github.com/pixeldonor/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	au           account.Usecase
	activityRepo account.ActivityRepo
}

// New registers account routes
func New(e *echo.Echo, au account.Usecase, activityRepo account.ActivityRepo, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{
		au:           au,
		activityRepo: activityRepo,
	}
	g := e.Group("/account")
	g.GET("/:account", h.getAccount, middleware.IsValidAddress("account"))
	g.POST("/:account/nonce", h.generateNonce, middleware.IsValidAddress("account"))
	g.GET("/:account/activities", h.getActivities, middleware.IsValidAddress("account"))

	// self
	g.PATCH("", h.updateAccount, authMiddleware.Auth())
}

func (h *handler) getAccount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := domain.Address(c.Param("account"))
	a, err := h.au.Get(ctx, address)
	if err == domain.ErrNotFound {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

func (h *handler) generateNonce(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := domain.Address(c.Param("account"))
	nonce, err := h.au.UpdateNonce(ctx, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	res := struct {
		Nonce int32 `json:"nonce"`
	}{Nonce: nonce}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) getActivities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := domain.Address(c.Param("account"))

	type params struct {
		Offset int `query:"offset"`
		Limit  int `query:"limit"`
	}
	p := &params{Limit: 30}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []account.FindActivityOptions{
		account.ActivityWithAccount(address),
		account.ActivityWithPagination(p.Offset, p.Limit),
	}

	activities, err := h.activityRepo.FindActivities(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	cnt, err := h.activityRepo.CountActivities(ctx, account.ActivityWithAccount(address))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Items []account.Activity `json:"items"`
		Count int                `json:"count"`
	}{Items: activities, Count: cnt}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) updateAccount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	p := &account.Updater{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.au.Update(ctx, address, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}
