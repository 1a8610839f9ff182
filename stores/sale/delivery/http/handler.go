package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/delivery"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/sale"
	authMiddleware "github.com/pixeldonor/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	su sale.UseCase
}

// New registers primary sale routes
func New(e *echo.Echo, su sale.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{su: su}
	g := e.Group("/sale")
	g.GET("/engine", h.getEngine)
	g.GET("/classes", h.listClasses)
	g.GET("/class/:classId", h.getClass)
	g.POST("/class/:classId/purchase", h.purchase, authMiddleware.Auth())
	g.POST("/withdraw", h.withdrawRevenue, authMiddleware.Auth())

	// admin
	g.PUT("/class/:classId", h.createClass, authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.PUT("/active", h.setActive, authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.PUT("/custodian", h.setCustodian, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func paramClassId(c echo.Context) (domain.ClassId, error) {
	id, err := strconv.ParseInt(c.Param("classId"), 10, 32)
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return domain.ClassId(id), nil
}

func saleErrStatus(err error) int {
	switch err {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrNotAdmin, domain.ErrNotCustodian:
		return http.StatusMethodNotAllowed
	case domain.ErrBadParamInput, domain.ErrInvalidNumberFormat, domain.ErrInvalidAddress:
		return http.StatusBadRequest
	case domain.ErrSaleInactive, domain.ErrSaleNotStarted, domain.ErrPaymentBelowPrice, domain.ErrInsufficientFunds, domain.ErrPaymentRejected:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) getEngine(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	engine, err := h.su.GetEngine(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, saleErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, engine)
}

func (h *handler) listClasses(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	classes, err := h.su.ListClasses(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, saleErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, classes)
}

func (h *handler) getClass(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	classId, err := paramClassId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	class, err := h.su.GetClass(ctx, classId)
	if err != nil {
		return delivery.MakeJsonResp(c, saleErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, class)
}

func (h *handler) purchase(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	classId, err := paramClassId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Amount string `json:"amount"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	purchased, err := h.su.Purchase(ctx, caller, classId, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, saleErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, purchased)
}

func (h *handler) withdrawRevenue(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	withdrawn, err := h.su.WithdrawRevenue(ctx, caller)
	if err != nil {
		return delivery.MakeJsonResp(c, saleErrStatus(err), err)
	}
	res := struct {
		Withdrawn string `json:"withdrawn"`
	}{Withdrawn: withdrawn}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) createClass(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	classId, err := paramClassId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		UnitPrice string    `json:"unitPrice"`
		StartTime time.Time `json:"startTime"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.su.CreateClass(ctx, caller, classId, p.StartTime, p.UnitPrice); err != nil {
		return delivery.MakeJsonResp(c, saleErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) setActive(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Active bool `json:"active"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.su.SetActive(ctx, caller, p.Active); err != nil {
		return delivery.MakeJsonResp(c, saleErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) setCustodian(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Custodian domain.Address `json:"custodian"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.su.SetCustodian(ctx, caller, p.Custodian); err != nil {
		return delivery.MakeJsonResp(c, saleErrStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
