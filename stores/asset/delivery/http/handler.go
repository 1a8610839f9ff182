package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/delivery"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/asset"
	"github.com/pixeldonor/goapi/domain/property"
	authMiddleware "github.com/pixeldonor/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	au asset.Usecase
	pu property.Usecase
}

// New registers asset ledger and property routes
func New(e *echo.Echo, au asset.Usecase, pu property.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{au: au, pu: pu}

	g := e.Group("/asset")
	g.GET("/:assetId", h.getAsset)
	g.GET("/:assetId/properties", h.getProperties)
	g.GET("/:assetId/property/:index", h.getProperty)
	g.POST("/mint", h.mint, authMiddleware.Auth())
	g.POST("/:assetId/transfer", h.transfer, authMiddleware.Auth())
	g.DELETE("/:assetId", h.burn, authMiddleware.Auth())
	g.POST("/:assetId/property", h.appendProperty, authMiddleware.Auth())
	g.PUT("/:assetId/userContent", h.setUserContent, authMiddleware.Auth())

	e.GET("/assets", h.listAssets)
	e.PUT("/class/:classId/template", h.setClassTemplate, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func paramAssetId(c echo.Context) (domain.AssetId, error) {
	id, err := strconv.ParseUint(c.Param("assetId"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return domain.AssetId(id), nil
}

func paramClassId(c echo.Context) (domain.ClassId, error) {
	id, err := strconv.ParseInt(c.Param("classId"), 10, 32)
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return domain.ClassId(id), nil
}

func (h *handler) getAsset(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	a, err := h.au.Get(ctx, assetId)
	if err == domain.ErrNotFound {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

func (h *handler) listAssets(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Owner   *string `query:"owner"`
		ClassId *int32  `query:"classId"`
		Offset  int32   `query:"offset"`
		Limit   int32   `query:"limit"`
	}
	p := &params{Limit: 30}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []asset.FindAllOptionsFunc{asset.WithPagination(p.Offset, p.Limit)}
	if p.Owner != nil {
		opts = append(opts, asset.WithOwner(domain.Address(*p.Owner)))
	}
	if p.ClassId != nil {
		opts = append(opts, asset.WithClassId(domain.ClassId(*p.ClassId)))
	}

	assets, err := h.au.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, assets)
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		To      domain.Address `json:"to"`
		ClassId domain.ClassId `json:"classId"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	assetId, err := h.au.Mint(ctx, caller, p.To, p.ClassId)
	if err == domain.ErrNotMinter {
		return delivery.MakeJsonResp(c, http.StatusMethodNotAllowed, err)
	} else if err == domain.ErrInvalidAddress {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		AssetId domain.AssetId `json:"assetId"`
	}{AssetId: assetId}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) transfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		To      domain.Address `json:"to"`
		AuxData string         `json:"auxData"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err = h.au.Transfer(ctx, caller, caller, p.To, assetId, p.AuxData)
	if err == domain.ErrNotOwner {
		return delivery.MakeJsonResp(c, http.StatusMethodNotAllowed, err)
	} else if err == domain.ErrInvalidAddress || err == domain.ErrNoOwner {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) burn(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err = h.au.Burn(ctx, caller, assetId)
	if err == domain.ErrNotOwner {
		return delivery.MakeJsonResp(c, http.StatusMethodNotAllowed, err)
	} else if err == domain.ErrAssetEncumbered {
		return delivery.MakeJsonResp(c, http.StatusConflict, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getProperties(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	slots, err := h.pu.GetAll(ctx, assetId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, slots)
}

func (h *handler) getProperty(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	slot, err := h.pu.Get(ctx, assetId, index)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, slot)
}

func (h *handler) appendProperty(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Text string `json:"text"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err = h.pu.Append(ctx, caller, assetId, p.Text)
	if err == domain.ErrNotMinter {
		return delivery.MakeJsonResp(c, http.StatusMethodNotAllowed, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) setUserContent(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	assetId, err := paramAssetId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Text string `json:"text"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err = h.pu.SetUserContent(ctx, caller, assetId, p.Text)
	if err == domain.ErrNotOwner {
		return delivery.MakeJsonResp(c, http.StatusMethodNotAllowed, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) setClassTemplate(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	classId, err := paramClassId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Slots []string `json:"slots"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err = h.pu.SetClassTemplate(ctx, caller, classId, p.Slots)
	if err == domain.ErrNotAdmin {
		return delivery.MakeJsonResp(c, http.StatusMethodNotAllowed, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
