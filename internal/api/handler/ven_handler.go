package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openadr/vtn/internal/core/ports"
	"github.com/openadr/vtn/internal/core/service"
)

// VenHandler handles HTTP requests for VEN CRUD (spec §6's /vens surface).
type VenHandler struct {
	service *service.VenService
}

func NewVenHandler(service *service.VenService) *VenHandler {
	return &VenHandler{service: service}
}

func (h *VenHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	page, err := parsePagination(c)
	if err != nil {
		return err
	}
	target, err := parseTargetFilter(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), caller, ports.VenFilter{Target: target}, page)
	if err != nil {
		return err
	}

	items := make([]venResponse, len(result.Items))
	for i, v := range result.Items {
		items[i] = toVenResponse(v)
	}
	return c.JSON(http.StatusOK, listVensResponse{
		Data:       items,
		Pagination: toPaginationResponse(page, result.Total),
	})
}

func (h *VenHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	v, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVenResponse(v))
}

func (h *VenHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req venRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), caller, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toVenResponse(created))
}

func (h *VenHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req venRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVenResponse(updated))
}

func (h *VenHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ResourceHandler handles HTTP requests for resources nested under a VEN
// (spec §6's /vens/{id}/resources surface).
type ResourceHandler struct {
	service *service.ResourceService
}

func NewResourceHandler(service *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

func (h *ResourceHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	page, err := parsePagination(c)
	if err != nil {
		return err
	}
	target, err := parseTargetFilter(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), caller, c.Param("venId"), ports.ResourceFilter{Target: target}, page)
	if err != nil {
		return err
	}

	items := make([]resourceResponse, len(result.Items))
	for i, r := range result.Items {
		items[i] = toResourceResponse(r)
	}
	return c.JSON(http.StatusOK, listResourcesResponse{
		Data:       items,
		Pagination: toPaginationResponse(page, result.Total),
	})
}

func (h *ResourceHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	r, err := h.service.Get(c.Request().Context(), caller, c.Param("venId"), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toResourceResponse(r))
}

func (h *ResourceHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req resourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), caller, c.Param("venId"), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toResourceResponse(created))
}

func (h *ResourceHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req resourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), caller, c.Param("venId"), c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toResourceResponse(updated))
}

func (h *ResourceHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller, c.Param("venId"), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
