package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openadr/vtn/internal/core/ports"
	"github.com/openadr/vtn/internal/core/service"
)

// ProgramHandler handles HTTP requests for program CRUD (spec §4.8,
// §6's /programs surface).
type ProgramHandler struct {
	service *service.ProgramService
}

func NewProgramHandler(service *service.ProgramService) *ProgramHandler {
	return &ProgramHandler{service: service}
}

func (h *ProgramHandler) List(c echo.Context) error {
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

	result, err := h.service.List(c.Request().Context(), caller, ports.ProgramFilter{Target: target}, page)
	if err != nil {
		return err
	}

	items := make([]programResponse, len(result.Items))
	for i, p := range result.Items {
		items[i] = toProgramResponse(p)
	}
	return c.JSON(http.StatusOK, listProgramsResponse{
		Data:       items,
		Pagination: toPaginationResponse(page, result.Total),
	})
}

func (h *ProgramHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	p, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProgramResponse(p))
}

func (h *ProgramHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req programRequest
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
	return c.JSON(http.StatusCreated, toProgramResponse(created))
}

func (h *ProgramHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req programRequest
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
	return c.JSON(http.StatusOK, toProgramResponse(updated))
}

func (h *ProgramHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
