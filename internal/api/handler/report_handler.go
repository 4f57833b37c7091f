package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openadr/vtn/internal/core/ports"
	"github.com/openadr/vtn/internal/core/service"
)

// ReportHandler handles HTTP requests for report CRUD (spec §6's
// /reports surface).
type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	page, err := parsePagination(c)
	if err != nil {
		return err
	}

	filter := ports.ReportFilter{
		ProgramID: c.QueryParam("programID"),
		EventID:   c.QueryParam("eventID"),
	}
	result, err := h.service.List(c.Request().Context(), caller, filter, page)
	if err != nil {
		return err
	}

	items := make([]reportResponse, len(result.Items))
	for i, r := range result.Items {
		items[i] = toReportResponse(r)
	}
	return c.JSON(http.StatusOK, listReportsResponse{
		Data:       items,
		Pagination: toPaginationResponse(page, result.Total),
	})
}

func (h *ReportHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	r, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportResponse(r))
}

func (h *ReportHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ProgramID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "programID is required")
	}

	created, err := h.service.Create(c.Request().Context(), caller, req.ProgramID, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReportResponse(created))
}

func (h *ReportHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req reportRequest
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
	return c.JSON(http.StatusOK, toReportResponse(updated))
}

func (h *ReportHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
