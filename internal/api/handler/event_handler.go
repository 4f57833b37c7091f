package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openadr/vtn/internal/core/ports"
	"github.com/openadr/vtn/internal/core/service"
)

// EventHandler handles HTTP requests for events, both nested under a
// program (/programs/{programID}/events, spec §6) and flat (/events,
// /events/{id}, spec §8 scenario S1) — both surfaces share the same
// EventService methods since event visibility is evaluated off the
// event's own denormalized business_id/ven_ids rather than a path param.
type EventHandler struct {
	service *service.EventService
}

func NewEventHandler(service *service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// programIDFilter resolves the programID to filter by: the nested route's
// :programId path param takes precedence, falling back to the flat
// route's ?programID= query parameter (spec §8 scenario S1).
func programIDFilter(c echo.Context) string {
	if id := c.Param("programId"); id != "" {
		return id
	}
	return c.QueryParam("programID")
}

func (h *EventHandler) List(c echo.Context) error {
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

	filter := ports.EventFilter{ProgramID: programIDFilter(c), Target: target}
	result, err := h.service.List(c.Request().Context(), caller, filter, page)
	if err != nil {
		return err
	}

	items := make([]eventResponse, len(result.Items))
	for i, e := range result.Items {
		items[i] = toEventResponse(e)
	}
	return c.JSON(http.StatusOK, listEventsResponse{
		Data:       items,
		Pagination: toPaginationResponse(page, result.Total),
	})
}

func (h *EventHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	e, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// Create only exists on the nested route: an event cannot be created
// without a parent program to denormalize business_id/ven_ids from.
func (h *EventHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), caller, c.Param("programId"), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventResponse(created))
}

func (h *EventHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req eventRequest
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
	return c.JSON(http.StatusOK, toEventResponse(updated))
}

func (h *EventHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
