package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openadr/vtn/internal/core/ports"
	"github.com/openadr/vtn/internal/core/targetfilter"
)

// parsePagination reads skip/limit query parameters and applies spec
// §4.5's bounds: skip >= 0, limit in [1, MaxLimit], defaulting to
// DefaultLimit when absent.
func parsePagination(c echo.Context) (ports.Pagination, error) {
	page := ports.Pagination{Skip: 0, Limit: ports.DefaultLimit}

	if raw := c.QueryParam("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return page, echo.NewHTTPError(http.StatusBadRequest, "skip must be a non-negative integer")
		}
		page.Skip = skip
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > ports.MaxLimit {
			return page, echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(ports.MaxLimit))
		}
		page.Limit = limit
	}

	return page, nil
}

// parseTargetFilter reads targetType/targetValues query parameters,
// rejecting the case where exactly one is present (spec §4.3).
func parseTargetFilter(c echo.Context) (*targetfilter.Filter, error) {
	var targetType *string
	if raw := c.QueryParam("targetType"); raw != "" {
		targetType = &raw
	}
	values := c.QueryParams()["targetValues"]

	f, err := targetfilter.Parse(targetType, values)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return f, nil
}

type paginationResponse struct {
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

func toPaginationResponse(page ports.Pagination, total int64) paginationResponse {
	return paginationResponse{Total: total, Skip: page.Skip, Limit: page.Limit}
}
