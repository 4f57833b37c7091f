package ports

import (
	"context"

	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
)

// ReportFilter carries the query parameters for listing reports beyond
// the visibility predicate.
type ReportFilter struct {
	ProgramID string // optional
	EventID   string // optional
}

// ReportRepository persists reports (spec §4.5).
//
// Ordering: created_date_time DESC (spec §6).
type ReportRepository interface {
	List(ctx context.Context, pred policy.Predicate, filter ReportFilter, page Pagination) (ListPage[domain.Report], error)
	Get(ctx context.Context, pred policy.Predicate, id string) (domain.Report, error)
	Create(ctx context.Context, r domain.Report) (domain.Report, error)
	Update(ctx context.Context, pred policy.Predicate, id string, r domain.Report) (domain.Report, error)
	Delete(ctx context.Context, pred policy.Predicate, id string) error
}
