package ports

import (
	"context"

	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
)

// EventFilter carries the query parameters for listing events beyond the
// visibility predicate. ProgramID is optional: present when the request
// came through the nested /programs/:programID/events route or carried
// an explicit ?programID= query filter on the flat /events route (spec
// §6, spec §8 scenario S1), absent for an unfiltered flat list.
type EventFilter struct {
	ProgramID string
	Target    *TargetFilter
}

// EventRepository persists events. Every read takes the visibility
// Predicate produced by policy.CanListEvents/CanGetEvent, evaluated
// directly against the event's denormalized business_id/ven_ids
// (domain.Event's doc comment) rather than requiring a join back to the
// parent program — this is what makes both the nested and flat event
// routes possible from a single repository contract, mirroring
// ports.ReportRepository's shape.
//
// Ordering: (priority ASC NULLS LAST, created_date_time DESC) (spec §6).
type EventRepository interface {
	List(ctx context.Context, pred policy.Predicate, filter EventFilter, page Pagination) (ListPage[domain.Event], error)
	Get(ctx context.Context, pred policy.Predicate, id string) (domain.Event, error)
	Create(ctx context.Context, e domain.Event) (domain.Event, error)
	Update(ctx context.Context, pred policy.Predicate, id string, e domain.Event) (domain.Event, error)
	Delete(ctx context.Context, pred policy.Predicate, id string) error
}
