package ports

import (
	"context"

	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
)

// ProgramFilter carries the query parameters for listing programs beyond
// the visibility predicate (spec §4.5).
type ProgramFilter struct {
	Target *TargetFilter
}

// ProgramRepository persists programs. Every read takes the visibility
// Predicate produced by policy.CanListPrograms/CanGetProgram; the
// implementation is responsible for translating Predicate and Filter into
// a single storage query (spec §4.5's "never post-filter more than the
// store's natural page").
//
// Ordering: created_date_time DESC (spec §6).
type ProgramRepository interface {
	List(ctx context.Context, pred policy.Predicate, filter ProgramFilter, page Pagination) (ListPage[domain.Program], error)
	Get(ctx context.Context, pred policy.Predicate, id string) (domain.Program, error)
	Create(ctx context.Context, p domain.Program) (domain.Program, error)
	Update(ctx context.Context, pred policy.Predicate, id string, p domain.Program) (domain.Program, error)
	Delete(ctx context.Context, pred policy.Predicate, id string) error

	// BoundVenIDs returns the VEN ids enrolled in programID (the
	// many-to-many VEN↔Program binding of spec §3), used to evaluate the
	// ClauseVenIDIn leg of a program's visibility predicate.
	BoundVenIDs(ctx context.Context, programID string) ([]string, error)
	// BindVen and UnbindVen manage that enrolment.
	BindVen(ctx context.Context, programID, venID string) error
	UnbindVen(ctx context.Context, programID, venID string) error
}
