package ports

import (
	"context"

	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
)

// VenFilter carries the query parameters for listing VENs beyond the
// visibility predicate.
type VenFilter struct {
	Target *TargetFilter
}

// VenRepository persists VENs (spec §4.5).
//
// Ordering: created_date_time DESC (spec §6).
type VenRepository interface {
	List(ctx context.Context, pred policy.Predicate, filter VenFilter, page Pagination) (ListPage[domain.Ven], error)
	Get(ctx context.Context, pred policy.Predicate, id string) (domain.Ven, error)
	Create(ctx context.Context, v domain.Ven) (domain.Ven, error)
	Update(ctx context.Context, pred policy.Predicate, id string, v domain.Ven) (domain.Ven, error)
	// Delete removes the VEN and then cascades to its resources (spec §3
	// invariant: "resources cannot outlive their VEN"). The two deletes
	// are separate steps, not one atomic operation.
	Delete(ctx context.Context, pred policy.Predicate, id string) error
}

// ResourceFilter carries the query parameters for listing resources
// beyond ownership.
type ResourceFilter struct {
	VenID  string
	Target *TargetFilter
}

// ResourceRepository persists resources, exclusively owned by a VEN
// (spec §3). Ownership checks use policy.CanAccessResource against the
// owning VEN, resolved via VenRepository.Get, before any call here.
//
// Ordering: created_date_time ASC (spec §6).
type ResourceRepository interface {
	List(ctx context.Context, filter ResourceFilter, page Pagination) (ListPage[domain.Resource], error)
	Get(ctx context.Context, venID, id string) (domain.Resource, error)
	Create(ctx context.Context, r domain.Resource) (domain.Resource, error)
	Update(ctx context.Context, venID, id string, r domain.Resource) (domain.Resource, error)
	Delete(ctx context.Context, venID, id string) error
	// DeleteByVenID removes every resource owned by venID, used by
	// VenRepository.Delete's cascade.
	DeleteByVenID(ctx context.Context, venID string) error
}
