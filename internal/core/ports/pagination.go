// Package ports defines the capability-aware repository interfaces the
// kernel's domain services depend on (spec §4.5, §4.6). Program, Event,
// Report and VEN reads accept the caller's resolved visibility Predicate
// alongside an entity-specific Filter so the implementation can push both
// into a single storage query (design note: "predicate pushdown"); the
// Resource, User and Credential repositories take no Predicate.
package ports

import "github.com/openadr/vtn/internal/core/targetfilter"

// DefaultLimit and MaxLimit bound every list endpoint's page size (spec
// §4.5 pagination rule).
const (
	DefaultLimit = 50
	MaxLimit     = 50
)

// Pagination carries the skip/limit pair validated by the HTTP Adapter
// before it ever reaches a service (spec §4.5: skip >= 0, limit in [1,50]).
type Pagination struct {
	Skip  int
	Limit int
}

// ListPage is the uniform shape a repository's List returns: the items of
// the requested page plus the total count of the caller's entire visible,
// filtered set (used for pagination totality, spec §8 property 6).
type ListPage[T any] struct {
	Items []T
	Total int64
}

// TargetFilter is embedded in every entity-specific Filter to carry the
// optional target-type/target-values constraint (spec §4.3).
type TargetFilter = targetfilter.Filter
