// Package memory implements every storage port with an in-memory,
// mutex-guarded map: a reference realization of the capability-aware
// repository contracts (spec §4.5), useful for tests and for running the
// server without a database dependency.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
	"github.com/openadr/vtn/internal/core/ports"
	"github.com/openadr/vtn/internal/core/targetfilter"
)

// ProgramRepository is a ports.ProgramRepository over an in-memory map,
// guarded by mu so the repository never holds a lock across a request
// boundary (spec §5): every public method takes and releases mu once.
type ProgramRepository struct {
	mu       sync.RWMutex
	programs map[string]domain.Program
	bindings map[string]map[string]struct{} // programID -> set of venID
}

func NewProgramRepository() *ProgramRepository {
	return &ProgramRepository{
		programs: map[string]domain.Program{},
		bindings: map[string]map[string]struct{}{},
	}
}

func (r *ProgramRepository) object(p domain.Program) policy.Object {
	var venIDs []string
	for id := range r.bindings[p.ID] {
		venIDs = append(venIDs, id)
	}
	return policy.Object{ID: p.ID, BusinessID: p.BusinessID, VenIDs: venIDs}
}

func (r *ProgramRepository) List(_ context.Context, pred policy.Predicate, filter ports.ProgramFilter, page ports.Pagination) (ports.ListPage[domain.Program], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var visible []domain.Program
	for _, p := range r.programs {
		if !targetfilter.Matches(p.Targets, filter.Target) {
			continue
		}
		if pred.Matches(r.object(p)) {
			visible = append(visible, p)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].CreatedDateTime.After(visible[j].CreatedDateTime) })
	return paginate(visible, page), nil
}

func (r *ProgramRepository) Get(_ context.Context, pred policy.Predicate, id string) (domain.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.programs[id]
	if !ok || !pred.Matches(r.object(p)) {
		return domain.Program{}, domain.ErrNotFound
	}
	return p, nil
}

func (r *ProgramRepository) Create(_ context.Context, p domain.Program) (domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.programs[p.ID] = p
	return p, nil
}

func (r *ProgramRepository) Update(_ context.Context, pred policy.Predicate, id string, p domain.Program) (domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.programs[id]
	if !ok || !pred.Matches(r.object(existing)) {
		return domain.Program{}, domain.ErrNotFound
	}
	r.programs[id] = p
	return p, nil
}

func (r *ProgramRepository) Delete(_ context.Context, pred policy.Predicate, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.programs[id]
	if !ok || !pred.Matches(r.object(existing)) {
		return domain.ErrNotFound
	}
	delete(r.programs, id)
	delete(r.bindings, id)
	return nil
}

func (r *ProgramRepository) BoundVenIDs(_ context.Context, programID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id := range r.bindings[programID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *ProgramRepository) BindVen(_ context.Context, programID, venID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bindings[programID] == nil {
		r.bindings[programID] = map[string]struct{}{}
	}
	r.bindings[programID][venID] = struct{}{}
	return nil
}

func (r *ProgramRepository) UnbindVen(_ context.Context, programID, venID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bindings[programID], venID)
	return nil
}
