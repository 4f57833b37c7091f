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

// VenRepository is a ports.VenRepository over an in-memory map. Delete
// cascades to the companion ResourceRepository passed at construction so
// a VEN never outlives its resources (spec §3 invariant) without the
// service layer having to orchestrate two calls.
type VenRepository struct {
	mu        sync.RWMutex
	vens      map[string]domain.Ven
	resources *ResourceRepository
}

func NewVenRepository(resources *ResourceRepository) *VenRepository {
	return &VenRepository{vens: map[string]domain.Ven{}, resources: resources}
}

func (r *VenRepository) List(_ context.Context, pred policy.Predicate, filter ports.VenFilter, page ports.Pagination) (ports.ListPage[domain.Ven], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var visible []domain.Ven
	for _, v := range r.vens {
		if !targetfilter.Matches(v.Targets, filter.Target) {
			continue
		}
		if pred.Matches(policy.Object{ID: v.ID}) {
			visible = append(visible, v)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].CreatedDateTime.After(visible[j].CreatedDateTime) })
	return paginate(visible, page), nil
}

func (r *VenRepository) Get(_ context.Context, pred policy.Predicate, id string) (domain.Ven, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vens[id]
	if !ok || !pred.Matches(policy.Object{ID: v.ID}) {
		return domain.Ven{}, domain.ErrNotFound
	}
	return v, nil
}

func (r *VenRepository) Create(_ context.Context, v domain.Ven) (domain.Ven, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vens[v.ID] = v
	return v, nil
}

func (r *VenRepository) Update(_ context.Context, pred policy.Predicate, id string, v domain.Ven) (domain.Ven, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.vens[id]
	if !ok || !pred.Matches(policy.Object{ID: existing.ID}) {
		return domain.Ven{}, domain.ErrNotFound
	}
	r.vens[id] = v
	return v, nil
}

func (r *VenRepository) Delete(ctx context.Context, pred policy.Predicate, id string) error {
	r.mu.Lock()
	existing, ok := r.vens[id]
	if !ok || !pred.Matches(policy.Object{ID: existing.ID}) {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(r.vens, id)
	r.mu.Unlock()

	if r.resources != nil {
		return r.resources.DeleteByVenID(ctx, id)
	}
	return nil
}
