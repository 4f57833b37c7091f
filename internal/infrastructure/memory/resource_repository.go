package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/ports"
	"github.com/openadr/vtn/internal/core/targetfilter"
)

// ResourceRepository is a ports.ResourceRepository over an in-memory map.
// Ownership enforcement happens one layer up (ResourceService.authorize
// resolves the owning VEN via VenRepository.Get under policy), so this
// repository only scopes by ven_id.
type ResourceRepository struct {
	mu        sync.RWMutex
	resources map[string]domain.Resource
}

func NewResourceRepository() *ResourceRepository {
	return &ResourceRepository{resources: map[string]domain.Resource{}}
}

func (r *ResourceRepository) List(_ context.Context, filter ports.ResourceFilter, page ports.Pagination) (ports.ListPage[domain.Resource], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Resource
	for _, res := range r.resources {
		if res.VenID != filter.VenID {
			continue
		}
		if !targetfilter.Matches(res.Targets, filter.Target) {
			continue
		}
		matched = append(matched, res)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedDateTime.Before(matched[j].CreatedDateTime) })
	return paginate(matched, page), nil
}

func (r *ResourceRepository) Get(_ context.Context, venID, id string) (domain.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.resources[id]
	if !ok || res.VenID != venID {
		return domain.Resource{}, domain.ErrNotFound
	}
	return res, nil
}

func (r *ResourceRepository) Create(_ context.Context, res domain.Resource) (domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resources[res.ID] = res
	return res, nil
}

func (r *ResourceRepository) Update(_ context.Context, venID, id string, res domain.Resource) (domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.resources[id]
	if !ok || existing.VenID != venID {
		return domain.Resource{}, domain.ErrNotFound
	}
	r.resources[id] = res
	return res, nil
}

func (r *ResourceRepository) Delete(_ context.Context, venID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.resources[id]
	if !ok || existing.VenID != venID {
		return domain.ErrNotFound
	}
	delete(r.resources, id)
	return nil
}

func (r *ResourceRepository) DeleteByVenID(_ context.Context, venID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, res := range r.resources {
		if res.VenID == venID {
			delete(r.resources, id)
		}
	}
	return nil
}
