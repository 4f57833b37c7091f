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

// EventRepository is a ports.EventRepository over an in-memory map.
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]domain.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: map[string]domain.Event{}}
}

func (r *EventRepository) object(e domain.Event) policy.Object {
	return policy.Object{ID: e.ID, BusinessID: e.BusinessID, VenIDs: e.VenIDs}
}

func (r *EventRepository) List(_ context.Context, pred policy.Predicate, filter ports.EventFilter, page ports.Pagination) (ports.ListPage[domain.Event], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var visible []domain.Event
	for _, e := range r.events {
		if filter.ProgramID != "" && e.ProgramID != filter.ProgramID {
			continue
		}
		if !targetfilter.Matches(e.Targets, filter.Target) {
			continue
		}
		if pred.Matches(r.object(e)) {
			visible = append(visible, e)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return domain.PriorityLess(visible[i], visible[j]) })
	return paginate(visible, page), nil
}

func (r *EventRepository) Get(_ context.Context, pred policy.Predicate, id string) (domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok || !pred.Matches(r.object(e)) {
		return domain.Event{}, domain.ErrNotFound
	}
	return e, nil
}

func (r *EventRepository) Create(_ context.Context, e domain.Event) (domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[e.ID] = e
	return e, nil
}

func (r *EventRepository) Update(_ context.Context, pred policy.Predicate, id string, e domain.Event) (domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.events[id]
	if !ok || !pred.Matches(r.object(existing)) {
		return domain.Event{}, domain.ErrNotFound
	}
	r.events[id] = e
	return e, nil
}

func (r *EventRepository) Delete(_ context.Context, pred policy.Predicate, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.events[id]
	if !ok || !pred.Matches(r.object(existing)) {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	return nil
}
