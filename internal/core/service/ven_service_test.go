package service

import (
	"context"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openadr/vtn/internal/core/auth"
	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
	"github.com/openadr/vtn/internal/core/ports"
)

type stubVenRepository struct {
	vens map[string]domain.Ven
}

func newStubVenRepository() *stubVenRepository {
	return &stubVenRepository{vens: map[string]domain.Ven{}}
}

func (r *stubVenRepository) List(_ context.Context, pred policy.Predicate, _ ports.VenFilter, page ports.Pagination) (ports.ListPage[domain.Ven], error) {
	var visible []domain.Ven
	for _, v := range r.vens {
		if pred.Matches(policy.Object{ID: v.ID}) {
			visible = append(visible, v)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].CreatedDateTime.After(visible[j].CreatedDateTime) })
	total := int64(len(visible))
	start := page.Skip
	if start > len(visible) {
		start = len(visible)
	}
	end := start + page.Limit
	if end > len(visible) || page.Limit == 0 {
		end = len(visible)
	}
	return ports.ListPage[domain.Ven]{Items: visible[start:end], Total: total}, nil
}

func (r *stubVenRepository) Get(_ context.Context, pred policy.Predicate, id string) (domain.Ven, error) {
	v, ok := r.vens[id]
	if !ok || !pred.Matches(policy.Object{ID: v.ID}) {
		return domain.Ven{}, domain.ErrNotFound
	}
	return v, nil
}

func (r *stubVenRepository) Create(_ context.Context, v domain.Ven) (domain.Ven, error) {
	r.vens[v.ID] = v
	return v, nil
}

func (r *stubVenRepository) Update(_ context.Context, pred policy.Predicate, id string, v domain.Ven) (domain.Ven, error) {
	existing, ok := r.vens[id]
	if !ok || !pred.Matches(policy.Object{ID: existing.ID}) {
		return domain.Ven{}, domain.ErrNotFound
	}
	r.vens[id] = v
	return v, nil
}

func (r *stubVenRepository) Delete(_ context.Context, pred policy.Predicate, id string) error {
	existing, ok := r.vens[id]
	if !ok || !pred.Matches(policy.Object{ID: existing.ID}) {
		return domain.ErrNotFound
	}
	delete(r.vens, id)
	return nil
}

type stubResourceRepository struct {
	resources map[string]domain.Resource
}

func newStubResourceRepository() *stubResourceRepository {
	return &stubResourceRepository{resources: map[string]domain.Resource{}}
}

func (r *stubResourceRepository) List(_ context.Context, filter ports.ResourceFilter, page ports.Pagination) (ports.ListPage[domain.Resource], error) {
	var matched []domain.Resource
	for _, res := range r.resources {
		if res.VenID == filter.VenID {
			matched = append(matched, res)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedDateTime.Before(matched[j].CreatedDateTime) })
	total := int64(len(matched))
	start := page.Skip
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) || page.Limit == 0 {
		end = len(matched)
	}
	return ports.ListPage[domain.Resource]{Items: matched[start:end], Total: total}, nil
}

func (r *stubResourceRepository) Get(_ context.Context, venID, id string) (domain.Resource, error) {
	res, ok := r.resources[id]
	if !ok || res.VenID != venID {
		return domain.Resource{}, domain.ErrNotFound
	}
	return res, nil
}

func (r *stubResourceRepository) Create(_ context.Context, res domain.Resource) (domain.Resource, error) {
	r.resources[res.ID] = res
	return res, nil
}

func (r *stubResourceRepository) Update(_ context.Context, venID, id string, res domain.Resource) (domain.Resource, error) {
	existing, ok := r.resources[id]
	if !ok || existing.VenID != venID {
		return domain.Resource{}, domain.ErrNotFound
	}
	r.resources[id] = res
	return res, nil
}

func (r *stubResourceRepository) Delete(_ context.Context, venID, id string) error {
	existing, ok := r.resources[id]
	if !ok || existing.VenID != venID {
		return domain.ErrNotFound
	}
	delete(r.resources, id)
	return nil
}

func (r *stubResourceRepository) DeleteByVenID(_ context.Context, venID string) error {
	for id, res := range r.resources {
		if res.VenID == venID {
			delete(r.resources, id)
		}
	}
	return nil
}

func TestVenService_VenSeesOnlyItself(t *testing.T) {
	repo := newStubVenRepository()
	svc := NewVenService(repo, zerolog.Nop())
	ctx := context.Background()

	manager := testCaller(auth.KindVENManager, nil, nil, auth.ScopeWriteVens)
	v1, err := svc.Create(ctx, manager, domain.Ven{VenName: "v1"})
	if err != nil {
		t.Fatalf("create v1: %v", err)
	}
	v2, err := svc.Create(ctx, manager, domain.Ven{VenName: "v2"})
	if err != nil {
		t.Fatalf("create v2: %v", err)
	}

	ven := testCaller(auth.KindVEN, nil, []string{v1.ID})
	page, err := svc.List(ctx, ven, ports.VenFilter{}, ports.Pagination{Limit: 50})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != v1.ID {
		t.Fatalf("expected the VEN to see only itself, got %+v", page.Items)
	}

	if _, err := svc.Get(ctx, ven, v2.ID); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound for a VEN the caller does not represent, got %v", err)
	}

	page, err = svc.List(ctx, manager, ports.VenFilter{}, ports.Pagination{Limit: 50})
	if err != nil {
		t.Fatalf("list as manager: %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("expected VENManager to see every VEN with no per-tenant restriction, got %d", len(page.Items))
	}
}

func TestVenService_UnknownCallerKindDenied(t *testing.T) {
	repo := newStubVenRepository()
	svc := NewVenService(repo, zerolog.Nop())

	unknown := testCaller(auth.KindUnknown, nil, nil)
	if _, err := svc.List(context.Background(), unknown, ports.VenFilter{}, ports.Pagination{Limit: 50}); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden for an unrecognized caller kind, got %v", err)
	}
}

func TestResourceService_DeleteByVenIDEmptiesResourceList(t *testing.T) {
	vens := newStubVenRepository()
	resources := newStubResourceRepository()
	venSvc := NewVenService(vens, zerolog.Nop())
	resSvc := NewResourceService(vens, resources, zerolog.Nop())
	ctx := context.Background()

	manager := testCaller(auth.KindVENManager, nil, nil, auth.ScopeWriteVens)
	v, err := venSvc.Create(ctx, manager, domain.Ven{VenName: "v1"})
	if err != nil {
		t.Fatalf("create ven: %v", err)
	}
	if _, err := resSvc.Create(ctx, manager, v.ID, domain.Resource{ResourceName: "r1"}); err != nil {
		t.Fatalf("create resource: %v", err)
	}

	if err := resources.DeleteByVenID(ctx, v.ID); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	page, err := resSvc.List(ctx, manager, v.ID, ports.ResourceFilter{}, ports.Pagination{Limit: 50})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("expected no resources left after cascade delete, got %+v", page.Items)
	}
}

func TestResourceService_OwnershipGatesAccess(t *testing.T) {
	vens := newStubVenRepository()
	resources := newStubResourceRepository()
	venSvc := NewVenService(vens, zerolog.Nop())
	resSvc := NewResourceService(vens, resources, zerolog.Nop())
	ctx := context.Background()

	manager := testCaller(auth.KindVENManager, nil, nil, auth.ScopeWriteVens)
	v, _ := venSvc.Create(ctx, manager, domain.Ven{VenName: "v1"})

	ownVen := testCaller(auth.KindVEN, nil, []string{v.ID}, auth.ScopeWriteVens)
	if _, err := resSvc.Create(ctx, ownVen, v.ID, domain.Resource{ResourceName: "r1"}); err != nil {
		t.Fatalf("create as owning VEN: %v", err)
	}

	otherVen := testCaller(auth.KindVEN, nil, []string{"ven-2"})
	if _, err := resSvc.List(ctx, otherVen, v.ID, ports.ResourceFilter{}, ports.Pagination{Limit: 50}); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound for a VEN that does not own the resource's VEN, got %v", err)
	}
}
