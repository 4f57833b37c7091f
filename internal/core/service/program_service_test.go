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

// stubProgramRepository is a minimal in-memory ports.ProgramRepository,
// grounded on the teacher's stubAuthRepo idiom: just enough behavior to
// exercise the service, predicate evaluation included so tests cover the
// same Forbidden/NotFound indistinguishability the real repository must
// provide.
type stubProgramRepository struct {
	programs map[string]domain.Program
	bindings map[string][]string // programID -> venIDs
}

func newStubProgramRepository() *stubProgramRepository {
	return &stubProgramRepository{programs: map[string]domain.Program{}, bindings: map[string][]string{}}
}

func (r *stubProgramRepository) object(p domain.Program) policy.Object {
	return policy.Object{ID: p.ID, BusinessID: p.BusinessID, VenIDs: r.bindings[p.ID]}
}

func (r *stubProgramRepository) List(_ context.Context, pred policy.Predicate, _ ports.ProgramFilter, page ports.Pagination) (ports.ListPage[domain.Program], error) {
	var visible []domain.Program
	for _, p := range r.programs {
		if pred.Matches(r.object(p)) {
			visible = append(visible, p)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].CreatedDateTime.After(visible[j].CreatedDateTime) })
	total := int64(len(visible))
	start := page.Skip
	if start > len(visible) {
		start = len(visible)
	}
	end := start + page.Limit
	if end > len(visible) {
		end = len(visible)
	}
	return ports.ListPage[domain.Program]{Items: visible[start:end], Total: total}, nil
}

func (r *stubProgramRepository) Get(_ context.Context, pred policy.Predicate, id string) (domain.Program, error) {
	p, ok := r.programs[id]
	if !ok || !pred.Matches(r.object(p)) {
		return domain.Program{}, domain.ErrNotFound
	}
	return p, nil
}

func (r *stubProgramRepository) Create(_ context.Context, p domain.Program) (domain.Program, error) {
	r.programs[p.ID] = p
	return p, nil
}

func (r *stubProgramRepository) Update(_ context.Context, pred policy.Predicate, id string, p domain.Program) (domain.Program, error) {
	existing, ok := r.programs[id]
	if !ok || !pred.Matches(r.object(existing)) {
		return domain.Program{}, domain.ErrNotFound
	}
	r.programs[id] = p
	return p, nil
}

func (r *stubProgramRepository) Delete(_ context.Context, pred policy.Predicate, id string) error {
	existing, ok := r.programs[id]
	if !ok || !pred.Matches(r.object(existing)) {
		return domain.ErrNotFound
	}
	delete(r.programs, id)
	return nil
}

func (r *stubProgramRepository) BoundVenIDs(_ context.Context, programID string) ([]string, error) {
	return r.bindings[programID], nil
}

func (r *stubProgramRepository) BindVen(_ context.Context, programID, venID string) error {
	r.bindings[programID] = append(r.bindings[programID], venID)
	return nil
}

func (r *stubProgramRepository) UnbindVen(_ context.Context, programID, venID string) error {
	ids := r.bindings[programID]
	for i, id := range ids {
		if id == venID {
			r.bindings[programID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func testCaller(kind auth.Kind, businessIDs, venIDs []string, scopes ...auth.Scope) auth.Caller {
	bids := map[string]struct{}{}
	for _, id := range businessIDs {
		bids[id] = struct{}{}
	}
	vids := map[string]struct{}{}
	for _, id := range venIDs {
		vids[id] = struct{}{}
	}
	sc := map[auth.Scope]struct{}{}
	for _, s := range scopes {
		sc[s] = struct{}{}
	}
	return auth.Caller{Kind: kind, BusinessIDs: bids, VenIDs: vids, Scopes: sc}
}

func sptr(s string) *string { return &s }

func TestProgramService_CreateRequiresWriteScope(t *testing.T) {
	repo := newStubProgramRepository()
	svc := NewProgramService(repo, zerolog.Nop())

	caller := testCaller(auth.KindBusinessLogic, []string{"business-1"}, nil)
	_, err := svc.Create(context.Background(), caller, domain.Program{BusinessID: sptr("business-1")})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden without write_programs scope, got %v", err)
	}

	caller = testCaller(auth.KindBusinessLogic, []string{"business-1"}, nil, auth.ScopeWritePrograms)
	p, err := svc.Create(context.Background(), caller, domain.Program{ProgramName: "p1", BusinessID: sptr("business-1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("expected an assigned id")
	}
	if p.CreatedDateTime.IsZero() {
		t.Error("expected created timestamp to be set")
	}
}

// TestProgramService_S2_VenSeesOnlyBoundOrGlobalProgram realizes spec §8
// seed scenario S2.
func TestProgramService_S2_VenSeesOnlyBoundOrGlobalProgram(t *testing.T) {
	repo := newStubProgramRepository()
	svc := NewProgramService(repo, zerolog.Nop())
	ctx := context.Background()

	bl := testCaller(auth.KindBusinessLogic, []string{"business-1"}, nil, auth.ScopeWritePrograms)
	pA, err := svc.Create(ctx, bl, domain.Program{ProgramName: "p-A", BusinessID: sptr("business-1")})
	if err != nil {
		t.Fatalf("create p-A: %v", err)
	}
	if err := repo.BindVen(ctx, pA.ID, "ven-1"); err != nil {
		t.Fatalf("bind: %v", err)
	}

	bl2 := testCaller(auth.KindBusinessLogic, []string{"business-2"}, nil, auth.ScopeWritePrograms)
	if _, err := svc.Create(ctx, bl2, domain.Program{ProgramName: "p-B", BusinessID: sptr("business-2")}); err != nil {
		t.Fatalf("create p-B: %v", err)
	}

	ven := testCaller(auth.KindVEN, nil, []string{"ven-1"})
	page, err := svc.List(ctx, ven, ports.ProgramFilter{}, ports.Pagination{Limit: 50})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ProgramName != "p-A" {
		t.Fatalf("expected only p-A visible to the VEN, got %+v", page.Items)
	}
}

// TestProgramService_S3_HiddenVsMissing realizes spec §8 seed scenario S3:
// a program hidden by policy returns the same NotFound a truly absent id
// would (enumeration resistance).
func TestProgramService_S3_HiddenVsMissing(t *testing.T) {
	repo := newStubProgramRepository()
	svc := NewProgramService(repo, zerolog.Nop())
	ctx := context.Background()

	bl2 := testCaller(auth.KindBusinessLogic, []string{"business-2"}, nil, auth.ScopeWritePrograms)
	pB, err := svc.Create(ctx, bl2, domain.Program{ProgramName: "p-B", BusinessID: sptr("business-2")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ven := testCaller(auth.KindVEN, nil, []string{"ven-1"})
	if _, err := svc.Get(ctx, ven, pB.ID); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound for a hidden program, got %v", err)
	}
	if _, err := svc.Get(ctx, ven, "totally-nonexistent-id"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound for a genuinely missing program, got %v", err)
	}
}

func TestProgramService_RoundTrip(t *testing.T) {
	repo := newStubProgramRepository()
	svc := NewProgramService(repo, zerolog.Nop())
	ctx := context.Background()

	caller := testCaller(auth.KindBusinessLogic, []string{"business-1"}, nil, auth.ScopeWritePrograms)

	created, err := svc.Create(ctx, caller, domain.Program{ProgramName: "p1", BusinessID: sptr("business-1")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(ctx, caller, created.ID)
	if err != nil || got.ProgramName != "p1" {
		t.Fatalf("get after create: %v, %+v", err, got)
	}

	updated, err := svc.Update(ctx, caller, created.ID, domain.Program{ProgramName: "p1-renamed", BusinessID: sptr("business-1")})
	if err != nil || updated.ProgramName != "p1-renamed" {
		t.Fatalf("update: %v, %+v", err, updated)
	}
	if updated.ID != created.ID || !updated.CreatedDateTime.Equal(created.CreatedDateTime) {
		t.Error("expected id and created timestamp to be preserved across update")
	}

	got, err = svc.Get(ctx, caller, created.ID)
	if err != nil || got.ProgramName != "p1-renamed" {
		t.Fatalf("get after update: %v, %+v", err, got)
	}

	if err := svc.Delete(ctx, caller, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Get(ctx, caller, created.ID); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestProgramService_CannotMoveProgramOutFromUnderAuthority(t *testing.T) {
	repo := newStubProgramRepository()
	svc := NewProgramService(repo, zerolog.Nop())
	ctx := context.Background()

	caller := testCaller(auth.KindBusinessLogic, []string{"business-1"}, nil, auth.ScopeWritePrograms)
	created, err := svc.Create(ctx, caller, domain.Program{ProgramName: "p1", BusinessID: sptr("business-1")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(ctx, caller, created.ID, domain.Program{ProgramName: "p1", BusinessID: sptr("business-2")})
	if err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden when reassigning to a business the caller does not own, got %v", err)
	}
}
