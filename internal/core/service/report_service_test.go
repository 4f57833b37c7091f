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

type stubReportRepository struct {
	reports map[string]domain.Report
}

func newStubReportRepository() *stubReportRepository {
	return &stubReportRepository{reports: map[string]domain.Report{}}
}

func (r *stubReportRepository) object(rep domain.Report) policy.Object {
	var venIDs []string
	if rep.VenID != "" {
		venIDs = []string{rep.VenID}
	}
	return policy.Object{ID: rep.ID, BusinessID: rep.BusinessID, VenIDs: venIDs}
}

func (r *stubReportRepository) List(_ context.Context, pred policy.Predicate, filter ports.ReportFilter, page ports.Pagination) (ports.ListPage[domain.Report], error) {
	var visible []domain.Report
	for _, rep := range r.reports {
		if filter.ProgramID != "" && rep.ProgramID != filter.ProgramID {
			continue
		}
		if filter.EventID != "" && rep.EventID != filter.EventID {
			continue
		}
		if pred.Matches(r.object(rep)) {
			visible = append(visible, rep)
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
	return ports.ListPage[domain.Report]{Items: visible[start:end], Total: total}, nil
}

func (r *stubReportRepository) Get(_ context.Context, pred policy.Predicate, id string) (domain.Report, error) {
	rep, ok := r.reports[id]
	if !ok || !pred.Matches(r.object(rep)) {
		return domain.Report{}, domain.ErrNotFound
	}
	return rep, nil
}

func (r *stubReportRepository) Create(_ context.Context, rep domain.Report) (domain.Report, error) {
	r.reports[rep.ID] = rep
	return rep, nil
}

func (r *stubReportRepository) Update(_ context.Context, pred policy.Predicate, id string, rep domain.Report) (domain.Report, error) {
	existing, ok := r.reports[id]
	if !ok || !pred.Matches(r.object(existing)) {
		return domain.Report{}, domain.ErrNotFound
	}
	r.reports[id] = rep
	return rep, nil
}

func (r *stubReportRepository) Delete(_ context.Context, pred policy.Predicate, id string) error {
	existing, ok := r.reports[id]
	if !ok || !pred.Matches(r.object(existing)) {
		return domain.ErrNotFound
	}
	delete(r.reports, id)
	return nil
}

func TestReportService_VenCreatesOwnReport(t *testing.T) {
	programs := newStubProgramRepository()
	reports := newStubReportRepository()
	programSvc := NewProgramService(programs, zerolog.Nop())
	svc := NewReportService(programs, reports, zerolog.Nop())
	ctx := context.Background()

	bl := testCaller(auth.KindBusinessLogic, []string{"business-1"}, nil, auth.ScopeWritePrograms)
	p, err := programSvc.Create(ctx, bl, domain.Program{ProgramName: "p1", BusinessID: sptr("business-1")})
	if err != nil {
		t.Fatalf("create program: %v", err)
	}

	ven := testCaller(auth.KindVEN, nil, []string{"ven-1"}, auth.ScopeWriteReports)
	created, err := svc.Create(ctx, ven, p.ID, domain.Report{VenID: "ven-1", ReportName: "r1"})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if created.BusinessID == nil || *created.BusinessID != "business-1" {
		t.Errorf("expected business_id denormalized from parent program, got %+v", created.BusinessID)
	}

	otherVen := testCaller(auth.KindVEN, nil, []string{"ven-2"}, auth.ScopeWriteReports)
	if _, err := svc.Create(ctx, otherVen, p.ID, domain.Report{VenID: "ven-1"}); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden when a VEN tries to write a report owned by a different VEN, got %v", err)
	}
}

func TestReportService_CreateUnderMissingProgramIsUnprocessable(t *testing.T) {
	programs := newStubProgramRepository()
	reports := newStubReportRepository()
	svc := NewReportService(programs, reports, zerolog.Nop())
	ctx := context.Background()

	ven := testCaller(auth.KindVEN, nil, []string{"ven-1"}, auth.ScopeWriteReports)
	if _, err := svc.Create(ctx, ven, "no-such-program", domain.Report{VenID: "ven-1"}); err != domain.ErrUnprocessableEntity {
		t.Errorf("expected ErrUnprocessableEntity for a missing parent program, got %v", err)
	}
}

func TestReportService_RoundTrip(t *testing.T) {
	programs := newStubProgramRepository()
	reports := newStubReportRepository()
	programSvc := NewProgramService(programs, zerolog.Nop())
	svc := NewReportService(programs, reports, zerolog.Nop())
	ctx := context.Background()

	bl := testCaller(auth.KindBusinessLogic, []string{"business-1"}, nil, auth.ScopeWritePrograms)
	p, _ := programSvc.Create(ctx, bl, domain.Program{ProgramName: "p1", BusinessID: sptr("business-1")})

	ven := testCaller(auth.KindVEN, nil, []string{"ven-1"}, auth.ScopeWriteReports, auth.ScopeReadAll)
	created, err := svc.Create(ctx, ven, p.ID, domain.Report{VenID: "ven-1", ReportName: "r1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(ctx, ven, created.ID)
	if err != nil || got.ReportName != "r1" {
		t.Fatalf("get after create: %v, %+v", err, got)
	}

	updated, err := svc.Update(ctx, ven, created.ID, domain.Report{VenID: "ven-1", ReportName: "r1-renamed"})
	if err != nil || updated.ReportName != "r1-renamed" {
		t.Fatalf("update: %v, %+v", err, updated)
	}

	if err := svc.Delete(ctx, ven, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Get(ctx, ven, created.ID); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestReportService_CannotReassignReportToAnotherVen(t *testing.T) {
	programs := newStubProgramRepository()
	reports := newStubReportRepository()
	programSvc := NewProgramService(programs, zerolog.Nop())
	svc := NewReportService(programs, reports, zerolog.Nop())
	ctx := context.Background()

	bl := testCaller(auth.KindBusinessLogic, []string{"business-1"}, nil, auth.ScopeWritePrograms)
	p, _ := programSvc.Create(ctx, bl, domain.Program{ProgramName: "p1", BusinessID: sptr("business-1")})

	ven := testCaller(auth.KindVEN, nil, []string{"ven-1"}, auth.ScopeWriteReports)
	created, err := svc.Create(ctx, ven, p.ID, domain.Report{VenID: "ven-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, ven, created.ID, domain.Report{VenID: "ven-2"}); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden when reassigning a report to a VEN the caller does not own, got %v", err)
	}
}
