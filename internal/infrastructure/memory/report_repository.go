package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
	"github.com/openadr/vtn/internal/core/ports"
)

type ReportRepository struct {
	mu      sync.RWMutex
	reports map[string]domain.Report
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{reports: map[string]domain.Report{}}
}

func (r *ReportRepository) object(rep domain.Report) policy.Object {
	var venIDs []string
	if rep.VenID != "" {
		venIDs = []string{rep.VenID}
	}
	return policy.Object{ID: rep.ID, BusinessID: rep.BusinessID, VenIDs: venIDs}
}

func (r *ReportRepository) List(_ context.Context, pred policy.Predicate, filter ports.ReportFilter, page ports.Pagination) (ports.ListPage[domain.Report], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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
	return paginate(visible, page), nil
}

func (r *ReportRepository) Get(_ context.Context, pred policy.Predicate, id string) (domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.reports[id]
	if !ok || !pred.Matches(r.object(rep)) {
		return domain.Report{}, domain.ErrNotFound
	}
	return rep, nil
}

func (r *ReportRepository) Create(_ context.Context, rep domain.Report) (domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports[rep.ID] = rep
	return rep, nil
}

func (r *ReportRepository) Update(_ context.Context, pred policy.Predicate, id string, rep domain.Report) (domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.reports[id]
	if !ok || !pred.Matches(r.object(existing)) {
		return domain.Report{}, domain.ErrNotFound
	}
	r.reports[id] = rep
	return rep, nil
}

func (r *ReportRepository) Delete(_ context.Context, pred policy.Predicate, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.reports[id]
	if !ok || !pred.Matches(r.object(existing)) {
		return domain.ErrNotFound
	}
	delete(r.reports, id)
	return nil
}
