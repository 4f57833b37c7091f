package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/openadr/vtn/internal/core/auth"
	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
	"github.com/openadr/vtn/internal/core/ports"
)

// ReportService orchestrates report operations. Create denormalizes
// business_id from the parent program (domain.Report's doc comment) so
// later visibility checks never need to join back to programs; Update
// re-validates write authority against both the report's existing ven_id
// and its incoming one, the same pre/post-mutation pattern ProgramService
// uses for business_id.
type ReportService struct {
	programs ports.ProgramRepository
	reports  ports.ReportRepository
	logger   zerolog.Logger
}

func NewReportService(programs ports.ProgramRepository, reports ports.ReportRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{programs: programs, reports: reports, logger: logger}
}

func (s *ReportService) List(ctx context.Context, caller auth.Caller, filter ports.ReportFilter, page ports.Pagination) (ports.ListPage[domain.Report], error) {
	decision := policy.CanListReports(caller)
	if !decision.Allowed {
		return ports.ListPage[domain.Report]{}, domain.ErrForbidden
	}
	items, err := s.reports.List(ctx, decision.Predicate, filter, page)
	if err != nil {
		return ports.ListPage[domain.Report]{}, mapRepoErr(s.logger, err)
	}
	return items, nil
}

func (s *ReportService) Get(ctx context.Context, caller auth.Caller, id string) (domain.Report, error) {
	decision := policy.CanGetReport(caller)
	if !decision.Allowed {
		return domain.Report{}, domain.ErrForbidden
	}
	r, err := s.reports.Get(ctx, decision.Predicate, id)
	if err != nil {
		return domain.Report{}, mapRepoErr(s.logger, err)
	}
	return r, nil
}

// Create resolves programID under AllowAll to read its business_id for
// denormalization, then checks write authority against that business_id
// and the report's own ven_id. A program that does not exist at all is a
// referential failure (UnprocessableEntity). The program's visibility to
// the caller is not checked: an existing program is accepted whenever
// CanWriteReport allows the write, and otherwise the result is Forbidden.
func (s *ReportService) Create(ctx context.Context, caller auth.Caller, programID string, r domain.Report) (domain.Report, error) {
	program, err := s.programs.Get(ctx, policy.AllowAll(), programID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Report{}, domain.ErrUnprocessableEntity
		}
		return domain.Report{}, mapRepoErr(s.logger, err)
	}
	if !policy.CanWriteReport(caller, r.VenID, program.BusinessID).Allowed {
		return domain.Report{}, domain.ErrForbidden
	}

	now := time.Now().UTC()
	r.ID = newID("report")
	r.ProgramID = programID
	r.BusinessID = program.BusinessID
	r.CreatedDateTime = now
	r.ModificationDateTime = now

	created, err := s.reports.Create(ctx, r)
	if err != nil {
		return domain.Report{}, mapRepoErr(s.logger, err)
	}
	s.logger.Info().Str("report_id", created.ID).Str("program_id", programID).Msg("report created")
	return created, nil
}

func (s *ReportService) Update(ctx context.Context, caller auth.Caller, id string, r domain.Report) (domain.Report, error) {
	existing, err := s.reports.Get(ctx, policy.AllowAll(), id)
	if err != nil {
		return domain.Report{}, mapRepoErr(s.logger, err)
	}
	if !policy.CanWriteReport(caller, existing.VenID, existing.BusinessID).Allowed {
		return domain.Report{}, domain.ErrForbidden
	}
	if !policy.CanWriteReport(caller, r.VenID, existing.BusinessID).Allowed {
		return domain.Report{}, domain.ErrForbidden
	}

	r.ID = existing.ID
	r.ProgramID = existing.ProgramID
	r.BusinessID = existing.BusinessID
	r.CreatedDateTime = existing.CreatedDateTime
	r.ModificationDateTime = time.Now().UTC()

	updated, err := s.reports.Update(ctx, policy.AllowAll(), id, r)
	if err != nil {
		return domain.Report{}, mapRepoErr(s.logger, err)
	}
	return updated, nil
}

func (s *ReportService) Delete(ctx context.Context, caller auth.Caller, id string) error {
	existing, err := s.reports.Get(ctx, policy.AllowAll(), id)
	if err != nil {
		return mapRepoErr(s.logger, err)
	}
	if !policy.CanWriteReport(caller, existing.VenID, existing.BusinessID).Allowed {
		return domain.ErrForbidden
	}
	if err := s.reports.Delete(ctx, policy.AllowAll(), id); err != nil {
		return mapRepoErr(s.logger, err)
	}
	return nil
}
