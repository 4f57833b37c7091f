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

// ProgramService orchestrates program operations: apply policy, dispatch
// to the repository, translate repository errors (spec §4.6). Shaped
// like the teacher's ShipmentService — holds a repository port plus a
// logger, no policy logic of its own beyond calling into package policy.
type ProgramService struct {
	repo   ports.ProgramRepository
	logger zerolog.Logger
}

func NewProgramService(repo ports.ProgramRepository, logger zerolog.Logger) *ProgramService {
	return &ProgramService{repo: repo, logger: logger}
}

func (s *ProgramService) List(ctx context.Context, caller auth.Caller, filter ports.ProgramFilter, page ports.Pagination) (ports.ListPage[domain.Program], error) {
	decision := policy.CanListPrograms(caller)
	if !decision.Allowed {
		return ports.ListPage[domain.Program]{}, domain.ErrForbidden
	}
	items, err := s.repo.List(ctx, decision.Predicate, filter, page)
	if err != nil {
		return ports.ListPage[domain.Program]{}, mapRepoErr(s.logger, err)
	}
	return items, nil
}

func (s *ProgramService) Get(ctx context.Context, caller auth.Caller, id string) (domain.Program, error) {
	decision := policy.CanGetProgram(caller)
	if !decision.Allowed {
		return domain.Program{}, domain.ErrForbidden
	}
	p, err := s.repo.Get(ctx, decision.Predicate, id)
	if err != nil {
		return domain.Program{}, mapRepoErr(s.logger, err)
	}
	return p, nil
}

// Create assigns id/timestamps and checks write authority against the
// object's business_id before committing (spec §4.4).
func (s *ProgramService) Create(ctx context.Context, caller auth.Caller, p domain.Program) (domain.Program, error) {
	if !policy.CanWriteProgram(caller, p.BusinessID).Allowed {
		return domain.Program{}, domain.ErrForbidden
	}

	now := time.Now().UTC()
	p.ID = newID("program")
	p.CreatedDateTime = now
	p.ModificationDateTime = now

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Program{}, mapRepoErr(s.logger, err)
	}
	s.logger.Info().Str("program_id", created.ID).Msg("program created")
	return created, nil
}

// Update checks write authority on both the existing object (pre-mutation)
// and the incoming one (post-mutation), rejecting attempts to move a
// program out from under the caller's authority (spec §4.4 tie-break).
func (s *ProgramService) Update(ctx context.Context, caller auth.Caller, id string, p domain.Program) (domain.Program, error) {
	existing, err := s.repo.Get(ctx, policy.AllowAll(), id)
	if err != nil {
		return domain.Program{}, mapRepoErr(s.logger, err)
	}
	if !policy.CanWriteProgram(caller, existing.BusinessID).Allowed {
		return domain.Program{}, domain.ErrForbidden
	}
	if !policy.CanWriteProgram(caller, p.BusinessID).Allowed {
		return domain.Program{}, domain.ErrForbidden
	}

	p.ID = existing.ID
	p.CreatedDateTime = existing.CreatedDateTime
	p.ModificationDateTime = time.Now().UTC()

	updated, err := s.repo.Update(ctx, policy.AllowAll(), id, p)
	if err != nil {
		return domain.Program{}, mapRepoErr(s.logger, err)
	}
	return updated, nil
}

func (s *ProgramService) Delete(ctx context.Context, caller auth.Caller, id string) error {
	existing, err := s.repo.Get(ctx, policy.AllowAll(), id)
	if err != nil {
		return mapRepoErr(s.logger, err)
	}
	if !policy.CanWriteProgram(caller, existing.BusinessID).Allowed {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, policy.AllowAll(), id); err != nil {
		return mapRepoErr(s.logger, err)
	}
	return nil
}

// mapRepoErr translates repository sentinel errors and context
// cancellation into the taxonomy of spec §7, the same errors.Is dispatch
// idiom as the teacher's error_handler.go, moved one layer down so the
// HTTP Adapter only ever sees domain.Err* values.
func mapRepoErr(log zerolog.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrUnprocessableEntity):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return domain.ErrGatewayTimeout
	default:
		log.Error().Err(err).Msg("unexpected repository error")
		return domain.ErrInternal
	}
}
