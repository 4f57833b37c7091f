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

// EventService orchestrates event operations. List/Get apply the caller's
// eventVisibility predicate directly against the event's denormalized
// business_id/ven_ids (domain.Event's doc comment), so they work
// identically whether the request came in flat (GET /events) or nested
// under /programs/:programID/events. Create resolves and owns a parent
// program, since an event cannot exist without one; Update/Delete resolve
// the existing event under policy.AllowAll() first (revealing existence)
// and check write authority explicitly, so a caller without write access
// gets Forbidden rather than NotFound (spec §7) while a genuinely missing
// id still surfaces as NotFound.
type EventService struct {
	programs ports.ProgramRepository
	events   ports.EventRepository
	logger   zerolog.Logger
}

func NewEventService(programs ports.ProgramRepository, events ports.EventRepository, logger zerolog.Logger) *EventService {
	return &EventService{programs: programs, events: events, logger: logger}
}

func (s *EventService) List(ctx context.Context, caller auth.Caller, filter ports.EventFilter, page ports.Pagination) (ports.ListPage[domain.Event], error) {
	decision := policy.CanListEvents(caller)
	if !decision.Allowed {
		return ports.ListPage[domain.Event]{}, domain.ErrForbidden
	}
	items, err := s.events.List(ctx, decision.Predicate, filter, page)
	if err != nil {
		return ports.ListPage[domain.Event]{}, mapRepoErr(s.logger, err)
	}
	return items, nil
}

func (s *EventService) Get(ctx context.Context, caller auth.Caller, id string) (domain.Event, error) {
	decision := policy.CanGetEvent(caller)
	if !decision.Allowed {
		return domain.Event{}, domain.ErrForbidden
	}
	e, err := s.events.Get(ctx, decision.Predicate, id)
	if err != nil {
		return domain.Event{}, mapRepoErr(s.logger, err)
	}
	return e, nil
}

// Create checks a program_id that does not resolve to an existing program
// and fails with UnprocessableEntity (spec §7: referential failure); the
// event's business_id/ven_ids are then denormalized from that program so
// every later list/get/write needs no join back to it.
func (s *EventService) Create(ctx context.Context, caller auth.Caller, programID string, e domain.Event) (domain.Event, error) {
	program, err := s.programs.Get(ctx, policy.AllowAll(), programID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Event{}, domain.ErrUnprocessableEntity
		}
		return domain.Event{}, mapRepoErr(s.logger, err)
	}
	if !policy.CanWriteEvent(caller, program.BusinessID).Allowed {
		return domain.Event{}, domain.ErrForbidden
	}

	venIDs, err := s.programs.BoundVenIDs(ctx, programID)
	if err != nil {
		return domain.Event{}, mapRepoErr(s.logger, err)
	}

	now := time.Now().UTC()
	e.ID = newID("event")
	e.ProgramID = programID
	e.BusinessID = program.BusinessID
	e.VenIDs = venIDs
	e.CreatedDateTime = now
	e.ModificationDateTime = now

	created, err := s.events.Create(ctx, e)
	if err != nil {
		return domain.Event{}, mapRepoErr(s.logger, err)
	}
	s.logger.Info().Str("event_id", created.ID).Str("program_id", programID).Msg("event created")
	return created, nil
}

func (s *EventService) Update(ctx context.Context, caller auth.Caller, id string, e domain.Event) (domain.Event, error) {
	existing, err := s.events.Get(ctx, policy.AllowAll(), id)
	if err != nil {
		return domain.Event{}, mapRepoErr(s.logger, err)
	}
	if !policy.CanWriteEvent(caller, existing.BusinessID).Allowed {
		return domain.Event{}, domain.ErrForbidden
	}

	e.ID = existing.ID
	e.ProgramID = existing.ProgramID
	e.BusinessID = existing.BusinessID
	e.VenIDs = existing.VenIDs
	e.CreatedDateTime = existing.CreatedDateTime
	e.ModificationDateTime = time.Now().UTC()

	updated, err := s.events.Update(ctx, policy.AllowAll(), id, e)
	if err != nil {
		return domain.Event{}, mapRepoErr(s.logger, err)
	}
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, caller auth.Caller, id string) error {
	existing, err := s.events.Get(ctx, policy.AllowAll(), id)
	if err != nil {
		return mapRepoErr(s.logger, err)
	}
	if !policy.CanWriteEvent(caller, existing.BusinessID).Allowed {
		return domain.ErrForbidden
	}
	if err := s.events.Delete(ctx, policy.AllowAll(), id); err != nil {
		return mapRepoErr(s.logger, err)
	}
	return nil
}
