package handler

import (
	"time"

	"github.com/openadr/vtn/internal/core/domain"
)

type eventRequest struct {
	EventName      string          `json:"eventName,omitempty"`
	Priority       *int            `json:"priority,omitempty"`
	Targets        []domain.Target `json:"targets,omitempty" validate:"omitempty,dive"`
	IntervalPeriod *string         `json:"intervalPeriod,omitempty"`
}

func (r eventRequest) toDomain() domain.Event {
	return domain.Event{
		EventName:      r.EventName,
		Priority:       r.Priority,
		Targets:        r.Targets,
		IntervalPeriod: r.IntervalPeriod,
	}
}

type eventResponse struct {
	ID                   string          `json:"id"`
	ProgramID            string          `json:"programID"`
	EventName            string          `json:"eventName,omitempty"`
	Priority             *int            `json:"priority,omitempty"`
	Targets              []domain.Target `json:"targets,omitempty"`
	IntervalPeriod       *string         `json:"intervalPeriod,omitempty"`
	CreatedDateTime      time.Time       `json:"createdDateTime"`
	ModificationDateTime time.Time       `json:"modificationDateTime"`
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:                   e.ID,
		ProgramID:            e.ProgramID,
		EventName:            e.EventName,
		Priority:             e.Priority,
		Targets:              e.Targets,
		IntervalPeriod:       e.IntervalPeriod,
		CreatedDateTime:      e.CreatedDateTime,
		ModificationDateTime: e.ModificationDateTime,
	}
}

type listEventsResponse struct {
	Data       []eventResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
