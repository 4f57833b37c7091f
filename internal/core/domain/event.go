package domain

import "time"

// Event is a time-bounded instance within a program. Priority is nil-able:
// a smaller numeric value is higher precedence, nil sorts last (spec §3).
//
// BusinessID and VenIDs are denormalized from the parent program at
// creation time (the same pattern domain.Report uses for BusinessID), so
// an event's visibility predicate can be evaluated against the event
// itself rather than requiring a join back to its program on every list
// or get — this is what lets the flat GET /events and GET/PUT/DELETE
// /events/{id} routes (spec §8 scenario S1) exist independently of the
// nested /programs/{id}/events path.
type Event struct {
	ID                   string    `json:"id" bson:"_id,omitempty"`
	ProgramID            string    `json:"programID" bson:"program_id"`
	BusinessID           *string   `json:"-" bson:"business_id,omitempty"`
	VenIDs               []string  `json:"-" bson:"ven_ids,omitempty"`
	EventName            string    `json:"eventName,omitempty" bson:"event_name,omitempty"`
	Priority             *int      `json:"priority,omitempty" bson:"priority,omitempty"`
	Targets              []Target  `json:"targets,omitempty" bson:"targets,omitempty"`
	IntervalPeriod       *string   `json:"intervalPeriod,omitempty" bson:"interval_period,omitempty"`
	CreatedDateTime      time.Time `json:"createdDateTime" bson:"created_date_time"`
	ModificationDateTime time.Time `json:"modificationDateTime" bson:"modification_date_time"`
}

// PriorityLess orders events by (priority ASC NULLS LAST, created_date_time DESC),
// the listing order spec §6 assigns to events.
func PriorityLess(a, b Event) bool {
	switch {
	case a.Priority == nil && b.Priority == nil:
		return a.CreatedDateTime.After(b.CreatedDateTime)
	case a.Priority == nil:
		return false
	case b.Priority == nil:
		return true
	case *a.Priority != *b.Priority:
		return *a.Priority < *b.Priority
	default:
		return a.CreatedDateTime.After(b.CreatedDateTime)
	}
}
