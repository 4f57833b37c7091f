package policy

import "github.com/openadr/vtn/internal/core/auth"

// CanListEvents / CanGetEvent implement "event.list/get must satisfy
// parent program visibility" (spec §4.4). business_id/ven_ids are
// denormalized onto the event at creation time (domain.Event's doc
// comment), so eventVisibility mirrors programVisibility's clauses
// directly rather than requiring the caller to resolve and re-apply the
// parent program's own predicate — this is what lets events be listed
// and fetched flat (GET /events, GET/PUT/DELETE /events/{id}) as well as
// nested under /programs/{id}/events.
func CanListEvents(caller auth.Caller) Decision {
	return allow(eventVisibility(caller))
}

func CanGetEvent(caller auth.Caller) Decision {
	return allow(eventVisibility(caller))
}

func eventVisibility(caller auth.Caller) Predicate {
	var clauses []Clause
	if caller.IsBusiness() {
		clauses = append(clauses, Clause{
			Kind:        ClauseBusinessIDIn,
			IDs:         caller.BusinessIDList(),
			NullMatches: true,
		})
	}
	if caller.IsVEN() {
		clauses = append(clauses,
			Clause{Kind: ClauseVenIDIn, IDs: caller.VenIDList()},
			Clause{Kind: ClauseBusinessIDIn, IDs: []string{}, NullMatches: true},
		)
	}
	if len(clauses) == 0 {
		clauses = append(clauses, Clause{Kind: ClauseBusinessIDIn, NullMatches: true})
	}
	return readPredicate(caller, clauses...)
}

// CanWriteEvent covers create/update/delete (spec §4.4's
// event.create/update/delete row): requires write_events, and the
// event's (denormalized) parent-program business_id must be owned by the
// caller, or the caller is AnyBusiness/UserManager for a globally-owned
// program — an event's write authority is its parent program's, the same
// rule CanWriteProgram applies to the program itself.
func CanWriteEvent(caller auth.Caller, businessID *string) Decision {
	if !caller.HasScope(auth.ScopeWriteEvents) {
		return deny()
	}
	if businessID == nil {
		if caller.AnyBusiness || caller.IsUserManager() {
			return allow(AllowAll())
		}
		return deny()
	}
	if !caller.OwnsBusiness(*businessID) {
		return deny()
	}
	return allow(AllowAll())
}
