package policy

import "github.com/openadr/vtn/internal/core/auth"

// CanListPrograms / CanGetProgram share the same visibility predicate
// (spec §4.4's program.list/get row): BL/AnyBusiness see programs their
// businesses own, or with a null business_id; VEN sees programs bound to
// one of its ven_ids, or with a null business_id. A caller holding both
// business and VEN membership gets the disjunction (spec §4.4 tie-break).
func CanListPrograms(caller auth.Caller) Decision {
	return allow(programVisibility(caller))
}

// CanGetProgram is list-visibility plus the object itself; callers apply
// the returned Predicate against the fetched program and translate a
// non-match into NotFound (enumeration resistance, spec §7).
func CanGetProgram(caller auth.Caller) Decision {
	return allow(programVisibility(caller))
}

func programVisibility(caller auth.Caller) Predicate {
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
			// Null-business_id programs are visible to every VEN, bound or not.
			Clause{Kind: ClauseBusinessIDIn, IDs: []string{}, NullMatches: true},
		)
	}
	if len(clauses) == 0 {
		// An authenticated caller with neither business nor VEN membership
		// still sees globally-visible (null business_id) programs.
		clauses = append(clauses, Clause{Kind: ClauseBusinessIDIn, NullMatches: true})
	}
	return readPredicate(caller, clauses...)
}

// CanWriteProgram covers create/update/delete (spec §4.4's
// program.create/update/delete row): requires write_programs, and on
// write the object's business_id must be owned by the caller (or the
// caller is AnyBusiness). businessID is nil for a program with no owner,
// which is writable only by AnyBusiness or UserManager per the §4.4
// tie-break.
func CanWriteProgram(caller auth.Caller, businessID *string) Decision {
	if !caller.HasScope(auth.ScopeWritePrograms) {
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
