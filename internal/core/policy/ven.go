package policy

import "github.com/openadr/vtn/internal/core/auth"

// CanListVens / CanGetVen implement spec §4.4's ven.list/get row: unlike
// the other resources this one restricts the *caller population* itself
// (not just visibility) to BL, VENManager, or VEN — a caller of any other
// kind is denied outright rather than seeing an empty predicate.
func CanListVens(caller auth.Caller) Decision {
	return venDecision(caller)
}

func CanGetVen(caller auth.Caller) Decision {
	return venDecision(caller)
}

func venDecision(caller auth.Caller) Decision {
	switch {
	// BL/VENManager are an allowed caller population for ven.list/get with
	// no further restriction (spec §4.4): a VEN is not owned by a
	// business, so there is no per-tenant predicate to apply here.
	case caller.IsVENManager(), caller.IsBusiness():
		return allow(AllowAll())
	case caller.IsVEN():
		return allow(readPredicate(caller, Clause{Kind: ClauseIDIn, IDs: caller.VenIDList()}))
	default:
		return deny()
	}
}

// CanWriteVen covers create/update/delete (spec §4.4's
// ven.create/update/delete row): requires write_vens.
func CanWriteVen(caller auth.Caller) Decision {
	if !caller.HasScope(auth.ScopeWriteVens) {
		return deny()
	}
	return allow(AllowAll())
}

// CanAccessResource implements spec §4.4's "resource.* under a VEN" row:
// allowed iff the caller can ven.get the owning VEN; write also requires
// write_vens. own is the owning VEN expressed as a Predicate Object.
func CanAccessResource(caller auth.Caller, own Object, write bool) Decision {
	d := venDecision(caller)
	if !d.Allowed || !d.Predicate.Matches(own) {
		return deny()
	}
	if write && !caller.HasScope(auth.ScopeWriteVens) {
		return deny()
	}
	return allow(AllowAll())
}
