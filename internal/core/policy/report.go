package policy

import "github.com/openadr/vtn/internal/core/auth"

// CanListReports / CanGetReport implement spec §4.4's report.list/get row:
// BL sees reports under programs owned by its businesses (or globally, via
// the null-business_id tie-break shared with programs); VEN sees reports
// it owns (DESIGN.md's ven_id-backfill resolution of the open question).
func CanListReports(caller auth.Caller) Decision {
	return allow(reportVisibility(caller))
}

func CanGetReport(caller auth.Caller) Decision {
	return allow(reportVisibility(caller))
}

func reportVisibility(caller auth.Caller) Predicate {
	var clauses []Clause
	if caller.IsBusiness() {
		clauses = append(clauses, Clause{
			Kind:        ClauseBusinessIDIn,
			IDs:         caller.BusinessIDList(),
			NullMatches: true,
		})
	}
	if caller.IsVEN() {
		clauses = append(clauses, Clause{
			Kind: ClauseVenIDIn,
			IDs:  caller.VenIDList(),
		})
	}
	return readPredicate(caller, clauses...)
}

// CanWriteReport covers create/update/delete (spec §4.4's
// report.create/update/delete row): requires write_reports; a VEN may
// only write reports whose ven_id is its own, a BL may only write reports
// for programs it owns (businessID is the report's denormalized parent
// business, nil for a globally-owned program).
func CanWriteReport(caller auth.Caller, venID string, businessID *string) Decision {
	if !caller.HasScope(auth.ScopeWriteReports) {
		return deny()
	}
	if caller.IsVEN() {
		if caller.OwnsVen(venID) {
			return allow(AllowAll())
		}
		return deny()
	}
	if businessID == nil {
		if caller.AnyBusiness || caller.IsUserManager() {
			return allow(AllowAll())
		}
		return deny()
	}
	if caller.OwnsBusiness(*businessID) {
		return allow(AllowAll())
	}
	return deny()
}
