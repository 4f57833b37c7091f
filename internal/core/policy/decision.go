package policy

import "github.com/openadr/vtn/internal/core/auth"

// Decision is the outcome of a policy check: either Allowed with the
// visibility Predicate to push into the repository's query, or denied
// (Allowed == false), in which case the caller must fail the request with
// Forbidden without revealing why (spec §7).
type Decision struct {
	Allowed   bool
	Predicate Predicate
}

func allow(p Predicate) Decision { return Decision{Allowed: true, Predicate: p} }
func deny() Decision             { return Decision{Allowed: false} }

// readPredicate builds the read-visibility predicate shared by list/get
// across resource kinds: read_all overrides everything (spec §4.4 tie-break),
// as does AnyBusiness, whose business set is universal; otherwise the
// resource-specific clauses decide.
func readPredicate(caller auth.Caller, clauses ...Clause) Predicate {
	if caller.HasScope(auth.ScopeReadAll) || caller.AnyBusiness {
		return AllowAll()
	}
	return Predicate{Clauses: clauses}
}
