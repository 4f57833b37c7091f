// Package policy implements the pure authorization decision module
// described by the request-authorization kernel: for every
// (operation, object-kind, caller) triple it yields either an Allow
// carrying a visibility Predicate to push into the repository's query, or
// a Deny. Nothing in this package performs I/O.
package policy

// Predicate is the declarative visibility filter attached to an Allow
// decision (design note: "predicate pushdown" — a repository AND's this
// into its storage query rather than the caller running a callback over
// fetched rows). It is a disjunction of clauses; an object is visible iff
// at least one clause matches, or Predicate.All is true.
type Predicate struct {
	// All, when true, means every object of the kind is visible (used for
	// read_all scope and AnyBusiness/UserManager read access) and the
	// Clauses below are irrelevant.
	All bool

	Clauses []Clause
}

// ClauseKind tags which attribute a Clause constrains.
type ClauseKind int

const (
	// ClauseBusinessIDIn matches when the object's business_id is one of
	// BusinessIDs, or (if NullMatches) when business_id is null.
	ClauseBusinessIDIn ClauseKind = iota
	// ClauseVenIDIn matches when the object's VenIDs intersects IDs, or
	// (if NullMatches) when the object carries no VEN association at all.
	// A non-empty intersection test (rather than a single equality) is
	// what lets a Program's many-to-many VEN binding and a Report's
	// single owning VEN share one clause kind.
	ClauseVenIDIn
	// ClauseProgramIDIn matches when the object's program_id is one of
	// ProgramIDs (used by event/report visibility, derived from the
	// parent program's own visible set).
	ClauseProgramIDIn
	// ClauseIDIn matches when the object's own id is one of IDs (used for
	// "VEN sees only itself").
	ClauseIDIn
)

// Clause is one disjunct of a Predicate.
type Clause struct {
	Kind        ClauseKind
	IDs         []string
	NullMatches bool
}

// AllowAll returns the universal predicate.
func AllowAll() Predicate { return Predicate{All: true} }

// Object describes the attributes of a concrete instance a Predicate is
// evaluated against. BusinessID and ProgramID are single-valued pointers
// (nil means "no owner" / "no parent"); VenIDs is a set because a Program
// may be bound to many VENs while a Report/Resource/VEN has exactly one
// (or zero) — callers populate a one-element slice for the latter.
type Object struct {
	ID         string
	BusinessID *string
	VenIDs     []string
	ProgramID  *string
}

// Matches evaluates p against o. In-memory repositories use this directly;
// Mongo-backed repositories translate the same Predicate into a bson.M
// disjunction instead (see internal/infrastructure/db/mongo).
func (p Predicate) Matches(o Object) bool {
	if p.All {
		return true
	}
	for _, c := range p.Clauses {
		if clauseMatches(c, o) {
			return true
		}
	}
	return false
}

func clauseMatches(c Clause, o Object) bool {
	switch c.Kind {
	case ClauseBusinessIDIn:
		if o.BusinessID == nil {
			return c.NullMatches
		}
		return contains(c.IDs, *o.BusinessID)
	case ClauseVenIDIn:
		if len(o.VenIDs) == 0 {
			return c.NullMatches
		}
		return intersects(c.IDs, o.VenIDs)
	case ClauseProgramIDIn:
		if o.ProgramID == nil {
			return false
		}
		return contains(c.IDs, *o.ProgramID)
	case ClauseIDIn:
		return contains(c.IDs, o.ID)
	default:
		return false
	}
}

func contains(ids []string, v string) bool {
	for _, id := range ids {
		if id == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range b {
		if contains(a, v) {
			return true
		}
	}
	return false
}
