package policy

import "testing"

import "github.com/openadr/vtn/internal/core/auth"

func businessCaller(businessIDs ...string) auth.Caller {
	ids := map[string]struct{}{}
	for _, id := range businessIDs {
		ids[id] = struct{}{}
	}
	return auth.Caller{Kind: auth.KindBusinessLogic, BusinessIDs: ids, VenIDs: map[string]struct{}{}, Scopes: map[auth.Scope]struct{}{}}
}

func venCaller(venIDs ...string) auth.Caller {
	ids := map[string]struct{}{}
	for _, id := range venIDs {
		ids[id] = struct{}{}
	}
	return auth.Caller{Kind: auth.KindVEN, BusinessIDs: map[string]struct{}{}, VenIDs: ids, Scopes: map[auth.Scope]struct{}{}}
}

func withScopes(c auth.Caller, scopes ...auth.Scope) auth.Caller {
	c.Scopes = map[auth.Scope]struct{}{}
	for _, s := range scopes {
		c.Scopes[s] = struct{}{}
	}
	return c
}

func strp(s string) *string { return &s }

func TestProgramVisibility_BusinessSeesOwnAndGlobal(t *testing.T) {
	caller := businessCaller("business-1")
	d := CanListPrograms(caller)
	if !d.Allowed {
		t.Fatal("expected allow")
	}
	if !d.Predicate.Matches(Object{ID: "p1", BusinessID: strp("business-1")}) {
		t.Error("expected owned program to be visible")
	}
	if d.Predicate.Matches(Object{ID: "p2", BusinessID: strp("business-2")}) {
		t.Error("expected other business's program to be hidden")
	}
	if !d.Predicate.Matches(Object{ID: "p3", BusinessID: nil}) {
		t.Error("expected globally-visible (null business_id) program to match")
	}
}

func TestProgramVisibility_VenSeesBoundAndGlobal(t *testing.T) {
	caller := venCaller("ven-1")
	d := CanListPrograms(caller)
	if !d.Predicate.Matches(Object{ID: "p-A", BusinessID: strp("business-1"), VenIDs: []string{"ven-1"}}) {
		t.Error("expected VEN-bound program to be visible")
	}
	if d.Predicate.Matches(Object{ID: "p-B", BusinessID: strp("business-2"), VenIDs: []string{"ven-2"}}) {
		t.Error("expected unbound program from another business to be hidden")
	}
	if !d.Predicate.Matches(Object{ID: "p-C", BusinessID: nil}) {
		t.Error("expected globally-visible program to match for a VEN caller too")
	}
}

func TestProgramVisibility_ReadAllOverridesPredicate(t *testing.T) {
	caller := withScopes(businessCaller("business-1"), auth.ScopeReadAll)
	d := CanListPrograms(caller)
	if !d.Predicate.Matches(Object{ID: "p-anything", BusinessID: strp("some-other-business")}) {
		t.Error("expected read_all to override visibility predicate")
	}
}

func TestCanWriteProgram_RequiresScope(t *testing.T) {
	caller := businessCaller("business-1")
	if CanWriteProgram(caller, strp("business-1")).Allowed {
		t.Error("expected deny without write_programs scope")
	}
	caller = withScopes(caller, auth.ScopeWritePrograms)
	if !CanWriteProgram(caller, strp("business-1")).Allowed {
		t.Error("expected allow with write_programs scope and ownership")
	}
	if CanWriteProgram(caller, strp("business-2")).Allowed {
		t.Error("expected deny for a business the caller does not own")
	}
}

func TestCanWriteProgram_NullBusinessRequiresAnyBusinessOrUserManager(t *testing.T) {
	caller := withScopes(businessCaller("business-1"), auth.ScopeWritePrograms)
	if CanWriteProgram(caller, nil).Allowed {
		t.Error("expected deny: plain business caller cannot write a globally-owned program")
	}

	anyBusiness := caller
	anyBusiness.AnyBusiness = true
	if !CanWriteProgram(anyBusiness, nil).Allowed {
		t.Error("expected allow for AnyBusiness caller")
	}

	userManager := withScopes(businessCaller(), auth.ScopeWritePrograms)
	userManager.Kind = auth.KindUserManager
	if !CanWriteProgram(userManager, nil).Allowed {
		t.Error("expected allow for UserManager caller")
	}
}
