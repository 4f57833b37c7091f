package policy

import (
	"testing"

	"github.com/openadr/vtn/internal/core/auth"
)

func TestEventVisibility_FollowsParentProgramBusinessAndVen(t *testing.T) {
	ownedEvent := Object{ID: "e1", BusinessID: strp("business-1")}
	otherEvent := Object{ID: "e2", BusinessID: strp("business-2")}

	caller := businessCaller("business-1")
	d := CanListEvents(caller)
	if !d.Allowed {
		t.Fatal("expected allow")
	}
	if !d.Predicate.Matches(ownedEvent) {
		t.Error("expected events of an owned program to be visible")
	}
	if d.Predicate.Matches(otherEvent) {
		t.Error("expected events of a program the caller cannot see to be hidden")
	}

	ven := venCaller("ven-1")
	d = CanListEvents(ven)
	if !d.Predicate.Matches(Object{ID: "e3", BusinessID: strp("business-1"), VenIDs: []string{"ven-1"}}) {
		t.Error("expected an event under a VEN-bound program to be visible")
	}
	if d.Predicate.Matches(Object{ID: "e4", BusinessID: strp("business-2"), VenIDs: []string{"ven-2"}}) {
		t.Error("expected an event under an unbound program to be hidden")
	}
}

func TestCanWriteEvent_RequiresScopeAndParentOwnership(t *testing.T) {
	caller := businessCaller("business-1")
	if CanWriteEvent(caller, strp("business-1")).Allowed {
		t.Error("expected deny without write_events scope")
	}

	caller = withScopes(caller, auth.ScopeWriteEvents)
	if !CanWriteEvent(caller, strp("business-1")).Allowed {
		t.Error("expected allow with write_events scope and parent ownership")
	}

	other := withScopes(businessCaller("business-2"), auth.ScopeWriteEvents)
	if CanWriteEvent(other, strp("business-1")).Allowed {
		t.Error("expected deny: caller does not own the parent program's business")
	}
}

func TestCanWriteEvent_NullBusinessRequiresAnyBusinessOrUserManager(t *testing.T) {
	caller := withScopes(businessCaller("business-1"), auth.ScopeWriteEvents)
	if CanWriteEvent(caller, nil).Allowed {
		t.Error("expected deny: plain business caller cannot write an event under a globally-owned program")
	}

	anyBusiness := caller
	anyBusiness.AnyBusiness = true
	if !CanWriteEvent(anyBusiness, nil).Allowed {
		t.Error("expected allow for AnyBusiness caller")
	}
}
