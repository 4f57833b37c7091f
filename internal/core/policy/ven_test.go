package policy

import (
	"testing"

	"github.com/openadr/vtn/internal/core/auth"
)

func TestCanListVens_RestrictsCallerPopulation(t *testing.T) {
	userManager := auth.Caller{Kind: auth.KindUserManager, BusinessIDs: map[string]struct{}{}, VenIDs: map[string]struct{}{}, Scopes: map[auth.Scope]struct{}{}}
	if CanListVens(userManager).Allowed {
		t.Error("expected deny: UserManager is not in the allowed-caller set for ven.list")
	}

	bl := businessCaller("business-1")
	if !CanListVens(bl).Allowed {
		t.Error("expected allow for BL")
	}

	ven := venCaller("ven-1")
	d := CanListVens(ven)
	if !d.Allowed {
		t.Fatal("expected allow for VEN (restricted to itself)")
	}
	if !d.Predicate.Matches(Object{ID: "ven-1"}) {
		t.Error("expected VEN to see itself")
	}
	if d.Predicate.Matches(Object{ID: "ven-2"}) {
		t.Error("expected VEN to be denied visibility of another VEN")
	}
}

func TestCanAccessResource_FollowsOwningVenVisibility(t *testing.T) {
	ven := venCaller("ven-1")
	owned := Object{ID: "ven-1"}
	other := Object{ID: "ven-2"}

	if !CanAccessResource(ven, owned, false).Allowed {
		t.Error("expected read access to a resource under the VEN's own ven")
	}
	if CanAccessResource(ven, other, false).Allowed {
		t.Error("expected deny for a resource under another VEN")
	}
	if CanAccessResource(ven, owned, true).Allowed {
		t.Error("expected deny for write without write_vens scope")
	}

	withWrite := withScopes(ven, auth.ScopeWriteVens)
	if !CanAccessResource(withWrite, owned, true).Allowed {
		t.Error("expected allow for write with write_vens scope")
	}
}
