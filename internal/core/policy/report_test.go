package policy

import (
	"testing"

	"github.com/openadr/vtn/internal/core/auth"
)

func TestReportVisibility_BusinessAndVen(t *testing.T) {
	bl := businessCaller("business-1")
	d := CanListReports(bl)
	if !d.Predicate.Matches(Object{ID: "r1", BusinessID: strp("business-1")}) {
		t.Error("expected report under owned business to be visible to BL")
	}
	if d.Predicate.Matches(Object{ID: "r2", BusinessID: strp("business-2")}) {
		t.Error("expected report under another business to be hidden from BL")
	}

	ven := venCaller("ven-1")
	d = CanListReports(ven)
	if !d.Predicate.Matches(Object{ID: "r3", VenIDs: []string{"ven-1"}}) {
		t.Error("expected the VEN's own report to be visible")
	}
	if d.Predicate.Matches(Object{ID: "r4", VenIDs: []string{"ven-2"}}) {
		t.Error("expected another VEN's report to be hidden")
	}
}

func TestCanWriteReport_VenOnlyWritesOwn(t *testing.T) {
	ven := withScopes(venCaller("ven-1"), auth.ScopeWriteReports)
	if !CanWriteReport(ven, "ven-1", strp("business-1")).Allowed {
		t.Error("expected VEN to write its own report")
	}
	if CanWriteReport(ven, "ven-2", strp("business-1")).Allowed {
		t.Error("expected VEN to be denied writing another VEN's report")
	}
}

func TestCanWriteReport_BusinessWritesOwnedProgramReport(t *testing.T) {
	bl := withScopes(businessCaller("business-1"), auth.ScopeWriteReports)
	if !CanWriteReport(bl, "", strp("business-1")).Allowed {
		t.Error("expected BL to write a report for a program it owns")
	}
	if CanWriteReport(bl, "", strp("business-2")).Allowed {
		t.Error("expected BL to be denied writing a report for another business's program")
	}
}
