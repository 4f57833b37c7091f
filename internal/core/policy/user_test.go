package policy

import (
	"testing"

	"github.com/openadr/vtn/internal/core/auth"
)

func TestUserDecision_RequiresWriteUsersForReadToo(t *testing.T) {
	caller := businessCaller("business-1")
	if CanListUsers(caller).Allowed {
		t.Error("expected deny for read without write_users scope")
	}
	if CanGetUser(caller).Allowed {
		t.Error("expected deny for get without write_users scope")
	}

	caller = withScopes(caller, auth.ScopeWriteUsers)
	if !CanListUsers(caller).Allowed {
		t.Error("expected allow for read with write_users scope")
	}
	if !CanWriteUser(caller).Allowed {
		t.Error("expected allow for write with write_users scope")
	}
}
