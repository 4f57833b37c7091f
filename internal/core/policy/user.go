package policy

import "github.com/openadr/vtn/internal/core/auth"

// CanListUsers / CanGetUser / CanWriteUser implement spec §4.4's user.*
// row: write_users is required for every operation, read included.
func CanListUsers(caller auth.Caller) Decision {
	return userDecision(caller)
}

func CanGetUser(caller auth.Caller) Decision {
	return userDecision(caller)
}

func CanWriteUser(caller auth.Caller) Decision {
	return userDecision(caller)
}

func userDecision(caller auth.Caller) Decision {
	if !caller.HasScope(auth.ScopeWriteUsers) {
		return deny()
	}
	return allow(AllowAll())
}
