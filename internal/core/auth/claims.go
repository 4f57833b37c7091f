// Package auth implements the Token Verifier and the Identity & Scope
// Resolver: validating bearer tokens and deriving the Caller capability
// object that the rest of the kernel (policy, repositories) decides on.
package auth

import "time"

// Scope is a fine-grained capability carried in a token (spec §4.2).
type Scope string

const (
	ScopeReadAll            Scope = "read_all"
	ScopeReadTargets        Scope = "read_targets"
	ScopeReadVenObjects     Scope = "read_ven_objects"
	ScopeWritePrograms      Scope = "write_programs"
	ScopeWriteEvents        Scope = "write_events"
	ScopeWriteReports       Scope = "write_reports"
	ScopeWriteSubscriptions Scope = "write_subscriptions"
	ScopeWriteVens          Scope = "write_vens"
	ScopeWriteUsers         Scope = "write_users"
)

// RoleName enumerates the tagged-variant role carried by a token, mirroring
// openleadr-vtn's jwt::AuthRole (role/id tagged enum).
type RoleName string

const (
	RoleUserManager RoleName = "USER_MANAGER"
	RoleVenManager  RoleName = "VEN_MANAGER"
	RoleBusiness    RoleName = "BUSINESS"
	RoleAnyBusiness RoleName = "ANY_BUSINESS"
	RoleVEN         RoleName = "VEN"
)

// RoleClaim is a single tagged role entry; ID is populated for Business and
// VEN roles and empty for the marker roles.
type RoleClaim struct {
	Role RoleName `json:"role"`
	ID   string   `json:"id,omitempty"`
}

// Claims are the validated contents of a bearer token (spec §4.1).
type Claims struct {
	Subject   string
	Scopes    []Scope
	Roles     []RoleClaim
	ExpiresAt time.Time
	NotBefore *time.Time
	Audience  []string
}

func (c Claims) businessIDs() []string {
	var ids []string
	for _, r := range c.Roles {
		if r.Role == RoleBusiness {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func (c Claims) venIDs() []string {
	var ids []string
	for _, r := range c.Roles {
		if r.Role == RoleVEN {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func (c Claims) hasRole(name RoleName) bool {
	for _, r := range c.Roles {
		if r.Role == name {
			return true
		}
	}
	return false
}

func (c Claims) hasScope(s Scope) bool {
	for _, have := range c.Scopes {
		if have == s {
			return true
		}
	}
	return false
}
