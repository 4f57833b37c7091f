package domain

import "time"

// User is an identity principal. A user holds at most one of the marker
// roles {IsAnyBusinessUser, IsUserManager, IsVenManager} plus zero or more
// concrete business/VEN memberships; IsAnyBusinessUser implies authority
// over all businesses (spec §3 invariant).
type User struct {
	ID                string    `json:"id" bson:"_id,omitempty"`
	Reference         string    `json:"reference" bson:"reference"`
	IsAnyBusinessUser bool      `json:"isAnyBusinessUser,omitempty" bson:"is_any_business_user,omitempty"`
	IsUserManager     bool      `json:"isUserManager,omitempty" bson:"is_user_manager,omitempty"`
	IsVenManager      bool      `json:"isVenManager,omitempty" bson:"is_ven_manager,omitempty"`
	BusinessIDs       []string  `json:"businessIDs,omitempty" bson:"business_ids,omitempty"`
	VenIDs            []string  `json:"venIDs,omitempty" bson:"ven_ids,omitempty"`
	CreatedDateTime   time.Time `json:"createdDateTime" bson:"created_date_time"`
	ModificationDateTime time.Time `json:"modificationDateTime" bson:"modification_date_time"`
}

// Credential binds a unique client_id/password hash pair to a user, for
// the internal OAuth2 client-credentials issuer (spec §4.7).
type Credential struct {
	ClientID     string `json:"clientId" bson:"client_id"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Salt         []byte `json:"-" bson:"salt"`
	UserID       string `json:"userId" bson:"user_id"`
}
