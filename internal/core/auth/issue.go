package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssuedClaims is the input to IssueHS256: everything the OAuth2 Token
// Issuer (service.TokenIssuer) needs to encode so the result round-trips
// through an hmacVerifier configured with the same secret (spec §4.7).
type IssuedClaims struct {
	Subject   string
	Scopes    []Scope
	Roles     []RoleClaim
	Audience  []string
	ExpiresAt time.Time
}

// IssueHS256 mints a bearer token signed with secret, sharing the exact
// wire shape (tokenClaims) the Verifier parses.
func IssueHS256(secret []byte, c IssuedClaims) (string, error) {
	scopes := make([]string, len(c.Scopes))
	for i, s := range c.Scopes {
		scopes[i] = string(s)
	}
	tc := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Subject,
			Audience:  c.Audience,
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
		Roles:  c.Roles,
		Scopes: scopes,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &tc)
	return token.SignedString(secret)
}
