package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/openadr/vtn/internal/core/auth"
	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/ports"
)

// Grant-level failures reported by TokenIssuer, named after the OAuth2
// error codes they map to at the HTTP boundary (spec §4.7).
var (
	ErrInvalidClient        = errors.New("invalid_client")
	ErrInvalidScope         = errors.New("invalid_scope")
	ErrUnsupportedGrantType = errors.New("unsupported_grant_type")
)

const clientCredentialsGrant = "client_credentials"

// TokenIssuer implements the optional OAuth2 client-credentials grant
// (spec §4.7): look up the credential, verify the password on the hash
// pool, load the owning user's role flags, mint a token whose claims are
// exactly what auth.ResolveCaller expects, and round-trip through the
// HMAC verifier auth.NewVerifier builds from the same secret.
type TokenIssuer struct {
	credentials ports.CredentialRepository
	users       ports.UserRepository
	hashes      *auth.HashPool
	secret      []byte
	ttl         time.Duration
	logger      zerolog.Logger
}

func NewTokenIssuer(credentials ports.CredentialRepository, users ports.UserRepository, hashes *auth.HashPool, secret []byte, ttl time.Duration, logger zerolog.Logger) *TokenIssuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenIssuer{credentials: credentials, users: users, hashes: hashes, secret: secret, ttl: ttl, logger: logger}
}

// Issue runs the client_credentials grant. requestedScopes empty means
// "grant everything the user is permitted"; otherwise the granted set is
// the intersection of requested and permitted (spec §4.7).
func (s *TokenIssuer) Issue(ctx context.Context, grantType, clientID, clientSecret string, requestedScopes []auth.Scope) (string, error) {
	if grantType != clientCredentialsGrant {
		return "", ErrUnsupportedGrantType
	}

	cred, err := s.credentials.FindByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidClient
		}
		return "", mapRepoErr(s.logger, err)
	}

	ok, err := s.hashes.Verify(ctx, clientSecret, []byte(cred.PasswordHash), cred.Salt)
	if err != nil {
		return "", mapRepoErr(s.logger, err)
	}
	if !ok {
		return "", ErrInvalidClient
	}

	user, err := s.users.Get(ctx, cred.UserID)
	if err != nil {
		return "", mapRepoErr(s.logger, err)
	}

	permitted := permittedScopes(user)
	granted := intersectOrAll(requestedScopes, permitted)
	if len(requestedScopes) > 0 && len(granted) == 0 {
		return "", ErrInvalidScope
	}

	token, err := auth.IssueHS256(s.secret, auth.IssuedClaims{
		Subject:   user.ID,
		Scopes:    granted,
		Roles:     roleClaimsFor(user),
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	})
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("user_id", user.ID).Str("client_id", clientID).Msg("token issued")
	return token, nil
}

// permittedScopes derives the scope ceiling a user's role flags and
// memberships allow, since the data model carries roles rather than an
// explicit granted-scope list (spec §4.7's "load the user's role flags
// and memberships" — DESIGN.md records this derivation as the chosen
// resolution, there being no canonical mapping in the source material).
func permittedScopes(u domain.User) []auth.Scope {
	set := map[auth.Scope]struct{}{}
	add := func(scopes ...auth.Scope) {
		for _, s := range scopes {
			set[s] = struct{}{}
		}
	}

	if u.IsUserManager {
		add(auth.ScopeWriteUsers)
	}
	if u.IsVenManager {
		add(auth.ScopeWriteVens)
	}
	if u.IsAnyBusinessUser {
		add(auth.ScopeReadAll, auth.ScopeWritePrograms, auth.ScopeWriteEvents, auth.ScopeWriteReports, auth.ScopeWriteSubscriptions)
	}
	if len(u.BusinessIDs) > 0 {
		add(auth.ScopeWritePrograms, auth.ScopeWriteEvents, auth.ScopeWriteReports, auth.ScopeWriteSubscriptions, auth.ScopeReadTargets)
	}
	if len(u.VenIDs) > 0 {
		add(auth.ScopeWriteReports, auth.ScopeReadVenObjects, auth.ScopeReadTargets)
	}

	scopes := make([]auth.Scope, 0, len(set))
	for s := range set {
		scopes = append(scopes, s)
	}
	return scopes
}

func intersectOrAll(requested, permitted []auth.Scope) []auth.Scope {
	if len(requested) == 0 {
		return permitted
	}
	allowed := map[auth.Scope]struct{}{}
	for _, s := range permitted {
		allowed[s] = struct{}{}
	}
	var granted []auth.Scope
	for _, s := range requested {
		if _, ok := allowed[s]; ok {
			granted = append(granted, s)
		}
	}
	return granted
}

func roleClaimsFor(u domain.User) []auth.RoleClaim {
	var roles []auth.RoleClaim
	if u.IsAnyBusinessUser {
		roles = append(roles, auth.RoleClaim{Role: auth.RoleAnyBusiness})
	}
	if u.IsUserManager {
		roles = append(roles, auth.RoleClaim{Role: auth.RoleUserManager})
	}
	if u.IsVenManager {
		roles = append(roles, auth.RoleClaim{Role: auth.RoleVenManager})
	}
	for _, id := range u.BusinessIDs {
		roles = append(roles, auth.RoleClaim{Role: auth.RoleBusiness, ID: id})
	}
	for _, id := range u.VenIDs {
		roles = append(roles, auth.RoleClaim{Role: auth.RoleVEN, ID: id})
	}
	return roles
}
