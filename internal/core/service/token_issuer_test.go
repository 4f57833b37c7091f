package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/openadr/vtn/internal/core/auth"
	"github.com/openadr/vtn/internal/core/domain"
)

type stubCredentialRepository struct {
	byClientID map[string]domain.Credential
}

func (r *stubCredentialRepository) FindByClientID(_ context.Context, clientID string) (domain.Credential, error) {
	c, ok := r.byClientID[clientID]
	if !ok {
		return domain.Credential{}, domain.ErrNotFound
	}
	return c, nil
}

func (r *stubCredentialRepository) Create(_ context.Context, c domain.Credential) (domain.Credential, error) {
	r.byClientID[c.ClientID] = c
	return c, nil
}

func (r *stubCredentialRepository) DeleteByUserID(_ context.Context, userID string) error {
	for id, c := range r.byClientID {
		if c.UserID == userID {
			delete(r.byClientID, id)
		}
	}
	return nil
}

func newIssuerFixture(t *testing.T, u domain.User, password string) (*TokenIssuer, []byte) {
	t.Helper()
	hashes := auth.NewHashPool()
	hash, salt, err := hashes.Hash(context.Background(), password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	users := newStubUserRepository()
	u.ID = "user-1"
	users.users[u.ID] = u

	creds := &stubCredentialRepository{byClientID: map[string]domain.Credential{
		"client-1": {ClientID: "client-1", PasswordHash: string(hash), Salt: salt, UserID: u.ID},
	}}

	secret := []byte("issuer-test-secret-value-used-only-here")
	return NewTokenIssuer(creds, users, hashes, secret, time.Hour, zerolog.Nop()), secret
}

func TestTokenIssuer_RoundTripsThroughVerifier(t *testing.T) {
	issuer, secret := newIssuerFixture(t, domain.User{Reference: "alice", BusinessIDs: []string{"business-1"}}, "correct-password")

	token, err := issuer.Issue(context.Background(), "client_credentials", "client-1", "correct-password", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	v, err := auth.NewVerifier(auth.Config{KeyType: auth.KeyTypeHMAC, HMACSecret: secret})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	caller := auth.ResolveCaller(claims)
	if !caller.OwnsBusiness("business-1") {
		t.Errorf("expected the issued token to round-trip business-1 ownership, got %+v", caller)
	}
	if !caller.HasScope(auth.ScopeWritePrograms) {
		t.Errorf("expected write_programs among the permitted scopes for a business user, got %+v", caller.Scopes)
	}
}

func TestTokenIssuer_WrongPasswordIsInvalidClient(t *testing.T) {
	issuer, _ := newIssuerFixture(t, domain.User{Reference: "alice", BusinessIDs: []string{"business-1"}}, "correct-password")

	if _, err := issuer.Issue(context.Background(), "client_credentials", "client-1", "wrong-password", nil); err != ErrInvalidClient {
		t.Errorf("expected ErrInvalidClient, got %v", err)
	}
}

func TestTokenIssuer_UnknownClientIsInvalidClient(t *testing.T) {
	issuer, _ := newIssuerFixture(t, domain.User{Reference: "alice"}, "correct-password")

	if _, err := issuer.Issue(context.Background(), "client_credentials", "no-such-client", "correct-password", nil); err != ErrInvalidClient {
		t.Errorf("expected ErrInvalidClient, got %v", err)
	}
}

func TestTokenIssuer_UnsupportedGrantType(t *testing.T) {
	issuer, _ := newIssuerFixture(t, domain.User{Reference: "alice"}, "correct-password")

	if _, err := issuer.Issue(context.Background(), "authorization_code", "client-1", "correct-password", nil); err != ErrUnsupportedGrantType {
		t.Errorf("expected ErrUnsupportedGrantType, got %v", err)
	}
}

func TestTokenIssuer_RequestedScopeBeyondPermittedIsInvalidScope(t *testing.T) {
	issuer, _ := newIssuerFixture(t, domain.User{Reference: "alice", BusinessIDs: []string{"business-1"}}, "correct-password")

	if _, err := issuer.Issue(context.Background(), "client_credentials", "client-1", "correct-password", []auth.Scope{auth.ScopeWriteUsers}); err != ErrInvalidScope {
		t.Errorf("expected ErrInvalidScope when requesting a scope the user is not permitted, got %v", err)
	}
}

func TestTokenIssuer_RequestedScopeIntersectsPermitted(t *testing.T) {
	issuer, secret := newIssuerFixture(t, domain.User{Reference: "alice", BusinessIDs: []string{"business-1"}}, "correct-password")

	token, err := issuer.Issue(context.Background(), "client_credentials", "client-1", "correct-password", []auth.Scope{auth.ScopeWritePrograms, auth.ScopeWriteUsers})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	v, _ := auth.NewVerifier(auth.Config{KeyType: auth.KeyTypeHMAC, HMACSecret: secret})
	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(claims.Scopes) != 1 || claims.Scopes[0] != auth.ScopeWritePrograms {
		t.Errorf("expected only the intersection to be granted, got %+v", claims.Scopes)
	}
}
