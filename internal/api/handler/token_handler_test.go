package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openadr/vtn/internal/core/auth"
	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/ports"
	"github.com/openadr/vtn/internal/core/service"
)

type stubCredentialRepo struct {
	byClientID map[string]domain.Credential
}

func (r *stubCredentialRepo) FindByClientID(_ context.Context, clientID string) (domain.Credential, error) {
	c, ok := r.byClientID[clientID]
	if !ok {
		return domain.Credential{}, domain.ErrNotFound
	}
	return c, nil
}
func (r *stubCredentialRepo) Create(_ context.Context, c domain.Credential) (domain.Credential, error) {
	r.byClientID[c.ClientID] = c
	return c, nil
}
func (r *stubCredentialRepo) DeleteByUserID(context.Context, string) error { return nil }

type stubUserRepo struct {
	users map[string]domain.User
}

func (r *stubUserRepo) List(context.Context, ports.UserFilter, ports.Pagination) (ports.ListPage[domain.User], error) {
	return ports.ListPage[domain.User]{}, nil
}
func (r *stubUserRepo) Get(_ context.Context, id string) (domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}
func (r *stubUserRepo) Create(_ context.Context, u domain.User) (domain.User, error) { return u, nil }
func (r *stubUserRepo) Update(_ context.Context, _ string, u domain.User) (domain.User, error) {
	return u, nil
}
func (r *stubUserRepo) Delete(context.Context, string) error { return nil }

func newTokenHandlerFixture(t *testing.T) (*TokenHandler, []byte) {
	t.Helper()
	hashes := auth.NewHashPool()
	hash, salt, err := hashes.Hash(context.Background(), "correct-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	users := &stubUserRepo{users: map[string]domain.User{
		"user-1": {ID: "user-1", Reference: "alice", BusinessIDs: []string{"business-1"}},
	}}
	creds := &stubCredentialRepo{byClientID: map[string]domain.Credential{
		"client-1": {ClientID: "client-1", PasswordHash: string(hash), Salt: salt, UserID: "user-1"},
	}}

	secret := []byte("token-handler-test-secret-value-32b")
	issuer := service.NewTokenIssuer(creds, users, hashes, secret, time.Hour, zerolog.Nop())
	return NewTokenHandler(issuer), secret
}

func TestTokenHandler_Issue_Success(t *testing.T) {
	e := echo.New()
	h, _ := newTokenHandlerFixture(t)

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {"client-1"},
		"client_secret": {"correct-password"},
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Issue(c); err != nil {
		t.Fatalf("issue: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected a non-empty access token")
	}
}

func TestTokenHandler_Issue_InvalidClient(t *testing.T) {
	e := echo.New()
	h, _ := newTokenHandlerFixture(t)

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {"client-1"},
		"client_secret": {"wrong-password"},
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Issue(c)
	var he *echo.HTTPError
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
