package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openadr/vtn/internal/core/auth"
	"github.com/openadr/vtn/internal/core/service"
)

// TokenHandler implements the optional internal OAuth2 client-credentials
// grant (spec §4.7, §6's POST /auth/token — no auth required on the
// endpoint itself, the grant is its own authentication).
type TokenHandler struct {
	issuer *service.TokenIssuer
}

func NewTokenHandler(issuer *service.TokenIssuer) *TokenHandler {
	return &TokenHandler{issuer: issuer}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope,omitempty"`
}

// Issue handles POST /auth/token. Request fields follow RFC 6749's
// client-credentials grant: grant_type, client_id, client_secret, and an
// optional space-delimited scope list, read from the form body or, failing
// that, from the query string. JSON bodies are not read.
func (h *TokenHandler) Issue(c echo.Context) error {
	grantType := firstNonEmpty(c.FormValue("grant_type"), c.QueryParam("grant_type"))
	clientID := firstNonEmpty(c.FormValue("client_id"), c.QueryParam("client_id"))
	clientSecret := firstNonEmpty(c.FormValue("client_secret"), c.QueryParam("client_secret"))
	scopeParam := firstNonEmpty(c.FormValue("scope"), c.QueryParam("scope"))

	if grantType == "" || clientID == "" || clientSecret == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "grant_type, client_id, and client_secret are required")
	}

	var requested []auth.Scope
	for _, s := range strings.Fields(scopeParam) {
		requested = append(requested, auth.Scope(s))
	}

	token, err := h.issuer.Issue(c.Request().Context(), grantType, clientID, clientSecret, requested)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClient):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid_client")
		case errors.Is(err, service.ErrInvalidScope):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid_scope")
		case errors.Is(err, service.ErrUnsupportedGrantType):
			return echo.NewHTTPError(http.StatusBadRequest, "unsupported_grant_type")
		default:
			return err
		}
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		Scope:       scopeParam,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
