package auth

import (
	"context"
	"crypto"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// KeyType selects the family of signing key the Verifier validates against
// (spec §6 config: OAUTH_KEY_TYPE).
type KeyType string

const (
	KeyTypeHMAC KeyType = "HMAC"
	KeyTypeRSA  KeyType = "RSA"
	KeyTypeEC   KeyType = "EC"
	KeyTypeED   KeyType = "ED"
)

// tokenClaims is the wire shape of a token's payload, shared by the
// internal issuer (service.TokenIssuer) and every Verifier.
type tokenClaims struct {
	jwt.RegisteredClaims
	Roles  []RoleClaim `json:"roles"`
	Scopes []string    `json:"scopes,omitempty"`
}

// Verifier validates a bearer token string and extracts its claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Config configures a Verifier (spec §6).
type Config struct {
	KeyType      KeyType
	HMACSecret   []byte
	JWKSLocation string
	// Audiences is the configured set of acceptable audiences. Empty means
	// "no audience restriction" unless Internal is true, in which case an
	// empty Audiences list means tokens must carry no audience at all.
	Audiences []string
	Internal  bool
}

var allowedAlgsByKeyType = map[KeyType][]string{
	KeyTypeHMAC: {"HS256", "HS384", "HS512"},
	KeyTypeRSA:  {"RS256", "RS384", "RS512", "PS256", "PS384", "PS512"},
	KeyTypeEC:   {"ES256", "ES384", "ES512"},
	KeyTypeED:   {"EdDSA"},
}

// NewVerifier builds the Verifier implied by cfg: an hmacVerifier for
// KeyTypeHMAC, a JWKSVerifier for every asymmetric family (spec §4.1).
func NewVerifier(cfg Config) (Verifier, error) {
	algs := allowedAlgsByKeyType[cfg.KeyType]
	if algs == nil {
		return nil, errors.New("auth: unknown OAUTH_KEY_TYPE")
	}

	switch cfg.KeyType {
	case KeyTypeHMAC:
		if len(cfg.HMACSecret) == 0 {
			return nil, errors.New("auth: OAUTH_BASE64_SECRET is required for HMAC")
		}
		return &hmacVerifier{
			secret:    cfg.HMACSecret,
			algs:      algs,
			audiences: cfg.Audiences,
			internal:  cfg.Internal,
		}, nil
	default:
		if cfg.JWKSLocation == "" {
			return nil, errors.New("auth: OAUTH_JWKS_LOCATION is required for non-HMAC key types")
		}
		return &JWKSVerifier{
			keyType:   cfg.KeyType,
			algs:      algs,
			cache:     newJWKSCache(cfg.JWKSLocation),
			audiences: cfg.Audiences,
			internal:  cfg.Internal,
		}, nil
	}
}

func checkAudience(tokenAud []string, configured []string, internal bool) error {
	if len(configured) > 0 {
		want := make(map[string]struct{}, len(configured))
		for _, a := range configured {
			want[a] = struct{}{}
		}
		for _, a := range tokenAud {
			if _, ok := want[a]; ok {
				return nil
			}
		}
		return newUnauthenticated(ReasonBadAudience)
	}
	if internal && len(tokenAud) > 0 {
		return newUnauthenticated(ReasonBadAudience)
	}
	return nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return newUnauthenticated(ReasonExpired)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return newUnauthenticated(ReasonBadSignature)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return newUnauthenticated(ReasonMalformed)
	default:
		return newUnauthenticated(ReasonMalformed)
	}
}

func claimsFromToken(tc tokenClaims) Claims {
	scopes := make([]Scope, 0, len(tc.Scopes))
	for _, s := range tc.Scopes {
		scopes = append(scopes, Scope(s))
	}
	c := Claims{
		Subject:  tc.Subject,
		Scopes:   scopes,
		Roles:    tc.Roles,
		Audience: tc.Audience,
	}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	if tc.NotBefore != nil {
		t := tc.NotBefore.Time
		c.NotBefore = &t
	}
	return c
}

// hmacVerifier validates tokens signed with a shared secret.
type hmacVerifier struct {
	secret    []byte
	algs      []string
	audiences []string
	internal  bool
}

func (v *hmacVerifier) Verify(_ context.Context, token string) (Claims, error) {
	if token == "" {
		return Claims{}, newUnauthenticated(ReasonMissing)
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods(v.algs), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return Claims{}, mapParseError(err)
	}

	claims := claimsFromToken(tc)
	if err := checkAudience(claims.Audience, v.audiences, v.internal); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// JWKSVerifier validates tokens against a remote published key set,
// refreshed lazily on a decode miss (spec §4.1, §5).
type JWKSVerifier struct {
	keyType   KeyType
	algs      []string
	cache     *jwksCache
	audiences []string
	internal  bool
}

func (v *JWKSVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	if token == "" {
		return Claims{}, newUnauthenticated(ReasonMissing)
	}

	unverified, _, err := jwt.NewParser().ParseUnverified(token, &tokenClaims{})
	if err != nil {
		return Claims{}, newUnauthenticated(ReasonMalformed)
	}
	kid, _ := unverified.Header["kid"].(string)

	keys, err := v.cache.Get(ctx, kid)
	if err != nil || len(keys) == 0 {
		return Claims{}, newUnauthenticated(ReasonBadSignature)
	}

	var tc tokenClaims
	var lastErr error
	for _, key := range keys {
		parsed, perr := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods(v.algs), jwt.WithExpirationRequired())
		if perr == nil && parsed.Valid {
			claims := claimsFromToken(tc)
			if err := checkAudience(claims.Audience, v.audiences, v.internal); err != nil {
				return Claims{}, err
			}
			return claims, nil
		}
		lastErr = perr
	}
	return Claims{}, mapParseError(lastErr)
}

// publicKeyFromJWK materializes a crypto.PublicKey from a parsed JWK,
// mirroring openleadr-vtn's jwt.rs::fetch_keys component construction.
func publicKeyFromJWK(k jwk, keyType KeyType) (crypto.PublicKey, error) {
	switch keyType {
	case KeyTypeRSA:
		return rsaPublicKey(k.N, k.E)
	case KeyTypeEC:
		return ecPublicKey(k.Crv, k.X, k.Y)
	case KeyTypeED:
		return ed25519PublicKey(k.X)
	default:
		return nil, errors.New("auth: unsupported JWKS key type")
	}
}
