package config

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every environment-sourced setting the kernel needs at
// startup (spec §6's configuration key list), loaded with
// sethvargo/go-envconfig the same way the teacher loads its Config.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT,default=8080"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogPretty   bool   `env:"LOG_PRETTY,default=false"`
	DatabaseURL string `env:"DATABASE_URL,default=mongodb://localhost:27017/openadr"`

	OAuth OAuthConfig
}

// OAuthConfig mirrors spec §6's OAUTH_* keys one-for-one.
type OAuthConfig struct {
	Type           string   `env:"OAUTH_TYPE,default=INTERNAL"`
	KeyType        string   `env:"OAUTH_KEY_TYPE,default=HMAC"`
	Base64Secret   string   `env:"OAUTH_BASE64_SECRET"`
	JWKSLocation   string   `env:"OAUTH_JWKS_LOCATION"`
	ValidAudiences []string `env:"OAUTH_VALID_AUDIENCES"`
}

// Internal reports whether the configured issuer is this process's own
// (spec §4.7), as opposed to an external authorization server.
func (c OAuthConfig) Internal() bool {
	return strings.EqualFold(c.Type, "INTERNAL")
}

// Secret decodes Base64Secret, validating the ≥256-bit floor spec §6
// requires for an HMAC key.
func (c OAuthConfig) Secret() ([]byte, error) {
	if c.Base64Secret == "" {
		return nil, fmt.Errorf("config: OAUTH_BASE64_SECRET is required")
	}
	secret, err := base64.StdEncoding.DecodeString(c.Base64Secret)
	if err != nil {
		return nil, fmt.Errorf("config: OAUTH_BASE64_SECRET is not valid base64: %w", err)
	}
	if len(secret) < 32 {
		return nil, fmt.Errorf("config: OAUTH_BASE64_SECRET must decode to at least 256 bits")
	}
	return secret, nil
}

// DatabaseName extracts the database name from the trailing path segment
// of DatabaseURL, the way the mongo shell connection string convention
// does, since spec §6 collapses MONGO_URI/MONGO_DB into one DATABASE_URL.
func (c Config) DatabaseName() string {
	uri := c.DatabaseURL
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		uri = uri[:i]
	}
	if i := strings.LastIndexByte(uri, '/'); i >= 0 && i < len(uri)-1 {
		return uri[i+1:]
	}
	return "openadr"
}

// Load reads configuration from environment variables. Panics on a
// malformed environment, the same fail-fast startup contract the teacher
// uses (spec §6: "non-zero on startup misconfiguration").
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
