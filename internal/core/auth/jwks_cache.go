package auth

import (
	"context"
	"crypto"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// jwksCache is the process-wide, lazily-refreshed JWKS cache required by
// spec §5: a decode miss triggers at most one in-flight refresh, and every
// other caller waiting on the same kid awaits that shared result.
type jwksCache struct {
	location string
	client   *http.Client

	mu    sync.RWMutex
	byKid map[string][]crypto.PublicKey
	all   []crypto.PublicKey

	group singleflight.Group
}

func newJWKSCache(location string) *jwksCache {
	return &jwksCache{
		location: location,
		client:   &http.Client{Timeout: 10 * time.Second},
		byKid:    map[string][]crypto.PublicKey{},
	}
}

// Get returns the candidate decoding keys for kid (or every known key when
// kid is empty), refreshing from OAUTH_JWKS_LOCATION if the cache has never
// been populated or does not yet contain kid.
func (c *jwksCache) Get(ctx context.Context, kid string) ([]crypto.PublicKey, error) {
	if keys := c.lookup(kid); len(keys) > 0 {
		return keys, nil
	}

	v, err, _ := c.group.Do("refresh", func() (interface{}, error) {
		return c.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	_ = v

	return c.lookup(kid), nil
}

func (c *jwksCache) lookup(kid string) []crypto.PublicKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if kid != "" {
		if keys, ok := c.byKid[kid]; ok {
			return keys
		}
		return nil
	}
	return c.all
}

func (c *jwksCache) refresh(ctx context.Context) (struct{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.location, nil)
	if err != nil {
		return struct{}{}, fmt.Errorf("auth: build JWKS request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return struct{}{}, fmt.Errorf("auth: fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return struct{}{}, fmt.Errorf("auth: read JWKS response: %w", err)
	}

	set, err := decodeJWKSet(body)
	if err != nil {
		return struct{}{}, err
	}

	// The cache does not know which family the caller ultimately wants at
	// this layer, so every recognised kty present in the set is parsed; an
	// unrecognised kty is skipped rather than failing the whole refresh.
	ktyToKeyType := map[string]KeyType{"RSA": KeyTypeRSA, "EC": KeyTypeEC, "OKP": KeyTypeED}
	byKid := map[string][]crypto.PublicKey{}
	var all []crypto.PublicKey
	for _, entry := range set.Keys {
		kt, ok := ktyToKeyType[entry.Kty]
		if !ok {
			continue
		}
		pub, err := publicKeyFromJWK(entry, kt)
		if err != nil {
			continue
		}
		all = append(all, pub)
		if entry.Kid != "" {
			byKid[entry.Kid] = append(byKid[entry.Kid], pub)
		}
	}

	c.mu.Lock()
	c.byKid = byKid
	c.all = all
	c.mu.Unlock()

	return struct{}{}, nil
}
