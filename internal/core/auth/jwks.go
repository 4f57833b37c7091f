package auth

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
)

// jwk is a single entry of a published JSON Web Key Set, covering the
// fields used by the RSA, EC, and Ed25519 families (spec §4.1). Field
// names mirror RFC 7517; this package does not depend on a third-party
// JWK library since none is present in the reference corpus.
type jwk struct {
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
	Crv string `json:"crv,omitempty"`
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

func decodeJWKSet(body []byte) (jwkSet, error) {
	var set jwkSet
	if err := json.Unmarshal(body, &set); err != nil {
		return jwkSet{}, fmt.Errorf("auth: decode JWKS: %w", err)
	}
	return set, nil
}

func b64urlBigInt(s string) (*big.Int, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

func rsaPublicKey(nB64, eB64 string) (crypto.PublicKey, error) {
	n, err := b64urlBigInt(nB64)
	if err != nil {
		return nil, fmt.Errorf("auth: decode RSA modulus: %w", err)
	}
	e, err := b64urlBigInt(eB64)
	if err != nil {
		return nil, fmt.Errorf("auth: decode RSA exponent: %w", err)
	}
	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

func ecPublicKey(crv, xB64, yB64 string) (crypto.PublicKey, error) {
	var curve elliptic.Curve
	switch crv {
	case "P-256":
		curve = elliptic.P256()
	case "P-384":
		curve = elliptic.P384()
	case "P-521":
		curve = elliptic.P521()
	default:
		return nil, fmt.Errorf("auth: unsupported EC curve %q", crv)
	}
	x, err := b64urlBigInt(xB64)
	if err != nil {
		return nil, fmt.Errorf("auth: decode EC x: %w", err)
	}
	y, err := b64urlBigInt(yB64)
	if err != nil {
		return nil, fmt.Errorf("auth: decode EC y: %w", err)
	}
	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}

func ed25519PublicKey(xB64 string) (crypto.PublicKey, error) {
	b, err := base64.RawURLEncoding.DecodeString(xB64)
	if err != nil {
		return nil, fmt.Errorf("auth: decode Ed25519 key: %w", err)
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("auth: unexpected Ed25519 key length %d", len(b))
	}
	return ed25519.PublicKey(b), nil
}
