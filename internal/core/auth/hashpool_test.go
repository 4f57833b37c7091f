package auth

import (
	"context"
	"testing"
	"time"
)

func TestHashPool_VerifyRoundTrip(t *testing.T) {
	p := NewHashPool()
	ctx := context.Background()

	hash, salt, err := p.Hash(ctx, "correct-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	ok, err := p.Verify(ctx, "correct-password", hash, salt)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("expected the correct password to verify")
	}

	ok, err = p.Verify(ctx, "wrong-password", hash, salt)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Error("expected the wrong password to fail verification")
	}
}

func TestHashPool_DistinctSaltsPerCall(t *testing.T) {
	p := NewHashPool()
	ctx := context.Background()

	_, salt1, _ := p.Hash(ctx, "same-password")
	_, salt2, _ := p.Hash(ctx, "same-password")

	if string(salt1) == string(salt2) {
		t.Error("expected distinct random salts across calls")
	}
}

func TestHashPool_RespectsContextCancellation(t *testing.T) {
	p := NewHashPool()
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	if _, _, err := p.Hash(ctx, "password"); err == nil {
		t.Error("expected context deadline error")
	}
}
