package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"runtime"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// HashPool runs Argon2id hashing/verification on a worker pool bounded by
// core count, so a parallel login storm cannot spawn unbounded CPU-bound
// work (spec §5, DoS mitigation for password hashing).
type HashPool struct {
	jobs chan func()
}

// NewHashPool starts a HashPool with runtime.NumCPU() workers.
func NewHashPool() *HashPool {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	p := &HashPool{jobs: make(chan func())}
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

func (p *HashPool) run() {
	for job := range p.jobs {
		job()
	}
}

type hashResult struct {
	hash []byte
	salt []byte
	err  error
}

// Hash derives an Argon2id hash with a fresh random salt for password.
func (p *HashPool) Hash(ctx context.Context, password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("auth: generate salt: %w", err)
	}

	resultCh := make(chan hashResult, 1)
	job := func() {
		h := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
		resultCh <- hashResult{hash: h, salt: salt}
	}

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}

	select {
	case r := <-resultCh:
		return r.hash, r.salt, r.err
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

// Verify reports whether password matches the stored Argon2id hash/salt
// pair, in constant time.
func (p *HashPool) Verify(ctx context.Context, password string, hash, salt []byte) (bool, error) {
	resultCh := make(chan hashResult, 1)
	job := func() {
		computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
		resultCh <- hashResult{hash: computed}
	}

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case r := <-resultCh:
		return subtle.ConstantTimeCompare(r.hash, hash) == 1, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
