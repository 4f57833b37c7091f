package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// newID returns a random opaque identifier, grounded on the teacher's
// generateTrackingNumber idiom: crypto/rand with a deterministic
// fallback so a transient entropy failure never blocks a write.
func newID(prefix string) string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%x", prefix, time.Now().UnixNano())
	}
	return prefix + "-" + hex.EncodeToString(b)
}
