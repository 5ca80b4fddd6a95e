// Package resettoken generates and checks the one-time secrets used for
// password recovery. Only the SHA-256 digest of a secret is ever persisted;
// the plaintext exists for the lifetime of the notification that delivers it
// to the user. A fast digest is deliberate: the secret is high-entropy and
// single-use, so the adaptive password hasher would add latency for no
// security gain.
package resettoken

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

// secretBytes is the entropy of a generated secret before hex encoding.
const secretBytes = 32

// Source mints reset secrets with a fixed validity window.
type Source struct {
	window time.Duration
}

// NewSource returns a Source whose secrets expire window after generation.
// A non-positive window falls back to 10 minutes.
func NewSource(window time.Duration) *Source {
	if window <= 0 {
		window = 10 * time.Minute
	}
	return &Source{window: window}
}

// Generate returns a fresh secret, its storable digest and the expiry
// instant. The secret is handed to the user out-of-band; the digest and
// expiry are what the credential store keeps.
func (s *Source) Generate() (secret, digest string, expiresAt time.Time, err error) {
	raw := make([]byte, secretBytes)
	if _, err = rand.Read(raw); err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate reset secret: %w", err)
	}
	secret = hex.EncodeToString(raw)
	return secret, Digest(secret), time.Now().Add(s.window), nil
}

// Digest returns the hex-encoded SHA-256 of a presented secret. The lookup
// of a pending reset is done by this value, never by the plaintext.
func Digest(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Matches reports whether a presented secret corresponds to the stored
// digest and is still within its validity window. The digest comparison is
// constant time.
func Matches(secret, storedDigest string, storedExpiry time.Time) bool {
	if time.Now().After(storedExpiry) {
		return false
	}
	presented := Digest(secret)
	return subtle.ConstantTimeCompare([]byte(presented), []byte(storedDigest)) == 1
}
