// Package token issues and verifies the signed session tokens that prove a
// recent authentication. Tokens are HS256 JWTs carrying the user ID as the
// subject claim; the signing secret is injected at construction time and is
// never read from ambient process state.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSecret is returned by NewIssuer when no signing secret is
	// configured. This is the only failure mode of token issuance.
	ErrMissingSecret = errors.New("token signing secret is not configured")

	// ErrInvalid is returned when a token fails signature or structural
	// validation.
	ErrInvalid = errors.New("token is invalid")

	// ErrExpired is returned when a structurally valid token has passed its
	// expiry. Callers surface it to clients identically to ErrInvalid but
	// may log the two outcomes separately.
	ErrExpired = errors.New("token has expired")
)

// Claims is the verified content of a session token.
type Claims struct {
	UserID    uint
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer creates and verifies session tokens with a fixed secret and
// lifetime. It is safe for concurrent use; all state is read-only after
// construction.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer returns an Issuer signing with the given secret. Tokens expire
// ttl after issuance. Returns ErrMissingSecret if secret is empty.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime. The transport uses it to align
// cookie expiry with token expiry.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token binding userID. It returns the signed string and the
// expiry instant. Issued-at is truncated to whole seconds to match the
// resolution of the JWT iat claim.
func (i *Issuer) Issue(userID uint) (string, time.Time, error) {
	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(i.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature first, then expiry, and returns the decoded
// claims. Signature or structural failures map to ErrInvalid, expiry to
// ErrExpired; no other detail about the token is surfaced.
func (i *Issuer) Verify(tokenString string) (Claims, error) {
	var rc jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &rc, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; anything else is a forgery attempt.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalid
	}

	sub, err := rc.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, ErrInvalid
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return Claims{}, ErrInvalid
	}

	c := Claims{UserID: uint(userID)}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}
