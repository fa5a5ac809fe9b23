// Package qrtoken signs and verifies the time-limited tokens embedded in
// session QR codes. A token binds a session ID to its issuance time and is
// valid for a fixed window from issuance, independent of the session's own
// start/end times.
package qrtoken

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed validity window of an issued token.
const DefaultTTL = 2 * time.Hour

// ErrTokenInvalid covers malformed input, signature mismatch and expiry.
// Callers get a single opaque failure so responses leak nothing about
// which check tripped.
var ErrTokenInvalid = errors.New("invalid or expired token")

// Payload is the decoded content of a verified token.
type Payload struct {
	SessionID string
	IssuedAt  time.Time
}

type claims struct {
	SessionID string `json:"sessionId"`
	jwtlib.RegisteredClaims
}

// Codec issues and verifies signed session tokens with a single shared
// secret configured at construction.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// New returns a codec signing with the given secret. A non-positive ttl
// falls back to DefaultTTL.
func New(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL reports the fixed validity window applied to issued tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue produces a signed token for the session and reports when it expires.
func (c *Codec) Issue(sessionID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)
	cl := claims{
		SessionID: sessionID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks signature and expiry. Any failure yields ErrTokenInvalid.
func (c *Codec) Verify(tokenStr string) (*Payload, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	cl, ok := token.Claims.(*claims)
	if !ok || !token.Valid || cl.SessionID == "" {
		return nil, ErrTokenInvalid
	}
	var issuedAt time.Time
	if cl.IssuedAt != nil {
		issuedAt = cl.IssuedAt.Time
	}
	return &Payload{SessionID: cl.SessionID, IssuedAt: issuedAt}, nil
}
