package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionUser identifies the holder of a session. The shared-password gate only
// ever issues the "admin" user.
type SessionUser struct {
	ID string `json:"id"`
}

// SessionClaims is the signed session payload. Expires is checked in addition to
// the registered exp claim.
type SessionClaims struct {
	User           SessionUser `json:"user"`
	Expires        string      `json:"expires"`
	IssuedAtMillis int64       `json:"issuedAt"`
	SessionID      string      `json:"sessionId"`
	jwt.RegisteredClaims
}

// PayloadExpiry parses the payload expiry. A malformed value reports ok=false.
func (c *SessionClaims) PayloadExpiry() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, c.Expires)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
