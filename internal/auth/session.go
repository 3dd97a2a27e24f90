package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload issued on successful login, carrying just
// enough identity for the room layer to attach a reconnecting session to
// the right player.
type Claims struct {
	Username string `json:"sub"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates JWT session tokens signed with a
// server-held HMAC secret.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager returns a manager signing with secret. A zero ttl
// defaults to 24h; a negative ttl is honored as-is (useful for issuing an
// already-expired token in tests).
func NewSessionManager(secret []byte, ttl time.Duration) *SessionManager {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{secret: secret, ttl: ttl}
}

// Issue returns a signed token for username, valid for the manager's ttl.
func (m *SessionManager) Issue(username string) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, newAuthError(ErrStoreUnavailable, "session secret not configured")
	}
	exp := time.Now().Add(m.ttl)
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   username,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Validate parses and verifies tokenString, returning the embedded claims
// on success.
func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, newAuthError(ErrStoreUnavailable, "session secret not configured")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, newAuthError(ErrTokenInvalid, err.Error())
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, newAuthError(ErrTokenInvalid, "token not valid")
	}
	return claims, nil
}
