package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid or expired session token")

// Claims binds a signed session token to a user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// SessionManager issues HS256-signed tokens and tracks revocations in
// memory. Revocation is keyed by the token's jti; entries are dropped
// lazily once the underlying token would have expired anyway, so the set
// stays bounded without a background sweeper.
type SessionManager struct {
	signingKey []byte
	ttl        time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> token expiry
}

func NewSessionManager(cfg SessionConfig) *SessionManager {
	return &SessionManager{
		signingKey: []byte(cfg.SigningKey),
		ttl:        cfg.TTL,
		revoked:    make(map[string]time.Time),
	}
}

// Ensure implementation of the Sessions interface at compile time.
var _ Sessions = (*SessionManager)(nil)

// Issue signs a fresh token for the user.
func (m *SessionManager) Issue(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Validate parses the token and returns the bound user id. Revoked,
// expired or tampered tokens fail with ErrInvalidSession.
func (m *SessionManager) Validate(tokenStr string) (int, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil {
		return 0, ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidSession
	}
	if m.isRevoked(claims.ID) {
		return 0, ErrInvalidSession
	}
	return claims.UserID, nil
}

// Invalidate revokes the token if it is one of ours. Unparseable input is
// ignored: logout is unconditional and must not fail.
func (m *SessionManager) Invalidate(tokenStr string) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil {
		return
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ID == "" {
		return
	}

	expiry := time.Now().Add(m.ttl)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked(time.Now())
	m.revoked[claims.ID] = expiry
}

func (m *SessionManager) isRevoked(jti string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked(time.Now())
	_, ok := m.revoked[jti]
	return ok
}

// pruneLocked drops revocation entries whose tokens have expired on their
// own. Caller must hold mu.
func (m *SessionManager) pruneLocked(now time.Time) {
	for jti, expiry := range m.revoked {
		if now.After(expiry) {
			delete(m.revoked, jti)
		}
	}
}
