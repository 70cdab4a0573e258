package devserver

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errInvalidRefreshToken = errors.New("invalid refresh token")

// refreshSession tracks one outstanding refresh token.
type refreshSession struct {
	AccountID string
	ExpiresAt time.Time
}

// refreshStore keeps outstanding refresh tokens in memory. A token stays
// valid until it expires or is revoked by logout.
type refreshStore struct {
	mu       sync.Mutex
	sessions map[string]refreshSession
	ttl      time.Duration
}

func newRefreshStore(ttl time.Duration) *refreshStore {
	return &refreshStore{
		sessions: make(map[string]refreshSession),
		ttl:      ttl,
	}
}

func (s *refreshStore) issue(accountID string) string {
	token := uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = refreshSession{
		AccountID: accountID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return token
}

// redeem validates a refresh token and returns the account it belongs
// to. The token stays valid; call revoke to invalidate it.
func (s *refreshStore) redeem(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return "", errInvalidRefreshToken
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, token)
		return "", errInvalidRefreshToken
	}
	return sess.AccountID, nil
}

func (s *refreshStore) revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// mintAccessToken creates an HS256 JWT for the account, expiring after
// ttl.
func mintAccessToken(secret []byte, accountID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": accountID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"jti": uuid.New().String(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseAccessToken validates the JWT and returns the account ID it was
// minted for.
func parseAccessToken(secret []byte, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}
