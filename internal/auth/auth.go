// Package auth holds the admin session primitives: password check,
// session tokens, and the salted IP hash used by visitor tracking.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrBadCredentials is returned for a wrong admin password.
var ErrBadCredentials = errors.New("bad credentials")

// sessionTTL bounds how long an admin login stays valid.
const sessionTTL = 24 * time.Hour

// Service issues and validates admin session tokens. The password comes
// from configuration; the IP-hashing salt is generated per process, so
// hashed IPs are consistent within a run but not linkable across runs.
type Service struct {
	mu       sync.Mutex
	password string
	salt     string
	sessions map[string]time.Time
	now      func() time.Time
}

// NewService creates the auth service around the configured admin password.
func NewService(password string) (*Service, error) {
	salt, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}
	return &Service{
		password: password,
		salt:     salt,
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}, nil
}

// Login checks the password and returns a fresh session token.
func (s *Service) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", ErrBadCredentials
	}
	token, err := randomToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.sessions[token] = s.now().Add(sessionTTL)
	return token, nil
}

// Valid reports whether token belongs to a live session.
func (s *Service) Valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.sessions[token]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.sessions, token)
		return false
	}
	return true
}

// Logout revokes a session token. Unknown tokens are a no-op.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// HashIP hashes an address with the per-process salt, truncated for
// storage. Raw addresses never reach the database.
func (s *Service) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// pruneLocked drops expired sessions. Caller holds mu.
func (s *Service) pruneLocked() {
	now := s.now()
	for token, expiry := range s.sessions {
		if now.After(expiry) {
			delete(s.sessions, token)
		}
	}
}

func randomToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
