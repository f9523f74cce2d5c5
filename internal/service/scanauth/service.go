// Package scanauth guards the stock-scan tool with a shared password.
package scanauth

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotConfigured is returned when no scan password is set.
	ErrNotConfigured   = errors.New("scan auth not configured")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

// DefaultTTL is how long a scan login stays valid.
const DefaultTTL = 7 * 24 * time.Hour

type Service struct {
	hash   []byte
	tokens *tokenManager
	ttl    time.Duration
}

// New hashes password once at startup. An empty password leaves the service
// unconfigured and every login fails with ErrNotConfigured.
func New(password string) (*Service, error) {
	s := &Service{tokens: newTokenManager(), ttl: DefaultTTL}
	if password == "" {
		return s, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash scan password: %w", err)
	}
	s.hash = hash
	return s, nil
}

func (s *Service) Configured() bool {
	return len(s.hash) > 0
}

// Login checks password and issues a token.
func (s *Service) Login(password string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	if password == "" {
		return "", ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}
	return s.tokens.Issue(s.ttl)
}

func (s *Service) Validate(token string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if token == "" || !s.tokens.Validate(token) {
		return ErrInvalidToken
	}
	return nil
}

func (s *Service) Logout(token string) {
	if token != "" {
		s.tokens.Revoke(token)
	}
}

// TTLSeconds is the cookie max age matching the token lifetime.
func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
