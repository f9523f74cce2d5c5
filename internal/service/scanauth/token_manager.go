package scanauth

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

type tokenManager struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
	now    func() time.Time
}

func newTokenManager() *tokenManager {
	return &tokenManager{
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (m *tokenManager) Issue(ttl time.Duration) (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.tokens[token] = m.now().Add(ttl)
	m.mu.Unlock()
	return token, nil
}

func (m *tokenManager) Validate(token string) bool {
	m.mu.RLock()
	expiresAt, ok := m.tokens[token]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	if m.now().After(expiresAt) {
		m.Revoke(token)
		return false
	}
	return true
}

func (m *tokenManager) Revoke(token string) {
	m.mu.Lock()
	delete(m.tokens, token)
	m.mu.Unlock()
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
