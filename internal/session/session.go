// Package session tracks who is signed in to the console. A session exists
// exactly while a credential token issued by the remote API is stored for it;
// there is no expiry or refresh logic, the token is trusted until cleared.
package session

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is one authenticated browser session.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager holds the active sessions. It replaces the original's global
// token-in-local-storage flag with explicit injected state. When a state file
// is configured, sessions are read once at startup and written back on every
// change, so a console restart does not log everyone out.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	path     string
}

// NewManager creates a manager, loading persisted sessions from path when it
// is non-empty. A missing or unreadable state file starts empty; persistence
// is best effort.
func NewManager(path string) *Manager {
	m := &Manager{sessions: make(map[string]*Session), path: path}
	m.load()
	return m
}

// Login stores the credential token under a fresh session id and returns the
// session. Presence of the token is what makes the session authenticated.
func (m *Manager) Login(token string) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.save()
	return s
}

// Logout clears the stored credential for the session id.
func (m *Manager) Logout(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	m.save()
}

// Get returns the session for an id, if one exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Authenticated reports whether the id maps to a stored credential.
func (m *Manager) Authenticated(id string) bool {
	_, ok := m.Get(id)
	return ok
}

func (m *Manager) load() {
	if m.path == "" {
		return
	}
	data, err := os.ReadFile(m.path)
	if err != nil {
		return
	}
	var sessions []*Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range sessions {
		if s.ID != "" && s.Token != "" {
			m.sessions[s.ID] = s
		}
	}
}

func (m *Manager) save() {
	if m.path == "" {
		return
	}
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()
	data, err := json.Marshal(sessions)
	if err != nil {
		return
	}
	_ = os.WriteFile(m.path, data, 0o600)
}

// DisplayClaims is what the navbar shows about the signed-in user. It comes
// from an unverified decode of the stored token and is display-only; the
// guard never inspects token contents.
type DisplayClaims struct {
	Subject string
	Email   string
	Expiry  time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Username string `json:"username"`
}

// PeekClaims best-effort decodes a bearer token for display. Opaque
// non-JWT tokens yield ok=false and the console falls back to a generic
// label.
func PeekClaims(token string) (DisplayClaims, bool) {
	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return DisplayClaims{}, false
	}
	out := DisplayClaims{Subject: claims.Subject, Email: claims.Email}
	if out.Subject == "" {
		out.Subject = claims.Username
	}
	if claims.ExpiresAt != nil {
		out.Expiry = claims.ExpiresAt.Time
	}
	return out, true
}
