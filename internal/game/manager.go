package game

import (
	"math/rand"
	"sync"
	"time"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 8

// Manager owns every live session, keyed by its short join code. Sessions
// live in memory only; finished games become persisted ArchivedSessions via
// the storage repository, a value snapshot rather than a live reference.
type Manager struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	rosterSize int
}

func NewManager(rosterSize int) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		rosterSize: rosterSize,
	}
}

// Create allocates a new session under a fresh code.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	code := generateCode()
	for _, taken := m.sessions[code]; taken; _, taken = m.sessions[code] {
		code = generateCode()
	}
	s := NewSession(code, m.rosterSize)
	m.sessions[code] = s
	return s
}

// Get returns the session for a code, or nil when none exists.
func (m *Manager) Get(code string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[code]
}

// Delete discards a session. Navigating away without saving ends here. The
// session is aborted on the way out so a still-running timer goroutine does
// not outlive its entry in the map.
func (m *Manager) Delete(code string) {
	m.mu.Lock()
	s := m.sessions[code]
	delete(m.sessions, code)
	m.mu.Unlock()
	if s != nil {
		s.Abort()
	}
}

// PruneIdle drops sessions with no activity since the cutoff and returns
// how many were removed. The background janitor calls this periodically.
// Pruned sessions are aborted, stopping their timer goroutines.
func (m *Manager) PruneIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	m.mu.Lock()
	var dropped []*Session
	for code, s := range m.sessions {
		if s.IdleSince().Before(cutoff) {
			delete(m.sessions, code)
			dropped = append(dropped, s)
		}
	}
	m.mu.Unlock()
	for _, s := range dropped {
		s.Abort()
	}
	return len(dropped)
}

// generateCode creates a short alphanumeric code for addressing sessions.
func generateCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}
