package rewrite

import "sync"

// Session holds the in-process model override. Once set it wins over the
// persisted settings for the rest of the process, even after the same value
// has been written to disk. It is never cleared automatically.
type Session struct {
	mu    sync.RWMutex
	model string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Model returns the override, if any.
func (s *Session) Model() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.model, s.model != ""
}

// SetModel replaces the override. Last write wins.
func (s *Session) SetModel(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.model = name
}
