package tui

import "sync"

// session holds the verified password while the notepad is unlocked. It is
// never written anywhere.
type session struct {
	mu       sync.RWMutex
	password string
}

func (s *session) set(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = password
}

func (s *session) get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.password
}

func (s *session) clear() {
	s.set("")
}

func (s *session) unlocked() bool {
	return s.get() != ""
}
