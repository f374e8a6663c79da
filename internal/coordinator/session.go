package coordinator

import "sync"

// Session holds the city chosen by the last successful search.
// Search is the only writer; view-models read it on every fetch.
type Session struct {
	mu   sync.RWMutex
	city string
}

func NewSession(defaultCity string) *Session {
	return &Session{city: defaultCity}
}

func (s *Session) City() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.city
}

func (s *Session) SetCity(city string) {
	s.mu.Lock()
	s.city = city
	s.mu.Unlock()
}
