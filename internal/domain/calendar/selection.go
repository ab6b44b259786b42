package calendar

import (
	"sync"
	"time"
)

// Selection identifies which user and month a viewer is currently looking at.
type Selection struct {
	UserEmail string
	Year      int
	Month     time.Month
}

// Session tracks one viewer's active selection. Fetches triggered by a
// selection take a token from Activate and present it again when applying
// their result; a result whose token no longer matches the active selection
// is discarded so a slow response can never overwrite a newer month.
type Session struct {
	mu      sync.Mutex
	current Selection
	token   uint64
}

// Activate makes sel the active selection and returns the token the
// matching fetch must present to Apply.
func (s *Session) Activate(sel Selection) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sel
	s.token++
	return s.token
}

// Current returns the active selection.
func (s *Session) Current() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Apply runs fn only while token still identifies the active selection.
// A stale token returns ErrStaleSelection and fn never runs.
func (s *Session) Apply(token uint64, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return ErrStaleSelection
	}
	fn()
	return nil
}
