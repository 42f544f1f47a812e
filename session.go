package ampdocs

import (
	"sync"
	"time"
)

// DefaultSessionSize is the number of searches a Session retains.
const DefaultSessionSize = 10

// strugglingWindow is how many consecutive empty-handed searches mark a
// session as struggling.
const strugglingWindow = 3

// SessionEntry records the outcome of one search call.
type SessionEntry struct {
	Query        string    `json:"query"`
	Intent       Intent    `json:"intent"`
	FoundResults bool      `json:"foundResults"`
	At           time.Time `json:"at"`
}

// Session is a bounded ring buffer of recent searches, used to detect
// users who keep searching without finding anything. Each client
// session owns its own Session value and passes it to the search
// engine explicitly, so concurrent sessions never share history.
//
// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	entries []SessionEntry
	next    int
	count   int
}

// NewSession creates a Session retaining the last n searches.
// Non-positive n falls back to DefaultSessionSize.
func NewSession(n int) *Session {
	if n <= 0 {
		n = DefaultSessionSize
	}
	return &Session{entries: make([]SessionEntry, n)}
}

// Record adds an entry, evicting the oldest once the buffer is full.
func (s *Session) Record(e SessionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[s.next] = e
	s.next = (s.next + 1) % len(s.entries)
	if s.count < len(s.entries) {
		s.count++
	}
}

// Len returns the number of recorded entries, at most the buffer size.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Recent returns up to n recorded entries, most recent first.
func (s *Session) Recent(n int) []SessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > s.count {
		n = s.count
	}
	if n <= 0 {
		return nil
	}

	out := make([]SessionEntry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (s.next - i + len(s.entries)) % len(s.entries)
		out = append(out, s.entries[idx])
	}
	return out
}

// Struggling reports whether the most recent searches all came back
// empty. It requires at least strugglingWindow recorded entries.
func (s *Session) Struggling() bool {
	recent := s.Recent(strugglingWindow)
	if len(recent) < strugglingWindow {
		return false
	}
	for _, e := range recent {
		if e.FoundResults {
			return false
		}
	}
	return true
}
