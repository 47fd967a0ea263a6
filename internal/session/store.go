package session

import (
	"strings"
	"sync"
	"time"

	"github.com/pappu-dcbot-go/internal/models"
)

const (
	// DefaultTTL is how long a context entry stays usable.
	DefaultTTL = 6 * time.Hour

	// MaxItems bounds the labeled items kept per entry.
	MaxItems = 10
)

// Store is the per-user short-term conversation memory. Expired entries
// are purged lazily on read, so memory stays proportional to users active
// since the last access.
type Store struct {
	mu      sync.Mutex
	entries map[string]models.SessionEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewStore creates a session store with the given TTL. A zero TTL means
// DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[string]models.SessionEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Set overwrites the entry for userID with the current timestamp. Items
// are deduplicated case-insensitively, then truncated to MaxItems.
func (s *Store) Set(userID, subject, query string, items []string) {
	entry := models.SessionEntry{
		LastSubject: subject,
		LastQuery:   query,
		Items:       dedupe(items),
		Timestamp:   s.now().Unix(),
	}

	s.mu.Lock()
	s.entries[userID] = entry
	s.mu.Unlock()
}

// Get purges every expired entry, then returns the one for userID if it
// is still present.
func (s *Store) Get(userID string) (models.SessionEntry, bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.entries {
		if entry.Age(now) > s.ttl {
			delete(s.entries, id)
		}
	}

	entry, ok := s.entries[userID]
	return entry, ok
}

// Reset drops all entries.
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = make(map[string]models.SessionEntry)
	s.mu.Unlock()
}

// Snapshot returns a copy of all live entries for persistence.
func (s *Store) Snapshot() map[string]models.SessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]models.SessionEntry, len(s.entries))
	for id, entry := range s.entries {
		out[id] = entry
	}
	return out
}

// Restore replaces the store's entries with a persisted snapshot.
// Entries already past the TTL are dropped on the next Get.
func (s *Store) Restore(snapshot map[string]models.SessionEntry) {
	if snapshot == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range snapshot {
		s.entries[id] = entry
	}
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
		if len(out) >= MaxItems {
			break
		}
	}
	return out
}
