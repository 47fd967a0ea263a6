package settings

import (
	"context"
	"sync"

	"github.com/pappu-dcbot-go/internal/models"
	"github.com/sirupsen/logrus"
)

// Persister is the slice of the storage layer the settings store needs.
type Persister interface {
	LoadSettings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, settings *models.Settings) error
}

// Modes accepted by ApplyMode. Anything else is rejected without mutation.
var acceptedModes = map[string]bool{
	"funny": true, "angry": true, "serious": true, "flirty": true,
	"sarcastic": true, "bhaukaal": true, "kid": true, "toxic": true,
	"coder": true, "bhai-ji": true, "dark": true,
}

var modeAliases = map[string]string{
	"mafia":  "bhaukaal",
	"normal": "funny",
}

// Defaults returns the settings a fresh process starts with.
func Defaults(allowProfanity bool) models.Settings {
	return models.Settings{
		OwnerDMOnly:    false,
		Stealth:        false,
		Mode:           "funny",
		AllowProfanity: allowProfanity,
		EnglishLock:    false,
	}
}

// Store owns the mutable runtime settings record. Every successful
// mutation persists the whole record immediately; Flush is the periodic
// safety net that saves unconditionally.
type Store struct {
	mu      sync.RWMutex
	current models.Settings
	dirty   bool
	storage Persister
	logger  *logrus.Logger
}

// NewStore creates a settings store seeded with defaults.
func NewStore(storage Persister, defaults models.Settings, logger *logrus.Logger) *Store {
	return &Store{
		current: defaults,
		storage: storage,
		logger:  logger,
	}
}

// Load replaces the in-memory record with the persisted one, if present.
// Decode failures fall back to the current defaults and are only logged.
func (s *Store) Load(ctx context.Context) {
	loaded, err := s.storage.LoadSettings(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load persisted settings, using defaults")
		return
	}
	if loaded == nil {
		return
	}

	s.mu.Lock()
	s.current = *loaded
	s.mu.Unlock()
}

// Snapshot returns a copy of the current settings.
func (s *Store) Snapshot() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ApplyMode normalizes aliases and mutates the mode if the candidate is
// in the accepted set. Unknown values leave the prior mode unchanged.
func (s *Store) ApplyMode(ctx context.Context, candidate string) bool {
	mode := candidate
	if alias, ok := modeAliases[mode]; ok {
		mode = alias
	}
	if !acceptedModes[mode] {
		return false
	}

	s.mu.Lock()
	s.current.Mode = mode
	// aggressive modes make no sense behind the maintenance gate
	if mode == "angry" || mode == "toxic" {
		s.current.OwnerDMOnly = false
	}
	s.dirty = true
	s.mu.Unlock()

	s.save(ctx)
	return true
}

// SetOwnerDMOnly toggles the maintenance gate.
func (s *Store) SetOwnerDMOnly(ctx context.Context, on bool) {
	s.mutate(ctx, func(cur *models.Settings) { cur.OwnerDMOnly = on })
}

// SetStealth toggles the presence hint.
func (s *Store) SetStealth(ctx context.Context, on bool) {
	s.mutate(ctx, func(cur *models.Settings) { cur.Stealth = on })
}

// SetEnglishLock toggles the forced-English reply policy.
func (s *Store) SetEnglishLock(ctx context.Context, on bool) {
	s.mutate(ctx, func(cur *models.Settings) { cur.EnglishLock = on })
}

// SetAllowProfanity toggles the strong-language template gate.
func (s *Store) SetAllowProfanity(ctx context.Context, on bool) {
	s.mutate(ctx, func(cur *models.Settings) { cur.AllowProfanity = on })
}

func (s *Store) mutate(ctx context.Context, fn func(*models.Settings)) {
	s.mu.Lock()
	fn(&s.current)
	s.dirty = true
	s.mu.Unlock()

	s.save(ctx)
}

// save persists the record best-effort; failures are logged, never escalated.
func (s *Store) save(ctx context.Context) {
	snapshot := s.Snapshot()
	if err := s.storage.SaveSettings(ctx, &snapshot); err != nil {
		s.logger.WithError(err).Error("Failed to persist settings")
		return
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// Flush saves the record regardless of dirtiness. It backs the periodic
// timer and the shutdown path.
func (s *Store) Flush(ctx context.Context) {
	s.save(ctx)
}
