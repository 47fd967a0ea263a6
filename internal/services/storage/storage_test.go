package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pappu-dcbot-go/internal/config"
	"github.com/pappu-dcbot-go/internal/models"
)

func fileBackend(t *testing.T) *FileStorage {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Storage.File.SettingsPath = filepath.Join(dir, "settings.json")
	cfg.Storage.File.MemoryPath = filepath.Join(dir, "memory.json")

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewFileStorage(cfg, log)
}

func TestFileStorageMissingFilesMeanEmpty(t *testing.T) {
	backend := fileBackend(t)

	settings, err := backend.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Nil(t, settings, "first run has nothing persisted yet")

	sessions, err := backend.LoadSessions(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sessions)
}

func TestFileStorageSettingsRoundTrip(t *testing.T) {
	backend := fileBackend(t)

	saved := &models.Settings{
		OwnerDMOnly:    true,
		Stealth:        true,
		Mode:           "sarcastic",
		AllowProfanity: true,
		EnglishLock:    true,
	}
	require.NoError(t, backend.SaveSettings(context.Background(), saved))

	loaded, err := backend.LoadSettings(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, *saved, *loaded)
}

func TestFileStorageSessionsRoundTrip(t *testing.T) {
	backend := fileBackend(t)

	saved := map[string]models.SessionEntry{
		"u1": {LastSubject: "daru", LastQuery: "daru suggest karo", Items: []string{"Old Monk"}, Timestamp: 1_700_000_000},
		"u2": {LastSubject: "phone", LastQuery: "phone batao", Timestamp: 1_700_000_500},
	}
	require.NoError(t, backend.SaveSessions(context.Background(), saved))

	loaded, err := backend.LoadSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}
