package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pappu-dcbot-go/internal/config"
	"github.com/pappu-dcbot-go/internal/models"
	"github.com/sirupsen/logrus"
)

// Storage persists runtime settings and the session-context snapshot.
// Absence is reported as (nil, nil) so callers can fall back to defaults.
type Storage interface {
	LoadSettings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, settings *models.Settings) error

	LoadSessions(ctx context.Context) (map[string]models.SessionEntry, error)
	SaveSessions(ctx context.Context, sessions map[string]models.SessionEntry) error
}

// Manager selects and wraps a storage backend.
type Manager struct {
	storage     Storage
	logger      *logrus.Logger
	redisClient *redis.Client
}

// NewManager creates a new storage manager
func NewManager(cfg *config.Config, logger *logrus.Logger) (*Manager, error) {
	manager := &Manager{logger: logger}

	switch cfg.Storage.Type {
	case "redis":
		redisStorage, err := NewRedisStorage(cfg, logger)
		if err != nil {
			return nil, err
		}
		manager.storage = redisStorage
		manager.redisClient = redisStorage.client
	case "file":
		manager.storage = NewFileStorage(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	return manager, nil
}

func (m *Manager) LoadSettings(ctx context.Context) (*models.Settings, error) {
	return m.storage.LoadSettings(ctx)
}

func (m *Manager) SaveSettings(ctx context.Context, settings *models.Settings) error {
	return m.storage.SaveSettings(ctx, settings)
}

func (m *Manager) LoadSessions(ctx context.Context) (map[string]models.SessionEntry, error) {
	return m.storage.LoadSessions(ctx)
}

func (m *Manager) SaveSessions(ctx context.Context, sessions map[string]models.SessionEntry) error {
	return m.storage.SaveSessions(ctx, sessions)
}

// GetRedisClient returns the Redis client if available
func (m *Manager) GetRedisClient() *redis.Client {
	return m.redisClient
}

// FileStorage persists state as local JSON files. The settings file holds
// a single object under a "settings" key; the memory file maps user ids
// to session entries.
type FileStorage struct {
	settingsPath string
	memoryPath   string
	logger       *logrus.Logger
}

type settingsFile struct {
	Settings models.Settings `json:"settings"`
}

func NewFileStorage(cfg *config.Config, logger *logrus.Logger) *FileStorage {
	return &FileStorage{
		settingsPath: cfg.Storage.File.SettingsPath,
		memoryPath:   cfg.Storage.File.MemoryPath,
		logger:       logger,
	}
}

func (f *FileStorage) LoadSettings(ctx context.Context) (*models.Settings, error) {
	data, err := os.ReadFile(f.settingsPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var file settingsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	return &file.Settings, nil
}

func (f *FileStorage) SaveSettings(ctx context.Context, settings *models.Settings) error {
	data, err := json.MarshalIndent(settingsFile{Settings: *settings}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.settingsPath, data, 0644)
}

func (f *FileStorage) LoadSessions(ctx context.Context) (map[string]models.SessionEntry, error) {
	data, err := os.ReadFile(f.memoryPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sessions map[string]models.SessionEntry
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (f *FileStorage) SaveSessions(ctx context.Context, sessions map[string]models.SessionEntry) error {
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.memoryPath, data, 0644)
}

// RedisStorage implements storage using Redis
type RedisStorage struct {
	client *redis.Client
	logger *logrus.Logger
}

const (
	redisSettingsKey = "pappu:settings"
	redisSessionsKey = "pappu:sessions"
)

func NewRedisStorage(cfg *config.Config, logger *logrus.Logger) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Storage.Redis.Addr,
		Password: cfg.Storage.Redis.Password,
		DB:       cfg.Storage.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStorage{
		client: client,
		logger: logger,
	}, nil
}

func (r *RedisStorage) LoadSettings(ctx context.Context) (*models.Settings, error) {
	data, err := r.client.Get(ctx, redisSettingsKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var settings models.Settings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

func (r *RedisStorage) SaveSettings(ctx context.Context, settings *models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisSettingsKey, data, 0).Err() // no expiration for settings
}

func (r *RedisStorage) LoadSessions(ctx context.Context) (map[string]models.SessionEntry, error) {
	data, err := r.client.Get(ctx, redisSessionsKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sessions map[string]models.SessionEntry
	if err := json.Unmarshal([]byte(data), &sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *RedisStorage) SaveSessions(ctx context.Context, sessions map[string]models.SessionEntry) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	// Sessions expire on their own TTL, keep the snapshot around a bit longer
	return r.client.Set(ctx, redisSessionsKey, data, 12*time.Hour).Err()
}
