package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Bot        BotConfig        `mapstructure:"bot"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Search     SearchConfig     `mapstructure:"search"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Session    SessionConfig    `mapstructure:"session"`
	Toggles    TogglesConfig    `mapstructure:"toggles"`
	Language   LanguageConfig   `mapstructure:"language"`
	Cache      CacheConfig      `mapstructure:"cache"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	I18n       I18nConfig       `mapstructure:"i18n"`
}

type BotConfig struct {
	Token    string `mapstructure:"token"`
	WakeWord string `mapstructure:"wake_word"`
	OwnerID  string `mapstructure:"owner_id"`
}

type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SearchConfig struct {
	Provider     string `mapstructure:"provider"` // "serpapi", "google" or empty
	SerpAPIKey   string `mapstructure:"serpapi_key"`
	GoogleAPIKey string `mapstructure:"google_api_key"`
	GoogleCSEID  string `mapstructure:"google_cse_id"`
}

type StorageConfig struct {
	Type  string      `mapstructure:"type"` // "file" or "redis"
	File  FileStore   `mapstructure:"file"`
	Redis RedisConfig `mapstructure:"redis"`
}

type FileStore struct {
	SettingsPath string `mapstructure:"settings_path"`
	MemoryPath   string `mapstructure:"memory_path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

type TogglesConfig struct {
	AllowInsults   bool `mapstructure:"allow_insults"`
	Retaliate      bool `mapstructure:"retaliate"`
	RetaliateAll   bool `mapstructure:"retaliate_all"`
	AllowProfanity bool `mapstructure:"allow_profanity"`
}

type LanguageConfig struct {
	// Strategy selects the reply-language policy: "static" forces Hinglish
	// unless the english lock is on, "auto" detects English per message.
	Strategy string `mapstructure:"strategy"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
	MaxSize int           `mapstructure:"max_size"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
}

type LoggingConfig struct {
	Level  string     `mapstructure:"level"`
	Format string     `mapstructure:"format"`
	Output string     `mapstructure:"output"`
	File   FileConfig `mapstructure:"file"`
}

type FileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type MonitoringConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
}

// LoadConfig loads configuration from file and environment variables.
// The config file is optional; env vars alone are enough to run.
func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	setDefaults()

	viper.AutomaticEnv()

	// Environment variable overrides
	viper.BindEnv("bot.token", "DISCORD_TOKEN")
	viper.BindEnv("bot.owner_id", "OWNER_ID")
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("search.provider", "SEARCH_PROVIDER")
	viper.BindEnv("search.serpapi_key", "SERPAPI_KEY")
	viper.BindEnv("search.google_api_key", "GOOGLE_API_KEY")
	viper.BindEnv("search.google_cse_id", "GOOGLE_CSE_ID")
	viper.BindEnv("toggles.allow_insults", "ALLOW_INSULTS")
	viper.BindEnv("toggles.retaliate", "RETALIATE")
	viper.BindEnv("toggles.retaliate_all", "RETALIATE_ALL")
	viper.BindEnv("toggles.allow_profanity", "ALLOW_PROFANITY")
	viper.BindEnv("storage.redis.addr", "REDIS_ADDR")
	viper.BindEnv("storage.redis.password", "REDIS_PASSWORD")

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults plus env vars apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Search.Provider = strings.ToLower(strings.TrimSpace(config.Search.Provider))

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("bot.wake_word", "pappu")
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.timeout", 2*time.Minute)
	viper.SetDefault("storage.type", "file")
	viper.SetDefault("storage.file.settings_path", "pappu_settings.json")
	viper.SetDefault("storage.file.memory_path", "pappu_memory.json")
	viper.SetDefault("session.ttl", 6*time.Hour)
	viper.SetDefault("session.flush_interval", 5*time.Minute)
	viper.SetDefault("language.strategy", "static")
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.ttl", 10*time.Minute)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_minute", 20)
	viper.SetDefault("rate_limit.burst", 5)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.output", "stdout")
	viper.SetDefault("monitoring.metrics.path", "/metrics")
	viper.SetDefault("monitoring.metrics.port", 9090)
	viper.SetDefault("i18n.default_language", "hi")
}

func isNotExist(err error) bool {
	return strings.Contains(err.Error(), "no such file")
}

func validateConfig(cfg *Config) error {
	if cfg.Bot.Token == "" {
		return fmt.Errorf("bot token is required")
	}
	if cfg.Bot.OwnerID == "" {
		return fmt.Errorf("owner id is required")
	}
	switch cfg.Language.Strategy {
	case "static", "auto":
	default:
		return fmt.Errorf("unknown language strategy: %s", cfg.Language.Strategy)
	}
	switch cfg.Search.Provider {
	case "", "serpapi", "google":
	default:
		return fmt.Errorf("unknown search provider: %s", cfg.Search.Provider)
	}
	return nil
}
