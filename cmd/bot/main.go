package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/pappu-dcbot-go/internal/classifier"
	"github.com/pappu-dcbot-go/internal/config"
	"github.com/pappu-dcbot-go/internal/handlers"
	"github.com/pappu-dcbot-go/internal/i18n"
	"github.com/pappu-dcbot-go/internal/middleware"
	"github.com/pappu-dcbot-go/internal/platform"
	"github.com/pappu-dcbot-go/internal/router"
	"github.com/pappu-dcbot-go/internal/services/cache"
	"github.com/pappu-dcbot-go/internal/services/generation"
	"github.com/pappu-dcbot-go/internal/services/search"
	"github.com/pappu-dcbot-go/internal/services/storage"
	"github.com/pappu-dcbot-go/internal/session"
	"github.com/pappu-dcbot-go/internal/settings"
	"github.com/pappu-dcbot-go/pkg/logger"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	envFile := flag.String("env", ".env", "Path to .env file")
	flag.Parse()

	// Load .env file if exists
	if err := godotenv.Load(*envFile); err != nil {
		// It's okay if .env doesn't exist
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Info("Starting Pappu Programmer...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	storageManager, err := storage.NewManager(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}

	// Load persisted settings
	settingsStore := settings.NewStore(storageManager, settings.Defaults(cfg.Toggles.AllowProfanity), log)
	settingsStore.Load(ctx)

	// Restore session context from the last run
	sessionStore := session.NewStore(cfg.Session.TTL)
	if snapshot, err := storageManager.LoadSessions(ctx); err != nil {
		log.WithError(err).Warn("Failed to load session context")
	} else if len(snapshot) > 0 {
		sessionStore.Restore(snapshot)
		log.WithField("users", len(snapshot)).Info("Session context restored")
	}

	// Initialize generation backend
	genService, err := generation.NewGemini(ctx, &cfg.Gemini, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize generation backend")
	}

	// Initialize search, cache, rate limiter, i18n, metrics
	searchClient := search.NewClient(&cfg.Search, log)
	cacheService := cache.NewCache(cfg, log)
	rateLimiter := middleware.NewRateLimiter(cfg, log)
	localizer := i18n.NewLocalizer(cfg.I18n.DefaultLanguage)
	metrics := middleware.NewMetrics()

	// Start metrics server if enabled
	if cfg.Monitoring.Metrics.Enabled {
		go func() {
			log.WithFields(logrus.Fields{
				"port": cfg.Monitoring.Metrics.Port,
				"path": cfg.Monitoring.Metrics.Path,
			}).Info("Starting metrics server")

			if err := middleware.StartMetricsServer(cfg.Monitoring.Metrics.Port, cfg.Monitoring.Metrics.Path); err != nil {
				log.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	// Initialize Discord session
	dg, err := discordgo.New("Bot " + cfg.Bot.Token)
	if err != nil {
		log.WithError(err).Fatal("Failed to create Discord session")
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	adapter := platform.NewDiscord(dg, log)

	// Process-level hooks fired by owner commands. done is closed once,
	// restart flags whether to re-exec after teardown.
	var (
		once    sync.Once
		done    = make(chan struct{})
		restart bool
	)
	control := router.Control{
		Shutdown: func() { once.Do(func() { close(done) }) },
		Restart:  func() { once.Do(func() { restart = true; close(done) }) },
	}

	intentRules := classifier.New(
		cfg.Bot.WakeWord,
		cfg.Bot.OwnerID,
		cfg.Toggles.Retaliate,
		cfg.Toggles.RetaliateAll,
		searchClient.Configured(),
	)

	rt := router.New(router.Options{
		Settings:     settingsStore,
		Sessions:     sessionStore,
		Classifier:   intentRules,
		Platform:     adapter,
		Generation:   genService,
		Search:       searchClient,
		Cache:        cacheService,
		Limiter:      rateLimiter,
		Localizer:    localizer,
		Metrics:      metrics,
		Logger:       log,
		LangPolicy:   classifier.LanguagePolicy{Strategy: cfg.Language.Strategy},
		OwnerID:      cfg.Bot.OwnerID,
		AllowInsults: cfg.Toggles.AllowInsults,
		Control:      control,
	})

	messageHandler := handlers.NewMessageHandler(rt, metrics, log, cfg.Bot.WakeWord)
	dg.AddHandler(messageHandler.Handle)

	if err := dg.Open(); err != nil {
		log.WithError(err).Fatal("Failed to open Discord connection")
	}
	log.WithField("user", dg.State.User.Username).Info("Bot connected")

	// Re-apply persisted stealth presence
	if settingsStore.Snapshot().Stealth {
		if err := adapter.SetPresence(true); err != nil {
			log.WithError(err).Warn("Failed to apply stealth presence")
		}
	}

	// Periodic persistence of settings and session context
	flush := func() {
		settingsStore.Flush(ctx)
		if err := storageManager.SaveSessions(ctx, sessionStore.Snapshot()); err != nil {
			log.WithError(err).Warn("Failed to save session context")
		}
	}
	go func() {
		interval := cfg.Session.FlushInterval
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				flush()
			case <-ctx.Done():
				return
			}
		}
	}()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case <-done:
		log.Info("Owner requested stop")
	}

	flush()
	cancel()
	if err := dg.Close(); err != nil {
		log.WithError(err).Error("Failed to close Discord connection")
	}

	if restart {
		exe, err := os.Executable()
		if err != nil {
			log.WithError(err).Fatal("Failed to resolve executable for restart")
		}
		log.Info("Restarting process")
		if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
			log.WithError(err).Fatal("Failed to restart")
		}
	}

	log.Info("Bot stopped")
}
