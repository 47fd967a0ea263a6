package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	messagesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_bot_messages_received_total",
		Help: "Total number of messages received",
	}, []string{"channel_type"})

	messagesRouted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_bot_messages_routed_total",
		Help: "Total number of messages routed by intent",
	}, []string{"intent"})

	adminCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_bot_admin_commands_total",
		Help: "Total number of owner admin commands executed",
	}, []string{"command"})

	generationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_bot_generation_requests_total",
		Help: "Total number of generation requests",
	}, []string{"status"})

	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "discord_bot_generation_duration_seconds",
		Help:    "Duration of generation requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})

	searchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_bot_search_requests_total",
		Help: "Total number of search requests",
	}, []string{"provider", "status"})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discord_bot_cache_hits_total",
		Help: "Total number of response cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discord_bot_cache_misses_total",
		Help: "Total number of response cache misses",
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "discord_bot_active_sessions",
		Help: "Number of live session-context entries",
	})
)

// Metrics provides methods to record metrics
type Metrics struct{}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordMessageReceived records a received message
func (m *Metrics) RecordMessageReceived(channelType string) {
	messagesReceived.WithLabelValues(channelType).Inc()
}

// RecordMessageRouted records the intent a message resolved to
func (m *Metrics) RecordMessageRouted(intent string) {
	messagesRouted.WithLabelValues(intent).Inc()
}

// RecordAdminCommand records an executed admin command
func (m *Metrics) RecordAdminCommand(command string) {
	adminCommands.WithLabelValues(command).Inc()
}

// RecordGeneration records a generation request
func (m *Metrics) RecordGeneration(status string, duration time.Duration) {
	generationRequests.WithLabelValues(status).Inc()
	generationDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordSearch records a search request
func (m *Metrics) RecordSearch(provider, status string) {
	searchRequests.WithLabelValues(provider, status).Inc()
}

// RecordCacheHit records a cache hit
func (m *Metrics) RecordCacheHit() {
	cacheHits.Inc()
}

// RecordCacheMiss records a cache miss
func (m *Metrics) RecordCacheMiss() {
	cacheMisses.Inc()
}

// SetActiveSessions sets the live session-entry gauge
func (m *Metrics) SetActiveSessions(count float64) {
	activeSessions.Set(count)
}

// StartMetricsServer starts the metrics HTTP server
func StartMetricsServer(port int, path string) error {
	router := mux.NewRouter()
	router.Handle(path, promhttp.Handler())

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	addr := fmt.Sprintf(":%d", port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
