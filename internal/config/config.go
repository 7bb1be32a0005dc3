// Package config provides application configuration loaded from environment variables.
// Use the package-level Get() function to obtain the singleton Config instance.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ──────────────────────────────────────────────────────────────────────────────
// Sub-config structs
// ──────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // e.g. "5000"
	Env            string        // "development" | "production"
	ReadTimeout    time.Duration // default 10s
	WriteTimeout   time.Duration // default 10s
	AllowedOrigins string        // comma-separated origins for prod CORS; "" = none
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	DSN             string        // full postgres DSN
	MaxOpenConns    int           // default 25
	MaxIdleConns    int           // default 10
	ConnMaxLifetime time.Duration // default 5m
	QueryTimeout    time.Duration // per-query deadline at the repository boundary, default 5s
}

// HealthConfig holds the background health-probe settings.
type HealthConfig struct {
	// Services maps service name → liveness URL, parsed from
	// HEALTH_SERVICES ("name=url,name=url").
	Services      map[string]string
	ProbeInterval time.Duration // default 5s
	ProbeTimeout  time.Duration // per-probe HTTP timeout, default 2s
}

// AgentConfig holds settings for forwarding trigger actions to the external
// AI agent. The agent runs trades and model calls elsewhere; this service
// only accepts and forwards the requests.
type AgentConfig struct {
	BaseURL string        // e.g. "http://agent:9000"
	Timeout time.Duration // default 10s
}

// StatsConfig holds aggregation and live-push settings.
type StatsConfig struct {
	SummaryWindow     time.Duration // profit summary trailing window, default 24h
	PriceChartWindow  time.Duration // price chart lookback, default 24h
	BroadcastInterval time.Duration // WS dashboard-stats push interval, default 15s
}

// ──────────────────────────────────────────────────────────────────────────────
// Top-level Config
// ──────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object for the entire application.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Health HealthConfig
	Agent  AgentConfig
	Stats  StatsConfig
}

// IsProd returns true when running in the production environment.
func (c *Config) IsProd() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// Returns the first validation error encountered.
func (c *Config) Validate() error {
	var errs []error

	// In production, DB DSN must be explicit
	if c.IsProd() && c.DB.DSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must be set in production"))
	}

	if c.Health.ProbeInterval <= 0 {
		errs = append(errs, fmt.Errorf(
			"HEALTH_PROBE_INTERVAL must be positive, got %s", c.Health.ProbeInterval))
	}
	if c.Health.ProbeTimeout >= c.Health.ProbeInterval {
		errs = append(errs, fmt.Errorf(
			"HEALTH_PROBE_TIMEOUT (%s) must be shorter than HEALTH_PROBE_INTERVAL (%s)",
			c.Health.ProbeTimeout, c.Health.ProbeInterval))
	}
	if c.DB.QueryTimeout <= 0 {
		errs = append(errs, fmt.Errorf(
			"DB_QUERY_TIMEOUT must be positive, got %s", c.DB.QueryTimeout))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Singleton
// ──────────────────────────────────────────────────────────────────────────────

var (
	instance *Config
	once     sync.Once
	loadErr  error
)

// Get returns the singleton Config, loading it once from environment variables.
// Panics if loading fails — call this early in main() to catch misconfigurations
// at startup.
func Get() *Config {
	once.Do(func() {
		instance, loadErr = load()
	})
	if loadErr != nil {
		panic(fmt.Sprintf("config: failed to load: %v", loadErr))
	}
	return instance
}

// MustLoad loads and validates configuration. Intended for use in main().
// Panics on any error so misconfiguration is caught immediately at boot.
func MustLoad() *Config {
	cfg := Get()
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: validation failed: %v", err))
	}
	return cfg
}

// ──────────────────────────────────────────────────────────────────────────────
// Internal loader
// ──────────────────────────────────────────────────────────────────────────────

func load() (*Config, error) {
	cfg := &Config{}

	// ── Server ────────────────────────────────────────────────────────────────
	cfg.Server = ServerConfig{
		Port:           getEnv("SERVER_PORT", "5000"),
		Env:            getEnv("ENVIRONMENT", "development"),
		ReadTimeout:    getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:   getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
	}

	// ── Database ──────────────────────────────────────────────────────────────
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		// Build DSN from individual components for convenience in dev
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "shadowlynx"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	maxOpen, err := getInt("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS: %w", err)
	}
	maxIdle, err := getInt("DB_MAX_IDLE_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_IDLE_CONNS: %w", err)
	}

	cfg.DB = DBConfig{
		DSN:             dsn,
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		QueryTimeout:    getDuration("DB_QUERY_TIMEOUT", 5*time.Second),
	}

	// ── Health probing ────────────────────────────────────────────────────────
	services, err := parseServices(getEnv("HEALTH_SERVICES",
		"price_aggregator=http://localhost:9101/healthz,"+
			"execution_engine=http://localhost:9102/healthz,"+
			"ai_agent=http://localhost:9103/healthz"))
	if err != nil {
		return nil, fmt.Errorf("HEALTH_SERVICES: %w", err)
	}

	cfg.Health = HealthConfig{
		Services:      services,
		ProbeInterval: getDuration("HEALTH_PROBE_INTERVAL", 5*time.Second),
		ProbeTimeout:  getDuration("HEALTH_PROBE_TIMEOUT", 2*time.Second),
	}

	// ── AI agent ──────────────────────────────────────────────────────────────
	cfg.Agent = AgentConfig{
		BaseURL: getEnv("AGENT_BASE_URL", "http://localhost:9103"),
		Timeout: getDuration("AGENT_TIMEOUT", 10*time.Second),
	}

	// ── Stats ─────────────────────────────────────────────────────────────────
	cfg.Stats = StatsConfig{
		SummaryWindow:     getDuration("STATS_SUMMARY_WINDOW", 24*time.Hour),
		PriceChartWindow:  getDuration("STATS_PRICE_CHART_WINDOW", 24*time.Hour),
		BroadcastInterval: getDuration("STATS_BROADCAST_INTERVAL", 15*time.Second),
	}

	return cfg, nil
}

// parseServices parses "name=url,name=url" into a map. Empty input yields an
// empty map (probing disabled).
func parseServices(raw string) (map[string]string, error) {
	services := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return services, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, url, ok := strings.Cut(pair, "=")
		if !ok || name == "" || url == "" {
			return nil, fmt.Errorf("invalid service entry %q (want name=url)", pair)
		}
		services[strings.TrimSpace(name)] = strings.TrimSpace(url)
	}
	return services, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helper functions
// ──────────────────────────────────────────────────────────────────────────────

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", v)
	}
	return n, nil
}

// getDuration parses an env var as a Go duration string (e.g. "15m", "2s").
// Falls back to defaultVal if the variable is unset or empty.
func getDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// Fall back to default; do not crash on parse error
		return defaultVal
	}
	return d
}
