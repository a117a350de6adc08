package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// Default values
// ============================================================================
const (
	defaultListenAddr  = ":8080"
	defaultResetDelay  = 3 * time.Second
	defaultLogLevel    = "info"
	defaultLogFormat   = "json"
	defaultServiceName = "kingbandits-server"
	defaultFeedSubject = "kingbandits.rooms"
)

// Config holds every setting of the game server.
type Config struct {
	ListenAddr     string
	ResetDelay     time.Duration
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string

	// Service registration, disabled when ConsulAddr is empty.
	ServiceName   string
	AdvertiseHost string
	ConsulAddr    string

	// Event feed, disabled when NATSURL is empty.
	NATSURL     string
	FeedSubject string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		ListenAddr:     env("KVB_LISTEN_ADDR", defaultListenAddr),
		LogLevel:       strings.ToLower(env("KVB_LOG_LEVEL", defaultLogLevel)),
		LogFormat:      strings.ToLower(env("KVB_LOG_FORMAT", defaultLogFormat)),
		AllowedOrigins: splitList(getenv("KVB_ALLOWED_ORIGINS")),
		ServiceName:    env("KVB_SERVICE_NAME", defaultServiceName),
		AdvertiseHost:  env("KVB_ADVERTISE_HOST", ""),
		ConsulAddr:     env("CONSUL_HTTP_ADDR", ""),
		NATSURL:        env("NATS_URL", ""),
		FeedSubject:    env("KVB_FEED_SUBJECT", defaultFeedSubject),
	}

	delay := env("KVB_RESET_DELAY", "")
	cfg.ResetDelay = defaultResetDelay
	if delay != "" {
		d, err := time.ParseDuration(delay)
		if err != nil {
			return nil, fmt.Errorf("invalid KVB_RESET_DELAY %q: %w", delay, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid KVB_RESET_DELAY %q: must be positive", delay)
		}
		cfg.ResetDelay = d
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid KVB_LOG_LEVEL %q: want debug, info, warn or error", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		return nil, fmt.Errorf("invalid KVB_LOG_FORMAT %q: want json or console", cfg.LogFormat)
	}

	if cfg.AdvertiseHost == "" {
		cfg.AdvertiseHost = hostname(getenv)
	}
	return cfg, nil
}

// ListenPort returns the numeric port of ListenAddr, or 0 if it has none.
func (c *Config) ListenPort() int {
	i := strings.LastIndexByte(c.ListenAddr, ':')
	if i < 0 {
		return 0
	}
	port, err := strconv.Atoi(c.ListenAddr[i+1:])
	if err != nil {
		return 0
	}
	return port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func hostname(getenv func(string) string) string {
	if h := getenv("HOSTNAME"); h != "" {
		return h
	}
	h, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return h
}
