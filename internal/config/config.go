package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               int           `envconfig:"PORT" default:"8080"`
	AllowedOrigins     string        `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info"`
	FixtureDir         string        `envconfig:"FIXTURE_DIR" default:"./data/boards"`
	MembershipDebounce time.Duration `envconfig:"MEMBERSHIP_DEBOUNCE" default:"200ms"`
	TickInterval       time.Duration `envconfig:"TICK_INTERVAL" default:"50ms"`
	ExportMaxWidgets   int           `envconfig:"EXPORT_MAX_WIDGETS" default:"2000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins into websocket origin patterns.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
