// Package config loads ticketline settings with Viper: built-in defaults,
// then an optional YAML file, then TICKETLINE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/ticketline/internal/db"
	"github.com/alexanderramin/ticketline/internal/scheduler"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TICKETLINE_DB_PATH or
// TICKETLINE_TIMELINE_WEEKS.
const EnvPrefix = "TICKETLINE"

type Config struct {
	DBPath   string         `mapstructure:"db_path"`
	Log      LogConfig      `mapstructure:"log"`
	Timeline TimelineConfig `mapstructure:"timeline"`
}

type LogConfig struct {
	// UseCases turns on one log line per board change, written to stderr.
	UseCases bool   `mapstructure:"use_cases"`
	Level    string `mapstructure:"level"`
}

// TimelineConfig is the pixel geometry drags are measured in and how far
// ahead the timeline view reaches.
type TimelineConfig struct {
	RowHeight float64 `mapstructure:"row_height"`
	DayWidth  float64 `mapstructure:"day_width"`
	Weeks     int     `mapstructure:"weeks"`
}

// Load reads configuration. An explicit configPath must exist; otherwise
// $HOME/.ticketline/config.yaml is read when present.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".ticketline"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.DBPath = expandHome(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	if path, err := db.DefaultPath(); err == nil {
		v.SetDefault("db_path", path)
	}
	v.SetDefault("log.use_cases", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("timeline.row_height", scheduler.DefaultRowHeight)
	v.SetDefault("timeline.day_width", scheduler.DefaultDayWidth)
	v.SetDefault("timeline.weeks", 6)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// Validate rejects settings the board cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, fmt.Errorf("db_path is required"))
	}
	if c.Timeline.RowHeight <= 0 {
		errs = append(errs, fmt.Errorf("timeline.row_height must be positive, got %v", c.Timeline.RowHeight))
	}
	if c.Timeline.DayWidth <= 0 {
		errs = append(errs, fmt.Errorf("timeline.day_width must be positive, got %v", c.Timeline.DayWidth))
	}
	if c.Timeline.Weeks < 1 {
		errs = append(errs, fmt.Errorf("timeline.weeks must be at least 1, got %d", c.Timeline.Weeks))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Geometry is the drag geometry derived from the timeline settings.
func (c *Config) Geometry() scheduler.Geometry {
	return scheduler.Geometry{RowHeight: c.Timeline.RowHeight, DayWidth: c.Timeline.DayWidth}
}

// LogLevel parses log.level (debug, info, warn, error).
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
