// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	View    ViewConfig    `toml:"view"`
	Layout  LayoutConfig  `toml:"layout"`
	Gantt   GanttConfig   `toml:"gantt"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// ViewConfig holds the grid window settings.
type ViewConfig struct {
	Mode             string `toml:"mode"`               // "month", "day", "hour", "gantt"
	WeekStartsMonday bool   `toml:"week_starts_monday"` // false means Sunday
	OverlapMode      string `toml:"overlap_mode"`       // "strict" or "touch"
	DaysVisible      int    `toml:"days_visible"`       // day/hour view span
	Timezone         string `toml:"timezone"`           // IANA name; empty means system local
}

// LayoutConfig holds the pixel metrics handed to the layout engine.
type LayoutConfig struct {
	CellWidth     float64 `toml:"cell_width"`
	RowHeight     float64 `toml:"row_height"`
	PixelsPerHour float64 `toml:"pixels_per_hour"`
	BarGutter     float64 `toml:"bar_gutter"`
}

// GanttConfig holds gantt paging settings.
type GanttConfig struct {
	Step            string  `toml:"step"` // "hour" or "day"
	StepCount       int     `toml:"step_count"`
	ZoomFactor      float64 `toml:"zoom_factor"`
	PixelsPerSecond float64 `toml:"pixels_per_second"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			Mode:             "month",
			WeekStartsMonday: true,
			OverlapMode:      "strict",
			DaysVisible:      3,
			Timezone:         "",
		},
		Layout: LayoutConfig{
			CellWidth:     14,
			RowHeight:     1,
			PixelsPerHour: 2,
			BarGutter:     1,
		},
		Gantt: GanttConfig{
			Step:            "day",
			StepCount:       14,
			ZoomFactor:      1,
			PixelsPerSecond: 1.0 / 3600,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "timegrid.db"
	}
	return filepath.Join(home, ".local", "share", "timegrid", "timegrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timegrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	// View overrides
	if v := os.Getenv("TIMEGRID_VIEW_MODE"); v != "" {
		cfg.View.Mode = v
	}
	if v := os.Getenv("TIMEGRID_WEEK_STARTS_MONDAY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.View.WeekStartsMonday = b
		}
	}
	if v := os.Getenv("TIMEGRID_OVERLAP_MODE"); v != "" {
		cfg.View.OverlapMode = v
	}
	if v := os.Getenv("TIMEGRID_DAYS_VISIBLE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.View.DaysVisible = n
		}
	}
	if v := os.Getenv("TIMEGRID_TIMEZONE"); v != "" {
		cfg.View.Timezone = v
	}

	// Gantt overrides
	if v := os.Getenv("TIMEGRID_GANTT_STEP"); v != "" {
		cfg.Gantt.Step = v
	}
	if v := os.Getenv("TIMEGRID_GANTT_STEP_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Gantt.StepCount = n
		}
	}

	// Storage overrides
	if v := os.Getenv("TIMEGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := os.Getenv("TIMEGRID_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validModes = map[string]bool{
	"month": true,
	"day":   true,
	"hour":  true,
	"gantt": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !validModes[c.View.Mode] {
		return fmt.Errorf("invalid view mode: %s", c.View.Mode)
	}
	if c.View.OverlapMode != "strict" && c.View.OverlapMode != "touch" {
		return fmt.Errorf("overlap_mode must be \"strict\" or \"touch\", got %q", c.View.OverlapMode)
	}
	if c.View.DaysVisible < 1 {
		return errors.New("days_visible must be at least 1")
	}

	if c.Layout.CellWidth <= 0 {
		return errors.New("cell_width must be positive")
	}
	if c.Layout.RowHeight <= 0 {
		return errors.New("row_height must be positive")
	}
	if c.Layout.PixelsPerHour <= 0 {
		return errors.New("pixels_per_hour must be positive")
	}

	if c.Gantt.Step != "hour" && c.Gantt.Step != "day" {
		return fmt.Errorf("gantt step must be \"hour\" or \"day\", got %q", c.Gantt.Step)
	}
	if c.Gantt.StepCount < 1 {
		return errors.New("gantt step_count must be at least 1")
	}
	if c.Gantt.ZoomFactor <= 0 {
		return errors.New("gantt zoom_factor must be positive")
	}
	if c.Gantt.PixelsPerSecond <= 0 {
		return errors.New("gantt pixels_per_second must be positive")
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
