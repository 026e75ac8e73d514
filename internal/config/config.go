package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tripcal/internal/calendar"
	"tripcal/internal/locale"
)

// Config holds the unified application configuration
type Config struct {
	FirstDay                    int            `yaml:"first_day"`
	PastScrollRange             int            `yaml:"past_scroll_range"`
	FutureScrollRange           int            `yaml:"future_scroll_range"`
	MinDate                     string         `yaml:"min_date,omitempty"`
	MaxDate                     string         `yaml:"max_date,omitempty"`
	Locale                      string         `yaml:"locale"`
	DisableTouchForDisabledDays bool           `yaml:"disable_touch_for_disabled_days"`
	TodayZone                   string         `yaml:"today_zone"`
	TripsDir                    string         `yaml:"trips_dir"`
	BlackoutICS                 string         `yaml:"blackout_ics,omitempty"`
	Listen                      string         `yaml:"listen"`
	LogDir                      string         `yaml:"log_dir"`
	Theme                       calendar.Theme `yaml:"theme"`

	warnings []string
}

// CLIFlags holds parsed CLI flags. Nil pointers mean "not given".
type CLIFlags struct {
	ConfigPath string
	Locale     string
	FirstDay   *int
	TripsDir   string
	Listen     string
}

const (
	TodayUTC   = "utc"
	TodayLocal = "local"
)

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{
		FirstDay:          1,
		PastScrollRange:   0,
		FutureScrollRange: 12,
		Locale:            "en-US",
		TodayZone:         TodayUTC,
		Listen:            "127.0.0.1:8088",
		Theme:             calendar.DefaultTheme(),
	}
	if dir, err := GetDefaultDir(); err == nil {
		cfg.TripsDir = filepath.Join(dir, "trips")
		cfg.LogDir = dir
	}
	return cfg
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := Default()

	configPath := flags.ConfigPath
	if configPath == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}

	// Priority 3: config file
	if err := loadConfigFile(configPath, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", configPath, err)
		}
	}

	// Priority 2: environment
	if v := os.Getenv("TRIPCAL_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("TRIPCAL_FIRST_DAY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("TRIPCAL_FIRST_DAY: %w", err)
		}
		cfg.FirstDay = n
	}
	if v := os.Getenv("TRIPCAL_TRIPS_DIR"); v != "" {
		cfg.TripsDir = v
	}
	if v := os.Getenv("TRIPCAL_LISTEN"); v != "" {
		cfg.Listen = v
	}

	// Priority 1: CLI flags
	if flags.Locale != "" {
		cfg.Locale = flags.Locale
	}
	if flags.FirstDay != nil {
		cfg.FirstDay = *flags.FirstDay
	}
	if flags.TripsDir != "" {
		cfg.TripsDir = flags.TripsDir
	}
	if flags.Listen != "" {
		cfg.Listen = flags.Listen
	}

	cfg.warnings = cfg.Normalize()
	return cfg, nil
}

// Normalize clamps values into range instead of rejecting them, so a bad
// config still yields a usable calendar. It returns one warning per value
// it had to drop.
func (c *Config) Normalize() []string {
	var warnings []string
	c.FirstDay = calendar.NormalizeFirstDay(c.FirstDay)
	c.PastScrollRange = max(c.PastScrollRange, 0)
	c.FutureScrollRange = max(c.FutureScrollRange, 0)

	if err := calendar.ValidateISO(c.MinDate); err != nil {
		warnings = append(warnings, fmt.Sprintf("ignoring min_date %q: %v", c.MinDate, err))
		c.MinDate = ""
	}
	if err := calendar.ValidateISO(c.MaxDate); err != nil {
		warnings = append(warnings, fmt.Sprintf("ignoring max_date %q: %v", c.MaxDate, err))
		c.MaxDate = ""
	}

	switch strings.ToLower(c.TodayZone) {
	case TodayLocal:
		c.TodayZone = TodayLocal
	default:
		c.TodayZone = TodayUTC
	}

	c.Locale = locale.Resolve(c.Locale).String()
	c.TripsDir = expandPath(c.TripsDir)
	c.BlackoutICS = expandPath(c.BlackoutICS)
	c.LogDir = expandPath(c.LogDir)
	c.Theme.Normalize()
	return warnings
}

// Warnings lists what Load dropped while normalizing. Logging is not set
// up yet when Load runs, so callers log these once it is.
func (c *Config) Warnings() []string {
	return c.warnings
}

// TodayLocation is where "today" is computed.
func (c *Config) TodayLocation() *time.Location {
	if c.TodayZone == TodayLocal {
		return time.Local
	}
	return time.UTC
}

// GridOptions converts the config into grid-builder input for now.
func (c *Config) GridOptions(now time.Time, marks calendar.MarkedDates) calendar.GridOptions {
	return calendar.GridOptions{
		FirstDay:                             c.FirstDay,
		MinDate:                              c.MinDate,
		MaxDate:                              c.MaxDate,
		Today:                                calendar.TodayISO(now, c.TodayLocation()),
		MarkedDates:                          marks,
		DisableAllTouchEventsForDisabledDays: c.DisableTouchForDisabledDays,
	}
}

// SeriesOptions converts the config into month-series input.
func (c *Config) SeriesOptions(now time.Time, marks calendar.MarkedDates) calendar.SeriesOptions {
	return calendar.SeriesOptions{
		Now:               now,
		PastScrollRange:   c.PastScrollRange,
		FutureScrollRange: c.FutureScrollRange,
		Grid:              c.GridOptions(now, marks),
	}
}

// LocaleValue returns the resolved display locale.
func (c *Config) LocaleValue() locale.Locale {
	return locale.Resolve(c.Locale)
}

// GetDefaultDir returns the default data directory
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "tripcal"), nil
}

// GetConfigPath returns the path to the configuration file. TRIPCAL_CONFIG
// overrides the default location.
func GetConfigPath() (string, error) {
	if p := os.Getenv("TRIPCAL_CONFIG"); p != "" {
		return expandPath(p), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tripcal", "config.yaml"), nil
}

func loadConfigFile(path string, into *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, into)
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile(path string) error {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
