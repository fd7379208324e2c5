package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Start pages accepted by DisplayConfig.Page.
const (
	PageDashboard     = "dashboard"
	PageTasks         = "tasks"
	PageNotifications = "notifications"
	PageCalendar      = "calendar"
	PageChat          = "chat"
)

// Pages lists the start pages in tab order.
var Pages = []string{PageDashboard, PageTasks, PageNotifications, PageCalendar, PageChat}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme      string `mapstructure:"theme" yaml:"theme"`
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
	Page       string `mapstructure:"page" yaml:"page"`
}

// NotificationConfig mirrors the notification toggles of the settings page.
type NotificationConfig struct {
	// Mentions controls whether chat mentions raise notifications.
	Mentions bool `mapstructure:"mentions" yaml:"mentions"`

	// DeadlineReminders controls the periodic deadline sweep.
	DeadlineReminders bool `mapstructure:"deadline_reminders" yaml:"deadline_reminders"`

	// ReminderIntervalSec is how often (in seconds) the sweep runs.
	ReminderIntervalSec int `mapstructure:"reminder_interval_sec" yaml:"reminder_interval_sec"`

	// DueSoonHours is the look-ahead window for deadline reminders.
	DueSoonHours int `mapstructure:"due_soon_hours" yaml:"due_soon_hours"`
}

// UserConfig identifies the person running the planner.
type UserConfig struct {
	ID     int    `mapstructure:"id" yaml:"id"`
	Handle string `mapstructure:"handle" yaml:"handle"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// SeedConfig points at an alternative fixture file.
type SeedConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Display       DisplayConfig      `mapstructure:"display" yaml:"display"`
	Notifications NotificationConfig `mapstructure:"notifications" yaml:"notifications"`
	User          UserConfig         `mapstructure:"user" yaml:"user"`
	Log           LogConfig          `mapstructure:"log" yaml:"log"`
	Seed          SeedConfig         `mapstructure:"seed" yaml:"seed"`
	Categories    []string           `mapstructure:"categories" yaml:"categories"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/process-planner/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "process-planner", "config.yaml")
}

// DefaultLogPath returns $XDG_CACHE_HOME/process-planner/planner.log,
// falling back to ~/.cache.
func DefaultLogPath() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "process-planner", "planner.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "process-planner", "planner.log")
	}
	return filepath.Join(home, ".cache", "process-planner", "planner.log")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Display: DisplayConfig{
			Theme:      "default",
			DateFormat: "Jan 02 15:04",
			Page:       PageDashboard,
		},
		Notifications: NotificationConfig{
			Mentions:            true,
			DeadlineReminders:   true,
			ReminderIntervalSec: 60,
			DueSoonHours:        24,
		},
		User: UserConfig{
			ID:     1,
			Handle: "johnsmith",
		},
		Log: LogConfig{
			Level: "info",
			File:  DefaultLogPath(),
		},
		Categories: append([]string(nil), DefaultCategories...),
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
// Environment variables prefixed with PLANNER_ override file values
// (e.g. PLANNER_LOG_LEVEL=debug).
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("planner")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("display.date_format", def.Display.DateFormat)
	v.SetDefault("display.page", def.Display.Page)
	v.SetDefault("notifications.mentions", def.Notifications.Mentions)
	v.SetDefault("notifications.deadline_reminders", def.Notifications.DeadlineReminders)
	v.SetDefault("notifications.reminder_interval_sec", def.Notifications.ReminderIntervalSec)
	v.SetDefault("notifications.due_soon_hours", def.Notifications.DueSoonHours)
	v.SetDefault("user.id", def.User.ID)
	v.SetDefault("user.handle", def.User.Handle)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("seed.path", "")
	v.SetDefault("categories", def.Categories)

	// A missing file is fine: defaults and environment still apply.
	if err := v.ReadInConfig(); err != nil {
		_, isPathErr := err.(*os.PathError)
		_, isNotFound := err.(viper.ConfigFileNotFoundError)
		if !isPathErr && !isNotFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = def.Categories
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the planner cannot work with.
func (c *AppConfig) Validate() error {
	if c.Notifications.ReminderIntervalSec <= 0 {
		return fmt.Errorf("notifications.reminder_interval_sec must be > 0 (got %d)",
			c.Notifications.ReminderIntervalSec)
	}
	if c.Notifications.DueSoonHours <= 0 {
		return fmt.Errorf("notifications.due_soon_hours must be > 0 (got %d)",
			c.Notifications.DueSoonHours)
	}
	switch c.Display.Page {
	case PageDashboard, PageTasks, PageNotifications, PageCalendar, PageChat:
	default:
		return fmt.Errorf("display.page: unknown page %q", c.Display.Page)
	}
	if strings.TrimSpace(c.User.Handle) == "" {
		return fmt.Errorf("user.handle must not be empty")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("display", cfg.Display)
	v.Set("notifications", cfg.Notifications)
	v.Set("user", cfg.User)
	v.Set("log", cfg.Log)
	v.Set("seed", cfg.Seed)
	v.Set("categories", cfg.Categories)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
