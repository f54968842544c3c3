// Package config loads taskflow settings from a TOML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskflow.db"
	appDir                = "taskflow"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	DBPath               string `toml:"db_path"`
	ScanInterval         string `toml:"scan_interval"`
	SnoozeMinutes        int    `toml:"snooze_minutes"`
	DefaultFilter        string `toml:"default_filter"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
	EventBuffer          int    `toml:"event_buffer"`
}

func Default() Config {
	return Config{
		DBPath:               defaultDBPath(),
		ScanInterval:         "60s",
		SnoozeMinutes:        15,
		DefaultFilter:        "all",
		DesktopNotifications: false,
		EventBuffer:          64,
	}
}

// Interval parses ScanInterval, falling back to a minute.
func (c Config) Interval() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.ScanInterval))
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("%w: db_path is empty", ErrInvalidConfig)
	}
	if d, err := time.ParseDuration(strings.TrimSpace(c.ScanInterval)); err != nil || d <= 0 {
		return fmt.Errorf("%w: scan_interval %q", ErrInvalidConfig, c.ScanInterval)
	}
	if c.SnoozeMinutes <= 0 {
		return fmt.Errorf("%w: snooze_minutes %d", ErrInvalidConfig, c.SnoozeMinutes)
	}
	if c.EventBuffer <= 0 {
		return fmt.Errorf("%w: event_buffer %d", ErrInvalidConfig, c.EventBuffer)
	}
	return nil
}

// ResolveConfigPath returns explicit when set, else the file under the user
// config directory.
func ResolveConfigPath(explicit string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, appDir, DefaultConfigFileName), nil
}

// LoadOrCreate reads path, writing the defaults there first when the file
// does not exist. Environment overrides are applied on top.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return FromEnv(cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FromEnv applies TASKFLOW_* overrides. Unparseable values are ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKFLOW_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TASKFLOW_SCAN_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ScanInterval = v
		}
	}
	if v, ok := getEnvInt("TASKFLOW_SNOOZE_MINUTES"); ok && v > 0 {
		cfg.SnoozeMinutes = v
	}
	if v, ok := getEnvString("TASKFLOW_DEFAULT_FILTER"); ok {
		cfg.DefaultFilter = v
	}
	if v, ok := getEnvBool("TASKFLOW_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TASKFLOW_EVENT_BUFFER"); ok && v > 0 {
		cfg.EventBuffer = v
	}
	return cfg
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultDBPath() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); dir != "" {
		return filepath.Join(dir, appDir, DefaultDBName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDBName
	}
	return filepath.Join(home, ".local", "share", appDir, DefaultDBName)
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
