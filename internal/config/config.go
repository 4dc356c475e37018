// Package config manages the campsched configuration file and the paths
// of the credential artifacts that live beside it.
//
// Configuration is a YAML file under the user config directory
// (e.g. ~/.config/campsched/config.yaml), written with 0600 permissions
// since it holds the university credentials. The Google OAuth token and
// client secret are stored as sibling files in the same directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDirName       = "campsched"
	configFileName   = "config.yaml"
	tokenFileName    = "token.json"
	secretFileName   = "client_secret.json"
	exportFileName   = "schedule.ics"

	// DefaultBaseURL is the virtual secretary entry point.
	DefaultBaseURL = "https://secretariavirtual.upf.edu"

	// DefaultTimezone is the IANA zone lectures are scheduled in.
	DefaultTimezone = "Europe/Madrid"
)

// ErrNotConfigured reports a missing or incomplete configuration file.
// The CLI translates it into a "run campsched configure first" hint.
var ErrNotConfigured = errors.New("config: not configured")

// Config is the persisted campsched configuration.
type Config struct {
	// DNI is the university login identifier.
	DNI string `yaml:"dni"`

	// Password is the university login password. Stored in the 0600
	// config file; campsched never sends it anywhere but the login form.
	Password string `yaml:"password"`

	// CalendarID is the destination Google calendar.
	CalendarID string `yaml:"calendar_id"`

	// Timezone is the IANA timezone of the scraped schedule.
	Timezone string `yaml:"timezone"`

	// BaseURL overrides the virtual secretary URL. Mainly for tests.
	BaseURL string `yaml:"base_url,omitempty"`

	// ShowBrowser disables headless mode so the scraped session is
	// visible. Useful when the site layout changes.
	ShowBrowser bool `yaml:"show_browser,omitempty"`
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := c.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// validate checks the fields every command depends on.
func (c *Config) validate() error {
	if c.DNI == "" {
		return fmt.Errorf("%w: missing dni", ErrNotConfigured)
	}
	if c.CalendarID == "" {
		return fmt.Errorf("%w: missing calendar_id", ErrNotConfigured)
	}
	return nil
}

// Manager locates, loads, and saves the configuration directory contents.
type Manager struct {
	dir string
}

// NewManager creates a Manager rooted at the user config directory,
// creating the directory on first use.
func NewManager() (*Manager, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("config: locating user config dir: %w", err)
	}
	return NewManagerAt(filepath.Join(base, appDirName))
}

// NewManagerAt creates a Manager rooted at an explicit directory.
func NewManagerAt(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("config: creating config dir: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the configuration directory.
func (m *Manager) Dir() string { return m.dir }

// ConfigPath returns the config file path.
func (m *Manager) ConfigPath() string { return filepath.Join(m.dir, configFileName) }

// TokenPath returns the cached Google OAuth token path.
func (m *Manager) TokenPath() string { return filepath.Join(m.dir, tokenFileName) }

// ClientSecretPath returns the Google OAuth client secret path.
func (m *Manager) ClientSecretPath() string { return filepath.Join(m.dir, secretFileName) }

// DefaultExportPath returns the default .ics export destination.
func (m *Manager) DefaultExportPath() string { return filepath.Join(m.dir, exportFileName) }

// IsConfigured reports whether a config file exists.
func (m *Manager) IsConfigured() bool {
	_, err := os.Stat(m.ConfigPath())
	return err == nil
}

// Load reads and validates the configuration.
func (m *Manager) Load() (*Config, error) {
	data, err := os.ReadFile(m.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("config: reading %s: %w", m.ConfigPath(), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", m.ConfigPath(), err)
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration with 0600 permissions.
func (m *Manager) Save(cfg *Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if err := os.WriteFile(m.ConfigPath(), data, 0o600); err != nil {
		return fmt.Errorf("config: writing %s: %w", m.ConfigPath(), err)
	}
	return nil
}

// Clean removes the stored configuration and OAuth token. It returns the
// paths actually removed; missing files are not errors.
func (m *Manager) Clean() ([]string, error) {
	var removed []string
	for _, path := range []string{m.ConfigPath(), m.TokenPath()} {
		err := os.Remove(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("config: removing %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}
