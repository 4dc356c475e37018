package config

import (
	"errors"
	"os"
	"testing"
)

func testConfig() *Config {
	return &Config{
		DNI:        "12345678A",
		Password:   "secret",
		CalendarID: "primary",
		Timezone:   "Europe/Madrid",
	}
}

func TestSaveAndLoad(t *testing.T) {
	m, err := NewManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerAt failed: %v", err)
	}

	if m.IsConfigured() {
		t.Error("fresh directory should not be configured")
	}
	if _, err := m.Load(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}

	if err := m.Save(testConfig()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !m.IsConfigured() {
		t.Error("expected IsConfigured after Save")
	}

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DNI != "12345678A" || cfg.Password != "secret" || cfg.CalendarID != "primary" {
		t.Errorf("round-trip mismatch: %+v", cfg)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}

	info, err := os.Stat(m.ConfigPath())
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file permissions = %o, expected 600", perm)
	}
}

func TestSaveRejectsIncomplete(t *testing.T) {
	m, err := NewManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerAt failed: %v", err)
	}

	cfg := testConfig()
	cfg.DNI = ""
	if err := m.Save(cfg); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured for missing dni, got %v", err)
	}
}

func TestLocation(t *testing.T) {
	cfg := testConfig()
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc.String() != "Europe/Madrid" {
		t.Errorf("expected Europe/Madrid, got %s", loc)
	}

	cfg.Timezone = "Not/AZone"
	if _, err := cfg.Location(); err == nil {
		t.Error("expected error for invalid timezone")
	}

	cfg.Timezone = ""
	loc, err = cfg.Location()
	if err != nil {
		t.Fatalf("Location with empty timezone failed: %v", err)
	}
	if loc.String() != DefaultTimezone {
		t.Errorf("expected default timezone, got %s", loc)
	}
}

func TestClean(t *testing.T) {
	m, err := NewManagerAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerAt failed: %v", err)
	}
	if err := m.Save(testConfig()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(m.TokenPath(), []byte("{}"), 0o600); err != nil {
		t.Fatalf("writing token: %v", err)
	}

	removed, err := m.Clean()
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if len(removed) != 2 {
		t.Errorf("expected 2 removed paths, got %d", len(removed))
	}
	if m.IsConfigured() {
		t.Error("expected config removed")
	}

	// Cleaning again is a no-op.
	removed, err = m.Clean()
	if err != nil {
		t.Fatalf("second Clean failed: %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("expected nothing removed, got %v", removed)
	}
}
