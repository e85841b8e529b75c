package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Lives != 3 {
		t.Errorf("Expected default lives 3, got %d", cfg.Lives)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"lives": 5, "signal": {"dash_longer_than": 0.25}, "travel": {"min_seconds": 4}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Lives != 5 || cfg.Signal.DashLongerThan != 0.25 || cfg.Travel.MinSeconds != 4 {
		t.Errorf("Expected overrides applied, got %+v", cfg)
	}
	if cfg.Travel.BaseSeconds != 30 || cfg.LevelsPerMap != 10 {
		t.Error("Expected untouched fields to keep defaults")
	}
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	chdir(t, t.TempDir()) // no stray .env
	t.Setenv("MVH_DATA_DIR", "/srv/maps")
	t.Setenv("MVH_SAVE_BACKEND", "sqlite")
	t.Setenv("MVH_SEED", "42")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.DataDir != "/srv/maps" || cfg.SaveBackend != "sqlite" || cfg.Seed != 42 {
		t.Errorf("Expected env overrides, got %+v", cfg)
	}

	t.Setenv("MVH_SEED", "many")
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("Expected error for bad seed")
	}
}

func TestApplyEnvDotFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MVH_LOG_LEVEL=debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("MVH_LOG_LEVEL", "")
	os.Unsetenv("MVH_LOG_LEVEL")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level from .env, got '%s'", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Signal.DashLongerThan = -1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("Expected ErrInvalidThreshold, got %v", err)
	}

	cfg = Default()
	cfg.Signal.DotLongerThan = 0.5
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("Expected ErrInvalidThreshold for inverted thresholds, got %v", err)
	}

	cfg = Default()
	cfg.SaveBackend = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestMapIndex(t *testing.T) {
	cfg := Default()
	if cfg.MapIndex(8) != 0 || cfg.MapIndex(10) != 1 {
		t.Error("Expected ten levels per map")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
