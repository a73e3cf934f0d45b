package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("SYNCMENU_DAEMON_SOCKET", "")
	t.Setenv("SYNCMENU_DEBUG", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Label != DefaultLabel {
		t.Fatalf("expected default label %q, got %q", DefaultLabel, cfg.Label)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout %s, got %s", DefaultTimeout, cfg.Timeout)
	}
	if cfg.Socket != "" || cfg.Debug {
		t.Fatalf("unexpected non-default values: %+v", cfg)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	t.Setenv("SYNCMENU_DAEMON_SOCKET", "")
	t.Setenv("SYNCMENU_DEBUG", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "socket: /run/sync.sock\nlabel: Sync\ntimeout: 5s\ndebug: true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Socket != "/run/sync.sock" || cfg.Label != "Sync" || cfg.Timeout != 5*time.Second || !cfg.Debug {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SYNCMENU_DAEMON_SOCKET", "/tmp/override.sock")
	t.Setenv("SYNCMENU_DEBUG", "1")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("socket: /run/sync.sock\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Socket != "/tmp/override.sock" {
		t.Fatalf("expected env socket override, got %q", cfg.Socket)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug enabled from environment")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("label: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("SYNCMENU_DAEMON_SOCKET", "")
	t.Setenv("SYNCMENU_DEBUG", "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &Config{Socket: "/run/a.sock", Label: "Box", Timeout: 2 * time.Second}
	if err := Save(want, path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestPathHonoursOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv("SYNCMENU_CONFIG_PATH", custom)

	got, err := Path()
	if err != nil {
		t.Fatalf("Path returned error: %v", err)
	}
	if got != custom {
		t.Fatalf("expected %q, got %q", custom, got)
	}
}
