package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
arch = "i686"
base_url = "https://aur.example.org"

[cache]
backend = "file"
ttl = "1h"

[server]
addr = ":9999"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Arch != "i686" {
		t.Errorf("Arch = %q", cfg.Arch)
	}
	if cfg.BaseURL != "https://aur.example.org" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}

	ttl, err := cfg.cacheTTL()
	if err != nil || ttl != time.Hour {
		t.Errorf("cacheTTL = %v, %v", ttl, err)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `arch = "i686"`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want default memory", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8484" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("want error for explicitly named missing file")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, `arch = [broken`)

	if _, err := loadConfig(path); err == nil {
		t.Error("want error for malformed file")
	}
}

func TestCacheTTL(t *testing.T) {
	cfg := defaultConfig()

	cfg.Cache.TTL = ""
	if ttl, err := cfg.cacheTTL(); err != nil || ttl != 0 {
		t.Errorf("empty ttl = %v, %v", ttl, err)
	}

	cfg.Cache.TTL = "30m"
	if ttl, err := cfg.cacheTTL(); err != nil || ttl != 30*time.Minute {
		t.Errorf("ttl = %v, %v", ttl, err)
	}

	cfg.Cache.TTL = "soon"
	if _, err := cfg.cacheTTL(); err == nil {
		t.Error("want error for unparseable ttl")
	}
}

func TestCacheDirOverride(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.Dir = "/tmp/custom-cache"

	dir, err := cacheDir(cfg)
	if err != nil || dir != "/tmp/custom-cache" {
		t.Errorf("cacheDir = %q, %v", dir, err)
	}
}
