package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg != def {
		t.Errorf("missing file should yield defaults: %+v", cfg)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[layout]
h_spacing = 60.0

[render]
style = "chalkboard"

[server]
addr = ":9000"

[cache]
backend = "redis"
redis_addr = "redis.internal:6379"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.HSpacing != 60 {
		t.Errorf("HSpacing = %v", cfg.Layout.HSpacing)
	}
	// Unset keys keep their defaults
	if cfg.Layout.VSpacing != Default().Layout.VSpacing {
		t.Errorf("VSpacing = %v, want default", cfg.Layout.VSpacing)
	}
	if cfg.Render.Style != "chalkboard" {
		t.Errorf("Style = %q", cfg.Render.Style)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "redis.internal:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[layout\nbroken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed TOML should fail")
	}
}

func TestCacheDirOverride(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/tmp/custom"
	dir, err := cfg.CacheDir()
	if err != nil || dir != "/tmp/custom" {
		t.Errorf("CacheDir = %q, %v", dir, err)
	}
}
