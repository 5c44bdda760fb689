// Package config loads the treetrace configuration file.
//
// The file is TOML at ~/.config/treetrace/config.toml. Every setting has a
// sane default, so a missing file is not an error; CLI flags override file
// values, and file values override defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treetrace/pkg/layout"
	"github.com/matzehuels/treetrace/pkg/render/svg"
)

// Config holds all file-configurable settings.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig mirrors the layout engine geometry options.
type LayoutConfig struct {
	HSpacing   float64 `toml:"h_spacing"`
	VSpacing   float64 `toml:"v_spacing"`
	Padding    float64 `toml:"padding"`
	NodeRadius float64 `toml:"node_radius"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Style   string `toml:"style"`
	VizType string `toml:"viz_type"`
}

// ServerConfig holds serve command settings.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	MongoURI string `toml:"mongo_uri"` // empty: file-backed gallery
	MongoDB  string `toml:"mongo_db"`
}

// CacheConfig holds cache backend settings.
type CacheConfig struct {
	Backend   string `toml:"backend"` // file, redis, none
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			HSpacing:   layout.DefaultHSpacing,
			VSpacing:   layout.DefaultVSpacing,
			Padding:    layout.DefaultPadding,
			NodeRadius: layout.DefaultNodeRadius,
		},
		Render: RenderConfig{
			Style:   svg.StyleSimple,
			VizType: "canvas",
		},
		Server: ServerConfig{
			Addr:    ":8080",
			MongoDB: "treetrace",
		},
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "treetrace", "config.toml"), nil
}

// Load reads the config file at path, layering it over the defaults.
// A missing file returns the defaults unchanged. If path is empty, the
// standard location is used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// CacheDir returns the configured cache directory, defaulting to
// ~/.cache/treetrace.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return filepath.Join(base, "treetrace"), nil
}
