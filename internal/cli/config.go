package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the CLI configuration, loaded from a TOML file with flags
// layered on top.
type Config struct {
	Arch      string       `toml:"arch"`       // "x86_64" or "i686"
	BaseURL   string       `toml:"base_url"`   // AUR endpoint override
	IndexFile string       `toml:"index_file"` // persisted name index
	Cache     CacheConfig  `toml:"cache"`
	Redis     RedisConfig  `toml:"redis"`
	Mongo     MongoConfig  `toml:"mongo"`
	Server    ServerConfig `toml:"server"`
}

// CacheConfig selects and tunes the record cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"` // memory, file, redis, mongo, none
	Dir     string `toml:"dir"`     // file backend directory
	TTL     string `toml:"ttl"`     // e.g. "24h"; empty means no expiry
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo cache backend.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() Config {
	return Config{
		Arch: "x86_64",
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     "24h",
		},
		Server: ServerConfig{Addr: ":8484"},
	}
}

// defaultConfigPath returns ~/.config/aurinfo/config.toml.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the directory used by the file cache backend.
func cacheDir(cfg Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadConfig reads the TOML config at path, or the default location when
// path is empty. A missing file yields the defaults; a malformed file is
// an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// cacheTTL parses the configured TTL, treating empty as no expiry.
func (c Config) cacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache ttl %q: %w", c.Cache.TTL, err)
	}
	return ttl, nil
}
