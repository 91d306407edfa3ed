package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "expect.yaml"

// Config is the CLI/server configuration (expect.yaml).
type Config struct {
	LogLevel  string      `yaml:"log_level" json:"log_level"`
	LogFormat string      `yaml:"log_format" json:"log_format"`
	Patterns  string      `yaml:"patterns" json:"patterns"` // Optional patterns file layered over the defaults
	Store     StoreConfig `yaml:"store" json:"store"`
	HTTP      HTTPConfig  `yaml:"http" json:"http"`
}

// StoreConfig selects where named schemas live.
type StoreConfig struct {
	Driver string      `yaml:"driver" json:"driver"` // memory, file or redis
	Dir    string      `yaml:"dir" json:"dir"`
	Redis  RedisConfig `yaml:"redis" json:"redis"`
}

// RedisConfig configures the redis driver.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	TTL      string `yaml:"ttl" json:"ttl"` // Go duration, empty for no expiry
}

// HTTPConfig configures `expect serve`.
type HTTPConfig struct {
	Port int `yaml:"port" json:"port"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Store: StoreConfig{
			Driver: "file",
			Dir:    filepath.Join(".expect", "schemas"),
			Redis:  RedisConfig{Addr: "localhost:6379", Prefix: "expect:"},
		},
		HTTP: HTTPConfig{Port: 8080},
	}
}

// Load reads a YAML or JSON configuration file over the defaults. A missing
// file yields the defaults. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, &cfg); err != nil {
			return Config{}, err
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ApplyEnv overrides fields from EXPECT_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("EXPECT_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("EXPECT_LOG_FORMAT"); ok {
		c.LogFormat = v
	}
	if v, ok := lookup("EXPECT_PATTERNS"); ok {
		c.Patterns = v
	}
	if v, ok := lookup("EXPECT_STORE_DRIVER"); ok {
		c.Store.Driver = v
	}
	if v, ok := lookup("EXPECT_STORE_DIR"); ok {
		c.Store.Dir = v
	}
	if v, ok := lookup("EXPECT_REDIS_ADDR"); ok {
		c.Store.Redis.Addr = v
	}
	if v, ok := lookup("EXPECT_REDIS_PASSWORD"); ok {
		c.Store.Redis.Password = v
	}
	if v, ok := lookup("EXPECT_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EXPECT_PORT: %w", err)
		}
		c.HTTP.Port = port
	}
	return nil
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("unknown store driver %q (want memory, file or redis)", c.Store.Driver)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http port %d out of range", c.HTTP.Port)
	}
	return nil
}
