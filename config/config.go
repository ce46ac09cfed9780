// Package config loads the server configuration: an optional env file, an
// optional YAML settings file and the PORT environment variable.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPort is used when PORT is unset or not a valid port number.
const DefaultPort = 4080

// Config holds the railway server configuration. It is built once at
// startup and not modified afterwards.
type Config struct {
	// Port comes from the PORT environment variable only.
	Port    int           `yaml:"-"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	MaxJSONBodyBytes  int64         `yaml:"max_json_body_bytes"`
	TrustedProxies    []string      `yaml:"trusted_proxies"` // CIDRs or IPs allowed to set X-Forwarded-For
	MaxInFlight       int           `yaml:"max_in_flight"`   // 0 disables the cap
	HealthPath        string        `yaml:"health_path"`     // empty disables the probe
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // auto | text | json
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set keep their value. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads settings from a YAML file and the port from PORT.
// If the file doesn't exist, defaults are used and no error is returned.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyDefaults(cfg)
	cfg.Port = ParsePort(os.Getenv("PORT"))

	return cfg, nil
}

// ParsePort returns the port number in s, or DefaultPort when s is empty,
// not an integer or outside 1-65535.
func ParsePort(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return DefaultPort
	}
	return n
}

func defaultConfig() *Config {
	return &Config{
		Port: DefaultPort,
		Server: ServerConfig{
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxJSONBodyBytes:  100 << 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// applyDefaults fills fields an explicit YAML file left empty.
func applyDefaults(cfg *Config) {
	def := defaultConfig()

	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = def.Server.ReadHeaderTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if cfg.Server.MaxJSONBodyBytes == 0 {
		cfg.Server.MaxJSONBodyBytes = def.Server.MaxJSONBodyBytes
	}
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if strings.TrimSpace(cfg.Logging.Format) == "" {
		cfg.Logging.Format = def.Logging.Format
	}
}
