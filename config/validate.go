package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/en9inerd/railway-server/logging"
)

// Validate checks the loaded config for values the server cannot run with.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", cfg.Port)
	}

	s := cfg.Server
	for name, d := range map[string]time.Duration{
		"server.read_header_timeout": s.ReadHeaderTimeout,
		"server.read_timeout":        s.ReadTimeout,
		"server.write_timeout":       s.WriteTimeout,
		"server.idle_timeout":        s.IdleTimeout,
		"server.shutdown_timeout":    s.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if s.MaxJSONBodyBytes < 0 {
		return errors.New("server.max_json_body_bytes must not be negative")
	}

	if s.MaxInFlight < 0 {
		return errors.New("server.max_in_flight must not be negative")
	}
	if s.HealthPath != "" && (!strings.HasPrefix(s.HealthPath, "/") || s.HealthPath == "/") {
		return fmt.Errorf("server.health_path must be an absolute path other than /, got %q", s.HealthPath)
	}

	for _, p := range s.TrustedProxies {
		if err := validateProxy(p); err != nil {
			return err
		}
	}

	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if !logging.ValidFormat(cfg.Logging.Format) {
		return fmt.Errorf("logging.format must be auto, text or json, got %q", cfg.Logging.Format)
	}

	return nil
}

func validateProxy(p string) error {
	p = strings.TrimSpace(p)
	if strings.Contains(p, "/") {
		if _, _, err := net.ParseCIDR(p); err != nil {
			return fmt.Errorf("server.trusted_proxies: invalid CIDR %q", p)
		}
		return nil
	}
	if net.ParseIP(p) == nil {
		return fmt.Errorf("server.trusted_proxies: invalid IP %q", p)
	}
	return nil
}
