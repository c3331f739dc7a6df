// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Database
	DBPath string

	// Logging
	LogLevel string

	// Web push (VAPID). Both keys empty disables push entirely.
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string

	// In-process sweep scheduler. Zero disables the loop; the HTTP
	// trigger endpoint keeps working either way.
	SweepInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:            getEnv("CENTAVO_PORT", "8080"),
		DBPath:          getEnv("CENTAVO_DB_PATH", "centavo.db"),
		LogLevel:        getEnv("CENTAVO_LOG_LEVEL", "info"),
		VAPIDPublicKey:  getEnv("CENTAVO_VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnv("CENTAVO_VAPID_PRIVATE_KEY", ""),
		VAPIDSubject:    getEnv("CENTAVO_VAPID_SUBJECT", "mailto:admin@localhost"),
		SweepInterval:   getEnvDuration("CENTAVO_SWEEP_INTERVAL", 24*time.Hour),
	}
}

// Validate returns an error describing every invalid setting.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}

	// VAPID keys come as a pair; one without the other is a misconfiguration.
	if (c.VAPIDPublicKey == "") != (c.VAPIDPrivateKey == "") {
		problems = append(problems, "VAPID public and private keys must be set together")
	}
	if c.PushConfigured() && !strings.Contains(c.VAPIDSubject, ":") {
		problems = append(problems, fmt.Sprintf("invalid VAPID subject %q: must be a mailto: or https: URI", c.VAPIDSubject))
	}

	if c.SweepInterval < 0 {
		problems = append(problems, "sweep interval cannot be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// PushConfigured reports whether both VAPID keys are present.
func (c *Config) PushConfigured() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
