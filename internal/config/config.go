// Package config loads environment configuration for cursorctl.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/frudas24/cursorctl/internal/display"
)

const (
	defaultBackend = "robotgo"
	defaultBounds  = display.PolicyWarn
)

// Config holds runtime configuration values. Constructed once per
// invocation and read-only thereafter.
type Config struct {
	Backend string
	Bounds  display.Policy
	Quiet   bool
}

// Load reads configuration from a .env file in the working directory and
// CURSORCTL_* environment variables. A missing .env is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Backend: defaultBackend,
		Bounds:  defaultBounds,
	}

	cfg.Backend = envString("CURSORCTL_BACKEND", cfg.Backend)
	switch cfg.Backend {
	case "robotgo", "sendinput":
	default:
		return Config{}, fmt.Errorf("CURSORCTL_BACKEND must be robotgo or sendinput, got %q", cfg.Backend)
	}

	bounds := envString("CURSORCTL_BOUNDS", string(cfg.Bounds))
	policy, err := display.ParsePolicy(bounds)
	if err != nil {
		return Config{}, fmt.Errorf("CURSORCTL_BOUNDS: %w", err)
	}
	cfg.Bounds = policy

	cfg.Quiet = envBool("CURSORCTL_QUIET", false)
	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
