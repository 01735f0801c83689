package config

import (
	"testing"

	"github.com/frudas24/cursorctl/internal/display"
)

// TestLoad_Defaults verifies the fallback configuration.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CURSORCTL_BACKEND", "")
	t.Setenv("CURSORCTL_BOUNDS", "")
	t.Setenv("CURSORCTL_QUIET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "robotgo" || cfg.Bounds != display.PolicyWarn || cfg.Quiet {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

// TestLoad_Overrides verifies environment variables win over defaults.
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CURSORCTL_BACKEND", "sendinput")
	t.Setenv("CURSORCTL_BOUNDS", "strict")
	t.Setenv("CURSORCTL_QUIET", "yes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "sendinput" || cfg.Bounds != display.PolicyStrict || !cfg.Quiet {
		t.Fatalf("unexpected config: %#v", cfg)
	}
}

// TestLoad_InvalidValues verifies bad values fail instead of silently
// falling back.
func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("CURSORCTL_BACKEND", "telekinesis")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad backend")
	}

	t.Setenv("CURSORCTL_BACKEND", "robotgo")
	t.Setenv("CURSORCTL_BOUNDS", "loose")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad bounds policy")
	}
}

// TestEnvBool verifies accepted boolean spellings.
func TestEnvBool(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", "on"} {
		t.Setenv("CURSORCTL_TEST_BOOL", v)
		if !envBool("CURSORCTL_TEST_BOOL", false) {
			t.Fatalf("%q should read as true", v)
		}
	}
	for _, v := range []string{"0", "false", "NO", "off"} {
		t.Setenv("CURSORCTL_TEST_BOOL", v)
		if envBool("CURSORCTL_TEST_BOOL", true) {
			t.Fatalf("%q should read as false", v)
		}
	}
	t.Setenv("CURSORCTL_TEST_BOOL", "maybe")
	if !envBool("CURSORCTL_TEST_BOOL", true) {
		t.Fatalf("unparseable value should keep the default")
	}
}
