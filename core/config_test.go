package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, name := range []string{
		"PORT", "TOKEN_SECRET", "COOKIE_SECURE", "COOKIE_SAMESITE",
		"COOKIE_PATH", "CSRF_PROTECT", "LOG_DIR", "DATABASE_URL",
		"POSTGRES_URL", "REDIS_URL", "CONFIG_FILE",
	} {
		t.Setenv(name, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.CookieSameSite != "Strict" {
		t.Fatalf("CookieSameSite = %q, want Strict", cfg.CookieSameSite)
	}
	if cfg.CookiePath != "/" {
		t.Fatalf("CookiePath = %q, want /", cfg.CookiePath)
	}
	if !cfg.CSRFProtect {
		t.Fatalf("CSRFProtect must default to true")
	}
	if cfg.CookieSecure {
		t.Fatalf("CookieSecure must default to false")
	}
	if cfg.TokenSecret != "" {
		t.Fatalf("TokenSecret must default to empty (ephemeral key)")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("COOKIE_SAMESITE", "Lax")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if !cfg.CookieSecure {
		t.Fatalf("CookieSecure = false, want true")
	}
	if cfg.CookieSameSite != "Lax" {
		t.Fatalf("CookieSameSite = %q, want Lax", cfg.CookieSameSite)
	}
}

func TestLoad_ConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"9000\"\ncookie_secure: true\ncsrf_protect: false\nredis_url: redis://example:6379/1\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("PORT", "8080")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Fatalf("Port = %q, want file value 9000", cfg.Port)
	}
	if !cfg.CookieSecure {
		t.Fatalf("CookieSecure must take the file value true")
	}
	if cfg.CSRFProtect {
		t.Fatalf("CSRFProtect must take the file value false")
	}
	if cfg.RedisURL != "redis://example:6379/1" {
		t.Fatalf("RedisURL = %q", cfg.RedisURL)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
