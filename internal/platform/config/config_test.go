package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.AdminAddr != ":8080" {
		t.Errorf("expected default admin addr :8080, got %s", cfg.Server.AdminAddr)
	}
	if cfg.Server.WebAddr != ":8081" {
		t.Errorf("expected default web addr :8081, got %s", cfg.Server.WebAddr)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Backend.BaseURL != "" {
		t.Errorf("expected static backend by default, got %q", cfg.Backend.BaseURL)
	}
	if cfg.Admin.Environment != "Development" {
		t.Errorf("unexpected environment: %s", cfg.Admin.Environment)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Errorf("unexpected cache ttl: %s", cfg.Cache.TTL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"CAMPAIGN_ADMIN_ADDR":        ":9000",
		"PORT":                       "7000",
		"CAMPAIGN_READ_TIMEOUT":      "20s",
		"CAMPAIGN_BACKEND_URL":       "https://backend.example.com/v1",
		"CAMPAIGN_BACKEND_TIMEOUT":   "3s",
		"CAMPAIGN_SESSION_HASH_KEY":  "0123456789abcdef0123456789abcdef",
		"CAMPAIGN_SESSION_SECURE":    "yes",
		"CAMPAIGN_SITE_BASE_URL":     "https://example.org/",
		"CAMPAIGN_DEV":               "1",
		"CAMPAIGN_ADMIN_ENVIRONMENT": "Production",
		"LOG_LEVEL":                  "DEBUG",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.AdminAddr != ":9000" {
		t.Errorf("unexpected admin addr: %s", cfg.Server.AdminAddr)
	}
	if cfg.Server.WebAddr != ":7000" {
		t.Errorf("expected PORT fallback for web addr, got %s", cfg.Server.WebAddr)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Backend.BaseURL != "https://backend.example.com/v1" || cfg.Backend.Timeout != 3*time.Second {
		t.Errorf("unexpected backend config: %+v", cfg.Backend)
	}
	if !cfg.Session.CookieSecure {
		t.Errorf("expected secure session cookie")
	}
	if cfg.Web.BaseURL != "https://example.org" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Web.BaseURL)
	}
	if !cfg.Web.DevMode {
		t.Errorf("expected dev mode")
	}
	if cfg.Admin.Environment != "Production" {
		t.Errorf("unexpected environment: %s", cfg.Admin.Environment)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected lower-cased log level, got %s", cfg.LogLevel)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"CAMPAIGN_BACKEND_URL":       "ftp://backend",
		"CAMPAIGN_SESSION_HASH_KEY":  "short",
		"CAMPAIGN_SESSION_BLOCK_KEY": "abc",
		"LOG_LEVEL":                  "verbose",
	}

	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	fields := validationErr.Fields()
	want := []string{"Backend.BaseURL", "Session.HashKey", "Session.BlockKey", "LogLevel"}
	if len(fields) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("expected fields %v, got %v", want, fields)
		}
	}
}

func TestLoadReadsDotEnvWithLowestPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nexport CAMPAIGN_SITE_NAME=\"Jane Doe 2028\"\nCAMPAIGN_ADMIN_ADDR=:7070\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(
		WithEnvFile(path),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{"CAMPAIGN_ADMIN_ADDR": ":6060"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Web.SiteName != "Jane Doe 2028" {
		t.Errorf("expected site name from .env, got %q", cfg.Web.SiteName)
	}
	if cfg.Server.AdminAddr != ":6060" {
		t.Errorf("expected env map to win over .env, got %s", cfg.Server.AdminAddr)
	}
}

func TestLoadIgnoresMissingDotEnv(t *testing.T) {
	_, err := Load(WithEnvFile(filepath.Join(t.TempDir(), "missing.env")), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}
