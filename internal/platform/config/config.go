package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultEnvFile          = ".env"
	defaultAdminAddr        = ":8080"
	defaultWebAddr          = ":8081"
	defaultReadTimeout      = 15 * time.Second
	defaultWriteTimeout     = 30 * time.Second
	defaultIdleTimeout      = 120 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLogLevel         = "info"
	defaultEnvironment      = "Development"
	defaultBackendTimeout   = 10 * time.Second
	defaultSessionIdle      = 30 * time.Minute
	defaultSessionLifetime  = 12 * time.Hour
	defaultCacheTTL         = 30 * time.Second
	defaultSiteName         = "Campaign"
	defaultContentDirectory = ""

	minSessionHashKeyLength = 32
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Admin    AdminConfig
	Web      WebConfig
	Backend  BackendConfig
	Firebase FirebaseConfig
	Session  SessionConfig
	Cache    CacheConfig
	LogLevel string
}

// ServerConfig configures HTTP server parameters shared by both binaries.
type ServerConfig struct {
	AdminAddr       string
	WebAddr         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// AdminConfig holds back office options.
type AdminConfig struct {
	Environment      string
	CSRFCookieSecure bool
}

// WebConfig holds public site options.
type WebConfig struct {
	SiteName   string
	BaseURL    string
	ContentDir string
	DevMode    bool
}

// BackendConfig points at the REST backend that owns photos, videos, press and messages.
// An empty BaseURL selects the in-memory static backend.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// FirebaseConfig stores the project used to verify staff ID tokens.
type FirebaseConfig struct {
	ProjectID string
}

// SessionConfig controls the admin session cookie.
type SessionConfig struct {
	HashKey      string
	BlockKey     string
	CookieSecure bool
	IdleTimeout  time.Duration
	Lifetime     time.Duration
}

// CacheConfig controls the backend query cache.
type CacheConfig struct {
	TTL time.Duration
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, environment variables
// and explicit maps, in increasing order of precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			AdminAddr:       stringWithDefault(lookup, "CAMPAIGN_ADMIN_ADDR", defaultAdminAddr),
			WebAddr:         webAddr(lookup),
			ReadTimeout:     durationWithDefault(lookup, "CAMPAIGN_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "CAMPAIGN_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "CAMPAIGN_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "CAMPAIGN_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Admin: AdminConfig{
			Environment:      stringWithDefault(lookup, "CAMPAIGN_ADMIN_ENVIRONMENT", defaultEnvironment),
			CSRFCookieSecure: boolWithDefault(lookup, "CAMPAIGN_ADMIN_CSRF_SECURE", false),
		},
		Web: WebConfig{
			SiteName:   stringWithDefault(lookup, "CAMPAIGN_SITE_NAME", defaultSiteName),
			BaseURL:    strings.TrimRight(stringWithDefault(lookup, "CAMPAIGN_SITE_BASE_URL", ""), "/"),
			ContentDir: stringWithDefault(lookup, "CAMPAIGN_CONTENT_DIR", defaultContentDirectory),
			DevMode:    boolWithDefault(lookup, "CAMPAIGN_DEV", false),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimSpace(stringWithDefault(lookup, "CAMPAIGN_BACKEND_URL", "")),
			Timeout: durationWithDefault(lookup, "CAMPAIGN_BACKEND_TIMEOUT", defaultBackendTimeout),
		},
		Firebase: FirebaseConfig{
			ProjectID: stringWithDefault(lookup, "FIREBASE_PROJECT_ID", ""),
		},
		Session: SessionConfig{
			HashKey:      stringWithDefault(lookup, "CAMPAIGN_SESSION_HASH_KEY", ""),
			BlockKey:     stringWithDefault(lookup, "CAMPAIGN_SESSION_BLOCK_KEY", ""),
			CookieSecure: boolWithDefault(lookup, "CAMPAIGN_SESSION_SECURE", false),
			IdleTimeout:  durationWithDefault(lookup, "CAMPAIGN_SESSION_IDLE_TIMEOUT", defaultSessionIdle),
			Lifetime:     durationWithDefault(lookup, "CAMPAIGN_SESSION_LIFETIME", defaultSessionLifetime),
		},
		Cache: CacheConfig{
			TTL: durationWithDefault(lookup, "CAMPAIGN_CACHE_TTL", defaultCacheTTL),
		},
		LogLevel: strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// webAddr prefers CAMPAIGN_WEB_ADDR, then Cloud Run's PORT.
func webAddr(lookup func(string) (string, bool)) string {
	if addr := stringWithDefault(lookup, "CAMPAIGN_WEB_ADDR", ""); addr != "" {
		return addr
	}
	if port := stringWithDefault(lookup, "PORT", ""); port != "" {
		return ":" + port
	}
	return defaultWebAddr
}

func validateConfig(cfg Config) error {
	var invalid []string

	if strings.TrimSpace(cfg.Server.AdminAddr) == "" {
		invalid = append(invalid, "Server.AdminAddr")
	}
	if cfg.Server.ReadTimeout <= 0 {
		invalid = append(invalid, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		invalid = append(invalid, "Server.WriteTimeout")
	}
	if cfg.Backend.BaseURL != "" {
		u, err := url.Parse(cfg.Backend.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			invalid = append(invalid, "Backend.BaseURL")
		}
	}
	if cfg.Backend.Timeout <= 0 {
		invalid = append(invalid, "Backend.Timeout")
	}
	if cfg.Session.HashKey != "" && len(cfg.Session.HashKey) < minSessionHashKeyLength {
		invalid = append(invalid, "Session.HashKey")
	}
	if n := len(cfg.Session.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		invalid = append(invalid, "Session.BlockKey")
	}
	if cfg.Cache.TTL < 0 {
		invalid = append(invalid, "Cache.TTL")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		invalid = append(invalid, "LogLevel")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
