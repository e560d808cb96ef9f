package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends accepted by SITEGEN_STORE.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Rate-limit stores accepted by SITEGEN_RATELIMIT_STORE.
const (
	RateLimitMemory = "memory"
	RateLimitRedis  = "redis"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment string
	HTTPPort    string
	Debug       bool
	LogDir      string

	// AdminPassword is the shared preview-manager secret; plain text or a bcrypt hash.
	AdminPassword string
	// AuthSecret signs session tokens and CSRF tokens.
	AuthSecret string

	Store          string
	PreviewsDir    string
	DatabasePath   string
	Redis          RedisConfig
	RateLimitStore string

	TemplatesDir      string
	StrictTemplates   bool
	PreserveCreatedAt bool
	CSRFEnabled       bool

	NotifyURLs    []string
	PublicBaseURL string
	// TrustedProxies lists proxy IPs/CIDRs whose X-Forwarded-For is honoured.
	// Empty means the client IP is always the socket peer.
	TrustedProxies []string
}

// RedisConfig is shared by the redis preview store and the redis rate-limit store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ConfigError reports a required setting that is missing or invalid.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("config: %s is not configured", e.Key)
	}
	return fmt.Sprintf("config: %s %s", e.Key, e.Reason)
}

// Load reads a .env file when present, then env vars, falling back to defaults so the
// server can boot without a preview-manager secret (privileged routes then answer 500).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:       getEnv("SITEGEN_ENV", "development"),
		HTTPPort:          getEnv("SITEGEN_HTTP_PORT", "8080"),
		Debug:             getEnvBool("SITEGEN_DEBUG", false),
		LogDir:            getEnv("SITEGEN_LOG_DIR", filepath.Join("data", "logs")),
		AdminPassword:     os.Getenv("PREVIEW_MANAGER_PASSWORD"),
		AuthSecret:        os.Getenv("AUTH_SECRET"),
		Store:             strings.ToLower(getEnv("SITEGEN_STORE", StoreFile)),
		PreviewsDir:       getEnv("SITEGEN_PREVIEWS_DIR", filepath.Join("data", "previews")),
		DatabasePath:      getEnv("SITEGEN_DB_PATH", filepath.Join("data", "sitegen.db")),
		RateLimitStore:    strings.ToLower(getEnv("SITEGEN_RATELIMIT_STORE", RateLimitMemory)),
		TemplatesDir:      os.Getenv("SITEGEN_TEMPLATES_DIR"),
		StrictTemplates:   getEnvBool("SITEGEN_STRICT_TEMPLATES", false),
		PreserveCreatedAt: getEnvBool("SITEGEN_PRESERVE_CREATED_AT", false),
		CSRFEnabled:       getEnvBool("SITEGEN_CSRF_ENABLED", false),
		NotifyURLs:        splitList(os.Getenv("SITEGEN_NOTIFY_URLS")),
		PublicBaseURL:     strings.TrimRight(os.Getenv("SITEGEN_PUBLIC_BASE_URL"), "/"),
		TrustedProxies:    splitList(os.Getenv("SITEGEN_TRUSTED_PROXIES")),
		Redis: RedisConfig{
			Addr:     os.Getenv("SITEGEN_REDIS_ADDR"),
			Password: os.Getenv("SITEGEN_REDIS_PASSWORD"),
			DB:       getEnvInt("SITEGEN_REDIS_DB", 0),
		},
	}

	switch cfg.Store {
	case StoreFile, StoreRedis, StoreSQLite:
	default:
		return Config{}, &ConfigError{Key: "SITEGEN_STORE", Reason: fmt.Sprintf("has unsupported value %q", cfg.Store)}
	}
	switch cfg.RateLimitStore {
	case RateLimitMemory, RateLimitRedis:
	default:
		return Config{}, &ConfigError{Key: "SITEGEN_RATELIMIT_STORE", Reason: fmt.Sprintf("has unsupported value %q", cfg.RateLimitStore)}
	}
	if (cfg.Store == StoreRedis || cfg.RateLimitStore == RateLimitRedis) && cfg.Redis.Addr == "" {
		return Config{}, &ConfigError{Key: "SITEGEN_REDIS_ADDR", Reason: "is required by the redis backend"}
	}

	if cfg.Store == StoreSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
			return Config{}, fmt.Errorf("ensure data directory: %w", err)
		}
	}

	return cfg, nil
}

// IsProduction reports whether cookies should carry the Secure flag.
func (c Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// Validate lists required secrets that are missing. The server still starts so that
// public pages keep working; login answers 500 until the secrets are provided.
func (c Config) Validate() []error {
	var errs []error
	if c.AdminPassword == "" {
		errs = append(errs, &ConfigError{Key: "PREVIEW_MANAGER_PASSWORD"})
	}
	if c.AuthSecret == "" {
		errs = append(errs, &ConfigError{Key: "AUTH_SECRET"})
	}
	return errs
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
