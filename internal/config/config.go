package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Firebase FirebaseConfig
	Resolver ResolverConfig
	Quote    QuoteConfig
	Refresh  RefreshConfig
	Session  SessionConfig
	CORS     CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// FirebaseConfig holds the identity + hierarchical-store collaborator settings.
type FirebaseConfig struct {
	APIKey      string
	AuthDomain  string
	ProjectID   string
	DatabaseURL string
}

// ResolverConfig tunes the price resolver cache and upstream throttle.
type ResolverConfig struct {
	CacheTTL          time.Duration
	CacheMaxEntries   int
	RequestsPerMinute int
	Burst             int
}

// QuoteScope selects whether the soft quote window applies process-wide or
// per ticker. The original deployment used a single process-wide timestamp;
// the intent was ambiguous, so the scope is a policy knob rather than a
// hardcoded choice.
type QuoteScope string

const (
	ScopeGlobal QuoteScope = "global"
	ScopeTicker QuoteScope = "ticker"
)

// QuoteConfig governs the soft rate-limit window on the quote endpoint.
type QuoteConfig struct {
	MinInterval time.Duration
	Scope       QuoteScope
}

// RefreshConfig caps how many holdings get a live price lookup per request.
// Remaining holdings are served from their stored values.
type RefreshConfig struct {
	DashboardLimit int
	StocksLimit    int
}

// SessionConfig holds the fernet key used to encrypt flash-message cookies.
type SessionConfig struct {
	FernetKey string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Firebase: FirebaseConfig{
			APIKey:      os.Getenv("FIREBASE_API_KEY"),
			AuthDomain:  os.Getenv("FIREBASE_AUTH_DOMAIN"),
			ProjectID:   os.Getenv("FIREBASE_PROJECT_ID"),
			DatabaseURL: os.Getenv("FIREBASE_DATABASE_URL"),
		},
		Resolver: ResolverConfig{
			CacheTTL:          getEnvDuration("PRICE_CACHE_TTL", time.Hour),
			CacheMaxEntries:   getEnvInt("PRICE_CACHE_MAX_ENTRIES", 10000),
			RequestsPerMinute: getEnvInt("UPSTREAM_MAX_RPM", 30),
			Burst:             getEnvInt("UPSTREAM_BURST", 1),
		},
		Quote: QuoteConfig{
			MinInterval: getEnvDuration("QUOTE_MIN_INTERVAL", 3*time.Second),
			Scope:       QuoteScope(getEnv("QUOTE_RATE_SCOPE", string(ScopeGlobal))),
		},
		Refresh: RefreshConfig{
			DashboardLimit: getEnvInt("DASHBOARD_REFRESH_LIMIT", 3),
			StocksLimit:    getEnvInt("STOCKS_REFRESH_LIMIT", 5),
		},
		Session: SessionConfig{
			FernetKey: os.Getenv("SESSION_FERNET_KEY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if config.Quote.Scope != ScopeGlobal && config.Quote.Scope != ScopeTicker {
		return nil, fmt.Errorf("invalid QUOTE_RATE_SCOPE %q: must be %q or %q",
			config.Quote.Scope, ScopeGlobal, ScopeTicker)
	}

	return config, nil
}

// Validate checks that the collaborator settings required at runtime are
// present. Kept separate from Load so tests can build partial configs.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"FIREBASE_API_KEY", c.Firebase.APIKey},
		{"FIREBASE_DATABASE_URL", c.Firebase.DatabaseURL},
	}
	for _, v := range required {
		if v.value == "" {
			return fmt.Errorf("missing required environment variable: %s", v.name)
		}
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvDuration gets a duration environment variable (time.ParseDuration
// syntax, e.g. "1h" or "3s") or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
