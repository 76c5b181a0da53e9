package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != "localhost:5001" {
		t.Errorf("Expected default addr localhost:5001, got %q", cfg.Server.Addr)
	}
	if cfg.Resolver.CacheTTL != time.Hour {
		t.Errorf("Expected default cache TTL 1h, got %v", cfg.Resolver.CacheTTL)
	}
	if cfg.Resolver.CacheMaxEntries != 10000 {
		t.Errorf("Expected default cache bound 10000, got %d", cfg.Resolver.CacheMaxEntries)
	}
	if cfg.Quote.MinInterval != 3*time.Second {
		t.Errorf("Expected default quote interval 3s, got %v", cfg.Quote.MinInterval)
	}
	if cfg.Quote.Scope != ScopeGlobal {
		t.Errorf("Expected default global scope, got %q", cfg.Quote.Scope)
	}
	if cfg.Refresh.DashboardLimit != 3 || cfg.Refresh.StocksLimit != 5 {
		t.Errorf("Expected refresh limits 3/5, got %d/%d", cfg.Refresh.DashboardLimit, cfg.Refresh.StocksLimit)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("PRICE_CACHE_TTL", "30m")
	t.Setenv("QUOTE_RATE_SCOPE", "ticker")
	t.Setenv("STOCKS_REFRESH_LIMIT", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("Expected addr 0.0.0.0:8080, got %q", cfg.Server.Addr)
	}
	if cfg.Resolver.CacheTTL != 30*time.Minute {
		t.Errorf("Expected TTL 30m, got %v", cfg.Resolver.CacheTTL)
	}
	if cfg.Quote.Scope != ScopeTicker {
		t.Errorf("Expected ticker scope, got %q", cfg.Quote.Scope)
	}
	if cfg.Refresh.StocksLimit != 10 {
		t.Errorf("Expected stocks refresh limit 10, got %d", cfg.Refresh.StocksLimit)
	}
}

func TestLoad_InvalidScope(t *testing.T) {
	t.Setenv("QUOTE_RATE_SCOPE", "per-user")
	if _, err := Load(); err == nil {
		t.Error("Expected an error for an unknown scope value")
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("PRICE_CACHE_MAX_ENTRIES", "lots")
	t.Setenv("QUOTE_MIN_INTERVAL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Resolver.CacheMaxEntries != 10000 {
		t.Errorf("Expected the default bound for a malformed int, got %d", cfg.Resolver.CacheMaxEntries)
	}
	if cfg.Quote.MinInterval != 3*time.Second {
		t.Errorf("Expected the default interval for a malformed duration, got %v", cfg.Quote.MinInterval)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error when collaborator settings are missing")
	}

	cfg.Firebase.APIKey = "key"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error while the database URL is missing")
	}

	cfg.Firebase.DatabaseURL = "https://example.firebaseio.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected a complete config to validate, got %v", err)
	}
}
