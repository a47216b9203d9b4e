package config

import (
	"errors"
	"testing"
)

func TestLoadZohoConfig_Defaults(t *testing.T) {
	t.Setenv("ZOHO_ORGANIZATION_ID", "60001")
	t.Setenv("ZOHO_CLIENT_ID", "1000.abc")
	t.Setenv("ZOHO_CLIENT_SECRET", "s3cret")
	t.Setenv("ZOHO_API_BASE_URL", "")
	t.Setenv("ZOHO_ACCOUNTS_URL", "https://accounts.zoho.eu/")
	t.Setenv("ZOHO_RATE_LIMIT_PER_MIN", "not-a-number")

	cfg, err := LoadZohoConfig()
	if err != nil {
		t.Fatalf("LoadZohoConfig error: %v", err)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("expected default api url, got %s", cfg.APIBaseURL)
	}
	if cfg.AccountsURL != "https://accounts.zoho.eu" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.AccountsURL)
	}
	if cfg.RateLimitPerMin != DefaultRateLimitPerMin {
		t.Fatalf("expected default rate limit, got %d", cfg.RateLimitPerMin)
	}
	if cfg.Client.Id != "1000.abc" || cfg.Client.Secret != "s3cret" {
		t.Fatalf("unexpected client credentials: %+v", cfg.Client)
	}
}

func TestLoadZohoConfig_MissingCredentials(t *testing.T) {
	t.Setenv("ZOHO_ORGANIZATION_ID", "60001")
	t.Setenv("ZOHO_CLIENT_ID", "")
	t.Setenv("ZOHO_CLIENT_SECRET", "s3cret")

	if _, err := LoadZohoConfig(); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}
