package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIBaseURL      = "https://www.zohoapis.com/books/v3"
	DefaultAccountsURL     = "https://accounts.zoho.com"
	DefaultRateLimitPerMin = 100
	DefaultPhoneRegion     = "DE"
)

var ErrMissingCredentials = errors.New("zoho organization id, client id and client secret are required")

// ZohoClientCredentials is the OAuth client registered in the Zoho API console.
type ZohoClientCredentials struct {
	Id     string
	Secret string
}

// ZohoConfig mirrors the `{ orgId, client: { id, secret } }` shape used to build an API client,
// plus the data-center specific endpoints.
type ZohoConfig struct {
	OrgId           string
	Client          ZohoClientCredentials
	APIBaseURL      string
	AccountsURL     string
	RateLimitPerMin int
	RedisAddress    string
	PhoneRegion     string
}

func init() {
	// Load env from .env
	godotenv.Load()
}

// LoadZohoConfig reads the ZOHO_* environment (after .env was loaded) and fills defaults.
func LoadZohoConfig() (ZohoConfig, error) {
	cfg := ZohoConfig{
		OrgId: strings.TrimSpace(os.Getenv("ZOHO_ORGANIZATION_ID")),
		Client: ZohoClientCredentials{
			Id:     strings.TrimSpace(os.Getenv("ZOHO_CLIENT_ID")),
			Secret: strings.TrimSpace(os.Getenv("ZOHO_CLIENT_SECRET")),
		},
		APIBaseURL:      getEnvString("ZOHO_API_BASE_URL", DefaultAPIBaseURL),
		AccountsURL:     getEnvString("ZOHO_ACCOUNTS_URL", DefaultAccountsURL),
		RateLimitPerMin: getEnvInt("ZOHO_RATE_LIMIT_PER_MIN", DefaultRateLimitPerMin),
		RedisAddress:    strings.TrimSpace(os.Getenv("REDIS_ADDRESS")),
		PhoneRegion:     getEnvString("ZOHO_PHONE_REGION", DefaultPhoneRegion),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c ZohoConfig) Validate() error {
	if c.OrgId == "" || c.Client.Id == "" || c.Client.Secret == "" {
		return ErrMissingCredentials
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return strings.TrimRight(v, "/")
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
