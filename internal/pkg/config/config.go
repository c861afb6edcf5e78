package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// minSecretLength is the shortest accepted HS256 signing key.
const minSecretLength = 32

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	// RemoteTimeout bounds each call to the AI and exchange-rate APIs.
	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT, default=10s"`

	Store  StoreConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	AI     AIConfig
	Rates  RatesConfig
	Payout PayoutConfig
}

type StoreConfig struct {
	Backend string `env:"STORE_BACKEND, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rental"`
}

// RedisConfig is optional: an empty Addr disables the exchange-rate cache.
type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR"`
	DB      int           `env:"REDIS_DB,       default=0"`
	RateTTL time.Duration `env:"RATE_CACHE_TTL, default=10m"`
}

// AIConfig without an APIKey leaves every AI feature on its fallback.
type AIConfig struct {
	APIKey       string `env:"GEMINI_API_KEY"`
	ChatModel    string `env:"AI_CHAT_MODEL,    default=gemini-2.0-flash"`
	PricingModel string `env:"AI_PRICING_MODEL, default=gemini-2.0-flash"`
}

type RatesConfig struct {
	APIKey       string  `env:"EXCHANGE_RATE_API_KEY"`
	BaseURL      string  `env:"EXCHANGE_RATE_BASE_URL, default=https://v6.exchangerate-api.com"`
	FallbackRate float64 `env:"FALLBACK_USD_PKR_RATE,  default=278.5"`
}

type PayoutConfig struct {
	IBAN        string `env:"JAZZCASH_IBAN"`
	AccountName string `env:"ACCOUNT_NAME"`
}

// Load reads a .env file when one exists, then the process environment.
// Variables already set in the environment win over .env entries.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if n := len(strings.TrimSpace(c.JWTSecret)); n < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes, got %d", minSecretLength, n)
	}
	switch c.Store.Backend {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreMemory, StoreMongo, c.Store.Backend)
	}
	if c.Rates.FallbackRate <= 0 {
		return fmt.Errorf("FALLBACK_USD_PKR_RATE must be positive")
	}
	return nil
}

// Pretty reports whether logs should go to a human-readable console.
func (c *Config) Pretty() bool {
	return c.Env == "development"
}
