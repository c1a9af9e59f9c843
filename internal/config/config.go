package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration loaded from environment variables.
// Every external credential is required (notEmpty): a missing credential is
// a fatal startup error, detected before any scheduled work runs.
type Config struct {
	// Directories
	DataDir     string `env:"DATA_DIR" envDefault:"./data"`
	ArtifactDir string `env:"ARTIFACT_DIR" envDefault:"./site"`
	BackupDir   string `env:"BACKUP_DIR" envDefault:"./backups"`

	// Content provider
	ContentAPIKey  string        `env:"CONTENT_API_KEY,notEmpty"`
	ContentBaseURL string        `env:"CONTENT_BASE_URL" envDefault:"https://api.openai.com/v1"`
	ContentTimeout time.Duration `env:"CONTENT_TIMEOUT" envDefault:"60s"`

	// Revenue sources
	AmazonAccessKey    string   `env:"AMAZON_ACCESS_KEY,notEmpty"`
	AmazonSecretKey    string   `env:"AMAZON_SECRET_KEY,notEmpty"`
	AmazonAssociateTag string   `env:"AMAZON_ASSOCIATE_TAG,notEmpty"`
	AmazonBaseURL      string   `env:"AMAZON_BASE_URL" envDefault:"https://webservices.amazon.com"`
	PayPalClientID     string   `env:"PAYPAL_CLIENT_ID,notEmpty"`
	PayPalClientSecret string   `env:"PAYPAL_CLIENT_SECRET,notEmpty"`
	PayPalBaseURL      string   `env:"PAYPAL_BASE_URL" envDefault:"https://api.paypal.com"`
	AffiliateAPIKey    string   `env:"AFFILIATE_API_KEY,notEmpty"`
	AffiliateBaseURL   string   `env:"AFFILIATE_BASE_URL" envDefault:"https://api.affiliate-network.example.com"`
	AffiliatePrograms  []string `env:"AFFILIATE_PROGRAMS" envDefault:"best_buy_affiliate,target_affiliate,manufacturer_programs,email_marketing"`

	// Exchange rate service
	RateBaseURL  string  `env:"RATE_BASE_URL" envDefault:"https://api.exchangerate-api.com/v4/latest"`
	FallbackRate float64 `env:"FALLBACK_RATE" envDefault:"12.0"`

	// Payout provider (mobile money)
	MomoAPIKey          string `env:"MOMO_API_KEY,notEmpty"`
	MomoAPISecret       string `env:"MOMO_API_SECRET,notEmpty"`
	MomoSubscriptionKey string `env:"MOMO_SUBSCRIPTION_KEY,notEmpty"`
	MomoBaseURL         string `env:"MOMO_BASE_URL" envDefault:"https://ericssonbasicapi2.azure-api.net"`
	MomoEnvironment     string `env:"MOMO_ENVIRONMENT" envDefault:"live"`

	// Payout policy
	PayoutDestination string  `env:"PAYOUT_DESTINATION,notEmpty"`
	SourceCurrency    string  `env:"SOURCE_CURRENCY" envDefault:"USD"`
	PayoutCurrency    string  `env:"PAYOUT_CURRENCY" envDefault:"GHS"`
	TransferThreshold float64 `env:"TRANSFER_THRESHOLD" envDefault:"10.0"`

	// Timings
	VerifyDelay  time.Duration `env:"VERIFY_DELAY" envDefault:"5s"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"1m"`
	FaultBackoff time.Duration `env:"FAULT_BACKOFF" envDefault:"5m"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	// Outbound API rate limit, requests per second per API
	APIRateLimit int `env:"API_RATE_LIMIT" envDefault:"5"`

	// Admin endpoint
	AdminAddr       string        `env:"ADMIN_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Publication hooks; empty REDIS_ADDR disables the Redis hook
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	PublishChannel string `env:"PUBLISH_CHANNEL" envDefault:"site.published"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
