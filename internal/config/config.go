package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration for the discipled service.
type Config struct {
	Addr            string   `env:"ADDR,default=:8080"`
	DBDSN           string   `env:"DB_DSN,required"`
	NATSURL         string   `env:"NATS_URL"`
	OTLPEndpoint    string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	AllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`
	TokenCodeLength int      `env:"TOKEN_CODE_LENGTH,default=8"`
	PublicRateLimit int      `env:"PUBLIC_RATE_LIMIT,default=30"`
	TelegramToken   string   `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID  int64    `env:"TELEGRAM_CHAT_ID"`
	SeedLookups     bool     `env:"SEED_LOOKUPS,default=true"`
}

// Load returns a Config populated from environment variables.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values that would produce unusable token codes or
// an unprotected public endpoint.
func (c Config) Validate() error {
	if c.TokenCodeLength < 6 || c.TokenCodeLength > 32 {
		return fmt.Errorf("TOKEN_CODE_LENGTH must be between 6 and 32, got %d", c.TokenCodeLength)
	}
	if c.PublicRateLimit < 1 {
		return fmt.Errorf("PUBLIC_RATE_LIMIT must be positive, got %d", c.PublicRateLimit)
	}
	return nil
}
