package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" env-default:"8080"`

	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
	RedisAddr   string `env:"REDIS_ADDR" env-default:""`

	NATSURL        string `env:"NATS_URL" env-default:"nats://localhost:4222"`
	MessageSubject string `env:"MESSAGE_SUBJECT" env-default:"chats.*.messages.*"`

	PushGatewayURL string        `env:"PUSH_GATEWAY_URL" env-required:"true"`
	PushAPIToken   string        `env:"PUSH_API_TOKEN" env-required:"true"`
	CallTimeout    time.Duration `env:"CALL_TIMEOUT" env-default:"5s"`

	DirectoryCacheTTL time.Duration `env:"DIRECTORY_CACHE_TTL" env-default:"30s"`

	JWTSecret       string `env:"JWT_SECRET" env-required:"true"`
	StripeSecretKey string `env:"STRIPE_SECRET_KEY" env-default:""`

	OTLPEndpoint string `env:"OTLP_ENDPOINT" env-default:""`

	AuditArchiveBucket   string        `env:"AUDIT_ARCHIVE_BUCKET" env-default:""`
	AuditArchiveRegion   string        `env:"AUDIT_ARCHIVE_REGION" env-default:"us-east-1"`
	AuditArchiveEndpoint string        `env:"AUDIT_ARCHIVE_ENDPOINT" env-default:""`
	AuditRetention       time.Duration `env:"AUDIT_RETENTION" env-default:"720h"`
	AuditArchiveInterval time.Duration `env:"AUDIT_ARCHIVE_INTERVAL" env-default:"1h"`
}

func Load() (*Config, error) {
	var cfg Config

	// Environment variables only; .env files are layered in by main via
	// godotenv before this runs.
	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return &cfg, nil
}
