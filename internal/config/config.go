package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppPort string `envconfig:"APP_PORT" default:"8001"`

	DBUser         string `envconfig:"DB_USER" default:"postgres"`
	DBPassword     string `envconfig:"DB_PASSWORD"`
	DBHost         string `envconfig:"DB_HOST" default:"localhost"`
	DBPort         string `envconfig:"DB_PORT" default:"5432"`
	DBName         string `envconfig:"DB_NAME" default:"store_rating_db"`
	DBSSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`

	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL     time.Duration `envconfig:"JWT_TTL" default:"24h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`

	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	SelfRegisterRoles []string      `envconfig:"SELF_REGISTER_ROLES" default:"user,store_owner"`
	CORSOrigins       string        `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	NatsURL      string `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	OtelEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"jaeger:4317"`

	LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"INFO"`
}

// Load reads an optional dotenv file and then the process environment.
func Load(envFile string) (Config, error) {
	var c Config

	if envFile != "" {
		// Missing file is fine, Docker passes the environment directly.
		_ = godotenv.Load(envFile)
	}

	if err := envconfig.Process("", &c); err != nil {
		return c, fmt.Errorf("load config: %w", err)
	}

	return c, nil
}

// DatabaseURL escapes the credentials so any password survives the round trip.
func (c Config) DatabaseURL() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return dsn.String()
}
