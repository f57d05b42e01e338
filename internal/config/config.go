package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	Redis     RedisConfig
	AMQP      AMQPConfig
	Sync      SyncConfig
	Bootstrap BootstrapConfig
}

type AppConfig struct {
	Port               string `envconfig:"PORT" default:"8080"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat          string `envconfig:"LOG_FORMAT" default:"console"`
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:8081"`
	SeedMenu           bool   `envconfig:"SEED_MENU" default:"true"`
	TableCount         int    `envconfig:"TABLE_COUNT" default:"12"`
}

// AllowedOrigins splits CORSAllowedOrigins on commas.
func (a AppConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(a.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

type DBConfig struct {
	Enabled    bool   `envconfig:"DB_ENABLED" default:"false"`
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       string `envconfig:"DB_PORT" default:"5432"`
	User       string `envconfig:"DB_USER" default:"postgres"`
	Password   string `envconfig:"DB_PASSWORD"`
	Name       string `envconfig:"DB_NAME" default:"restaurant_pos"`
	SSLMode    string `envconfig:"DB_SSLMODE" default:"disable"`
	SchemaPath string `envconfig:"DB_SCHEMA_PATH" default:"db/schema.sql"`
}

// DSN builds a lib/pq connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET"`
	TTL    time.Duration `envconfig:"JWT_TTL" default:"12h"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`

	// how long confirm results are replayable by idempotency key
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"orders_topic"`
}

func (a AMQPConfig) Enabled() bool { return a.URL != "" }

type SyncConfig struct {
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
}

// BootstrapConfig creates the first manager account when the staff table is empty.
type BootstrapConfig struct {
	ManagerUsername string `envconfig:"BOOTSTRAP_MANAGER_USERNAME"`
	ManagerPassword string `envconfig:"BOOTSTRAP_MANAGER_PASSWORD"`
}

// Load reads an optional .env file (ENV_FILE overrides the path) and then the environment.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.App.TableCount < 0 {
		return errors.New("TABLE_COUNT must not be negative")
	}
	if c.Sync.PollInterval <= 0 {
		return errors.New("POLL_INTERVAL must be positive")
	}
	return nil
}
