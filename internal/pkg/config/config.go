package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string   `env:"PORT,            default=8080"`
	Env            string   `env:"ENV,             default=development"`
	LogLevel       string   `env:"LOG_LEVEL,       default=info"`
	LogPretty      bool     `env:"LOG_PRETTY,      default=false"`
	LogFile        string   `env:"LOG_FILE"`
	CORSOrigins    []string `env:"CORS_ORIGINS,    default=http://localhost:5173"`
	SuggestWorkers int      `env:"SUGGEST_WORKERS, default=4" validate:"min=1"`

	API   APIConfig
	Token TokenConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// APIConfig points at the storefront REST API.
type APIConfig struct {
	BaseURL   string        `env:"API_BASE_URL,   default=http://localhost:8000" validate:"required,url"`
	Timeout   time.Duration `env:"API_TIMEOUT,    default=15s"`
	RateLimit float64       `env:"API_RATE_LIMIT, default=0" validate:"min=0"`
	RateBurst int           `env:"API_RATE_BURST, default=1" validate:"min=1"`
}

// TokenConfig selects where the bearer token is persisted.
type TokenConfig struct {
	Store  string `env:"TOKEN_STORE,  default=file" validate:"oneof=file memory redis mongo"`
	File   string `env:"TOKEN_FILE"`
	Secret string `env:"TOKEN_SECRET"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=mobicorp_storefront"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom decodes and validates the configuration from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for entrypoints that cannot start without configuration.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}
