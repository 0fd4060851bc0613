package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Drivers de almacenamiento soportados.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverSupabase = "supabase"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	DatabaseDSN   string `env:"DB_DSN"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"animal-rescue.db"`
	SeedDemoData  bool   `env:"SEED_DEMO_DATA" envDefault:"true"`

	SupabaseURL       string        `env:"SUPABASE_URL"`
	SupabaseAnonKey   string        `env:"SUPABASE_ANON_KEY"`
	SupabaseJWTSecret string        `env:"SUPABASE_JWT_SECRET"`
	UpstreamTimeout   time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`

	RedisURL     string `env:"REDIS_URL"`
	RateLimitRPM int    `env:"RATE_LIMIT_RPM" envDefault:"30"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`

	CatalogPageSize int           `env:"CATALOG_PAGE_SIZE" envDefault:"12"`
	VisitorTTL      time.Duration `env:"VISITOR_TTL" envDefault:"2h"`
	MaxVisitors     int           `env:"MAX_VISITORS" envDefault:"10000"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"animal-rescue"`
}

// Load lee .env (si existe) y luego el entorno del proceso.
func Load() (*Config, error) {
	// .env es opcional; en prod las variables vienen del entorno.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv llena target desde variables de entorno.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))

	var errs []error
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseDSN) == "" {
			errs = append(errs, errors.New("DB_DSN is required for the postgres driver"))
		}
	case DriverSupabase:
		if !c.SupabaseConfigured() {
			errs = append(errs, errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required for the supabase driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	if c.CatalogPageSize <= 0 {
		errs = append(errs, errors.New("CATALOG_PAGE_SIZE must be positive"))
	}
	if c.RateLimitRPM < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPM must not be negative"))
	}
	if c.IsProduction() && strings.TrimSpace(c.SupabaseJWTSecret) == "" {
		errs = append(errs, errors.New("SUPABASE_JWT_SECRET is required in production"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func (c *Config) SupabaseConfigured() bool {
	return strings.TrimSpace(c.SupabaseURL) != "" && strings.TrimSpace(c.SupabaseAnonKey) != ""
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
