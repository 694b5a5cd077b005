package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// MinSecretLen is the shortest SECRET_KEY accepted without a startup warning.
const MinSecretLen = 32

type Config struct {
	Port     int    `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SecretKey      string        `env:"SECRET_KEY" envDefault:"mi_clave_secreta"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	GoogleClientID string        `env:"GOOGLE_CLIENT_ID"`

	StaticDir string `env:"STATIC_DIR" envDefault:"public"`
	ImagesDir string `env:"IMAGES_DIR" envDefault:"imagenes"`

	CatalogSeedFile string `env:"CATALOG_SEED_FILE"`
	DatabaseURL     string `env:"DATABASE_URL"`

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsToken   string `env:"METRICS_TOKEN"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	LoginLimitPerMin    int `env:"LOGIN_LIMIT_PER_MIN" envDefault:"5"`
	RegisterLimitPerMin int `env:"REGISTER_LIMIT_PER_MIN" envDefault:"3"`
}

// Load reads an optional .env file, then the process environment.
func Load(dotenvFiles ...string) (*Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load dotenv: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid TOKEN_TTL: %s", c.TokenTTL)
	}
	if c.LoginLimitPerMin <= 0 || c.RegisterLimitPerMin <= 0 {
		return errors.New("rate limits must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// WeakSecret reports whether SECRET_KEY is shorter than MinSecretLen.
func (c *Config) WeakSecret() bool {
	return len(c.SecretKey) < MinSecretLen
}
