package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env          string        `envconfig:"APP_ENV" default:"development"`
	Port         string        `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	BodyLimit    int           `envconfig:"APP_BODY_LIMIT" default:"1048576"`

	DBDriver       string `envconfig:"DB_DRIVER" default:"sqlite"` // sqlite | pgx
	DBDSN          string `envconfig:"DB_DSN" default:"bagshop.db"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	SeedDemo       bool   `envconfig:"SEED_DEMO" default:"false"`

	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL     time.Duration `envconfig:"JWT_TTL" default:"12h"`
	JWTIssuer  string        `envconfig:"JWT_ISSUER" default:"bagshop"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`

	RedisAddr string        `envconfig:"REDIS_ADDR"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"json"` // json | text
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile   string `envconfig:"LOG_FILE"`

	CORSOrigins    string `envconfig:"CORS_ORIGINS" default:"*"`
	AdminAPIKey    string `envconfig:"ADMIN_API_KEY"`
	LoginRateLimit int    `envconfig:"LOGIN_RATE_LIMIT" default:"5"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load() // fine when missing

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be provided")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return errors.New("config: JWT_SECRET must be at least 32 bytes in production")
	}
	switch c.DBDriver {
	case "sqlite", "pgx":
	default:
		return errors.New("config: DB_DRIVER must be sqlite or pgx")
	}
	return nil
}

func (c Config) IsProduction() bool { return c.Env == "production" }

func (c Config) Addr() string { return ":" + c.Port }
