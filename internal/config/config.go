package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds environment-driven configuration.
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	DB      DBConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Profile ProfileConfig
}

type AppConfig struct {
	Env      string `env:"APP_ENV" env-default:"production"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Addr         string        `env:"HTTP_ADDR" env-default:":3000"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type DBConfig struct {
	// Driver is one of mysql, pgx or postgres.
	Driver          string        `env:"DB_DRIVER" env-default:"mysql"`
	DSN             string        `env:"DB_DSN" env-required:"true"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"2"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
	QueryTimeout    time.Duration `env:"DB_QUERY_TIMEOUT" env-default:"5s"`
	Migrate         bool          `env:"DB_MIGRATE" env-default:"false"`
}

type RedisConfig struct {
	// Addr is "host:port". Empty Addr and URL disables the customer list cache.
	Addr     string        `env:"REDIS_ADDR" env-default:""`
	Password string        `env:"REDIS_PASSWORD" env-default:""`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	URL      string        `env:"REDIS_URL" env-default:""`
	TTL      time.Duration `env:"CACHE_TTL" env-default:"60s"`
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `env:"JWT_TTL" env-default:"72h"`
	BcryptCost int           `env:"BCRYPT_COST" env-default:"10"`
}

type ProfileConfig struct {
	BaseURL string        `env:"PROFILE_API_URL" env-default:"https://coogzoobackend.vercel.app"`
	Timeout time.Duration `env:"PROFILE_API_TIMEOUT" env-default:"10s"`
}

// Enabled reports whether a Redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	switch cfg.DB.Driver {
	case "mysql", "pgx", "postgres":
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be mysql, pgx or postgres, got %q", cfg.DB.Driver)
	}

	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.Auth.BcryptCost)
	}

	if cfg.Redis.URL != "" {
		addr, password, db, err := parseRedisURL(cfg.Redis.URL)
		if err != nil {
			return Config{}, fmt.Errorf("REDIS_URL: %w", err)
		}
		cfg.Redis.Addr = addr
		cfg.Redis.Password = password
		cfg.Redis.DB = db
	}
	return cfg, nil
}

// LoadProfile reads only the profile service settings, so tools that never
// touch the database can run without DB_DSN or JWT_SECRET.
func LoadProfile() (ProfileConfig, error) {
	_ = godotenv.Load()

	var cfg ProfileConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return ProfileConfig{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	return c.App.Env == "dev" || c.App.Env == "development"
}

// parseRedisURL extracts host:port, password and DB from a redis:// or rediss:// URL.
func parseRedisURL(s string) (addr, password string, db int, err error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", "", 0, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return "", "", 0, fmt.Errorf("scheme must be redis or rediss, got %q", u.Scheme)
	}
	addr = u.Host
	if addr == "" {
		return "", "", 0, fmt.Errorf("missing host in Redis URL")
	}
	if u.User != nil {
		password, _ = u.User.Password()
	}
	if len(u.Path) > 1 {
		db, err = strconv.Atoi(strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return "", "", 0, fmt.Errorf("invalid db index %q", u.Path)
		}
	}
	return addr, password, db, nil
}
