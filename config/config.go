package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	SnapshotBackendGorm  = "gorm"
	SnapshotBackendRedis = "redis"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Snapshot SnapshotConfig
	Redis    RedisConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port       string `envconfig:"PORT" default:"8080"`
	GinMode    string `envconfig:"GIN_MODE" default:"debug"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"text"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"*"`
	SeedDemo   bool   `envconfig:"SEED_DEMO_DATA" default:"true"`
	Timezone   string `envconfig:"TIMEZONE" default:"Local"`
}

type DBConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"DB_DSN" default:"acai-pdv.db"`
}

type SnapshotConfig struct {
	Backend string `envconfig:"SNAPSHOT_BACKEND" default:"gorm"`
	Name    string `envconfig:"SNAPSHOT_NAME" default:"acai-pdv-store"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_PREFIX" default:"acai-pdv"`
}

type AuthConfig struct {
	JWTSecret      string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL         time.Duration `envconfig:"JWT_TTL" default:"12h"`
	SharedPassword string        `envconfig:"SHARED_PASSWORD" default:"123456"`
	Delay          time.Duration `envconfig:"AUTH_DELAY" default:"0s"`
	LoginRate      float64       `envconfig:"LOGIN_RATE" default:"1"`
	LoginBurst     int           `envconfig:"LOGIN_BURST" default:"5"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

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
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	switch c.DB.Driver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}

	c.Snapshot.Backend = strings.ToLower(strings.TrimSpace(c.Snapshot.Backend))
	switch c.Snapshot.Backend {
	case SnapshotBackendGorm, SnapshotBackendRedis:
	default:
		return fmt.Errorf("unsupported SNAPSHOT_BACKEND %q", c.Snapshot.Backend)
	}

	if strings.TrimSpace(c.Snapshot.Name) == "" {
		return errors.New("SNAPSHOT_NAME cannot be empty")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET cannot be empty")
	}
	if c.Auth.SharedPassword == "" {
		return errors.New("SHARED_PASSWORD cannot be empty")
	}
	return nil
}

// Location resolves the TIMEZONE setting used for calendar-day reports.
func (a AppConfig) Location() (*time.Location, error) {
	if a.Timezone == "" || strings.EqualFold(a.Timezone, "Local") {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}
