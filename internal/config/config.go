package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// DriverMongo stores users and contacts in MongoDB.
	DriverMongo = "mongo"
	// DriverMySQL stores users and contacts in MySQL through GORM.
	DriverMySQL = "mysql"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string `env:"PORT" envDefault:"5000"`
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"mongo"`
	MongoURI       string `env:"MONGO_URI"`
	MongoDatabase  string `env:"MONGO_DATABASE" envDefault:"contactbook"`
	MySQLDSN       string `env:"MYSQL_DSN"`
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass      string `env:"REDIS_PASSWORD"`
	JWTSecret      string `env:"JWT_SECRET,required,notEmpty"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	SwaggerHost    string `env:"SWAGGER_HOST"`
	ResetDB        bool   `env:"RESET_DB" envDefault:"false"`
}

// Load reads .env when present and builds Config from the environment.
// The token secret and the connection string of the selected driver have no
// defaults and must be supplied.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse builds Config from the current process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo driver")
		}
	case DriverMySQL:
		if c.MySQLDSN == "" {
			return errors.New("MYSQL_DSN is required for the mysql driver")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	return nil
}
