package client

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the contact book CLI.
type Config struct {
	APIURL    string        `env:"API_URL" envDefault:"http://localhost:5000"`
	TokenFile string        `env:"TOKEN_FILE"`
	Timeout   time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads the environment. TokenFile defaults to
// ~/.contactbook/token.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.TokenFile = filepath.Join(home, ".contactbook", "token")
	}
	return &cfg, nil
}
