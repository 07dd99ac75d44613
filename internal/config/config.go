package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config holds everything the service reads from the environment.
type Config struct {
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8780"`
	StoragePath string `env:"STORAGE_PATH" envDefault:"data/malunita.json"`
	UserID      string `env:"USER_ID" envDefault:"local"`

	ClusterURL     string        `env:"CLUSTER_URL"`
	ClusterTimeout time.Duration `env:"CLUSTER_TIMEOUT" envDefault:"4s"`

	AIProvider string `env:"AI_PROVIDER" envDefault:"pollinations"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
