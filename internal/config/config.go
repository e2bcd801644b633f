package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env string `yaml:"env" env:"ENV" env-default:"local"`
	// StoragePath enables the solve-history store when set.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH"`
	// RedisAddr enables the idempotency lock when set.
	RedisAddr  string `yaml:"redis_addr" env:"REDIS_ADDR"`
	HTTPServer `yaml:"http_server"`
	Solver     Solver `yaml:"solver"`
}

type HTTPServer struct {
	Address string `yaml:"address" env-default:"localhost:8080"`
	// Timeout must leave room for a full solver budget plus encoding.
	Timeout         time.Duration `yaml:"timeout" env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

type Solver struct {
	Timeout time.Duration `yaml:"timeout" env:"SOLVER_TIMEOUT" env-default:"30s"`
}

func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	return &cfg
}
