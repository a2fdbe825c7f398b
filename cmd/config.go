package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the complete process configuration. It is built once in main and
// passed by value to the composition root.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"ups"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	WorldAddr      string `env:"WORLD_ADDR" envDefault:"localhost:12345"`
	PeerAddr       string `env:"PEER_ADDR" envDefault:"localhost:6543"`
	PeerListenAddr string `env:"PEER_LISTEN_ADDR"`
	WorldSimSpeed  uint32 `env:"WORLD_SIM_SPEED"`

	MaxAttempts          int           `env:"MAX_ATTEMPTS" envDefault:"10"`
	IOTimeout            time.Duration `env:"IO_TIMEOUT" envDefault:"10s"`
	InitialTrucks        int           `env:"INITIAL_TRUCKS" envDefault:"5"`
	CapacityPollInterval time.Duration `env:"CAPACITY_POLL_INTERVAL" envDefault:"1s"`
	CapacityPollAttempts int           `env:"CAPACITY_POLL_ATTEMPTS" envDefault:"30"`
	FleetReportSchedule  string        `env:"FLEET_REPORT_SCHEDULE" envDefault:"*/5 * * * * *"`
}

// LoadConfig reads envFile into the environment, when it exists, and parses the
// environment into a Config. Variables already set in the environment win over
// the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.MaxAttempts <= 0 {
		return Config{}, fmt.Errorf("MAX_ATTEMPTS must be positive, got %d", cfg.MaxAttempts)
	}
	if cfg.InitialTrucks <= 0 {
		return Config{}, fmt.Errorf("INITIAL_TRUCKS must be positive, got %d", cfg.InitialTrucks)
	}
	if cfg.CapacityPollAttempts < 0 {
		return Config{}, fmt.Errorf("CAPACITY_POLL_ATTEMPTS must not be negative, got %d", cfg.CapacityPollAttempts)
	}

	return cfg, nil
}

// DSN returns the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
