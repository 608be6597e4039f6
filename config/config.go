// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"commander/db"

	"github.com/caarlos0/env/v11"
)

// Environments accepted in COMMANDER_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the complete process configuration.
type Config struct {
	Env      string `env:"COMMANDER_ENV"       envDefault:"production"`
	Addr     string `env:"COMMANDER_ADDR"      envDefault:"127.0.0.1:5000"`
	LogLevel string `env:"COMMANDER_LOG_LEVEL" envDefault:"info"`

	DBDriver     string `env:"COMMANDER_DB_DRIVER"      envDefault:"sqlite"`
	DBDSN        string `env:"COMMANDER_DB_DSN"         envDefault:"commander.db"`
	DBAutoCreate bool   `env:"COMMANDER_DB_AUTO_CREATE" envDefault:"true"`

	ReadTimeout     time.Duration `env:"COMMANDER_READ_TIMEOUT"     envDefault:"5s"`
	WriteTimeout    time.Duration `env:"COMMANDER_WRITE_TIMEOUT"    envDefault:"10s"`
	IdleTimeout     time.Duration `env:"COMMANDER_IDLE_TIMEOUT"     envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"COMMANDER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Development reports whether the process runs in the development environment.
func (c Config) Development() bool {
	return c.Env == EnvDevelopment
}

// Validate rejects combinations the process cannot run with.
func (c Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("COMMANDER_ENV: unknown environment %q", c.Env)
	}

	switch c.DBDriver {
	case db.DriverMock:
		if !c.Development() {
			return fmt.Errorf("COMMANDER_DB_DRIVER: mock store is only allowed in %s", EnvDevelopment)
		}
	case db.DriverSQLite, db.DriverSQLitePureGo, db.DriverMySQL:
		if c.DBDSN == "" {
			return fmt.Errorf("COMMANDER_DB_DSN: required for driver %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("COMMANDER_DB_DRIVER: unknown driver %q", c.DBDriver)
	}

	if c.Addr == "" {
		return fmt.Errorf("COMMANDER_ADDR: required")
	}
	return nil
}

// StoreOptions returns the db.Options described by c.
func (c Config) StoreOptions() db.Options {
	return db.Options{
		Driver:     c.DBDriver,
		DSN:        c.DBDSN,
		AutoCreate: c.DBAutoCreate,
	}
}
