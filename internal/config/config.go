package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

var ErrMissingConnectionString = errors.New("no DB_CONNECTION_STRING provided for the postgres store")

type Config struct {
	HTTPAddr            string
	StoreDriver         string
	DBConnectionString  string
	SQLitePath          string
	LogMode             string
	BcryptCost          int
	ShutdownTimeout     time.Duration
	// HealthCheckSchedule is the cron schedule of the periodic store probe; "off" disables it.
	HealthCheckSchedule string
}

// Load reads the optional env files (".env" when none are given) and then
// the process environment, and validates the result.
// The bool result reports whether an env file was found.
func Load(files ...string) (Config, bool, error) {
	cfg, envLoaded, err := FromEnv(files...)
	if err != nil {
		return cfg, envLoaded, err
	}
	return cfg, envLoaded, cfg.Validate()
}

// FromEnv is Load without Validate, for callers that override some fields
// before validating.
func FromEnv(files ...string) (Config, bool, error) {
	envLoaded := godotenv.Load(files...) == nil

	bcryptCost, costErr := getEnvAsInt("BCRYPT_COST", 12)
	shutdownSeconds, shutdownErr := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10)

	cfg := Config{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		DBConnectionString:  os.Getenv("DB_CONNECTION_STRING"),
		SQLitePath:          getEnv("SQLITE_PATH", "expenses.db"),
		LogMode:             getEnv("LOG_MODE", "dev"),
		BcryptCost:          bcryptCost,
		ShutdownTimeout:     time.Duration(shutdownSeconds) * time.Second,
		HealthCheckSchedule: getEnv("HEALTH_CHECK_SCHEDULE", "@every 5m"),
	}
	return cfg, envLoaded, errors.Join(costErr, shutdownErr)
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DBConnectionString == "" {
			return ErrMissingConnectionString
		}
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	return nil
}

func getEnv(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func getEnvAsInt(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: must be an integer", name, v)
	}
	return i, nil
}
