package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort               = "8080"
	defaultLedgerMaxAttempts  = 5
	defaultLedgerRetryBackoff = 20 * time.Millisecond
	defaultRequestTimeout     = 30 * time.Second
)

type Config struct {
	ProjectID          string
	LogLevel           string
	LogFormat          string
	Port               string
	LedgerMaxAttempts  int
	LedgerRetryBackoff time.Duration
	RequestTimeout     time.Duration
}

// New reads the environment. A .env file in the working directory is loaded
// first when present; variables already set in the environment take precedence.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		ProjectID: getenv("PROJECTID"),
		LogLevel:  getenv("LOGLEVEL"),
		LogFormat: getenv("LOGFORMAT"),
		Port:      getenv("PORT"),
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	var err error
	if cfg.LedgerMaxAttempts, err = intOr(getenv("LEDGERMAXATTEMPTS"), defaultLedgerMaxAttempts); err != nil {
		return nil, errors.New("LEDGERMAXATTEMPTS: " + err.Error())
	}
	if cfg.LedgerRetryBackoff, err = durationOr(getenv("LEDGERRETRYBACKOFF"), defaultLedgerRetryBackoff); err != nil {
		return nil, errors.New("LEDGERRETRYBACKOFF: " + err.Error())
	}
	if cfg.RequestTimeout, err = durationOr(getenv("REQUESTTIMEOUT"), defaultRequestTimeout); err != nil {
		return nil, errors.New("REQUESTTIMEOUT: " + err.Error())
	}
	return cfg, nil
}

func intOr(v string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("must be at least 1")
	}
	return n, nil
}

func durationOr(v string, fallback time.Duration) (time.Duration, error) {
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.New("must not be negative")
	}
	return d, nil
}
