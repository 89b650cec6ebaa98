package postgres

import (
	"fmt"
	"time"

	"github.com/fedra-io/fedra/internal/errs"
	"github.com/fedra-io/fedra/internal/handler"
)

// Pool defaults. Tuned for the read-heavy workloads this layer serves;
// anything beyond this is pgxpool's responsibility.
const (
	defaultMaxConns       = 10
	defaultMinConns       = 2
	defaultConnectTimeout = 5 * time.Second
)

// Config holds the validated connection parameters for a PostgreSQL
// datasource. All five identity fields are required; SSLMode is optional
// and defaults to "prefer".
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
}

// RequiredArgs are the connection parameters every PostgreSQL-shaped
// configuration block must carry.
var RequiredArgs = []string{"host", "port", "database", "user", "password"}

// ConfigFromParams validates a raw parameter block and builds a Config.
// It fails with an invalid_config error naming every missing field, and
// performs no network I/O. Values are forwarded unchanged — this is the
// single validation point for PostgreSQL-compatible engines.
func ConfigFromParams(params handler.Params) (*Config, error) {
	if err := handler.RequireParams(params, RequiredArgs...); err != nil {
		return nil, err
	}

	port, err := params.Int("port")
	if err != nil {
		return nil, err
	}
	if port <= 0 {
		return nil, errs.Newf(errs.ErrKindInvalidConfig, "parameter \"port\" must be a positive integer, got %d", port)
	}

	cfg := &Config{
		Host:     params.Str("host"),
		Port:     port,
		Database: params.Str("database"),
		User:     params.Str("user"),
		Password: params.Str("password"),
		SSLMode:  params.Str("sslmode"),
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "prefer"
	}
	return cfg, nil
}

// DSN renders the config as a libpq-style connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
