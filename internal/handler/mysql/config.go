package mysql

import (
	"fmt"

	"github.com/fedra-io/fedra/internal/errs"
	"github.com/fedra-io/fedra/internal/handler"
)

// Config holds the validated connection parameters for a MySQL datasource.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// RequiredArgs are the connection parameters every MySQL configuration
// block must carry.
var RequiredArgs = []string{"host", "port", "database", "user", "password"}

// ConfigFromParams validates a raw parameter block and builds a Config.
// Fails with an invalid_config error naming every missing field; performs
// no network I/O.
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

	return &Config{
		Host:     params.Str("host"),
		Port:     port,
		Database: params.Str("database"),
		User:     params.Str("user"),
		Password: params.Str("password"),
	}, nil
}

// DSN renders the config as a go-sql-driver connection string.
// parseTime makes the driver return time.Time for temporal columns.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.User, c.Password, c.Host, c.Port, c.Database)
}
