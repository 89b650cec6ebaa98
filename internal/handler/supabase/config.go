package supabase

import (
	"strings"

	"github.com/fedra-io/fedra/internal/errs"
	"github.com/fedra-io/fedra/internal/handler"
	"github.com/fedra-io/fedra/internal/handler/postgres"
	"github.com/fedra-io/fedra/internal/storage/s3"
)

// storageArgs are the optional Supabase Storage credentials. They come as
// a set: supplying only part of it is a configuration error.
var storageArgs = []string{"s3_endpoint", "s3_access_key_id", "s3_secret_access_key"}

// Config is the validated Supabase configuration: the PostgreSQL identity
// fields (forwarded unchanged to the delegate) plus optional storage
// credentials.
type Config struct {
	Postgres *postgres.Config
	Storage  *s3.Config // nil when no storage credentials were supplied
}

// ParseConfig validates a raw parameter block. The five required fields
// {host, port, database, user, password} are validated by the shared
// PostgreSQL parser — the mapping is the identity, since the field names
// already match. Supabase is a hosted service, so sslmode defaults to
// "require" instead of the native handler's "prefer".
func ParseConfig(params handler.Params) (*Config, error) {
	if params.Str("sslmode") == "" {
		// Copy before defaulting; the caller's block stays untouched.
		withDefault := handler.Params{}
		for k, v := range params {
			withDefault[k] = v
		}
		withDefault["sslmode"] = "require"
		params = withDefault
	}

	pgCfg, err := postgres.ConfigFromParams(params)
	if err != nil {
		return nil, err
	}

	storageCfg, err := parseStorage(params)
	if err != nil {
		return nil, err
	}

	return &Config{Postgres: pgCfg, Storage: storageCfg}, nil
}

// parseStorage reads the optional storage credential set. Returns nil when
// none of the storage keys are present.
func parseStorage(params handler.Params) (*s3.Config, error) {
	present := 0
	for _, key := range storageArgs {
		if strings.TrimSpace(params.Str(key)) != "" {
			present++
		}
	}
	if present == 0 {
		return nil, nil
	}
	if present < len(storageArgs) {
		if err := handler.RequireParams(params, storageArgs...); err != nil {
			return nil, err
		}
	}

	return &s3.Config{
		Endpoint:  params.Str("s3_endpoint"),
		AccessKey: params.Str("s3_access_key_id"),
		SecretKey: params.Str("s3_secret_access_key"),
		Region:    params.Str("s3_region"),
	}, nil
}

func errNoStorage() error {
	return errs.New(errs.ErrKindInvalidConfig,
		"datasource was registered without storage credentials (s3_endpoint, s3_access_key_id, s3_secret_access_key)")
}
