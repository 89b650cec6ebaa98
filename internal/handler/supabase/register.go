package supabase

import "github.com/fedra-io/fedra/internal/handler"

func init() {
	handler.Register(handler.Descriptor{
		Engine: Engine,
		Title:  "Supabase",
		Factory: func(name string, params handler.Params) (handler.Handler, error) {
			return New(name, params)
		},
		Args: ConnectionArgs(),
		Example: handler.Params{
			"host":     "db.xcvefshyvvnbdhwrnrnq.supabase.co",
			"port":     5432,
			"database": "postgres",
			"user":     "postgres",
			"password": "<password>",
		},
	})
}

// ConnectionArgs documents the parameters this engine accepts. The five
// required fields are exactly the ones the native PostgreSQL handler
// requires; the storage credentials are optional.
func ConnectionArgs() []handler.ConnectionArg {
	return []handler.ConnectionArg{
		{Name: "host", Type: handler.ArgTypeStr, Required: true, Description: "Host name or IP address of the Supabase PostgreSQL instance."},
		{Name: "port", Type: handler.ArgTypeInt, Required: true, Description: "TCP port of the instance, usually 5432."},
		{Name: "database", Type: handler.ArgTypeStr, Required: true, Description: "Name of the database, usually postgres."},
		{Name: "user", Type: handler.ArgTypeStr, Required: true, Description: "User name to authenticate as."},
		{Name: "password", Type: handler.ArgTypeStr, Required: true, Secret: true, Description: "Password for the given user."},
		{Name: "sslmode", Type: handler.ArgTypeStr, Description: "libpq sslmode. Defaults to require — Supabase is a hosted service."},
		{Name: "s3_endpoint", Type: handler.ArgTypeStr, Description: "S3-compatible storage endpoint of the project."},
		{Name: "s3_access_key_id", Type: handler.ArgTypeStr, Description: "Access key for the storage endpoint."},
		{Name: "s3_secret_access_key", Type: handler.ArgTypeStr, Secret: true, Description: "Secret key for the storage endpoint."},
		{Name: "s3_region", Type: handler.ArgTypeStr, Description: "Storage region. Leave empty unless the project pins one."},
	}
}
