package postgres

import "github.com/fedra-io/fedra/internal/handler"

func init() {
	handler.Register(handler.Descriptor{
		Engine: Engine,
		Title:  "PostgreSQL",
		Factory: func(name string, params handler.Params) (handler.Handler, error) {
			return New(name, params)
		},
		Args: ConnectionArgs(),
		Example: handler.Params{
			"host":     "127.0.0.1",
			"port":     5432,
			"database": "postgres",
			"user":     "postgres",
			"password": "<password>",
		},
	})
}

// ConnectionArgs documents the parameters this engine accepts.
func ConnectionArgs() []handler.ConnectionArg {
	return []handler.ConnectionArg{
		{Name: "host", Type: handler.ArgTypeStr, Required: true, Description: "Host name or IP address of the PostgreSQL server."},
		{Name: "port", Type: handler.ArgTypeInt, Required: true, Description: "TCP port the server listens on, usually 5432."},
		{Name: "database", Type: handler.ArgTypeStr, Required: true, Description: "Name of the database to connect to."},
		{Name: "user", Type: handler.ArgTypeStr, Required: true, Description: "User name to authenticate as."},
		{Name: "password", Type: handler.ArgTypeStr, Required: true, Secret: true, Description: "Password for the given user."},
		{Name: "sslmode", Type: handler.ArgTypeStr, Description: "libpq sslmode (disable, prefer, require, …). Defaults to prefer."},
	}
}
