// Command fedra runs the datasource API daemon.
//
// It loads a YAML configuration file, registers the datasource blocks it
// declares, and serves the HTTP API.
//
// Run with:
//
//	fedra -config fedra.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fedra-io/fedra/internal/config"
	"github.com/fedra-io/fedra/internal/handler"
	"github.com/fedra-io/fedra/internal/logger"
	"github.com/fedra-io/fedra/internal/server"

	// Engines available to this build.
	_ "github.com/fedra-io/fedra/internal/handler/mysql"
	_ "github.com/fedra-io/fedra/internal/handler/postgres"
	_ "github.com/fedra-io/fedra/internal/handler/supabase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		configPath = flag.String("config", "", "path to the YAML configuration file")
		addr       = flag.String("addr", "", "listen address (overrides the config file)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			bootLog := logger.New(nil)
			bootLog.Fatal().Err(err).Msg("cannot load configuration")
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	srv := server.New(log, handler.Default)

	// Boot-time datasource blocks. A bad block is a configuration error
	// and stops the daemon before it serves anything.
	for _, ds := range cfg.Datasources {
		if _, err := srv.Register(ds.Name, ds.Engine, ds.Parameters); err != nil {
			log.Fatal().Err(err).Str("datasource", ds.Name).Msg("cannot register datasource")
		}
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Int("engines", len(handler.Default.Engines())).Msg("fedra listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	srv.Shutdown()
}
