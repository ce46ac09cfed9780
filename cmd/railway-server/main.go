// Command railway-server runs the railway management HTTP entrypoint.
//
// It loads an optional env file and settings file, listens on PORT
// (4080 when unset) and serves until SIGINT or SIGTERM.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/en9inerd/railway-server/config"
	"github.com/en9inerd/railway-server/logging"
	"github.com/en9inerd/railway-server/routes"
	"github.com/en9inerd/railway-server/server"
)

func main() {
	configPath := flag.String("config", "railway.yaml", "path to the YAML settings file")
	envFile := flag.String("env-file", ".env", "path to an env file loaded before reading PORT")
	flag.Parse()

	if err := run(*configPath, *envFile); err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath, envFile string) error {
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	srv := server.New(server.OptionsFromConfig(cfg,
		server.Mount{Prefix: "/" + routes.AdminGroup, Handler: routes.Admin(logger)},
		server.Mount{Prefix: "/" + routes.UserGroup, Handler: routes.User(logger)},
	), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
