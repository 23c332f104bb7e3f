package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/s2k/videogame-store/internal/console"
	"github.com/s2k/videogame-store/internal/core/service"
	"github.com/s2k/videogame-store/internal/infrastructure/http"
	"github.com/s2k/videogame-store/internal/infrastructure/http/handlers"
	"github.com/s2k/videogame-store/internal/infrastructure/userfile"
	"github.com/s2k/videogame-store/internal/pkg/config"
	"github.com/s2k/videogame-store/internal/pkg/validate"
	"github.com/s2k/videogame-store/pkg/logger"
)

const svcName = "videogame-store"

func main() {
	cfg := config.Load()

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Output:  os.Stderr,
		Service: svcName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()
	v := validate.New()

	users := service.NewUserService(service.NewSequence(1), v, log.With().Str("component", "users").Logger())
	catalog := service.NewCatalogService(service.NewSequence(1), v, log.With().Str("component", "catalog").Logger())
	carts := service.NewCartService(log.With().Str("component", "cart").Logger())
	checkout := service.NewCheckoutService(catalog, carts, v, log.With().Str("component", "checkout").Logger())

	if cfg.Store.SeedCatalog {
		if err := catalog.Seed(ctx, service.DemoGames()...); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	store := userfile.NewStore(cfg.Store.UsersFile, log.With().Str("component", "userfile").Logger())

	if cfg.OpsAddr != "" {
		opsCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		router := http.NewRouter(log, handlers.Check{
			Name:  "users_file",
			Probe: func(context.Context) error { return store.Writable() },
		})
		go func() {
			defer close(done)
			if err := http.Serve(opsCtx, router, cfg.OpsAddr, log); err != nil {
				log.Error().Err(err).Str("addr", cfg.OpsAddr).Msg("ops endpoint stopped")
			}
		}()
		defer func() {
			cancel()
			<-done
		}()
	}

	svc := console.Services{
		Users:    users,
		Catalog:  catalog,
		Carts:    carts,
		Checkout: checkout,
	}
	if cfg.Store.Persist {
		svc.Store = store
	}

	log.Info().Str("env", cfg.Env).Bool("persist", cfg.Store.Persist).Msg("store starting")
	if err := console.New(os.Stdin, os.Stdout, svc, log.With().Str("component", "console").Logger()).Run(ctx); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	log.Info().Msg("shutdown")
	return nil
}
