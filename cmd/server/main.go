package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/konvierte/konvierte/config"
	"github.com/konvierte/konvierte/infra/kvstore"
	"github.com/konvierte/konvierte/infra/provider/dolarapi"
	"github.com/konvierte/konvierte/pkg/catalog"
	"github.com/konvierte/konvierte/pkg/eventbus"
	"github.com/konvierte/konvierte/pkg/formula"
	"github.com/konvierte/konvierte/pkg/service/calcsession"
	paysvc "github.com/konvierte/konvierte/pkg/service/paymethods"
	ratesvc "github.com/konvierte/konvierte/pkg/service/rates"
	"github.com/konvierte/konvierte/webapi"
	calcapi "github.com/konvierte/konvierte/webapi/calculator"
	payapi "github.com/konvierte/konvierte/webapi/paymethods"
	ratesapi "github.com/konvierte/konvierte/webapi/rates"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	store, err := newStore(cfg.Redis, logger)
	if err != nil {
		return err
	}

	source := dolarapi.NewClient(cfg.RateProvider.BaseURL, cfg.RateProvider.HTTPTimeout, logger)
	bus := eventbus.NewSimpleEventBus()
	resolver := catalog.NewResolver(formula.NewExprEvaluator(), logger)

	rates := ratesvc.New(source, store, resolver, bus, logger)
	sessions := calcsession.New(rates, bus, logger)
	methods := paysvc.New(store, logger)

	// Warm the catalog. A failed first fetch is not fatal: the calculator
	// runs on zero prices until a refresh succeeds.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := rates.Refresh(ctx); err != nil {
		logger.Warn("initial rate fetch failed, starting without prices", "error", err)
	}

	app := webapi.NewApp(webapi.Deps{
		Config:     cfg,
		Logger:     logger,
		Rates:      rates,
		Sessions:   sessions,
		PayMethods: methods,
	})
	ratesapi.Routes(app, rates)
	calcapi.Routes(app, sessions, methods)
	payapi.Routes(app, methods)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr, "provider", source.Metadata().Name)
	return app.Listen(addr)
}

func newLogger(cfg *config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func newStore(cfg *config.Redis, logger *slog.Logger) (kvstore.Store, error) {
	if cfg == nil || cfg.URL == "" {
		logger.Warn("no redis configured, state will not survive restarts")
		return kvstore.NewMemory(), nil
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	store := kvstore.NewRedis(opt, cfg.KeyPrefix, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}
	return store, nil
}
