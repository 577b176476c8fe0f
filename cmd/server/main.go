package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sanoneto/registro-horas/internal/config"
	"github.com/sanoneto/registro-horas/internal/handler"
	"github.com/sanoneto/registro-horas/internal/handler/http"
	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/metrics"
	"github.com/sanoneto/registro-horas/internal/server"
	"github.com/sanoneto/registro-horas/internal/service"
	"github.com/sanoneto/registro-horas/internal/store"
	"github.com/sanoneto/registro-horas/internal/workers"
	"github.com/sanoneto/registro-horas/models"
	"golang.org/x/sync/errgroup"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("registro-horas-server", "info").Fatal().Err(err).Msg("error getting configs")
	}
	cfg.App.Version = buildInfo.ServedVersion(cfg.App.Version)

	log := logger.NewLogger("registro-horas-server", cfg.App.LogLevel)
	log.Debug().Str("address", cfg.Server.HTTPAddress).Bool("redis", cfg.Storage.Redis.URL != "").
		Bool("metrics", cfg.Metrics.Enabled).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	var rdb *redis.Client
	if cfg.Storage.Redis.URL != "" {
		rdb, err = store.NewRedis(ctx, cfg.Storage.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to redis")
		}
		defer rdb.Close()
	}

	storages := store.NewStorages(db, rdb, cfg.App.TokenDuration, log)

	businessMetrics := metrics.NewNoOpBusinessMetrics()
	handlerOpts := []http.Option{
		http.WithRateLimit(ctx, cfg.Server.RateLimit.RequestsPerSecond, cfg.Server.RateLimit.Burst),
	}
	if cfg.Metrics.Enabled {
		provider, err := metrics.NewProvider()
		if err != nil {
			log.Fatal().Err(err).Msg("error creating metrics provider")
		}
		defer func() {
			if err := provider.Shutdown(context.Background()); err != nil {
				log.Err(err).Msg("error shutting down metrics provider")
			}
		}()

		businessMetrics, err = metrics.NewBusinessMetrics(provider.MeterProvider(), cfg.Metrics.Namespace)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating business metrics")
		}
		handlerOpts = append(handlerOpts, http.WithMetrics(provider, cfg.Metrics.Namespace))
	}

	services, err := service.NewServices(storages, *cfg, businessMetrics, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log, handlerOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	jobs := workers.NewWorkers(log,
		workers.NewTokenCleanupWorker(storages.TokenRepository, cfg.Workers, log),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.RunServer(gctx)
	})
	g.Go(func() error {
		jobs.Run(gctx)
		return nil
	})

	if err = g.Wait(); err != nil {
		log.Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}
