package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/Reyy01/Connectly/internal/api"
	"github.com/Reyy01/Connectly/internal/config"
	"github.com/Reyy01/Connectly/internal/feed"
	"github.com/Reyy01/Connectly/internal/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	ctx    context.Context
	cancel context.CancelFunc

	logConf zap.Config
	logger  *zap.Logger

	config *config.Config

	storage *storage.Postgres
	feed    *feed.Service
	sweeper *feed.Sweeper
	api     *api.API
}

func newApp(ctx context.Context, lcf zap.Config, log *zap.Logger) (*app, error) {
	ctx, cancel := context.WithCancel(ctx)
	a := &app{ctx: ctx, cancel: cancel, logConf: lcf, logger: log}
	var err error

	log.Debug("Loading configuration.")
	a.config, err = config.Read()
	if err != nil {
		return nil, fmt.Errorf("couldn't load configuration: %w", err)
	}

	log.Debug("Successfully loaded configuration (also switching log level.)")
	lcf.Level.SetLevel(a.config.Logging.Level)

	log.Debug("Initializing storage.")
	a.storage = storage.NewPostgres(log)

	log.Debug("Initializing feed service.")
	a.feed = feed.NewService(log.Sugar(), a.storage)
	a.sweeper = feed.NewSweeper(log.Sugar(), a.storage, a.config.Feed.SweepInterval)

	log.Debug("Initializing API.")
	a.api = api.NewAPI(ctx, log.Sugar(), a.feed, api.NewConfig(a.config.Api.Port, a.config.Feed.PageSize))

	return a, nil
}

func (a *app) Run() error {
	a.logger.Debug("Connecting to PostgreSQL storage.")
	if err := a.storage.Connect(a.ctx, a.config.Storage.PostgresDSN); err != nil {
		return fmt.Errorf("couldn't connect to storage: %s", err)
	}
	defer func() {
		a.logger.Debug("Closing PostgreSQL storage.")
		if err := a.storage.Close(); err != nil {
			a.logger.Sugar().Errorf("Couldn't close storage: %s.", err)
		}
	}()
	a.logger.Debug("Successfully connected to PostgreSQL storage.")

	if a.config.Feed.SweepInterval > 0 {
		a.logger.Debug("Starting reconciliation sweeper.")
		go a.sweeper.Run(a.ctx)
	}

	a.logger.Debug("Starting HTTP API.")
	a.api.Listen()
	defer func() {
		a.logger.Debug("Closing HTTP API.")
		if err := a.api.Close(); err != nil {
			a.logger.Sugar().Errorf("Couldn't close API: %s.", err)
		}
	}()

	a.logger.Info("Launch complete. Send SIGINT to gracefully terminate.")
	<-a.ctx.Done()
	a.logger.Info("SIGINT received, terminating.")

	return a.ctx.Err()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	lcf := zap.NewDevelopmentConfig() // to later switch level without reallocation
	lcf.Level.SetLevel(zapcore.DebugLevel)
	lcf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	lcf.DisableCaller = true
	log, _ := lcf.Build()

	log.Info("Initializing application.")
	a, err := newApp(ctx, lcf, log)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Sugar().Fatalf("Couldn't initialize application: %s.", err)
		}

		return
	}

	log.Debug("Initialization tasks complete, continuing with launch.")
	if err := a.Run(); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Sugar().Fatalf("Application crashed: %s.", err)
		}
	}
}
