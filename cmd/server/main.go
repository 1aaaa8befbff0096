package main

import (
	"context"
	"fmt"

	"github.com/haneul-lab/cruise-companion/internal/config"
	httphandler "github.com/haneul-lab/cruise-companion/internal/handler/http"
	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/server"
	"github.com/haneul-lab/cruise-companion/internal/service"
	"github.com/haneul-lab/cruise-companion/internal/store"
	"github.com/haneul-lab/cruise-companion/internal/workers"
	"github.com/haneul-lab/cruise-companion/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("cruise-gate-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, cfg, log)

	limiter := httphandler.NewRateLimiter(cfg.RateLimit)
	handler := httphandler.NewHandler(services, limiter, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := workers.NewWorkers(storages, limiter, cfg.Workers, log)
	background.Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
