package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/transmovil-cr/service-routes/internal/application"
	"github.com/transmovil-cr/service-routes/internal/config"
	"github.com/transmovil-cr/service-routes/internal/directions"
	"github.com/transmovil-cr/service-routes/internal/domain/route"
	"github.com/transmovil-cr/service-routes/internal/events"
	"github.com/transmovil-cr/service-routes/internal/logger"
	"github.com/transmovil-cr/service-routes/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFetcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "route-fetcher")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	pairs, err := cfg.Pairs()
	if err != nil {
		log.Fatal("failed to load route pairs", zap.Error(err))
	}

	log.Info("starting route-fetcher",
		zap.Int("pairs", len(pairs)),
		zap.String("output", cfg.OutputPath),
		zap.Duration("pace", cfg.PaceDelay),
	)

	// Directions API client; a zero timeout keeps the client default
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	directionsClient := directions.NewClient(cfg.DirectionsURL, cfg.GoogleAPIKey, httpClient)

	// Result publisher
	var publisher route.ResultPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		producer := events.NewProducer(cfg.Kafka.Brokers, log)
		defer func() { _ = producer.Close() }()
		publisher = events.NewResultPublisher(producer, cfg.Kafka.Topic)
		log.Info("publishing results", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	fetchService := application.NewFetchService(
		directionsClient,
		repository.NewSpreadsheetResultWriter(log),
		publisher,
		cfg.OutputPath,
		cfg.PaceDelay,
		log,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if _, err := fetchService.Run(ctx, pairs); err != nil {
		log.Fatal("route fetch failed", zap.Error(err))
	}
}
