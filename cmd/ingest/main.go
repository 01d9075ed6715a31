// Command ingest publishes the titles of a CSV dataset to Kafka so that
// analyze and vocabd can read them with dataset.source set to kafka.
//
// Usage:
//
//	go run ./cmd/ingest -file data/fake.csv [-config configs/development.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/articles"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	file := flag.String("file", "", "CSV dataset to publish (defaults to dataset.path)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if *file != "" {
		cfg.Dataset.Path = *file
	}
	if cfg.Dataset.Path == "" {
		slog.Error("no dataset given, pass -file or set dataset.path")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer := kafka.NewProducer(cfg.Kafka)
	defer producer.Close()
	slog.Info("kafka producer initialized", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)

	pub := articles.NewPublisher(producer, cfg.Kafka.BatchSize)
	n, err := pub.PublishCSV(ctx, articles.NewCSVFile(cfg.Dataset.Path, cfg.Dataset))
	if err != nil {
		slog.Error("publishing titles failed", "published", n, "error", err)
		producer.Close()
		os.Exit(1)
	}
	slog.Info("ingest complete", "published", n, "topic", cfg.Kafka.Topic)
}
