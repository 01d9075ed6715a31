package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/articles"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/articles/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/querylog"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/vocab"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/vocab/cache"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/vocab/handler"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/middleware"
	pkgredis "github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr, nil)
	stop()
	os.Exit(code)
}

// run serves until ctx is cancelled or startup fails and returns the process
// exit code. Every resource is released before it returns. When listening is
// non-nil it receives the bound API address.
func run(ctx context.Context, args []string, stderr io.Writer, listening chan<- string) int {
	fs := flag.NewFlagSet("vocabd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "configs/development.yaml", "path to config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	logger.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting vocabulary service", "port", cfg.Server.Port, "source", cfg.Dataset.Source)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewWithRegistry(reg, reg)
	checker := health.NewChecker(0)
	var built health.Flag
	checker.Register("vocabulary", built.Check("vocabulary"))

	var thresholdCache handler.AnswerCache
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(ctx, cfg.Redis, cfg.Retry)
		if err != nil {
			slog.Warn("redis unavailable, threshold caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			thresholdCache = cache.New(redisClient, cfg.Redis.CacheTTL, m)
			checker.Register("redis", health.OptionalPingCheck(redisClient))
			slog.Info("threshold cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	src, closeSrc, err := articles.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open dataset", "error", err)
		return 1
	}
	defer closeSrc()
	if p, ok := src.(health.Pinger); ok {
		checker.Register(cfg.Dataset.Source, health.PingCheck(p))
	}

	var tracker handler.Tracker
	if cfg.Kafka.QueryTopic != "" {
		queryCfg := cfg.Kafka
		queryCfg.Topic = cfg.Kafka.QueryTopic
		producer := kafka.NewProducer(queryCfg)
		defer producer.Close()
		collector := querylog.NewCollector(producer, 10000, cfg.Kafka.BatchSize, cfg.Kafka.QueryFlushInterval)
		// The HTTP server keeps answering while it drains after a signal, so
		// the collector runs until Close rather than until ctx is done.
		collector.Start(context.Background())
		defer collector.Close()
		tracker = collector
		slog.Info("query log enabled", "topic", queryCfg.Topic)
	}

	h := handler.New(thresholdCache, tracker, m)
	mux := http.NewServeMux()
	h.Routes(mux)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	server := &http.Server{
		Handler: middleware.Chain(mux,
			middleware.RequestID,
			middleware.Metrics(m),
			middleware.Timeout(cfg.Server.RequestTimeout),
		),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		slog.Error("failed to listen", "port", cfg.Server.Port, "error", err)
		return 1
	}
	if listening != nil {
		listening <- ln.Addr().String()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := vocab.Build(gctx, src, tokenizer.New(cfg.Tokenizer),
			vocab.WithMetrics(m),
			vocab.WithSpanLogging(cfg.Tracing.Enabled),
		)
		if err != nil {
			return fmt.Errorf("building vocabulary: %w", err)
		}
		h.SetVocabulary(v)
		built.Set(fmt.Sprintf("%d words from %d titles", v.Len(), v.Titles))
		return nil
	})
	g.Go(func() error {
		slog.Info("vocabulary service listening", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if cfg.Metrics.Enabled {
		shutdownMetrics := m.StartServer(cfg.Metrics.Port)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return shutdownMetrics(shutdownCtx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("vocabulary service failed", "error", err)
		return 1
	}
	slog.Info("vocabulary service stopped")
	return 0
}
