package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/articles"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/articles/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/prompt"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/vocab"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process globals. Prompts, results and ERROR lines
// go to stdout; logs go to stderr.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config file")
	file := fs.String("file", "", "CSV dataset path (skips the File: prompt)")
	rank := fs.String("n", "", "rank to threshold at (skips the N: prompt)")
	source := fs.String("source", "", "dataset source: csv, postgres or kafka")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	if *source != "" {
		cfg.Dataset.Source = *source
	}
	if *file != "" {
		cfg.Dataset.Path = *file
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 1
	}
	logger.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)

	session := prompt.NewSession(stdin, stdout)
	if cfg.Dataset.Source == config.SourceCSV && cfg.Dataset.Path == "" {
		path, err := session.AskPath()
		if err != nil && !errors.Is(err, io.EOF) {
			slog.Error("reading dataset path", "error", err)
			return 1
		}
		cfg.Dataset.Path = path
		if path == "" {
			fmt.Fprintln(stdout, "ERROR: Could not open file ")
			return 1
		}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdown := m.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(shutdownCtx)
		}()
	}

	src, closeSrc, err := articles.Open(ctx, cfg)
	if err != nil {
		session.Fail(err, 0)
		return 1
	}
	defer closeSrc()

	v, err := vocab.Build(ctx, src, tokenizer.New(cfg.Tokenizer),
		vocab.WithMetrics(m),
		vocab.WithSpanLogging(cfg.Tracing.Enabled),
	)
	if err != nil {
		slog.Debug("build failed", "error", err)
		session.Fail(err, 0)
		return 1
	}

	var n int
	if *rank != "" {
		n, err = prompt.ParseRank(*rank)
	} else {
		n, err = session.AskRank()
	}
	if err != nil {
		session.Fail(err, v.Len())
		return 1
	}

	selected, err := v.Select(n)
	if err != nil {
		session.Fail(err, v.Len())
		return 1
	}
	if err := vocab.Render(stdout, selected); err != nil {
		slog.Error("writing results", "error", err)
		return 1
	}
	return 0
}
