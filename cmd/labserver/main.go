// Command labserver serves the harmonic lab page and its live WebSocket.
//
// Usage:
//
//	labserver [-addr :5006] [-seed 0] [-log-level info] [-dev] [-spectrum]
//	          [-spectrum-window hann] [-filter butterworth]
//
// Every flag falls back to an environment variable (LAB_ADDR, LAB_SEED,
// LAB_LOG_LEVEL, LAB_DEV, LAB_SPECTRUM, LAB_SPECTRUM_WINDOW, LAB_FILTER).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/innabyinna/ad-labs/internal/config"
	"github.com/innabyinna/ad-labs/internal/logging"
	"github.com/innabyinna/ad-labs/internal/server"
	"github.com/innabyinna/ad-labs/internal/webdemo"
)

func main() {
	cfg, err := config.Load("labserver", os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("labserver stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine, err := webdemo.NewEngine(
		webdemo.WithSeed(seed),
		webdemo.WithFilterKind(cfg.Filter),
		webdemo.WithSpectrum(cfg.Spectrum),
		webdemo.WithSpectrumWindow(cfg.Window),
		webdemo.WithLogger(logger.Named("engine")),
	)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting labserver",
		zap.String("addr", cfg.Addr),
		zap.Int64("seed", seed),
		zap.String("filter", string(cfg.Filter)),
		zap.Bool("spectrum", cfg.Spectrum),
		zap.Stringer("window", cfg.Window),
	)

	srv := server.New(engine, server.WithLogger(logger.Named("server")))
	return srv.Run(ctx, cfg.Addr)
}
