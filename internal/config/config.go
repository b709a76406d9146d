// Package config loads labserver settings from flags with environment
// fallbacks.
package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/innabyinna/ad-labs/dsp/window"
	"github.com/innabyinna/ad-labs/internal/logging"
	"github.com/innabyinna/ad-labs/internal/webdemo"
)

// Environment variables consulted before flags are parsed.
const (
	EnvAddr     = "LAB_ADDR"
	EnvSeed     = "LAB_SEED"
	EnvLogLevel = "LAB_LOG_LEVEL"
	EnvFilter   = "LAB_FILTER"
	EnvDev      = "LAB_DEV"
	EnvSpectrum = "LAB_SPECTRUM"
	EnvWindow   = "LAB_SPECTRUM_WINDOW"
)

// Config holds everything cmd/labserver needs to start.
type Config struct {
	Addr        string
	Seed        int64 // 0 picks a time-based seed
	LogLevel    string
	Development bool
	Spectrum    bool
	Window      window.Type
	Filter      webdemo.FilterKind
}

// Default returns the built-in configuration with no environment applied.
func Default() Config {
	return Config{
		Addr:     ":5006",
		LogLevel: "info",
		Window:   window.TypeHann,
		Filter:   webdemo.FilterButterworth,
	}
}

// Load parses args (without the program name). Flags override environment
// variables, which override Default.
func Load(name string, args []string, output io.Writer) (Config, error) {
	def := Default()
	cfg := Config{}
	var filter, win string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.StringVar(&cfg.Addr, "addr", EnvOr(EnvAddr, def.Addr), "listen address")
	fs.Int64Var(&cfg.Seed, "seed", int64(EnvIntOr(EnvSeed, int(def.Seed))), "noise seed (0 = time based)")
	fs.StringVar(&cfg.LogLevel, "log-level", EnvOr(EnvLogLevel, def.LogLevel), "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Development, "dev", EnvBoolOr(EnvDev, def.Development), "console log output")
	fs.BoolVar(&cfg.Spectrum, "spectrum", EnvBoolOr(EnvSpectrum, def.Spectrum), "include magnitude spectra in frames")
	fs.StringVar(&win, "spectrum-window", EnvOr(EnvWindow, def.Window.String()), "spectrum taper: rectangular, hann, hamming or blackman")
	fs.StringVar(&filter, "filter", EnvOr(EnvFilter, string(def.Filter)), "initial filter: butterworth or median")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	kind, err := webdemo.ParseFilterKind(filter)
	if err != nil {
		return Config{}, err
	}
	cfg.Filter = kind

	if cfg.Window, err = window.ParseType(win); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields that are not checked by flag parsing.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := webdemo.ParseFilterKind(string(c.Filter)); err != nil {
		return err
	}
	return nil
}
