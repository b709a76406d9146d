// Command siginfo computes one lab frame from flags and prints it.
//
// Usage:
//
//	siginfo [flags]
//
// Without -summary it prints every N-th sample as t, raw, filtered.
//
// Examples:
//
//	siginfo -amp 2 -freq 0.5 -no-noise
//	siginfo -filter median -window 7 -every 50
//	siginfo -cutoff 20 -noise-var 0.5 -summary
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/innabyinna/ad-labs/internal/webdemo"
	"github.com/innabyinna/ad-labs/stats/trace"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	def := webdemo.DefaultSettings(webdemo.FilterButterworth)

	fs := flag.NewFlagSet("siginfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	amp := fs.Float64("amp", def.Signal.Amplitude, "harmonic amplitude")
	freq := fs.Float64("freq", def.Signal.Frequency, "harmonic frequency in Hz")
	phase := fs.Float64("phase", def.Signal.Phase, "phase shift in radians, [0, 2*pi]")
	noiseMean := fs.Float64("noise-mean", def.Signal.NoiseMean, "noise mean")
	noiseVar := fs.Float64("noise-var", def.Signal.NoiseVariance, "noise variance")
	noNoise := fs.Bool("no-noise", false, "disable additive noise")
	filter := fs.String("filter", string(def.Filter.Kind), "filter: butterworth or median")
	sampleRate := fs.Float64("fs", def.Filter.SampleRate, "butterworth sample rate in Hz")
	cutoff := fs.Float64("cutoff", def.Filter.Cutoff, "butterworth cutoff in Hz")
	order := fs.Int("order", def.Filter.Order, "butterworth order")
	windowSize := fs.Int("window", def.Filter.WindowSize, "median window size (odd)")
	seed := fs.Int64("seed", 1, "noise seed")
	every := fs.Int("every", 100, "print every N-th sample")
	summary := fs.Bool("summary", false, "print trace statistics instead of samples")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: siginfo [flags]\n\n")
		fmt.Fprintf(stderr, "Computes a noisy harmonic and its filtered version on the lab time axis.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *every < 1 {
		fmt.Fprintf(stderr, "error: -every must be >= 1: %d\n", *every)
		return 2
	}

	kind, err := webdemo.ParseFilterKind(*filter)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	engine, err := webdemo.NewEngine(webdemo.WithSeed(*seed), webdemo.WithFilterKind(kind))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	s := engine.Settings()
	s.Signal.Amplitude = *amp
	s.Signal.Frequency = *freq
	s.Signal.Phase = *phase
	s.Signal.NoiseMean = *noiseMean
	s.Signal.NoiseVariance = *noiseVar
	s.Signal.NoiseEnabled = !*noNoise
	s.Filter.SampleRate = *sampleRate
	s.Filter.Cutoff = *cutoff
	s.Filter.Order = *order
	s.Filter.WindowSize = *windowSize

	frame, err := engine.OnEvent(webdemo.UpdateEvent(s))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if *summary {
		err = printSummary(stdout, frame)
	} else {
		err = printSamples(stdout, frame, *every)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to write output: %v\n", err)
		return 1
	}
	return 0
}

func printSamples(w io.Writer, f webdemo.Frame, every int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "i\tt [s]\traw\tfiltered\t\n"); err != nil {
		return err
	}
	for i := 0; i < len(f.Time); i += every {
		if _, err := fmt.Fprintf(tw, "%d\t%.4f\t%.6f\t%.6f\t\n", i, f.Time[i], f.Raw[i], f.Filtered[i]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printSummary(w io.Writer, f webdemo.Frame) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Trace\tLength\tMean\tStd\tRMS\tRMS [dB]\tMin\tMax\tPeak\tCrest\tZero X\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-----\t------\t----\t---\t---\t--------\t---\t---\t----\t-----\t------\n"); err != nil {
		return err
	}
	for _, row := range []struct {
		name string
		s    trace.Summary
	}{
		{"raw", f.RawSummary},
		{"filtered (" + string(f.Settings.Filter.Kind) + ")", f.FilteredSummary},
	} {
		s := row.s
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.6f\t%.6f\t%.2f\t%.6f\t%.6f\t%.6f\t%.4f\t%d\n",
			row.name, s.Length, s.Mean, s.StdDev, s.RMS, s.RMSdB, s.Min, s.Max, s.Peak, s.CrestFactor, s.ZeroCrossings,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
