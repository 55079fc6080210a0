// Command emokitten streams EEG channel data through an alpha-band power
// pipeline and renders the smoothed envelope as a terminal bar display.
//
// Usage:
//
//	emokitten <command> [flags]
//
// Commands:
//
//	alphastars   stream the alpha power envelope as rows of stars
//	filterinfo   print the magnitude response of the pipeline filters
//
// Examples:
//
//	emokitten alphastars
//	emokitten alphastars -electrode O2 -cutoff 1.0
//	emokitten alphastars -config emokitten.yaml -verbosity debug
//	emokitten filterinfo -step 0.5
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/openyou/emokitten/alphapower"
	"github.com/openyou/emokitten/eeg"
	"github.com/openyou/emokitten/internal/config"
)

const version = "0.2.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error

	switch os.Args[1] {
	case "alphastars":
		err = runAlphaStars(os.Args[2:])
	case "filterinfo":
		err = runFilterInfo(os.Args[2:])
	case "version", "-version", "--version":
		fmt.Println("emokitten", version)
	case "help", "-h", "-help", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: emokitten <command> [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  alphastars   stream the alpha power envelope as rows of stars\n")
	fmt.Fprintf(os.Stderr, "  filterinfo   print the magnitude response of the pipeline filters\n")
	fmt.Fprintf(os.Stderr, "  version      print the version\n\n")
	fmt.Fprintf(os.Stderr, "Run 'emokitten <command> -h' for command flags.\n")
}

func runAlphaStars(args []string) error {
	fs := flag.NewFlagSet("alphastars", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file (flags override its values)")
	electrode := fs.String("electrode", "", "electrode channel to process")
	cutoff := fs.Float64("cutoff", 0, "envelope lowpass cutoff in Hz")
	order := fs.Int("order", 0, "envelope lowpass filter order")
	verbosity := fs.String("verbosity", "", "log verbosity: quiet, info or debug")
	packets := fs.Int("packets", 0, "stop after this many packets (0 = run until interrupted)")
	seed := fs.Int64("seed", 1, "synthetic signal seed")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	if *electrode != "" {
		cfg.Electrode = *electrode
	}

	if *cutoff != 0 {
		cfg.LowpassCutoffHz = *cutoff
	}

	if *order != 0 {
		cfg.LowpassOrder = *order
	}

	if *verbosity != "" {
		cfg.Verbosity = config.Verbosity(*verbosity)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Verbosity.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []eeg.SyntheticOption{eeg.WithSeed(*seed)}
	if *packets > 0 {
		opts = append(opts, eeg.WithPacketLimit(*packets))
	}

	dev := eeg.NewSyntheticDevice(opts...)

	runCfg := alphapower.DefaultConfig()
	runCfg.Electrode = cfg.Electrode
	runCfg.LowpassCutoffHz = cfg.LowpassCutoffHz
	runCfg.LowpassOrder = cfg.LowpassOrder

	runner, err := alphapower.NewRunner(runCfg, dev, NewStarDisplay(os.Stdout))
	if err != nil {
		return err
	}

	err = runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		slog.Info("interrupted")
		return nil
	}

	return err
}
