// Package alphapower assembles the alpha-band power pipeline: one
// electrode's amplitude stream is bandpassed to the alpha band, rectified,
// smoothed by a lowpass envelope filter, and forwarded — decimated — to a
// display sink.
package alphapower

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openyou/emokitten/dsp/filter/design"
	"github.com/openyou/emokitten/dsp/filter/iir"
	"github.com/openyou/emokitten/dsp/stream"
	"github.com/openyou/emokitten/eeg"
)

// Fixed acquisition parameters of the Emotiv headset: 128 Hz sampling,
// and the alpha band the pipeline always extracts. Only the envelope
// smoother is user-configurable.
const (
	NyquistHz = 64.0

	bandLowHz  = 7.0
	bandHighHz = 12.0
	bandOrder  = 3

	// Every 10th envelope sample reaches the display; the filters still
	// see the full-rate stream.
	displayDecimation = 10

	// Acquisition-to-filtering handoff buffer.
	packetBuffer = 16
)

// DefaultStartupDelay leaves the headset time to finish its handshake
// before the first pull.
const DefaultStartupDelay = 1500 * time.Millisecond

// Display renders one intensity value per call. Implementations decide
// the presentation; intensity is always within [0, 127].
type Display interface {
	Render(label string, intensity int)
}

// Config holds the construction-time pipeline settings.
type Config struct {
	// Electrode names the channel to process.
	Electrode string

	// LowpassCutoffHz and LowpassOrder shape the envelope smoother.
	LowpassCutoffHz float64
	LowpassOrder    int

	// StartupDelay is waited after spawning acquisition, before the first
	// pull. Zero disables the wait.
	StartupDelay time.Duration
}

// DefaultConfig returns the settings the CLI ships with: the O1 occipital
// electrode and a 0.5 Hz order-3 envelope smoother.
func DefaultConfig() Config {
	return Config{
		Electrode:       "O1",
		LowpassCutoffHz: 0.5,
		LowpassOrder:    3,
		StartupDelay:    DefaultStartupDelay,
	}
}

// Runner owns one pipeline instance: the device handle for its lifetime,
// both filter designs, and the display sink. A Runner is not reusable;
// construct a new one to retry after a failure.
type Runner struct {
	cfg  Config
	dev  eeg.Device
	disp Display

	bandpass design.Coefficients
	lowpass  design.Coefficients
}

// NewRunner designs both filters up front and returns a ready-to-run
// pipeline. Design errors (invalid cutoff, ill-conditioned filter) abort
// construction.
func NewRunner(cfg Config, dev eeg.Device, disp Display) (*Runner, error) {
	if cfg.Electrode == "" {
		return nil, fmt.Errorf("alphapower: no electrode configured")
	}

	bandpass, err := design.Butterworth(bandOrder, []float64{bandLowHz, bandHighHz}, design.Bandpass, NyquistHz)
	if err != nil {
		return nil, fmt.Errorf("alphapower: bandpass design: %w", err)
	}

	lowpass, err := design.Butterworth(cfg.LowpassOrder, []float64{cfg.LowpassCutoffHz}, design.Lowpass, NyquistHz)
	if err != nil {
		return nil, fmt.Errorf("alphapower: envelope design: %w", err)
	}

	return &Runner{
		cfg:      cfg,
		dev:      dev,
		disp:     disp,
		bandpass: bandpass,
		lowpass:  lowpass,
	}, nil
}

// Run opens the device, streams until the feed ends or ctx is cancelled,
// and releases the device exactly once on every exit path. It returns nil
// on normal end of stream, the context error on cancellation, and the
// underlying failure otherwise.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.dev.Open(ctx); err != nil {
		return fmt.Errorf("alphapower: open device: %w", err)
	}

	defer func() {
		if err := r.dev.Close(); err != nil {
			slog.Warn("device close failed", "err", err)
		}
	}()

	slog.Info("pipeline starting",
		"electrode", r.cfg.Electrode,
		"band_hz", fmt.Sprintf("%g-%g", bandLowHz, bandHighHz),
		"envelope_cutoff_hz", r.cfg.LowpassCutoffHz,
		"envelope_order", r.cfg.LowpassOrder,
	)

	g, gctx := errgroup.WithContext(ctx)
	packets := eeg.Acquire(gctx, g, r.dev, packetBuffer)

	g.Go(func() error {
		return r.process(gctx, packets)
	})

	return g.Wait()
}

func (r *Runner) process(ctx context.Context, packets <-chan eeg.Packet) error {
	if r.cfg.StartupDelay > 0 {
		timer := time.NewTimer(r.cfg.StartupDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	source := eeg.NewChannelSource(ctx, packets, r.cfg.Electrode)
	band := iir.NewStage(source, iir.New(r.bandpass))
	rectified := stream.Abs(band)
	envelope := iir.NewStage(rectified, iir.New(r.lowpass))
	display := stream.Decimate(envelope, displayDecimation)

	for {
		y, err := display.Pull()
		if errors.Is(err, stream.ErrEndOfStream) {
			slog.Info("feed ended")
			return nil
		}

		if err != nil {
			return err
		}

		intensity := Intensity(y[0])
		slog.Debug("envelope", "value", y[0], "intensity", intensity)
		r.disp.Render(r.cfg.Electrode, intensity)
	}
}
