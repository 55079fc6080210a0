package eeg

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// Electrodes lists the 14 electrode names of the Emotiv headset in its
// fixed packet order.
var Electrodes = []string{
	"AF3", "F7", "F3", "FC5", "T7", "P7", "O1", "O2",
	"P8", "T8", "FC6", "F4", "F8", "AF4",
}

// ErrDeviceNotOpen is returned when packets are requested before a
// successful Open.
var ErrDeviceNotOpen = errors.New("eeg: device not open")

// syntheticConfig holds options for NewSyntheticDevice.
type syntheticConfig struct {
	interval time.Duration
	limit    int
	seed     int64
	openErr  error
}

// SyntheticOption configures a SyntheticDevice.
type SyntheticOption func(*syntheticConfig)

// WithPacketInterval paces NextPacket to one packet per d. Zero (the
// default) delivers packets as fast as they are pulled, which is what
// tests want.
func WithPacketInterval(d time.Duration) SyntheticOption {
	return func(cfg *syntheticConfig) { cfg.interval = d }
}

// WithPacketLimit ends the feed after n packets. Zero means unlimited.
func WithPacketLimit(n int) SyntheticOption {
	return func(cfg *syntheticConfig) { cfg.limit = n }
}

// WithSeed fixes the noise generator seed for reproducible runs.
func WithSeed(seed int64) SyntheticOption {
	return func(cfg *syntheticConfig) { cfg.seed = seed }
}

// WithOpenError makes Open fail with err, for exercising startup failure
// paths.
func WithOpenError(err error) SyntheticOption {
	return func(cfg *syntheticConfig) { cfg.openErr = err }
}

// SyntheticDevice generates Emotiv-like packets at 128 Hz: a 10 Hz alpha
// oscillation on the occipital electrodes, slowly amplitude-modulated so
// the rendered envelope sweeps its display range, plus white noise on
// every channel. It stands in for hardware in the demo binary and in
// tests.
//
// Like a real headset handle, a SyntheticDevice is single-owner: no
// internal locking.
type SyntheticDevice struct {
	cfg syntheticConfig
	rng *rand.Rand

	n          int
	opened     bool
	closeCount int
}

// NewSyntheticDevice returns an unopened synthetic headset.
func NewSyntheticDevice(opts ...SyntheticOption) *SyntheticDevice {
	cfg := syntheticConfig{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &SyntheticDevice{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.seed)),
	}
}

const (
	sampleRateHz = 128.0
	alphaFreqHz  = 10.0

	// Amplitude sweep covering the display's 0..127 intensity range once
	// the rectified envelope settles.
	alphaModFreqHz = 0.05
	alphaMinAmp    = 5.0
	alphaMaxAmp    = 35.0

	noiseAmp = 2.0
)

// Open performs the simulated handshake.
func (d *SyntheticDevice) Open(_ context.Context) error {
	if d.cfg.openErr != nil {
		return d.cfg.openErr
	}

	d.opened = true

	return nil
}

// Close releases the simulated handle. CloseCount exposes how often this
// happened so tests can assert exactly-once release.
func (d *SyntheticDevice) Close() error {
	d.closeCount++
	d.opened = false

	return nil
}

// CloseCount reports how many times Close has been called.
func (d *SyntheticDevice) CloseCount() int {
	return d.closeCount
}

// NextPacket synthesizes the next frame, pacing delivery when a packet
// interval is configured.
func (d *SyntheticDevice) NextPacket(ctx context.Context) (Packet, error) {
	if !d.opened {
		return nil, ErrDeviceNotOpen
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if d.cfg.limit > 0 && d.n >= d.cfg.limit {
		return nil, ErrFeedEnded
	}

	if d.cfg.interval > 0 {
		timer := time.NewTimer(d.cfg.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	t := float64(d.n) / sampleRateHz
	d.n++

	mod := 0.5 - 0.5*math.Cos(2*math.Pi*alphaModFreqHz*t)
	amp := alphaMinAmp + (alphaMaxAmp-alphaMinAmp)*mod
	alpha := amp * math.Sin(2*math.Pi*alphaFreqHz*t)

	pkt := make(Packet, len(Electrodes))
	for _, name := range Electrodes {
		v := noiseAmp * (d.rng.Float64()*2 - 1)
		if name == "O1" || name == "O2" {
			v += alpha
		}

		pkt[name] = v
	}

	return pkt, nil
}
