package alphapower

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/openyou/emokitten/dsp/filter/design"
	"github.com/openyou/emokitten/dsp/filter/iir"
	"github.com/openyou/emokitten/dsp/stream"
	"github.com/openyou/emokitten/eeg"
)

// recordingDisplay captures every Render call.
type recordingDisplay struct {
	labels      []string
	intensities []int
}

func (d *recordingDisplay) Render(label string, intensity int) {
	d.labels = append(d.labels, label)
	d.intensities = append(d.intensities, intensity)
}

// valueDevice replays fixed O1 values, then ends the feed.
type valueDevice struct {
	values []float64
	pos    int

	opened     bool
	closeCount int
}

func (d *valueDevice) Open(_ context.Context) error {
	d.opened = true
	return nil
}

func (d *valueDevice) Close() error {
	d.closeCount++
	return nil
}

func (d *valueDevice) NextPacket(ctx context.Context) (eeg.Packet, error) {
	if !d.opened {
		return nil, eeg.ErrDeviceNotOpen
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if d.pos >= len(d.values) {
		return nil, eeg.ErrFeedEnded
	}

	v := d.values[d.pos]
	d.pos++

	return eeg.Packet{"O1": v, "O2": -v}, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.StartupDelay = 0

	return cfg
}

// alphaValues synthesizes an alpha-band oscillation large enough to light
// up the display range.
func alphaValues(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 30 * math.Sin(2*math.Pi*10*float64(i)/128)
	}

	return out
}

func TestRunnerForwardsEveryTenthSample(t *testing.T) {
	values := alphaValues(600)

	dev := &valueDevice{values: values}
	disp := &recordingDisplay{}

	runner, err := NewRunner(testConfig(), dev, disp)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 600 envelope samples decimated by 10: indices 0, 10, ..., 590.
	if len(disp.intensities) != 60 {
		t.Fatalf("display received %d samples, want 60", len(disp.intensities))
	}

	// Replaying the same stages over the same values must reproduce the
	// forwarded subsequence exactly.
	bandpass, err := design.Butterworth(3, []float64{7, 12}, design.Bandpass, NyquistHz)
	if err != nil {
		t.Fatalf("Butterworth: %v", err)
	}

	lowpass, err := design.Butterworth(3, []float64{0.5}, design.Lowpass, NyquistHz)
	if err != nil {
		t.Fatalf("Butterworth: %v", err)
	}

	pipe := iir.NewStage(stream.Abs(iir.NewStage(stream.FromScalars(values), iir.New(bandpass))), iir.New(lowpass))

	for i := 0; ; i++ {
		y, err := pipe.Pull()
		if errors.Is(err, stream.ErrEndOfStream) {
			break
		}

		if err != nil {
			t.Fatalf("reference pull %d: %v", i, err)
		}

		if i%10 != 0 {
			continue
		}

		if want := Intensity(y[0]); disp.intensities[i/10] != want {
			t.Fatalf("forwarded sample %d: intensity %d, want %d", i/10, disp.intensities[i/10], want)
		}
	}

	for _, label := range disp.labels {
		if label != "O1" {
			t.Fatalf("label %q, want O1", label)
		}
	}

	for _, v := range disp.intensities {
		if v < 0 || v > 127 {
			t.Fatalf("intensity %d outside [0, 127]", v)
		}
	}

	if dev.closeCount != 1 {
		t.Fatalf("device closed %d times, want exactly once", dev.closeCount)
	}
}

func TestRunnerReleasesDeviceOnCancel(t *testing.T) {
	// Pace the feed so cancellation lands mid-stream.
	dev := eeg.NewSyntheticDevice(eeg.WithPacketInterval(time.Millisecond))
	disp := &recordingDisplay{}

	runner, err := NewRunner(testConfig(), dev, disp)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err = runner.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}

	if dev.CloseCount() != 1 {
		t.Fatalf("device closed %d times, want exactly once", dev.CloseCount())
	}
}

func TestRunnerAbortsOnOpenFailure(t *testing.T) {
	handshake := errors.New("dongle missing")
	dev := eeg.NewSyntheticDevice(eeg.WithOpenError(handshake))

	runner, err := NewRunner(testConfig(), dev, &recordingDisplay{})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	if err := runner.Run(context.Background()); !errors.Is(err, handshake) {
		t.Fatalf("Run = %v, want the handshake error", err)
	}

	if dev.CloseCount() != 0 {
		t.Fatalf("device closed %d times after failed open, want 0", dev.CloseCount())
	}
}

func TestRunnerUnknownElectrode(t *testing.T) {
	cfg := testConfig()
	cfg.Electrode = "XX"

	dev := &valueDevice{values: alphaValues(20)}

	runner, err := NewRunner(cfg, dev, &recordingDisplay{})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	err = runner.Run(context.Background())

	var unknown *eeg.UnknownChannelError
	if !errors.As(err, &unknown) {
		t.Fatalf("Run = %v, want UnknownChannelError", err)
	}

	if dev.closeCount != 1 {
		t.Fatalf("device closed %d times, want exactly once", dev.closeCount)
	}
}

func TestNewRunnerRejectsBadDesigns(t *testing.T) {
	cfg := testConfig()
	cfg.LowpassCutoffHz = 70 // above the 64 Hz Nyquist

	_, err := NewRunner(cfg, &valueDevice{}, &recordingDisplay{})
	if !errors.Is(err, design.ErrInvalidCutoff) {
		t.Fatalf("err = %v, want ErrInvalidCutoff", err)
	}

	cfg = testConfig()
	cfg.Electrode = ""

	if _, err := NewRunner(cfg, &valueDevice{}, &recordingDisplay{}); err == nil {
		t.Fatal("expected error for empty electrode")
	}
}
