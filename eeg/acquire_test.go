package eeg

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/sync/errgroup"
)

// scriptedSource replays a fixed packet sequence, then a final error.
type scriptedSource struct {
	packets []Packet
	final   error
	pos     int
}

func (s *scriptedSource) NextPacket(_ context.Context) (Packet, error) {
	if s.pos >= len(s.packets) {
		return nil, s.final
	}

	pkt := s.packets[s.pos]
	s.pos++

	return pkt, nil
}

func TestAcquirePreservesOrder(t *testing.T) {
	src := &scriptedSource{final: ErrFeedEnded}
	for i := range 50 {
		src.packets = append(src.packets, Packet{"O1": float64(i)})
	}

	g, ctx := errgroup.WithContext(context.Background())
	packets := Acquire(ctx, g, src, 8)

	i := 0
	for pkt := range packets {
		if pkt["O1"] != float64(i) {
			t.Fatalf("packet %d carries %v, want %v", i, pkt["O1"], float64(i))
		}

		i++
	}

	if i != 50 {
		t.Fatalf("received %d packets, want 50", i)
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestAcquireForwardsDeviceError(t *testing.T) {
	deviceErr := errors.New("usb gone")
	src := &scriptedSource{packets: []Packet{{"O1": 1}}, final: deviceErr}

	g, ctx := errgroup.WithContext(context.Background())
	packets := Acquire(ctx, g, src, 1)

	count := 0
	for range packets {
		count++
	}

	if count != 1 {
		t.Fatalf("received %d packets before the failure, want 1", count)
	}

	if err := g.Wait(); !errors.Is(err, deviceErr) {
		t.Fatalf("Wait = %v, want the device error", err)
	}
}

func TestAcquireStopsOnCancel(t *testing.T) {
	dev := NewSyntheticDevice()
	if err := dev.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)

	packets := Acquire(gctx, g, dev, 1)

	// Consume a couple of packets, then cancel mid-stream.
	<-packets
	<-packets
	cancel()

	for range packets {
		// drain until the acquisition task closes the channel
	}

	if err := g.Wait(); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait = %v, want context.Canceled", err)
	}
}
