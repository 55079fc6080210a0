// Package eeg adapts a sensor packet feed into the stream model used by
// the filtering pipeline.
//
// The hardware driver sits behind the PacketSource interface: a blocking
// "next packet" primitive delivering one value per named electrode. The
// package makes no assumption about driver-side buffering beyond
// "eventually returns the next packet or blocks".
package eeg

import (
	"context"
	"errors"
	"fmt"
)

// Packet is one sensor frame: a mapping from electrode name to the
// measured amplitude.
type Packet map[string]float64

// PacketSource delivers sensor packets in arrival order. NextPacket blocks
// until a packet is available, the feed ends, or ctx is cancelled.
type PacketSource interface {
	NextPacket(ctx context.Context) (Packet, error)
}

// Device is a packet source with an explicit open/close lifecycle. The
// handle must be released exactly once regardless of how a session ends;
// the pipeline owns that responsibility.
type Device interface {
	PacketSource

	// Open performs the hardware handshake. Failure must surface to the
	// caller before any sample is pulled; a pipeline never starts against
	// a device that failed to open.
	Open(ctx context.Context) error

	// Close releases the device handle.
	Close() error
}

// ErrFeedEnded is returned by NextPacket when the feed has delivered its
// final packet. It signals normal termination, not a failure.
var ErrFeedEnded = errors.New("eeg: feed ended")

// UnknownChannelError reports an electrode name absent from a packet.
// Missing channels are never fabricated or interpolated; the error is
// fatal for the pipeline instance.
type UnknownChannelError struct {
	Name string
}

func (e *UnknownChannelError) Error() string {
	return fmt.Sprintf("eeg: channel %q missing from packet", e.Name)
}
