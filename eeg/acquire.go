package eeg

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Acquire starts the background acquisition task on g and returns the
// channel it feeds. Packets flow through in strict arrival order; the
// bounded channel provides backpressure so the device is never read far
// ahead of the consumer.
//
// The channel is closed when the feed ends or the task stops. A device
// error stops the task and is reported through g.Wait; the consumer sees
// only the closed channel.
func Acquire(ctx context.Context, g *errgroup.Group, src PacketSource, buffer int) <-chan Packet {
	packets := make(chan Packet, buffer)

	g.Go(func() error {
		defer close(packets)

		for {
			pkt, err := src.NextPacket(ctx)
			if errors.Is(err, ErrFeedEnded) {
				return nil
			}

			if err != nil {
				return err
			}

			select {
			case packets <- pkt:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	return packets
}
