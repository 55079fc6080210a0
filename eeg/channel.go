package eeg

import (
	"context"

	"github.com/openyou/emokitten/dsp/stream"
)

// ChannelSource projects incoming packets onto a fixed, ordered electrode
// list, yielding one sample per packet. A single electrode gives width-1
// samples; several give one fixed-order value per name. Each Pull blocks
// until the acquisition task delivers the next packet.
type ChannelSource struct {
	ctx        context.Context
	packets    <-chan Packet
	electrodes []string
}

// NewChannelSource returns a stage reading from packets. At least one
// electrode name is required; the sample width equals the number of names.
func NewChannelSource(ctx context.Context, packets <-chan Packet, electrodes ...string) *ChannelSource {
	if len(electrodes) == 0 {
		panic("eeg: NewChannelSource needs at least one electrode")
	}

	names := make([]string, len(electrodes))
	copy(names, electrodes)

	return &ChannelSource{ctx: ctx, packets: packets, electrodes: names}
}

// Pull blocks for the next packet and projects it. A closed packet channel
// ends the stream; an electrode missing from a packet is fatal.
func (s *ChannelSource) Pull() (stream.Sample, error) {
	select {
	case <-s.ctx.Done():
		return nil, s.ctx.Err()
	case pkt, ok := <-s.packets:
		if !ok {
			return nil, stream.ErrEndOfStream
		}

		sample := make(stream.Sample, len(s.electrodes))
		for i, name := range s.electrodes {
			v, present := pkt[name]
			if !present {
				return nil, &UnknownChannelError{Name: name}
			}

			sample[i] = v
		}

		return sample, nil
	}
}
