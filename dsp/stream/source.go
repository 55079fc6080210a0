package stream

import "context"

type sliceSource struct {
	samples []Sample
	pos     int
}

// FromSlice returns a finite stage yielding the given samples in order.
func FromSlice(samples []Sample) Stage {
	return &sliceSource{samples: samples}
}

// FromScalars returns a finite stage of width-1 samples, one per value.
func FromScalars(values []float64) Stage {
	samples := make([]Sample, len(values))
	for i, v := range values {
		samples[i] = Sample{v}
	}

	return FromSlice(samples)
}

func (s *sliceSource) Pull() (Sample, error) {
	if s.pos >= len(s.samples) {
		return nil, ErrEndOfStream
	}

	out := s.samples[s.pos]
	s.pos++

	return out, nil
}

type funcSource struct {
	fn func() (Sample, error)
}

// FromFunc returns a stage that delegates every pull to fn.
func FromFunc(fn func() (Sample, error)) Stage {
	return &funcSource{fn: fn}
}

func (s *funcSource) Pull() (Sample, error) {
	return s.fn()
}

type channelSource struct {
	ctx context.Context
	ch  <-chan Sample
}

// FromChannel returns a stage that receives samples from ch, blocking until
// one is available. A closed channel ends the stream; context cancellation
// ends it with the context error.
func FromChannel(ctx context.Context, ch <-chan Sample) Stage {
	return &channelSource{ctx: ctx, ch: ch}
}

func (s *channelSource) Pull() (Sample, error) {
	select {
	case <-s.ctx.Done():
		return nil, s.ctx.Err()
	case sample, ok := <-s.ch:
		if !ok {
			return nil, ErrEndOfStream
		}

		return sample, nil
	}
}
