package stream

import "fmt"

type decimateStage struct {
	src     Stage
	factor  int
	started bool
}

// Decimate keeps every factor-th sample of the stream (upstream indices 0,
// factor, 2*factor, ...). Skipped samples are still pulled through the
// upstream stages, so stateful stages above see the full-rate stream.
func Decimate(src Stage, factor int) Stage {
	if factor < 1 {
		panic(fmt.Sprintf("stream: decimation factor %d, want >= 1", factor))
	}

	return &decimateStage{src: src, factor: factor}
}

func (d *decimateStage) Pull() (Sample, error) {
	skip := 0
	if d.started {
		skip = d.factor - 1
	}

	d.started = true

	for range skip {
		if _, err := d.src.Pull(); err != nil {
			return nil, err
		}
	}

	return d.src.Pull()
}
