package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/openyou/emokitten/alphapower"
	"github.com/openyou/emokitten/dsp/core"
	"github.com/openyou/emokitten/dsp/filter/design"
	"github.com/openyou/emokitten/dsp/response"
)

func runFilterInfo(args []string) error {
	fs := flag.NewFlagSet("filterinfo", flag.ExitOnError)
	cutoff := fs.Float64("cutoff", 0.5, "envelope lowpass cutoff in Hz")
	order := fs.Int("order", 3, "envelope lowpass filter order")
	points := fs.Int("points", 4096, "FFT length for the response (rounded up to a power of two)")
	step := fs.Float64("step", 1.0, "frequency step of the printed table in Hz")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *step <= 0 {
		return fmt.Errorf("filterinfo: step %v Hz, want > 0", *step)
	}

	bandpass, err := design.Butterworth(3, []float64{7, 12}, design.Bandpass, alphapower.NyquistHz)
	if err != nil {
		return fmt.Errorf("filterinfo: bandpass design: %w", err)
	}

	lowpass, err := design.Butterworth(*order, []float64{*cutoff}, design.Lowpass, alphapower.NyquistHz)
	if err != nil {
		return fmt.Errorf("filterinfo: envelope design: %w", err)
	}

	bandMag, err := response.Magnitude(bandpass, *points)
	if err != nil {
		return fmt.Errorf("filterinfo: bandpass response: %w", err)
	}

	envMag, err := response.Magnitude(lowpass, *points)
	if err != nil {
		return fmt.Errorf("filterinfo: envelope response: %w", err)
	}

	size := response.NextPow2(*points)
	sampleRate := 2 * alphapower.NyquistHz
	binHz := sampleRate / float64(size)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tBandpass\tBandpass [dB]\tEnvelope\tEnvelope [dB]\n")
	fmt.Fprintf(tw, "---------\t--------\t-------------\t--------\t-------------\n")

	for f := 0.0; f <= alphapower.NyquistHz; f += *step {
		bin := int(math.Round(f / binHz))
		if bin >= len(bandMag) {
			bin = len(bandMag) - 1
		}

		fmt.Fprintf(tw, "%.2f\t%.6f\t%.2f\t%.6f\t%.2f\n",
			f,
			bandMag[bin],
			core.LinearToDB(bandMag[bin]),
			envMag[bin],
			core.LinearToDB(envMag[bin]),
		)
	}

	return tw.Flush()
}
