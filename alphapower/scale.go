package alphapower

import (
	"math"

	"github.com/openyou/emokitten/dsp/core"
)

// Display intensity mapping: the smoothed envelope is stretched onto the
// 7-bit range the display sink accepts, with values outside it clipped.
const (
	displayGain   = 10.0
	displayOffset = -60.0
	intensityMax  = 127
)

// Intensity maps one envelope value onto the display range [0, 127].
func Intensity(y float64) int {
	return int(core.Clamp(math.Round(displayGain*y+displayOffset), 0, intensityMax))
}
