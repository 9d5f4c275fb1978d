package score

import (
	"math"

	"github.com/avollmer/partita/constants"
	"github.com/avollmer/partita/model"
)

// Quantize snaps every event boundary to the nearest grid line. Each
// divisor contributes a grid of divisor steps per quarter note; the closest
// line over all grids wins, earlier divisors winning ties.
func Quantize(sc *model.Score, divisors []int) {
	if len(divisors) == 0 {
		return
	}
	for pi := range sc.Parts {
		events := sc.Parts[pi].Events
		for ei := range events {
			events[ei].Start = snap(events[ei].Start, divisors)
			events[ei].End = snap(events[ei].End, divisors)
		}
	}
}

func snap(t float64, divisors []int) float64 {
	best := t
	bestDist := math.Inf(1)
	for _, d := range divisors {
		if d < 1 {
			continue
		}
		step := constants.SecondsPerQuarter / float64(d)
		q := math.Round(t/step) * step
		if dist := math.Abs(q - t); dist < bestDist {
			bestDist = dist
			best = q
		}
	}
	return best
}
