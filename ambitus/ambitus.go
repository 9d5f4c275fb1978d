// Package ambitus distributes parts over a fixed number of voice groups by
// pitch-range closeness, balanced against a target proportional distribution.
package ambitus

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/avollmer/partita/model"
)

var (
	ErrBadDistribution = errors.New("ambitus: voice distribution does not sum to 1.0")
	ErrTooFewParts     = errors.New("ambitus: fewer parts than voices")
)

// Group assigns every part to exactly one group index in [0, voiceNum).
// The distribution caps are soft: the first pass refuses a group whose
// share already exceeds its target, the probe fallback does not.
func Group(parts []model.PartRange, voiceNum int, distribution []float64) ([]int, error) {
	if voiceNum < 1 {
		return nil, fmt.Errorf("ambitus: voice number %v is not positive", voiceNum)
	}
	if len(distribution) != voiceNum {
		return nil, fmt.Errorf("ambitus: distribution has %v entries for %v voices",
			len(distribution), voiceNum)
	}
	var sum float64
	for _, p := range distribution {
		sum += p
	}
	if rest := 1.0 - sum; rest > 0.001 || rest < 0 {
		return nil, fmt.Errorf("%w (sum = %v)", ErrBadDistribution, sum)
	}
	if len(parts) == 0 {
		return nil, errors.New("ambitus: no parts to group")
	}
	if len(parts) < voiceNum {
		return nil, fmt.Errorf("%w (%v < %v)", ErrTooFewParts, len(parts), voiceNum)
	}

	intervalMin, intervalMax := parts[0].Low, parts[0].High
	for _, p := range parts[1:] {
		if p.Low < intervalMin {
			intervalMin = p.Low
		}
		if p.High > intervalMax {
			intervalMax = p.High
		}
	}
	intervalTotal := intervalMax - intervalMin

	assign := make([]int, len(parts))
	counts := make([]int, voiceNum)

	if intervalTotal == 0 {
		// Every part spans the same single pitch: closeness is undefined,
		// so everything starts in group 0 and redistribution fills the rest.
		for i := range parts {
			assign[i] = 0
		}
		counts[0] = len(parts)
		redistribute(assign, counts)
		return assign, nil
	}

	slice := int(math.Ceil(float64(intervalTotal) / float64(voiceNum)))

	for i, part := range parts {
		best := bestGroup(part, intervalMin, intervalTotal, slice, voiceNum)

		// The target group may already be over its share; probe outward,
		// flipping direction at either end of the group range.
		g := best
		up := true
		for float64(counts[g])/float64(len(parts)) > distribution[g] {
			if g == voiceNum-1 {
				up = false
			} else if g == 0 {
				up = true
			}
			if up {
				g++
			} else {
				g--
			}
		}
		assign[i] = g
		counts[g]++
	}

	redistribute(assign, counts)
	return assign, nil
}

// bestGroup ranks all group windows by closeness to the part's range and
// returns the best one. Ties keep the lower group index.
func bestGroup(part model.PartRange, intervalMin, intervalTotal, slice, voiceNum int) int {
	type ranked struct {
		group     int
		closeness float64
	}
	scores := make([]ranked, 0, voiceNum)
	for g := 0; g < voiceNum; g++ {
		winLow := intervalMin + slice*g + 1
		winHigh := intervalMin + slice*g + slice
		distance := abs(winLow-part.Low) + abs(winHigh-part.High)
		// Deliberately unclamped: extreme mismatches go negative.
		closeness := 1 - float64(distance)/float64(intervalTotal*2)
		scores = append(scores, ranked{group: g, closeness: closeness})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].closeness > scores[j].closeness
	})
	return scores[0].group
}

// redistribute moves one part at a time from the fullest group into the
// first empty one until no group is empty. Each move shrinks the maximum
// load, so this terminates whenever parts >= groups.
func redistribute(assign []int, counts []int) {
	for {
		empty := -1
		for g, c := range counts {
			if c == 0 {
				empty = g
				break
			}
		}
		if empty < 0 {
			return
		}
		fullest := 0
		for g, c := range counts {
			if c > counts[fullest] {
				fullest = g
			}
		}
		for i, g := range assign {
			if g == fullest {
				assign[i] = empty
				counts[fullest]--
				counts[empty]++
				break
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
