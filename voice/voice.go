// Package voice partitions a flat set of timed events into the smallest
// number of internally non-overlapping voices it can manage with a greedy
// split-then-merge pass. The result is always a valid partition; the count
// approximates the true minimum (the maximum overlap depth) from above.
package voice

import (
	"sort"

	"github.com/avollmer/partita/model"
)

// A Voice holds events sorted by start time, no two of which overlap.
type Voice struct {
	Events []model.Event
}

// Result is the outcome of one partitioning run. SplitVoices is the voice
// count before the merge pass; the move counters are diagnostics only.
type Result struct {
	Voices      []Voice
	SplitVoices int
	SplitMoves  int
	MergeMoves  int
}

// Partition splits events into non-overlapping voices, then greedily merges
// voices back together where they fit. Zero events yield zero voices.
func Partition(events []model.Event) Result {
	if len(events) == 0 {
		return Result{}
	}

	sorted := make([]model.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	voices := [][]model.Event{sorted}
	var res Result

	// Split phase: walk each voice left to right and push every contiguous
	// run of events overlapping the kept prefix down to the next voice.
	// The reference is the kept event reaching furthest right, not just the
	// previous one: a short or zero-length event must not shadow a longer
	// earlier event still sounding. Newly filled voices join the worklist
	// and get the same treatment.
	for v := 0; v < len(voices); v++ {
		i := 0
		ref := voices[v][0]
		for i+1 < len(voices[v]) {
			next := voices[v][i+1]
			if !ref.Overlaps(next) {
				if next.End > ref.End {
					ref = next
				}
				i++
				continue
			}
			j := i + 1
			for j < len(voices[v]) && ref.Overlaps(voices[v][j]) {
				j++
			}
			if v+1 == len(voices) {
				voices = append(voices, nil)
			}
			voices[v+1] = append(voices[v+1], voices[v][i+1:j]...)
			voices[v] = append(voices[v][:i+1], voices[v][j:]...)
			res.SplitMoves += j - i - 1
			// Removal changed adjacency, rescan from the start.
			i = 0
			ref = voices[v][0]
		}
	}
	res.SplitVoices = len(voices)

	// Merge phase: from the last voice back, try to move each event into
	// the nearest earlier voice with room for it.
	for v := len(voices) - 1; v > 0; v-- {
		var relocated []int
		for e := len(voices[v]) - 1; e >= 0; e-- {
			ev := voices[v][e]
			for t := v - 1; t >= 0; t-- {
				if !hasSlot(voices[t], ev) {
					continue
				}
				voices[t] = insertOrdered(voices[t], ev)
				relocated = append(relocated, e)
				res.MergeMoves++
				break
			}
		}
		// relocated holds descending indexes, so plain deletion is safe.
		for _, idx := range relocated {
			voices[v] = append(voices[v][:idx], voices[v][idx+1:]...)
		}
	}

	for _, members := range voices {
		if len(members) > 0 {
			res.Voices = append(res.Voices, Voice{Events: members})
		}
	}
	return res
}

// hasSlot reports whether ev fits into the voice without overlapping any
// member. Members are sorted by start, so probing stops at the first member
// starting at or after ev's end.
func hasSlot(members []model.Event, ev model.Event) bool {
	for _, m := range members {
		if m.Start >= ev.End {
			return true
		}
		if m.Overlaps(ev) {
			return false
		}
	}
	return true
}

// insertOrdered adds ev to the voice keeping it sorted by start. The merge
// probe's early exit depends on this invariant.
func insertOrdered(members []model.Event, ev model.Event) []model.Event {
	at := sort.Search(len(members), func(i int) bool {
		return members[i].Start > ev.Start
	})
	members = append(members, model.Event{})
	copy(members[at+1:], members[at:])
	members[at] = ev
	return members
}
