package voice

import (
	"fmt"
	"testing"

	"github.com/avollmer/partita/model"
	"github.com/stretchr/testify/assert"
)

func ev(pitch uint8, start, end float64) model.Event {
	return model.Event{Pitch: pitch, Start: start, End: end}
}

func allEvents(res Result) []model.Event {
	var events []model.Event
	for _, v := range res.Voices {
		events = append(events, v.Events...)
	}
	return events
}

// maxOverlapDepth is the interval graph's clique number: the largest number
// of events sounding at any single instant.
func maxOverlapDepth(events []model.Event) int {
	depth := 0
	for _, a := range events {
		n := 0
		for _, b := range events {
			if b.Start <= a.Start && a.Start < b.End {
				n++
			}
		}
		if n > depth {
			depth = n
		}
	}
	return depth
}

func assertValidPartition(t *testing.T, input []model.Event, res Result) {
	t.Helper()
	assert := assert.New(t)

	for vi, v := range res.Voices {
		for i := 0; i < len(v.Events); i++ {
			if i > 0 {
				assert.LessOrEqual(v.Events[i-1].Start, v.Events[i].Start,
					"voice %v not sorted by start", vi)
			}
			for j := i + 1; j < len(v.Events); j++ {
				assert.False(v.Events[i].Overlaps(v.Events[j]),
					"voice %v holds overlapping events %v and %v", vi, i, j)
			}
		}
	}

	count := func(events []model.Event) map[model.Event]int {
		m := make(map[model.Event]int)
		for _, e := range events {
			m[e]++
		}
		return m
	}
	assert.Equal(count(input), count(allEvents(res)), "events lost or duplicated")

	assert.GreaterOrEqual(len(res.Voices), maxOverlapDepth(input))
	assert.LessOrEqual(len(res.Voices), res.SplitVoices)
}

func TestPartitionEmpty(t *testing.T) {
	res := Partition(nil)

	assert := assert.New(t)
	assert.Empty(res.Voices)
	assert.Equal(0, res.SplitMoves)
	assert.Equal(0, res.MergeMoves)
}

func TestPartitionNonOverlappingStaysWhole(t *testing.T) {
	events := []model.Event{ev(0, 0, 1), ev(1, 1, 2), ev(2, 3, 4)}
	res := Partition(events)

	assert := assert.New(t)
	assert.Len(res.Voices, 1)
	assert.Equal(events, res.Voices[0].Events)
	assert.Equal(0, res.SplitMoves)
	assert.Equal(0, res.MergeMoves)
}

func TestPartitionSplitsOverlaps(t *testing.T) {
	// (0,0,4),(1,2,6),(2,5,9): the middle event overlaps both neighbors'
	// span boundaries from within, the outer two never overlap each other.
	events := []model.Event{ev(0, 0, 4), ev(1, 2, 6), ev(2, 5, 9)}
	res := Partition(events)

	assert := assert.New(t)
	assert.Len(res.Voices, 2)
	assert.Equal([]model.Event{ev(0, 0, 4), ev(2, 5, 9)}, res.Voices[0].Events)
	assert.Equal([]model.Event{ev(1, 2, 6)}, res.Voices[1].Events)
	assertValidPartition(t, events, res)
}

func TestPartitionChordYieldsOneVoicePerNote(t *testing.T) {
	var events []model.Event
	for i := 0; i < 4; i++ {
		events = append(events, ev(uint8(60+i), 0, 4))
	}
	res := Partition(events)

	assert := assert.New(t)
	assert.Len(res.Voices, 4)
	// 3 notes pushed from the first voice, 2 from the second, 1 from the third
	assert.Equal(6, res.SplitMoves)
	assert.Equal(0, res.MergeMoves)
	assertValidPartition(t, events, res)
}

func TestPartitionZeroLengthEventsNeverConflict(t *testing.T) {
	events := []model.Event{
		ev(0, 0, 4),
		ev(1, 4, 4), // zero length on a boundary
		ev(2, 4, 4), // identical zero-length twin
		ev(3, 4, 8), // interval starting on the same boundary
	}
	res := Partition(events)

	assert := assert.New(t)
	assert.Len(res.Voices, 1)
	assert.Equal(0, res.SplitMoves)
	assertValidPartition(t, events, res)
}

func TestPartitionZeroLengthCannotShadowOverlap(t *testing.T) {
	// the zero-length event between the two long ones is disjoint from
	// both, but the long ones overlap each other and must be separated
	events := []model.Event{ev(0, 5, 9), ev(1, 5, 5), ev(2, 5, 10)}
	res := Partition(events)

	assert := assert.New(t)
	assert.Len(res.Voices, 2)
	assert.Equal([]model.Event{ev(0, 5, 9), ev(1, 5, 5)}, res.Voices[0].Events)
	assert.Equal([]model.Event{ev(2, 5, 10)}, res.Voices[1].Events)
	assertValidPartition(t, events, res)
}

func TestPartitionZeroLengthChainCannotShadowOverlaps(t *testing.T) {
	// several zero-length events at the shared start widen the gap between
	// the proper events; all three proper events still pairwise overlap and
	// need a voice each
	events := []model.Event{
		ev(0, 5, 9),
		ev(1, 5, 5),
		ev(2, 5, 5),
		ev(3, 5, 10),
		ev(4, 5, 12),
	}
	res := Partition(events)
	assertValidPartition(t, events, res)

	assert := assert.New(t)
	assert.Len(res.Voices, 3)
	assert.Equal([]model.Event{ev(0, 5, 9), ev(1, 5, 5), ev(2, 5, 5)},
		res.Voices[0].Events)
	assert.Equal([]model.Event{ev(3, 5, 10)}, res.Voices[1].Events)
	assert.Equal([]model.Event{ev(4, 5, 12)}, res.Voices[2].Events)
}

func TestPartitionMixedScore(t *testing.T) {
	events := []model.Event{
		ev(60, 0, 4), ev(64, 0, 4), ev(67, 0, 4), // opening chord
		ev(62, 2, 6), ev(65, 5, 9), // passing motion
		ev(48, 4, 8), ev(50, 8, 8), // bass plus grace note
		ev(72, 6, 7), ev(74, 7, 8), ev(76, 8, 10), // melody run
	}
	res := Partition(events)
	assertValidPartition(t, events, res)
}

func TestPartitionIsIdempotentPerVoice(t *testing.T) {
	events := []model.Event{
		ev(60, 0, 4), ev(64, 0, 4), ev(62, 2, 6),
		ev(65, 5, 9), ev(48, 4, 8), ev(72, 6, 7),
	}
	res := Partition(events)

	assert := assert.New(t)
	for vi, v := range res.Voices {
		again := Partition(v.Events)
		assert.Len(again.Voices, 1, "voice %v split apart on rerun", vi)
		assert.Equal(v.Events, again.Voices[0].Events)
		assert.Equal(0, again.SplitMoves)
		assert.Equal(0, again.MergeMoves)
	}
}

func TestPartitionIsDeterministic(t *testing.T) {
	events := []model.Event{
		ev(60, 0, 4), ev(64, 0, 4), ev(62, 2, 6),
		ev(65, 5, 9), ev(48, 4, 8), ev(72, 6, 7),
	}
	first := Partition(events)
	second := Partition(events)
	assert.Equal(t, first, second)
}

func TestPartitionVoicesStaySortedUnderLoad(t *testing.T) {
	// layered rounds of overlapping intervals exercise the ordered insert
	var events []model.Event
	for round := 0; round < 5; round++ {
		for i := 0; i < 6; i++ {
			start := float64(i) + float64(round)*0.5
			events = append(events, ev(uint8(round*6+i), start, start+2))
		}
	}
	res := Partition(events)
	assertValidPartition(t, events, res)
}

func TestPartitionTiesKeepInputOrder(t *testing.T) {
	// same start: the stable sort must keep input order, so the first
	// event stays in the first voice
	events := []model.Event{ev(1, 0, 2), ev(2, 0, 2)}
	res := Partition(events)

	assert := assert.New(t)
	assert.Len(res.Voices, 2)
	assert.Equal(uint8(1), res.Voices[0].Events[0].Pitch)
	assert.Equal(uint8(2), res.Voices[1].Events[0].Pitch)
}

func TestHasSlotProbesInStartOrder(t *testing.T) {
	members := []model.Event{ev(0, 0, 2), ev(0, 4, 6)}

	cases := []struct {
		event model.Event
		want  bool
	}{
		{ev(9, 2, 4), true},   // fits the gap exactly
		{ev(9, 6, 8), true},   // fits after everything
		{ev(9, 1, 3), false},  // overlaps the first member
		{ev(9, 3, 5), false},  // overlaps the second member
		{ev(9, 2, 2), true},   // zero length always fits
		{ev(9, 0, 10), false}, // covers everything
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v-%v", c.event.Start, c.event.End), func(t *testing.T) {
			assert.Equal(t, c.want, hasSlot(members, c.event))
		})
	}
}

func TestInsertOrderedKeepsStartOrder(t *testing.T) {
	members := []model.Event{ev(0, 0, 1), ev(0, 4, 5)}
	members = insertOrdered(members, ev(9, 2, 3))
	members = insertOrdered(members, ev(8, 6, 7))
	members = insertOrdered(members, ev(7, 0, 0))

	var starts []float64
	for _, m := range members {
		starts = append(starts, m.Start)
	}
	assert.Equal(t, []float64{0, 0, 2, 4, 6}, starts)
}
