package model

// Event is one timed musical occurrence on a part's timeline. Times are
// seconds on the score's absolute timeline; the interval is half-open
// [Start, End), so zero-length events touch nothing, not even themselves.
type Event struct {
	Pitch    uint8
	Velocity uint8
	Start    float64
	End      float64
}

// Overlaps reports whether the two events' intervals intersect.
// Events that merely touch at a boundary do not overlap.
func (e Event) Overlaps(other Event) bool {
	return e.Start < other.End && other.Start < e.End
}

// Shifted returns a copy of the event moved by the given offset.
func (e Event) Shifted(by float64) Event {
	e.Start += by
	e.End += by
	return e
}

// MetaEvent is a single-instant timeline element (time signature or key
// signature change). Raw holds the encoded MIDI meta message so it can be
// re-emitted without interpreting it.
type MetaEvent struct {
	Time float64
	Raw  []byte
}
