package model

// Part is a named collection of events from one track.
type Part struct {
	Name    string
	Channel uint8
	Program uint8
	Events  []Event
}

// Range returns the lowest and highest pitch present in the part.
// A part with no events reports (0, 0).
func (p Part) Range() (low, high int) {
	if len(p.Events) == 0 {
		return 0, 0
	}
	low, high = int(p.Events[0].Pitch), int(p.Events[0].Pitch)
	for _, ev := range p.Events[1:] {
		if int(ev.Pitch) < low {
			low = int(ev.Pitch)
		}
		if int(ev.Pitch) > high {
			high = int(ev.Pitch)
		}
	}
	return low, high
}

// End returns the time the last event of the part finishes.
func (p Part) End() float64 {
	var end float64
	for _, ev := range p.Events {
		if ev.End > end {
			end = ev.End
		}
	}
	return end
}

// PartRange is the ambitus of one part, identified by part index.
type PartRange struct {
	Part int
	Low  int
	High int
}

// Score is the in-memory form of one MIDI file.
type Score struct {
	Parts          []Part
	TimeSignatures []MetaEvent
	KeySignatures  []MetaEvent
}

// End returns the time the last event of any part finishes.
func (s *Score) End() float64 {
	var end float64
	for _, p := range s.Parts {
		if pe := p.End(); pe > end {
			end = pe
		}
	}
	return end
}

// NoteCount returns the number of events over all parts.
func (s *Score) NoteCount() int {
	var n int
	for _, p := range s.Parts {
		n += len(p.Events)
	}
	return n
}

// PartRanges derives the ambitus of every part, in part order.
func (s *Score) PartRanges() []PartRange {
	res := make([]PartRange, 0, len(s.Parts))
	for i, p := range s.Parts {
		low, high := p.Range()
		res = append(res, PartRange{Part: i, Low: low, High: high})
	}
	return res
}
