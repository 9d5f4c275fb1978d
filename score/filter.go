package score

import "github.com/avollmer/partita/model"

// Timed is a timeline element: either a note interval or a meta instant.
type Timed interface {
	model.Event | model.MetaEvent
}

// FilterRange keeps the elements intersecting the half-open window
// [winStart, winEnd) and shifts survivors so the window starts at zero.
// Events span an interval; meta events collapse to a single instant.
func FilterRange[T Timed](elements []T, winStart, winEnd float64) []T {
	var res []T
	for _, el := range elements {
		switch v := any(el).(type) {
		case model.Event:
			if v.End <= winStart || v.Start >= winEnd {
				continue
			}
			res = append(res, any(v.Shifted(-winStart)).(T))
		case model.MetaEvent:
			// an instant filters like a zero-length interval, so one
			// sitting exactly on the window start stays out (the split
			// driver carries the last seen signature instead)
			if v.Time <= winStart || v.Time >= winEnd {
				continue
			}
			v.Time -= winStart
			res = append(res, any(v).(T))
		}
	}
	return res
}
