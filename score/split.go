package score

import (
	"math"

	"github.com/avollmer/partita/model"
)

// SplitByDuration slices the score into consecutive windows of the given
// length in seconds. Every split keeps the instruments of the original;
// windows without a signature change inherit the last one seen, placed at
// the window start.
func SplitByDuration(sc *model.Score, seconds int) []*model.Score {
	end := sc.End()

	var lastTimeSig, lastKeySig *model.MetaEvent
	if len(sc.TimeSignatures) > 0 {
		lastTimeSig = carried(sc.TimeSignatures[0])
	}
	if len(sc.KeySignatures) > 0 {
		lastKeySig = carried(sc.KeySignatures[0])
	}

	var splits []*model.Score
	for start := 0; start < int(math.Ceil(end)); start += seconds {
		winStart := float64(start)
		winEnd := math.Min(winStart+float64(seconds), end)

		split := &model.Score{}
		for _, part := range sc.Parts {
			split.Parts = append(split.Parts, model.Part{
				Name:    part.Name,
				Channel: part.Channel,
				Program: part.Program,
				Events:  FilterRange(part.Events, winStart, winEnd),
			})
		}

		timeSigs := FilterRange(sc.TimeSignatures, winStart, winEnd)
		if len(timeSigs) > 0 {
			lastTimeSig = carried(timeSigs[len(timeSigs)-1])
		} else if lastTimeSig != nil {
			timeSigs = []model.MetaEvent{*lastTimeSig}
		}
		split.TimeSignatures = timeSigs

		keySigs := FilterRange(sc.KeySignatures, winStart, winEnd)
		if len(keySigs) > 0 {
			lastKeySig = carried(keySigs[len(keySigs)-1])
		} else if lastKeySig != nil {
			keySigs = []model.MetaEvent{*lastKeySig}
		}
		split.KeySignatures = keySigs

		splits = append(splits, split)
	}
	return splits
}

// carried copies a signature change pinned to the start of later windows.
func carried(meta model.MetaEvent) *model.MetaEvent {
	copied := meta
	copied.Time = 0
	return &copied
}
