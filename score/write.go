package score

import (
	"math"
	"sort"

	"github.com/avollmer/partita/constants"
	"github.com/avollmer/partita/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// message emit order at the same tick: meta first, then note offs, then ons
const (
	orderMeta = iota
	orderNoteOff
	orderNoteOn
)

type timedMessage struct {
	tick  int64
	order int
	msg   smf.Message
}

// Write encodes the score with one track per part on a fixed
// 120 BPM / 960-ticks grid.
func Write(sc *model.Score, path string) error {
	mid := smf.NewSMF1()
	mid.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)

	for pi, part := range sc.Parts {
		var msgs []timedMessage

		if pi == 0 {
			msgs = append(msgs,
				timedMessage{order: orderMeta, msg: smf.MetaTempo(constants.DefaultBPM)},
				timedMessage{order: orderMeta, msg: smf.MetaMeter(4, 4)})
			for _, meta := range sc.TimeSignatures {
				msgs = append(msgs, timedMessage{
					tick:  tickAt(meta.Time),
					order: orderMeta,
					msg:   smf.Message(meta.Raw),
				})
			}
			for _, meta := range sc.KeySignatures {
				msgs = append(msgs, timedMessage{
					tick:  tickAt(meta.Time),
					order: orderMeta,
					msg:   smf.Message(meta.Raw),
				})
			}
		}
		if part.Name != "" {
			msgs = append(msgs, timedMessage{order: orderMeta,
				msg: smf.MetaTrackSequenceName(part.Name)})
		}
		msgs = append(msgs, timedMessage{order: orderMeta,
			msg: smf.Message(midi.ProgramChange(part.Channel, part.Program))})

		for _, ev := range part.Events {
			if ev.End <= ev.Start {
				// zero-length events carry no sound
				continue
			}
			msgs = append(msgs, timedMessage{
				tick:  tickAt(ev.Start),
				order: orderNoteOn,
				msg:   smf.Message(midi.NoteOn(part.Channel, ev.Pitch, ev.Velocity)),
			}, timedMessage{
				tick:  tickAt(ev.End),
				order: orderNoteOff,
				msg:   smf.Message(midi.NoteOff(part.Channel, ev.Pitch)),
			})
		}

		sort.SliceStable(msgs, func(i, j int) bool {
			if msgs[i].tick != msgs[j].tick {
				return msgs[i].tick < msgs[j].tick
			}
			return msgs[i].order < msgs[j].order
		})

		var track smf.Track
		var lastTick int64
		for _, tm := range msgs {
			track.Add(uint32(tm.tick-lastTick), tm.msg)
			lastTick = tm.tick
		}
		track.Close(0)
		mid.Add(track)
	}

	return mid.WriteFile(path)
}

// tickAt converts absolute seconds to ticks on the fixed output grid.
func tickAt(seconds float64) int64 {
	ticksPerSecond := float64(constants.TicksPerQuarter) / constants.SecondsPerQuarter
	return int64(math.Round(seconds * ticksPerSecond))
}
