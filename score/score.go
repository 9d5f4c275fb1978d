// Package score converts between MIDI files and the in-memory model the
// core algorithms work on. All timing is flattened into absolute seconds on
// decode; encoding lays results back out on a fixed metric grid.
package score

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/avollmer/partita/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Load reads and decodes one MIDI file into a Score.
func Load(path string) (sc *model.Score, e error) {
	// the smf parser panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			sc, e = nil, fmt.Errorf("parsing midi file: %v", r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	mid, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}

	return fromSMF(mid), nil
}

type openNote struct {
	start    float64
	velocity uint8
}

// fromSMF walks every track with absolute ticks, pairing note starts and
// ends into events timed in seconds via the file's tempo map.
func fromSMF(mid *smf.SMF) *model.Score {
	var sc model.Score

	for ti, track := range mid.Tracks {
		part := model.Part{Name: fmt.Sprintf("track-%v", ti)}
		pressed := make(map[uint8]openNote)

		var absTicks int64
		var now float64
		for _, ev := range track {
			absTicks += int64(ev.Delta)
			now = float64(mid.TimeAt(absTicks)) / 1e6

			var ch, key, vel, prog uint8
			var num, denom, cpt, dsqpq uint8
			var name string
			switch {
			case ev.Message.GetNoteStart(&ch, &key, &vel):
				if open, ok := pressed[key]; ok {
					// retriggered before release, close the old note here
					part.Events = append(part.Events, model.Event{
						Pitch:    key,
						Velocity: open.velocity,
						Start:    open.start,
						End:      now,
					})
				}
				pressed[key] = openNote{start: now, velocity: vel}
				part.Channel = ch
			case ev.Message.GetNoteEnd(&ch, &key):
				if open, ok := pressed[key]; ok {
					part.Events = append(part.Events, model.Event{
						Pitch:    key,
						Velocity: open.velocity,
						Start:    open.start,
						End:      now,
					})
					delete(pressed, key)
				}
			case ev.Message.GetProgramChange(&ch, &prog):
				part.Program = prog
			case ev.Message.GetMetaTrackName(&name):
				if name != "" {
					part.Name = name
				}
			case ev.Message.GetMetaTimeSig(&num, &denom, &cpt, &dsqpq):
				sc.TimeSignatures = append(sc.TimeSignatures, model.MetaEvent{
					Time: now,
					Raw:  []byte(ev.Message),
				})
			case ev.Message.Is(smf.MetaKeySigMsg):
				sc.KeySignatures = append(sc.KeySignatures, model.MetaEvent{
					Time: now,
					Raw:  []byte(ev.Message),
				})
			}
		}

		// close anything still sounding at end of track
		for _, key := range sortedKeys(pressed) {
			open := pressed[key]
			part.Events = append(part.Events, model.Event{
				Pitch:    key,
				Velocity: open.velocity,
				Start:    open.start,
				End:      now,
			})
		}

		sort.SliceStable(part.Events, func(i, j int) bool {
			return part.Events[i].Start < part.Events[j].Start
		})
		sc.Parts = append(sc.Parts, part)
	}

	return &sc
}

func sortedKeys(m map[uint8]openNote) []uint8 {
	keys := make([]uint8, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
