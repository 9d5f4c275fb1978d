package score

import "github.com/avollmer/partita/model"

// FitOctave moves a pitch by whole octaves until it lies inside
// [low, high]. Windows narrower than an octave keep the pitch above low.
func FitOctave(pitch, low, high int) int {
	for pitch < low {
		pitch += 12
	}
	for pitch-12 >= low && pitch > high {
		pitch -= 12
	}
	return pitch
}

// OctavePitch returns the MIDI note number of C in the given octave,
// with C4 = 60.
func OctavePitch(octave int) int {
	return 12 * (octave + 1)
}

// FitParts transposes every event of every part into the pitch window.
func FitParts(sc *model.Score, low, high int) {
	for pi := range sc.Parts {
		events := sc.Parts[pi].Events
		for ei := range events {
			events[ei].Pitch = uint8(FitOctave(int(events[ei].Pitch), low, high))
		}
	}
}
