package solo

import "github.com/jcalhoun/jazzgen/pkg/theory"

// smoothWindow is how many notes after a wide leap get pulled back toward
// the note before it.
const smoothWindow = 4

// Normalize runs the two post-processing passes over a finished solo stream:
// octave smoothing, then rest normalization. The input is not modified.
func Normalize(notes []Note) []Note {
	return NormalizeRests(SmoothOctaves(notes))
}

// SmoothOctaves corrects leaps wider than an octave between consecutive
// sounding notes by shifting the following few notes one octave in the
// compensating direction. Correction is forward-only: a later correction can
// rewrite indices an earlier one already touched, so wide leaps may survive
// inside a corrected window.
func SmoothOctaves(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)

	for i := 0; i < len(out)-1; i++ {
		if out[i].Pitch.IsRest() || out[i+1].Pitch.IsRest() {
			continue
		}
		jump := int(out[i+1].Pitch - out[i].Pitch)
		switch {
		case jump > theory.Octave:
			shiftWindow(out, i+1, -theory.Octave)
		case jump < -theory.Octave:
			shiftWindow(out, i+1, theory.Octave)
		}
	}
	return out
}

func shiftWindow(notes []Note, from int, shift theory.Pitch) {
	end := from + smoothWindow
	if end > len(notes) {
		end = len(notes)
	}
	for j := from; j < end; j++ {
		if notes[j].Pitch.IsRest() {
			continue
		}
		notes[j].Pitch += shift
	}
}

// NormalizeRests rewrites every negative pitch, including internal
// "unresolved" sentinels, to the canonical Rest. The input is not modified.
func NormalizeRests(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)
	for i := range out {
		if out[i].Pitch < 0 {
			out[i].Pitch = theory.Rest
		}
	}
	return out
}
