package solo

import (
	"errors"
	"fmt"
	"log"

	"github.com/jcalhoun/jazzgen/pkg/theory"
)

// ErrInvalidDegree is returned when a line is requested for a scale degree
// with no entry in the melodic vocabulary. There is no fallback shape.
var ErrInvalidDegree = errors.New("no melodic pattern for scale degree")

// GenerateLine produces exactly n pitches over the given chord, starting the
// stock figure for degree at start. target is the downbeat of the following
// chord; the stock contours are authored to resolve toward it. If start is
// the rest sentinel (or any negative value) the line is n rests and no pitch
// arithmetic happens. Figures shorter than n are stretched per cfg.Fill,
// longer ones truncated. The finished line is shifted a single octave into
// [cfg.LowestNote, cfg.HighestNote] when it strays; a line still out of band
// after one shift is logged and passed through.
func GenerateLine(start, target theory.Pitch, chord *theory.Chord, dir Direction, n, degree int, cfg Config) ([]theory.Pitch, error) {
	if n <= 0 {
		return nil, nil
	}
	if start.IsRest() {
		line := make([]theory.Pitch, n)
		for i := range line {
			line[i] = theory.Rest
		}
		return line, nil
	}
	if len(chord.Scale) < 7 {
		return nil, fmt.Errorf("chord scale has %d notes, need 7", len(chord.Scale))
	}

	raw, err := stockFigure(start, chord, dir, n, degree)
	if err != nil {
		return nil, err
	}

	line := fillLine(raw, n, cfg.Fill)
	line, overflow := clampOctave(line, cfg.LowestNote, cfg.HighestNote)
	if overflow {
		log.Printf("warning: line over %v (degree %d) still outside [%v, %v] after octave shift",
			chord, degree, cfg.LowestNote, cfg.HighestNote)
	}
	return line, nil
}

// stockFigure returns the raw melodic figure for a starting degree, before
// fill and clamping. Direction zero picks the descending variant.
func stockFigure(start theory.Pitch, chord *theory.Chord, dir Direction, n, degree int) ([]theory.Pitch, error) {
	r := chord.Root
	scale := chord.Scale

	switch degree {
	case 1:
		pent := theory.MinorPentatonic
		if scale[2] == 4 {
			pent = theory.MajorPentatonic
		}
		if dir == Descending {
			run, err := theory.FromPattern(start, theory.IntervalPattern(pent), scale, 0)
			if err != nil {
				return nil, err
			}
			run.Invert(1).DropOctave()
			return reversed(run.Pitches), nil
		}
		out := make([]theory.Pitch, len(pent))
		for i, st := range pent {
			out[i] = start + theory.Pitch(st)
		}
		return out, nil

	case 2:
		return []theory.Pitch{
			r + theory.Pitch(scale[1]),
			r + theory.Pitch(scale[6]) - theory.Octave,
			r + theory.Pitch(scale[5]) - theory.Octave,
			r + theory.Pitch(scale[4]) - theory.Octave,
		}, nil

	case 3:
		if dir == Descending {
			return reversed(chord.Copy().Invert(3).DropOctave().Pitches), nil
		}
		return chord.Copy().Invert(1).Pitches, nil

	case 4:
		// chromatic walk down from a perfect fourth above the root
		return []theory.Pitch{r + 5, r + 4, r + 3, r + 2}, nil

	case 5:
		if dir != Descending {
			return chord.Copy().Invert(2).Pitches, nil
		}
		if n == 8 {
			// scale run from the fifth up to the octave and back to the fourth
			return []theory.Pitch{
				r + 7,
				r + theory.Pitch(scale[5]),
				r + theory.Pitch(scale[6]),
				r + theory.Octave,
				r + theory.Pitch(scale[6]),
				r + theory.Pitch(scale[5]),
				r + 7,
				r + theory.Pitch(scale[3]),
			}, nil
		}
		return reversed(chord.Copy().Invert(3).DropOctave().Pitches), nil

	case 6:
		return []theory.Pitch{
			r + theory.Pitch(scale[5]) - theory.Octave,
			r + theory.Pitch(scale[4]) - theory.Octave,
			r + theory.Pitch(scale[2]) - theory.Octave,
			r,
		}, nil

	case 7:
		if dir == Descending {
			return chord.Copy().Invert(3).Pitches, nil
		}
		out := make([]theory.Pitch, len(chord.Pitches))
		copy(out, chord.Pitches)
		return out, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrInvalidDegree, degree)
}

// fillLine stretches or truncates a raw figure to exactly n pitches.
func fillLine(raw []theory.Pitch, n int, policy FillPolicy) []theory.Pitch {
	out := make([]theory.Pitch, n)
	if len(raw) == 0 {
		for i := range out {
			out[i] = theory.Rest
		}
		return out
	}
	for i := range out {
		switch {
		case i < len(raw):
			out[i] = raw[i]
		case policy == FillRepeat:
			out[i] = raw[i%len(raw)]
		default:
			out[i] = theory.Rest
		}
	}
	return out
}

// clampOctave shifts the whole line one octave up if any note sits below lo,
// else one octave down if any sits above hi. Single pass: a line spanning
// more than the band can still end up out of range, which the second return
// reports.
func clampOctave(line []theory.Pitch, lo, hi theory.Pitch) ([]theory.Pitch, bool) {
	min, max, any := lineExtent(line)
	if !any {
		return line, false
	}

	var shift theory.Pitch
	if min < lo {
		shift = theory.Octave
	} else if max > hi {
		shift = -theory.Octave
	}
	if shift != 0 {
		for i := range line {
			if line[i].IsRest() {
				continue
			}
			line[i] += shift
		}
		min, max, _ = lineExtent(line)
	}

	return line, min < lo || max > hi
}

func lineExtent(line []theory.Pitch) (min, max theory.Pitch, any bool) {
	for _, p := range line {
		if p.IsRest() {
			continue
		}
		if !any || p < min {
			min = p
		}
		if !any || p > max {
			max = p
		}
		any = true
	}
	return min, max, any
}

func reversed(pitches []theory.Pitch) []theory.Pitch {
	out := make([]theory.Pitch, len(pitches))
	for i, p := range pitches {
		out[len(pitches)-1-i] = p
	}
	return out
}
