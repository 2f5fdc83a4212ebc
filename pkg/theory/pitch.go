// Package theory provides the pitch, chord and scale model used by the
// solo and comping generators.
package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// Pitch is an absolute pitch in semitones on the MIDI keyboard scale
// (60 = middle C). Negative values never reach the output stream; the
// canonical Rest sentinel is substituted before rendering.
type Pitch int

// Rest marks silence. It must never participate in pitch arithmetic;
// passes that encounter it skip it or pass it through unchanged.
const Rest Pitch = -1

// Octave is the number of semitones in an octave.
const Octave = 12

// MiddleC is MIDI note 60.
const MiddleC Pitch = 60

// IsRest reports whether p denotes silence. Any negative value counts:
// unresolved internal sentinels are negative until normalization rewrites
// them to Rest.
func (p Pitch) IsRest() bool {
	return p < 0
}

var pitchClassNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// semitone offset from C for each note letter and accidental
var noteOffsets = map[string]int{
	"C": 0, "C#": 1, "Db": 1,
	"D": 2, "D#": 3, "Eb": 3,
	"E": 4, "Fb": 4, "E#": 5,
	"F": 5, "F#": 6, "Gb": 6,
	"G": 7, "G#": 8, "Ab": 8,
	"A": 9, "A#": 10, "Bb": 10,
	"B": 11, "Cb": 11, "B#": 12,
}

// String renders the pitch as a note name with octave, e.g. 60 -> "C4".
func (p Pitch) String() string {
	if p.IsRest() {
		return "rest"
	}
	return fmt.Sprintf("%s%d", pitchClassNames[int(p)%12], int(p)/12-1)
}

// ParseNote converts a note name like "C4", "Bb4", "F#3" or "rest" to a
// Pitch. C4 is middle C (60).
func ParseNote(s string) (Pitch, error) {
	name := strings.TrimSpace(s)
	if strings.EqualFold(name, "rest") || name == "" {
		return Rest, nil
	}

	split := 1
	if len(name) > 1 && (name[1] == '#' || name[1] == 'b') {
		split = 2
	}
	if len(name) <= split {
		return Rest, fmt.Errorf("note %q missing octave", s)
	}

	letter := strings.ToUpper(name[:1]) + name[1:split]
	offset, ok := noteOffsets[letter]
	if !ok {
		return Rest, fmt.Errorf("invalid note name %q", s)
	}

	octave, err := strconv.Atoi(name[split:])
	if err != nil {
		return Rest, fmt.Errorf("invalid octave in note %q", s)
	}

	p := Pitch((octave+1)*12 + offset)
	if p < 0 || p > 127 {
		return Rest, fmt.Errorf("note %q out of MIDI range", s)
	}
	return p, nil
}
