package theory

import (
	"fmt"
	"strings"
)

// IntervalPattern is an ordered sequence of non-negative semitone offsets
// from a root, defining a chord quality. Patterns are shared by reference
// across every chord of that quality and must not be mutated.
type IntervalPattern []int

// Chord quality patterns, root position.
var (
	MajorTriadPattern      = IntervalPattern{0, 4, 7}
	MinorTriadPattern      = IntervalPattern{0, 3, 7}
	DiminishedTriadPattern = IntervalPattern{0, 3, 6}
	AugmentedTriadPattern  = IntervalPattern{0, 4, 8}
	Dominant7Pattern       = IntervalPattern{0, 4, 7, 10}
	Major7Pattern          = IntervalPattern{0, 4, 7, 11}
	Minor7Pattern          = IntervalPattern{0, 3, 7, 10}
	HalfDiminishedPattern  = IntervalPattern{0, 3, 6, 10}
	FullyDiminishedPattern = IntervalPattern{0, 3, 6, 9}
	Major6Pattern          = IntervalPattern{0, 4, 7, 9}
	Sus4Pattern            = IntervalPattern{0, 5, 7}
)

// Seven-note chord scales (semitone offsets within one octave).
var (
	Ionian     = []int{0, 2, 4, 5, 7, 9, 11}
	Dorian     = []int{0, 2, 3, 5, 7, 9, 10}
	Phrygian   = []int{0, 1, 3, 5, 7, 8, 10}
	Lydian     = []int{0, 2, 4, 6, 7, 9, 11}
	Mixolydian = []int{0, 2, 4, 5, 7, 9, 10}
	Aeolian    = []int{0, 2, 3, 5, 7, 8, 10}
	Locrian    = []int{0, 1, 3, 5, 6, 8, 10}
)

// Pentatonic scales used by the stock melodic runs.
var (
	MajorPentatonic = []int{0, 2, 4, 7, 9}
	MinorPentatonic = []int{0, 3, 5, 7, 10}
)

// Quality is a tagged chord quality. Each tag carries its interval pattern
// and the chord scale improvised over it, looked up by tag rather than by
// slice identity.
type Quality int

const (
	MajorTriad Quality = iota
	MinorTriad
	DiminishedTriad
	AugmentedTriad
	Dominant7
	Major7
	Minor7
	HalfDiminished
	FullyDiminished
	Major6
	Sus4
)

type qualityInfo struct {
	name    string
	pattern IntervalPattern
	scale   []int
}

var qualities = map[Quality]qualityInfo{
	MajorTriad:      {"maj", MajorTriadPattern, Ionian},
	MinorTriad:      {"min", MinorTriadPattern, Aeolian},
	DiminishedTriad: {"dim", DiminishedTriadPattern, Locrian},
	AugmentedTriad:  {"aug", AugmentedTriadPattern, Ionian},
	Dominant7:       {"7", Dominant7Pattern, Mixolydian},
	Major7:          {"maj7", Major7Pattern, Ionian},
	Minor7:          {"min7", Minor7Pattern, Aeolian},
	HalfDiminished:  {"m7b5", HalfDiminishedPattern, Locrian},
	FullyDiminished: {"dim7", FullyDiminishedPattern, Locrian},
	Major6:          {"6", Major6Pattern, Ionian},
	Sus4:            {"sus4", Sus4Pattern, Mixolydian},
}

// Pattern returns the interval pattern for the quality.
func (q Quality) Pattern() IntervalPattern {
	return qualities[q].pattern
}

// Scale returns the chord scale associated with the quality.
func (q Quality) Scale() []int {
	return qualities[q].scale
}

func (q Quality) String() string {
	if info, ok := qualities[q]; ok {
		return info.name
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

var qualityAliases = map[string]Quality{
	"maj": MajorTriad, "major": MajorTriad, "": MajorTriad,
	"min": MinorTriad, "minor": MinorTriad, "m": MinorTriad,
	"dim": DiminishedTriad, "diminished": DiminishedTriad,
	"aug": AugmentedTriad, "augmented": AugmentedTriad,
	"7": Dominant7, "dom7": Dominant7,
	"maj7": Major7, "major7": Major7,
	"min7": Minor7, "minor7": Minor7, "m7": Minor7,
	"m7b5": HalfDiminished, "halfdim": HalfDiminished,
	"dim7": FullyDiminished,
	"6":    Major6, "maj6": Major6,
	"sus4": Sus4, "sus": Sus4,
}

// ParseQuality maps a quality tag like "maj7", "min7" or "7" to its Quality.
func ParseQuality(s string) (Quality, error) {
	q, ok := qualityAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return MajorTriad, fmt.Errorf("unknown chord quality %q", s)
	}
	return q, nil
}
