// Package solo generates a single-line improvisation and a block-chord
// accompaniment over a chord progression.
package solo

import (
	"errors"

	"github.com/jcalhoun/jazzgen/pkg/theory"
)

// Direction selects the contour variant for a generated line. Zero is the
// descending variant; any nonzero value is the ascending/default variant.
type Direction int

const (
	Descending Direction = 0
	Ascending  Direction = 1
)

// FillPolicy controls how a stock figure shorter than the requested note
// count is stretched to length.
type FillPolicy int

const (
	// FillRests pads the tail with rests.
	FillRests FillPolicy = iota
	// FillRepeat tiles the figure until the length is reached.
	FillRepeat
)

// ParseDirection maps "up"/"down" (and a few aliases) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up", "asc", "ascending", "":
		return Ascending, nil
	case "down", "desc", "descending":
		return Descending, nil
	}
	return Ascending, errors.New("direction must be up or down")
}

// ParseFillPolicy maps "rests"/"repeat" to a FillPolicy.
func ParseFillPolicy(s string) (FillPolicy, error) {
	switch s {
	case "rests", "rest", "":
		return FillRests, nil
	case "repeat", "tile":
		return FillRepeat, nil
	}
	return FillRests, errors.New("fill policy must be rests or repeat")
}

// Note is one pitch (or rest) with its duration in beats.
type Note struct {
	Pitch theory.Pitch
	Beats float64
}

// ChordEvent is one comping hit: a block of pitches held for a duration.
type ChordEvent struct {
	Pitches []theory.Pitch
	Beats   float64
}

// ProgressionEntry is one slot of the harmonic form: the chord to play,
// how long it lasts, and where the improvised line starts over it.
type ProgressionEntry struct {
	Root      theory.Pitch
	Quality   theory.Quality
	Beats     float64
	Degree    int
	Direction Direction
}

// Song is a named harmonic form with a default tempo.
type Song struct {
	Name    string
	Tempo   float64
	Entries []ProgressionEntry
}

// Config holds the knobs for one generation run.
type Config struct {
	Choruses    int
	LowestNote  theory.Pitch
	HighestNote theory.Pitch
	Fill        FillPolicy
	Subdivision float64 // beats per solo note
	WithComping bool
	Tempo       float64 // overrides the song tempo when > 0
	Seed        int64   // nonzero randomizes comping inversions
}

// DefaultConfig returns the standard generation settings: four choruses,
// eighth-note subdivision, a tenor-range pitch band, rest-fill, comping on.
func DefaultConfig() Config {
	return Config{
		Choruses:    4,
		LowestNote:  55, // G3
		HighestNote: 91, // G6
		Fill:        FillRests,
		Subdivision: 0.5,
		WithComping: true,
	}
}

// Performance is the finished output of one generation run: two parallel
// streams ready for rendering.
type Performance struct {
	Name    string
	Tempo   float64
	Comping []ChordEvent
	Solo    []Note
}
