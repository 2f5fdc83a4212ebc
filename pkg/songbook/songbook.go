// Package songbook holds the built-in harmonic forms and loads user songs
// from YAML files.
package songbook

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/jcalhoun/jazzgen/pkg/solo"
	"github.com/jcalhoun/jazzgen/pkg/theory"
)

// ErrUnknownSong is returned when a requested built-in song does not exist.
var ErrUnknownSong = errors.New("unknown song")

var builtins = map[string]func() solo.Song{
	"giant-steps": GiantSteps,
	"f-blues":     FBlues,
}

// Names lists the built-in songs in stable order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a fresh copy of a built-in song by name.
func Get(name string) (solo.Song, error) {
	build, ok := builtins[name]
	if !ok {
		return solo.Song{}, fmt.Errorf("%w: %q", ErrUnknownSong, name)
	}
	return build(), nil
}

type chordSpec struct {
	root    string
	quality theory.Quality
}

// buildSong assembles a song from parallel chord/rhythm/degree/direction
// lists. Degree and direction lists shorter than the form are tiled across
// it, matching how a single chorus worth of material repeats over the form.
func buildSong(name string, tempo float64, chords []chordSpec, beats []float64, degrees []int, directions []solo.Direction) solo.Song {
	entries := make([]solo.ProgressionEntry, len(chords))
	for i, cs := range chords {
		root, err := theory.ParseNote(cs.root)
		if err != nil {
			panic("songbook: bad built-in note " + cs.root)
		}
		entries[i] = solo.ProgressionEntry{
			Root:      root,
			Quality:   cs.quality,
			Beats:     beats[i%len(beats)],
			Degree:    degrees[i%len(degrees)],
			Direction: directions[i%len(directions)],
		}
	}
	return solo.Song{Name: name, Tempo: tempo, Entries: entries}
}

// GiantSteps returns the 26-slot Coltrane changes form with its downbeat
// scale degrees.
func GiantSteps() solo.Song {
	up := solo.Ascending
	down := solo.Descending

	chords := []chordSpec{
		{"B4", theory.Major7}, {"D4", theory.Dominant7}, {"G4", theory.Major7},
		{"Bb4", theory.Dominant7}, {"Eb4", theory.Major7}, {"A4", theory.Minor7},
		{"D4", theory.Dominant7}, {"G4", theory.Major7}, {"Bb4", theory.Dominant7},
		{"Eb4", theory.Major7}, {"F#4", theory.Dominant7}, {"B4", theory.Major7},
		{"F4", theory.Minor7}, {"Bb4", theory.Dominant7}, {"Eb4", theory.Major7},
		{"A4", theory.Minor7}, {"D4", theory.Dominant7}, {"G4", theory.Major7},
		{"C#4", theory.Minor7}, {"F#4", theory.Dominant7}, {"B4", theory.Major7},
		{"F4", theory.Minor7}, {"Bb4", theory.Dominant7}, {"Eb4", theory.Major7},
		{"C#4", theory.Minor7}, {"F#4", theory.Dominant7},
	}
	beats := []float64{2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 4, 2, 2, 4, 2, 2, 4, 2, 2, 4, 2, 2, 4, 2, 2}
	degrees := []int{5, 1, 1, 2, 1, 5, 3, 3, 3, 1, 7, 7, 4, 5, 5, 5, 4, 5, 2, 1, 1, 1, 6, 1, 6, 3}
	directions := []solo.Direction{
		up, down, up, down, up, up, down, up, down, up, down, down, up,
		down, up, up, down, up, down, up, down, up, down, up, up, down,
	}

	return buildSong("Giant Steps", 260, chords, beats, degrees, directions)
}

// FBlues returns a 12-bar jazz blues in F.
func FBlues() solo.Song {
	up := solo.Ascending
	down := solo.Descending

	chords := []chordSpec{
		{"F4", theory.Dominant7}, {"Bb4", theory.Dominant7}, {"F4", theory.Dominant7},
		{"F4", theory.Dominant7}, {"Bb4", theory.Dominant7}, {"Bb4", theory.Dominant7},
		{"F4", theory.Dominant7}, {"D4", theory.Dominant7}, {"G4", theory.Minor7},
		{"C4", theory.Dominant7}, {"F4", theory.Dominant7}, {"C4", theory.Dominant7},
	}
	beats := []float64{4}
	degrees := []int{1, 4, 1, 5, 1, 4, 3, 5, 1, 5, 3, 5}
	directions := []solo.Direction{up, up, down, up, down, up, down, up, up, down, up, down}

	return buildSong("F Blues", 132, chords, beats, degrees, directions)
}

// yamlSong is the on-disk song schema.
type yamlSong struct {
	Name   string  `yaml:"name"`
	Tempo  float64 `yaml:"tempo"`
	Chords []struct {
		Root      string  `yaml:"root"`
		Quality   string  `yaml:"quality"`
		Beats     float64 `yaml:"beats"`
		Degree    int     `yaml:"degree"`
		Direction string  `yaml:"direction"`
	} `yaml:"chords"`
}

// Load reads a song from a YAML file.
func Load(path string) (solo.Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return solo.Song{}, fmt.Errorf("failed to read song file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML song definition.
func Parse(data []byte) (solo.Song, error) {
	var ys yamlSong
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return solo.Song{}, fmt.Errorf("failed to parse song: %w", err)
	}
	if len(ys.Chords) == 0 {
		return solo.Song{}, errors.New("song has no chords")
	}
	if ys.Tempo <= 0 {
		ys.Tempo = 120
	}

	song := solo.Song{Name: ys.Name, Tempo: ys.Tempo}
	for i, c := range ys.Chords {
		root, err := theory.ParseNote(c.Root)
		if err != nil {
			return solo.Song{}, fmt.Errorf("chord %d: %w", i+1, err)
		}
		quality, err := theory.ParseQuality(c.Quality)
		if err != nil {
			return solo.Song{}, fmt.Errorf("chord %d: %w", i+1, err)
		}
		direction, err := solo.ParseDirection(c.Direction)
		if err != nil {
			return solo.Song{}, fmt.Errorf("chord %d: %w", i+1, err)
		}
		if c.Beats <= 0 {
			return solo.Song{}, fmt.Errorf("chord %d: beats must be positive", i+1)
		}
		song.Entries = append(song.Entries, solo.ProgressionEntry{
			Root:      root,
			Quality:   quality,
			Beats:     c.Beats,
			Degree:    c.Degree,
			Direction: direction,
		})
	}
	return song, nil
}
