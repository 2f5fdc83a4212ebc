package solo

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/jcalhoun/jazzgen/pkg/theory"
)

// ErrEmptySong is returned when a song has no progression entries.
var ErrEmptySong = errors.New("song has no progression entries")

// Generate walks the progression once per chorus, producing the comping and
// solo streams for the whole form. All working state is scoped to the call:
// every slot gets a fresh chord instance (inversion mutates in place) and
// nothing is retained between runs. A fatal error aborts the run with no
// partial output.
func Generate(song Song, cfg Config) (*Performance, error) {
	if len(song.Entries) == 0 {
		return nil, ErrEmptySong
	}
	if cfg.Subdivision <= 0 {
		return nil, errors.New("subdivision must be positive")
	}
	if cfg.Choruses <= 0 {
		cfg.Choruses = 1
	}

	tempo := song.Tempo
	if cfg.Tempo > 0 {
		tempo = cfg.Tempo
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	perf := &Performance{Name: song.Name, Tempo: tempo}

	for chorus := 0; chorus < cfg.Choruses; chorus++ {
		for i, entry := range song.Entries {
			chord, err := theory.NewChord(entry.Root, entry.Quality, 0)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", i, err)
			}

			start, err := theory.ResolveDegree(chord, entry.Degree)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", i, err)
			}

			// downbeat of the next slot, the pitch this line resolves toward;
			// the last slot has no successor
			target := theory.Rest
			if i+1 < len(song.Entries) {
				next := song.Entries[i+1]
				nextChord, err := theory.NewChord(next.Root, next.Quality, 0)
				if err != nil {
					return nil, fmt.Errorf("slot %d: %w", i+1, err)
				}
				if target, err = theory.ResolveDegree(nextChord, next.Degree); err != nil {
					return nil, fmt.Errorf("slot %d: %w", i+1, err)
				}
			}

			n := int(math.Round(entry.Beats / cfg.Subdivision))
			line, err := GenerateLine(start, target, chord, entry.Direction, n, entry.Degree, cfg)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", i, err)
			}
			for _, p := range line {
				perf.Solo = append(perf.Solo, Note{Pitch: p, Beats: cfg.Subdivision})
			}

			if cfg.WithComping {
				inversion := 0
				if rng != nil {
					inversion = rng.Intn(len(entry.Quality.Pattern()))
				}
				comp, err := theory.NewChord(entry.Root, entry.Quality, inversion)
				if err != nil {
					return nil, fmt.Errorf("slot %d: %w", i, err)
				}
				perf.Comping = append(perf.Comping, ChordEvent{Pitches: comp.Pitches, Beats: entry.Beats})
			}
		}
	}

	perf.Solo = Normalize(perf.Solo)
	return perf, nil
}
