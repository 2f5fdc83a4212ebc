package solo

import (
	"errors"
	"testing"

	"github.com/jcalhoun/jazzgen/pkg/theory"
)

// wideConfig leaves enough headroom that the clamp pass never fires, so the
// raw figures can be checked exactly.
func wideConfig() Config {
	cfg := DefaultConfig()
	cfg.LowestNote = 20
	cfg.HighestNote = 110
	return cfg
}

func mustChord(t *testing.T, root theory.Pitch, q theory.Quality) *theory.Chord {
	t.Helper()
	c, err := theory.NewChord(root, q, 0)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func pitchesEqual(a, b []theory.Pitch) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGenerateLineAscendingPentatonicRun(t *testing.T) {
	chord := mustChord(t, 60, theory.Major7)

	line, err := GenerateLine(60, theory.Rest, chord, Ascending, 4, 1, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	want := []theory.Pitch{60, 62, 64, 67}
	if !pitchesEqual(line, want) {
		t.Errorf("line = %v, want %v", line, want)
	}
}

func TestGenerateLineMinorPentatonicSelection(t *testing.T) {
	// Aeolian scale has a flat third, so the run uses the minor pentatonic
	chord := mustChord(t, 60, theory.Minor7)

	line, err := GenerateLine(60, theory.Rest, chord, Ascending, 5, 1, wideConfig())
	if err != nil {
		t.Fatal(err)
	}

	want := []theory.Pitch{60, 63, 65, 67, 70}
	if !pitchesEqual(line, want) {
		t.Errorf("line = %v, want %v", line, want)
	}
}

func TestGenerateLineDescendingPentatonic(t *testing.T) {
	chord := mustChord(t, 60, theory.Major7)

	line, err := GenerateLine(60, theory.Rest, chord, Descending, 5, 1, wideConfig())
	if err != nil {
		t.Fatal(err)
	}

	// major pentatonic inverted one step, dropped an octave, reversed
	want := []theory.Pitch{60, 57, 55, 52, 50}
	if !pitchesEqual(line, want) {
		t.Errorf("line = %v, want %v", line, want)
	}
}

func TestGenerateLineRestStartProducesAllRests(t *testing.T) {
	chord := mustChord(t, 60, theory.Dominant7)

	for _, start := range []theory.Pitch{theory.Rest, -40} {
		line, err := GenerateLine(start, 67, chord, Ascending, 4, 1, DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		if len(line) != 4 {
			t.Fatalf("len = %d, want 4", len(line))
		}
		for i, p := range line {
			if p != theory.Rest {
				t.Errorf("start %v: line[%d] = %v, want rest", start, i, p)
			}
		}
	}
}

func TestGenerateLineFigures(t *testing.T) {
	cmaj7 := mustChord(t, 60, theory.Major7)

	tests := []struct {
		name   string
		dir    Direction
		n      int
		degree int
		want   []theory.Pitch
	}{
		{"degree 2 contour", Ascending, 4, 2, []theory.Pitch{62, 59, 57, 55}},
		{"degree 3 ascending arpeggio", Ascending, 4, 3, []theory.Pitch{64, 67, 71, 72}},
		{"degree 3 descending arpeggio", Descending, 4, 3, []theory.Pitch{67, 64, 60, 59}},
		{"degree 4 chromatic walk", Ascending, 4, 4, []theory.Pitch{65, 64, 63, 62}},
		{"degree 5 ascending arpeggio", Ascending, 4, 5, []theory.Pitch{67, 71, 72, 76}},
		{"degree 5 eight-note contour", Descending, 8, 5, []theory.Pitch{67, 69, 71, 72, 71, 69, 67, 65}},
		{"degree 5 descending arpeggio", Descending, 4, 5, []theory.Pitch{67, 64, 60, 59}},
		{"degree 6 contour", Ascending, 4, 6, []theory.Pitch{57, 55, 52, 60}},
		{"degree 7 ascending", Ascending, 4, 7, []theory.Pitch{60, 64, 67, 71}},
		{"degree 7 descending", Descending, 4, 7, []theory.Pitch{71, 72, 76, 79}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := GenerateLine(60, theory.Rest, cmaj7, tt.dir, tt.n, tt.degree, wideConfig())
			if err != nil {
				t.Fatal(err)
			}
			if !pitchesEqual(line, tt.want) {
				t.Errorf("line = %v, want %v", line, tt.want)
			}
		})
	}
}

func TestGenerateLineInvalidDegree(t *testing.T) {
	chord := mustChord(t, 60, theory.Major7)

	for _, degree := range []int{8, 12, 100} {
		_, err := GenerateLine(60, theory.Rest, chord, Ascending, 4, degree, DefaultConfig())
		if !errors.Is(err, ErrInvalidDegree) {
			t.Errorf("degree %d: err = %v, want ErrInvalidDegree", degree, err)
		}
	}
}

func TestGenerateLineFillPolicies(t *testing.T) {
	chord := mustChord(t, 60, theory.Major7)

	cfg := wideConfig()
	cfg.Fill = FillRests
	line, err := GenerateLine(60, theory.Rest, chord, Ascending, 6, 4, cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := []theory.Pitch{65, 64, 63, 62, theory.Rest, theory.Rest}
	if !pitchesEqual(line, want) {
		t.Errorf("rest fill = %v, want %v", line, want)
	}

	cfg.Fill = FillRepeat
	line, err = GenerateLine(60, theory.Rest, chord, Ascending, 6, 4, cfg)
	if err != nil {
		t.Fatal(err)
	}
	want = []theory.Pitch{65, 64, 63, 62, 65, 64}
	if !pitchesEqual(line, want) {
		t.Errorf("repeat fill = %v, want %v", line, want)
	}
}

func TestGenerateLineZeroCount(t *testing.T) {
	chord := mustChord(t, 60, theory.Major7)
	line, err := GenerateLine(60, theory.Rest, chord, Ascending, 0, 1, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(line) != 0 {
		t.Errorf("len = %d, want 0", len(line))
	}
}

func TestClampShiftsWholeLineUp(t *testing.T) {
	line := []theory.Pitch{48, 52, 55}
	out, overflow := clampOctave(line, 55, 91)
	want := []theory.Pitch{60, 64, 67}
	if !pitchesEqual(out, want) {
		t.Errorf("out = %v, want %v", out, want)
	}
	if overflow {
		t.Error("unexpected overflow flag")
	}
}

func TestClampShiftsWholeLineDown(t *testing.T) {
	line := []theory.Pitch{95, 98, theory.Rest, 93}
	out, overflow := clampOctave(line, 55, 91)
	want := []theory.Pitch{83, 86, theory.Rest, 81}
	if !pitchesEqual(out, want) {
		t.Errorf("out = %v, want %v", out, want)
	}
	if overflow {
		t.Error("unexpected overflow flag")
	}
}

func TestClampAppliesAtMostOneShift(t *testing.T) {
	// a line spanning two octaves cannot fit a one-octave band; the clamp
	// shifts once, flags the overflow, and leaves the rest alone
	line := []theory.Pitch{40, 70}
	out, overflow := clampOctave(line, 50, 60)

	want := []theory.Pitch{52, 82}
	if !pitchesEqual(out, want) {
		t.Errorf("out = %v, want %v", out, want)
	}
	if !overflow {
		t.Error("expected overflow flag after single shift")
	}
}
