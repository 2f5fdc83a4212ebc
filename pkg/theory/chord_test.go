package theory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewChordRootPosition(t *testing.T) {
	c, err := NewChord(MiddleC, MajorTriad, 0)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]Pitch{60, 64, 67}, c.Pitches)
	assert.Equal([]int{0, 4, 7}, c.Semitones())
}

func TestNewChordFirstInversion(t *testing.T) {
	// C4 major triad, first inversion: E4 G4 C5
	c, err := NewChord(MiddleC, MajorTriad, 1)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]Pitch{64, 67, 72}, c.Pitches)
}

func TestInvertMinorSeventh(t *testing.T) {
	// D4 minor seventh, first inversion: F4 A4 C5 D5
	c, err := NewChord(62, Minor7, 0)
	assert := assert.New(t)
	assert.NoError(err)

	c.Invert(1)
	assert.Equal([]Pitch{65, 69, 72, 74}, c.Pitches)
}

func TestInvertReturnsReceiverForChaining(t *testing.T) {
	c, _ := NewChord(MiddleC, Major7, 0)
	assert.Equal(t, c, c.Invert(2))
}

func TestChordPitchesAlwaysAscending(t *testing.T) {
	for q := range qualities {
		pattern := q.Pattern()
		for inv := -2; inv < len(pattern)+2; inv++ {
			c, err := NewChord(MiddleC, q, inv)
			if !assert.NoError(t, err) {
				continue
			}
			assert.Len(t, c.Pitches, len(pattern))
			for i := 1; i < len(c.Pitches); i++ {
				assert.Less(t, c.Pitches[i-1], c.Pitches[i],
					"quality %v inversion %d not ascending: %v", q, inv, c.Pitches)
			}
		}
	}
}

func TestInversionIsCyclic(t *testing.T) {
	// invert(k) then invert(n-k) walks the full cycle, landing one octave up
	for _, q := range []Quality{MajorTriad, Minor7, Dominant7, FullyDiminished} {
		n := len(q.Pattern())
		for k := 1; k < n; k++ {
			t.Run(fmt.Sprintf("%v-k%d", q, k), func(t *testing.T) {
				original, _ := NewChord(MiddleC, q, 0)
				c := original.Copy()
				c.Invert(k).Invert(n - k).DropOctave()
				assert.Equal(t, original.Pitches, c.Pitches)
			})
		}
	}
}

func TestEmptyPatternRejected(t *testing.T) {
	_, err := FromPattern(MiddleC, IntervalPattern{}, Ionian, 0)
	assert.ErrorIs(t, err, ErrEmptyPattern)
}

func TestUnionDoesNotMutateReceiver(t *testing.T) {
	c, _ := NewChord(MiddleC, MinorTriad, 0)
	voiced := c.Union(72, 79)

	assert := assert.New(t)
	assert.Equal([]Pitch{60, 63, 67}, c.Pitches)
	assert.Equal([]Pitch{60, 63, 67, 72, 79}, voiced.Pitches)
}

func TestMergeJoinsPitchSets(t *testing.T) {
	low, _ := NewChord(48, MinorTriad, 0)
	high, _ := NewChord(60, MinorTriad, 0)
	both := low.Merge(high)

	assert := assert.New(t)
	assert.Equal([]Pitch{48, 51, 55, 60, 63, 67}, both.Pitches)
	assert.Equal(Pitch(48), both.Root)
	assert.Equal([]Pitch{48, 51, 55}, low.Pitches)
}

func TestDifferenceRemovesAllOccurrences(t *testing.T) {
	c, _ := NewChord(MiddleC, MajorTriad, 0)
	// pile three G4s into the voicing, then strip them all
	stacked := c.Union(67, 67)
	stripped := stacked.Difference(67)

	assert := assert.New(t)
	assert.Equal([]Pitch{60, 64, 67, 67, 67}, stacked.Pitches)
	assert.Equal([]Pitch{60, 64}, stripped.Pitches)
	assert.NotContains(stripped.Pitches, Pitch(67))
}

func TestDropAndRaiseOctave(t *testing.T) {
	c, _ := NewChord(MiddleC, Dominant7, 0)
	c.DropOctave()
	assert.Equal(t, []Pitch{48, 52, 55, 58}, c.Pitches)
	c.RaiseOctave()
	assert.Equal(t, []Pitch{60, 64, 67, 70}, c.Pitches)
}

func TestCopyIsIndependent(t *testing.T) {
	c, _ := NewChord(MiddleC, Major7, 0)
	dup := c.Copy()
	dup.Invert(1)

	assert.Equal(t, []Pitch{60, 64, 67, 71}, c.Pitches)
	assert.NotEqual(t, c.Pitches, dup.Pitches)
}

func TestResolveDegree(t *testing.T) {
	c, _ := NewChord(MiddleC, Major7, 0) // Ionian

	tests := []struct {
		degree int
		want   Pitch
	}{
		{1, 60},
		{2, 62},
		{3, 64},
		{5, 67},
		{7, 71},
	}
	for _, tt := range tests {
		got, err := ResolveDegree(c, tt.degree)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got, "degree %d", tt.degree)
	}
}

func TestResolveDegreeRestAndErrors(t *testing.T) {
	c, _ := NewChord(MiddleC, Minor7, 0)

	assert := assert.New(t)
	p, err := ResolveDegree(c, 0)
	assert.NoError(err)
	assert.Equal(Rest, p)

	p, err = ResolveDegree(c, -3)
	assert.NoError(err)
	assert.Equal(Rest, p)

	_, err = ResolveDegree(c, 8)
	assert.Error(err)
}

func TestDegreeRoundTrip(t *testing.T) {
	// resolving a degree then matching the offset back against the scale
	// recovers the degree
	for _, q := range []Quality{Major7, Minor7, Dominant7} {
		c, _ := NewChord(65, q, 0)
		for degree := 1; degree <= len(c.Scale); degree++ {
			p, err := ResolveDegree(c, degree)
			assert.NoError(t, err)

			offset := int(p - c.Pitches[0])
			recovered := 0
			for i, st := range c.Scale {
				if st == offset {
					recovered = i + 1
					break
				}
			}
			assert.Equal(t, degree, recovered, "quality %v", q)
		}
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		in   string
		want Pitch
	}{
		{"C4", 60},
		{"Bb4", 70},
		{"F#3", 54},
		{"B4", 71},
		{"Eb4", 63},
		{"rest", Rest},
	}
	for _, tt := range tests {
		got, err := ParseNote(tt.in)
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseNote("H4")
	assert.Error(t, err)
	_, err = ParseNote("C")
	assert.Error(t, err)
}

func TestParseQuality(t *testing.T) {
	for alias, want := range map[string]Quality{
		"maj7": Major7,
		"Min7": Minor7,
		"7":    Dominant7,
		"m7b5": HalfDiminished,
	} {
		got, err := ParseQuality(alias)
		assert.NoError(t, err, alias)
		assert.Equal(t, want, got, alias)
	}

	_, err := ParseQuality("maj13#11")
	assert.Error(t, err)
}
