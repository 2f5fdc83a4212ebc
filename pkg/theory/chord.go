package theory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyPattern is returned when a chord is constructed from an empty
// interval pattern.
var ErrEmptyPattern = errors.New("empty interval pattern")

// Chord is a root pitch plus its voiced pitches in ascending order, together
// with the chord scale improvised over it. Invert, DropOctave and RaiseOctave
// mutate the receiver; callers that need the original voicing afterwards must
// Copy first. Union and Difference return new values and leave the receiver
// untouched, so composed voicings never corrupt a shared chord.
type Chord struct {
	Root    Pitch
	Pitches []Pitch
	Scale   []int
}

// NewChord builds a chord from a root and quality, applying the requested
// inversion. The quality supplies both the interval pattern and the chord
// scale.
func NewChord(root Pitch, quality Quality, inversion int) (*Chord, error) {
	return FromPattern(root, quality.Pattern(), quality.Scale(), inversion)
}

// FromPattern builds a chord from an explicit interval pattern and scale.
func FromPattern(root Pitch, pattern IntervalPattern, scale []int, inversion int) (*Chord, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	c := &Chord{
		Root:    root,
		Pitches: make([]Pitch, len(pattern)),
		Scale:   scale,
	}
	for i, st := range pattern {
		c.Pitches[i] = root + Pitch(st)
	}
	c.Invert(inversion)
	return c, nil
}

// Copy returns a deep copy sharing only the (immutable) scale slice.
func (c *Chord) Copy() *Chord {
	pitches := make([]Pitch, len(c.Pitches))
	copy(pitches, c.Pitches)
	return &Chord{Root: c.Root, Pitches: pitches, Scale: c.Scale}
}

// Invert rotates the pitch list left by k positions, raising the rotated-out
// prefix one octave, and re-sorts. k is taken modulo the chord size; negative
// k is normalized into [0, len). The receiver is mutated and returned for
// chaining.
func (c *Chord) Invert(k int) *Chord {
	n := len(c.Pitches)
	if n == 0 {
		return c
	}
	k = ((k % n) + n) % n
	rotated := make([]Pitch, 0, n)
	rotated = append(rotated, c.Pitches[k:]...)
	for _, p := range c.Pitches[:k] {
		rotated = append(rotated, p+Octave)
	}
	c.Pitches = rotated
	c.sort()
	return c
}

// Union returns a new chord with the given pitches merged into the voicing.
func (c *Chord) Union(pitches ...Pitch) *Chord {
	out := c.Copy()
	out.Pitches = append(out.Pitches, pitches...)
	out.sort()
	return out
}

// Merge returns a new chord joining the receiver's pitches with another
// chord's. The result keeps the receiver's root and scale.
func (c *Chord) Merge(other *Chord) *Chord {
	return c.Union(other.Pitches...)
}

// Difference returns a new chord with every occurrence of each given pitch
// removed. Removal is by value over the whole multiset, not just the first
// match.
func (c *Chord) Difference(pitches ...Pitch) *Chord {
	remove := make(map[Pitch]bool, len(pitches))
	for _, p := range pitches {
		remove[p] = true
	}
	out := &Chord{Root: c.Root, Scale: c.Scale}
	for _, p := range c.Pitches {
		if !remove[p] {
			out.Pitches = append(out.Pitches, p)
		}
	}
	out.sort()
	return out
}

// DropOctave lowers every pitch one octave in place.
func (c *Chord) DropOctave() *Chord {
	for i := range c.Pitches {
		c.Pitches[i] -= Octave
	}
	return c
}

// RaiseOctave raises every pitch one octave in place.
func (c *Chord) RaiseOctave() *Chord {
	for i := range c.Pitches {
		c.Pitches[i] += Octave
	}
	return c
}

// Semitones returns each pitch's offset from the root.
func (c *Chord) Semitones() []int {
	out := make([]int, len(c.Pitches))
	for i, p := range c.Pitches {
		out[i] = int(p - c.Root)
	}
	return out
}

func (c *Chord) sort() {
	sort.Slice(c.Pitches, func(i, j int) bool {
		return c.Pitches[i] < c.Pitches[j]
	})
}

func (c *Chord) String() string {
	names := make([]string, len(c.Pitches))
	for i, p := range c.Pitches {
		names[i] = p.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(names, " "))
}
