// Package render turns a generated performance into a Standard MIDI File
// with a piano comping track and a sax solo track.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jcalhoun/jazzgen/pkg/solo"
	"github.com/jcalhoun/jazzgen/pkg/theory"
)

const ticksPerQuarter = 480

const (
	pianoChannel = 0
	saxChannel   = 1

	pianoProgram = 1  // bright acoustic piano
	saxProgram   = 66 // tenor sax

	compVelocity = 80
	soloVelocity = 96
)

// Options controls rendering behavior.
type Options struct {
	// TieRepeats merges consecutive identical solo pitches into one longer
	// note instead of re-attacking them.
	TieRepeats bool
}

// MIDI renders a performance to SMF bytes: tempo and time signature on the
// comping track, the solo on its own track and channel. Rests advance time
// without emitting events.
func MIDI(perf *solo.Performance, opts Options) ([]byte, error) {
	if perf == nil {
		return nil, errors.New("nil performance")
	}

	tempo := perf.Tempo
	if tempo <= 0 {
		tempo = 120
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var piano smf.Track
	piano.Add(0, tempoMessage(tempo))
	// 4/4 time signature
	piano.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))
	piano.Add(0, midi.ProgramChange(pianoChannel, pianoProgram))
	addComping(&piano, perf.Comping)
	piano.Close(0)
	if err := s.Add(piano); err != nil {
		return nil, fmt.Errorf("failed to add comping track: %w", err)
	}

	var sax smf.Track
	sax.Add(0, midi.ProgramChange(saxChannel, saxProgram))
	notes := perf.Solo
	if opts.TieRepeats {
		notes = tieRepeats(notes)
	}
	addSolo(&sax, notes)
	sax.Close(0)
	if err := s.Add(sax); err != nil {
		return nil, fmt.Errorf("failed to add solo track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders a performance and writes it to a .mid file.
func WriteFile(perf *solo.Performance, opts Options, filename string) error {
	data, err := MIDI(perf, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

func addComping(track *smf.Track, events []solo.ChordEvent) {
	var delta uint32
	for _, ev := range events {
		dur := beatsToTicks(ev.Beats)
		keys := playableKeys(ev.Pitches)
		if len(keys) == 0 {
			delta += dur
			continue
		}

		// slightly detached block chords, leaving a gap before the next hit
		gate := dur - dur/8
		if gate == 0 {
			gate = dur
		}

		for i, key := range keys {
			d := uint32(0)
			if i == 0 {
				d = delta
			}
			track.Add(d, midi.NoteOn(pianoChannel, key, compVelocity))
		}
		for i, key := range keys {
			d := uint32(0)
			if i == 0 {
				d = gate
			}
			track.Add(d, midi.NoteOff(pianoChannel, key))
		}
		delta = dur - gate
	}
}

func addSolo(track *smf.Track, notes []solo.Note) {
	var delta uint32
	for _, n := range notes {
		dur := beatsToTicks(n.Beats)
		if n.Pitch.IsRest() || n.Pitch > 127 {
			delta += dur
			continue
		}

		gate := dur - dur/8
		if gate == 0 {
			gate = dur
		}

		track.Add(delta, midi.NoteOn(saxChannel, uint8(n.Pitch), soloVelocity))
		track.Add(gate, midi.NoteOff(saxChannel, uint8(n.Pitch)))
		delta = dur - gate
	}
}

// tieRepeats merges consecutive identical sounding pitches into one note.
func tieRepeats(notes []solo.Note) []solo.Note {
	out := make([]solo.Note, 0, len(notes))
	for _, n := range notes {
		if len(out) > 0 && !n.Pitch.IsRest() && out[len(out)-1].Pitch == n.Pitch {
			out[len(out)-1].Beats += n.Beats
			continue
		}
		out = append(out, n)
	}
	return out
}

// playableKeys filters a pitch set down to valid MIDI keys.
func playableKeys(pitches []theory.Pitch) []uint8 {
	keys := make([]uint8, 0, len(pitches))
	for _, p := range pitches {
		if p.IsRest() || p > 127 {
			continue
		}
		keys = append(keys, uint8(p))
	}
	return keys
}

func tempoMessage(bpm float64) smf.Message {
	microsecondsPerBeat := uint32(60000000.0 / bpm)
	return smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	})
}

func beatsToTicks(beats float64) uint32 {
	return uint32(math.Round(beats * ticksPerQuarter))
}
