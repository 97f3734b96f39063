// Package music provides the pitch model used by the fretboard geometry.
//
// Pitches are MIDI note numbers (C4 = 60). Names are spelled with sharps.
package music

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPitch is returned when a pitch name cannot be parsed.
var ErrInvalidPitch = errors.New("invalid pitch")

// Octave bounds accepted by ParsePitch, the MIDI note range.
const (
	MinOctave = -1
	MaxOctave = 9
)

// StandardTuning is six-string guitar standard tuning, highest string first.
var StandardTuning = []string{"E4", "B3", "G3", "D3", "A2", "E2"}

// Pitch is an absolute pitch as a MIDI note number.
type Pitch int

// PitchClass is a pitch modulo the octave (0 = C, 11 = B).
type PitchClass int

var classNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var letterClass = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ParsePitch parses scientific pitch notation such as "E4", "F#3", "Bb2" or "C-1".
// Accidentals may be repeated ("C##4", "Dbb3"). The octave must lie in
// MinOctave..MaxOctave.
func ParsePitch(s string) (Pitch, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrInvalidPitch)
	}

	class, ok := letterClass[strings.ToUpper(name[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPitch, s)
	}

	i := 1
	for i < len(name) && (name[i] == '#' || name[i] == 'b') {
		if name[i] == '#' {
			class++
		} else {
			class--
		}
		i++
	}

	if i == len(name) {
		return 0, fmt.Errorf("%w: %q has no octave", ErrInvalidPitch, s)
	}
	octave, err := strconv.Atoi(name[i:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidPitch, s, err)
	}
	if octave < MinOctave || octave > MaxOctave {
		return 0, fmt.Errorf("%w: %q: octave outside %d..%d", ErrInvalidPitch, s, MinOctave, MaxOctave)
	}

	return Pitch((octave+1)*12 + class), nil
}

// MustParsePitch is like ParsePitch but panics on error.
func MustParsePitch(s string) Pitch {
	p, err := ParsePitch(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseTuning parses a list of open-string pitch names.
func ParseTuning(names []string) ([]Pitch, error) {
	tuning := make([]Pitch, 0, len(names))
	for i, n := range names {
		p, err := ParsePitch(n)
		if err != nil {
			return nil, fmt.Errorf("string %d: %w", i+1, err)
		}
		tuning = append(tuning, p)
	}
	return tuning, nil
}

// Transpose returns the pitch moved by the given number of semitones.
func (p Pitch) Transpose(semitones int) Pitch {
	return p + Pitch(semitones)
}

// Octave returns the octave number in scientific pitch notation.
func (p Pitch) Octave() int {
	return floorDiv(int(p), 12) - 1
}

// Class returns the pitch class.
func (p Pitch) Class() PitchClass {
	c := int(p) % 12
	if c < 0 {
		c += 12
	}
	return PitchClass(c)
}

// Name returns the pitch spelled with sharps, e.g. "F#3".
func (p Pitch) Name() string {
	return fmt.Sprintf("%s%d", p.Class().Name(), p.Octave())
}

func (p Pitch) String() string {
	return p.Name()
}

// Name returns the pitch class name, e.g. "C#".
func (c PitchClass) Name() string {
	return classNames[int(c)%12]
}

// Letter returns the natural letter of the pitch class, e.g. "C" for C#.
func (c PitchClass) Letter() string {
	return c.Name()[:1]
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
