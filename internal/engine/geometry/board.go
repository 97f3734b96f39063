package geometry

import (
	"cmp"
	"slices"

	"github.com/dshills/fretmark/internal/music"
)

// TotalFretCount is the number of frets on the modelled instrument.
const TotalFretCount = 24

var (
	octaveMarkerFrets    = []int{12, 24}
	secondaryMarkerFrets = []int{3, 5, 7, 9, 15, 17, 19, 21}
)

// Position is a location on the fretboard grid.
type Position struct {
	Fret   int
	String int
}

// Add returns the position offset by another position.
func (p Position) Add(o Position) Position {
	return Position{Fret: p.Fret + o.Fret, String: p.String + o.String}
}

// Sub returns the offset from o to p.
func (p Position) Sub(o Position) Position {
	return Position{Fret: p.Fret - o.Fret, String: p.String - o.String}
}

// Placement is a playable pitch at a fretboard position.
type Placement struct {
	Pitch music.Pitch
	Position
	IsOpen bool
}

// Board is the musical model of a fretboard: a tuning and a visible fret range.
// A Board is immutable.
type Board struct {
	tuning  []music.Pitch
	minFret int
	maxFret int
}

// NewBoard creates a board. The tuning lists open-string pitches starting
// with string 1.
func NewBoard(tuning []music.Pitch, minFret, maxFret int) *Board {
	if maxFret < minFret {
		minFret, maxFret = maxFret, minFret
	}
	return &Board{
		tuning:  slices.Clone(tuning),
		minFret: minFret,
		maxFret: maxFret,
	}
}

// Tuning returns a copy of the open-string pitches.
func (b *Board) Tuning() []music.Pitch {
	return slices.Clone(b.tuning)
}

// NumStrings returns the number of strings.
func (b *Board) NumStrings() int {
	return len(b.tuning)
}

// MinFret returns the lowest visible fret.
func (b *Board) MinFret() int {
	return b.minFret
}

// MaxFret returns the highest visible fret.
func (b *Board) MaxFret() int {
	return b.maxFret
}

// FretIsVisible reports whether fret lies in the visible range.
func (b *Board) FretIsVisible(fret int) bool {
	return fret >= b.minFret && fret <= b.maxFret
}

// OpenPitch returns the open pitch of a string.
func (b *Board) OpenPitch(str int) (music.Pitch, bool) {
	if str < 1 || str > len(b.tuning) {
		return 0, false
	}
	return b.tuning[str-1], true
}

// NoteAt returns the pitch sounded at a string and fret.
// It reports false when the string does not exist.
func (b *Board) NoteAt(str, fret int) (music.Pitch, bool) {
	open, ok := b.OpenPitch(str)
	if !ok {
		return 0, false
	}
	return open.Transpose(fret), true
}

// PositionsForPitch returns every visible position that sounds pitch,
// ordered by string.
func (b *Board) PositionsForPitch(pitch music.Pitch) []Placement {
	var out []Placement
	for i, open := range b.tuning {
		fret := int(pitch - open)
		if !b.FretIsVisible(fret) {
			continue
		}
		out = append(out, Placement{
			Pitch:    pitch,
			Position: Position{Fret: fret, String: i + 1},
			IsOpen:   fret == 0,
		})
	}
	return out
}

// MinPitch returns the lowest pitch playable in the visible range.
func (b *Board) MinPitch() music.Pitch {
	if len(b.tuning) == 0 {
		return 0
	}
	return slices.Min(b.tuning).Transpose(b.minFret)
}

// MaxPitch returns the highest pitch playable in the visible range.
func (b *Board) MaxPitch() music.Pitch {
	if len(b.tuning) == 0 {
		return 0
	}
	return slices.Max(b.tuning).Transpose(b.maxFret)
}

// AllPlacements returns every visible placement on the board, ordered by
// pitch and then by string.
func (b *Board) AllPlacements() []Placement {
	if len(b.tuning) == 0 {
		return nil
	}
	out := make([]Placement, 0, len(b.tuning)*(b.maxFret-b.minFret+1))
	for i, open := range b.tuning {
		for fret := b.minFret; fret <= b.maxFret; fret++ {
			out = append(out, Placement{
				Pitch:    open.Transpose(fret),
				Position: Position{Fret: fret, String: i + 1},
				IsOpen:   fret == 0,
			})
		}
	}
	slices.SortFunc(out, func(a, b Placement) int {
		if a.Pitch != b.Pitch {
			return cmp.Compare(a.Pitch, b.Pitch)
		}
		return cmp.Compare(a.String, b.String)
	})
	return out
}

// OctaveMarkerFrets returns the visible frets that carry a double inlay.
func (b *Board) OctaveMarkerFrets() []int {
	return b.visible(octaveMarkerFrets)
}

// SecondaryMarkerFrets returns the visible frets that carry a single inlay.
func (b *Board) SecondaryMarkerFrets() []int {
	return b.visible(secondaryMarkerFrets)
}

func (b *Board) visible(frets []int) []int {
	var out []int
	for _, f := range frets {
		if b.FretIsVisible(f) {
			out = append(out, f)
		}
	}
	return out
}
