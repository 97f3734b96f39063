package document

import (
	"slices"

	"github.com/dshills/fretmark/internal/engine/geometry"
	"github.com/dshills/fretmark/internal/music"
)

// BoardConfig is the externally supplied board configuration.
type BoardConfig struct {
	// Tuning lists open-string pitches, string 1 first.
	Tuning          []music.Pitch
	MinFret         int
	MaxFret         int
	ShowFretNumbers bool
	ShowStringNames bool
}

// DefaultBoard returns six-string standard tuning over frets 0 to 9.
func DefaultBoard() BoardConfig {
	tuning, _ := music.ParseTuning(music.StandardTuning)
	return BoardConfig{
		Tuning:          tuning,
		MinFret:         0,
		MaxFret:         9,
		ShowFretNumbers: true,
	}
}

// Equal reports whether two configurations are identical.
func (c BoardConfig) Equal(o BoardConfig) bool {
	return slices.Equal(c.Tuning, o.Tuning) &&
		c.MinFret == o.MinFret &&
		c.MaxFret == o.MaxFret &&
		c.ShowFretNumbers == o.ShowFretNumbers &&
		c.ShowStringNames == o.ShowStringNames
}

func (c BoardConfig) clone() BoardConfig {
	c.Tuning = slices.Clone(c.Tuning)
	return c
}

// Layout derives the geometry for this configuration.
func (c BoardConfig) Layout() *geometry.Layout {
	return geometry.NewLayout(
		geometry.NewBoard(c.Tuning, c.MinFret, c.MaxFret),
		geometry.Options{
			ShowFretNumbers: c.ShowFretNumbers,
			ShowStringNames: c.ShowStringNames,
		},
	)
}
