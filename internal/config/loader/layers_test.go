package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	defaults := map[string]any{
		"board":   map[string]any{"min_fret": 0, "max_fret": 9},
		"logging": map[string]any{"level": "info"},
	}
	file := map[string]any{"board": map[string]any{"max_fret": int64(12)}}
	env := map[string]any{"logging": map[string]any{"level": "debug"}}

	got := Merge(defaults, nil, file, env)

	assert.Equal(t, map[string]any{
		"board":   map[string]any{"min_fret": 0, "max_fret": int64(12)},
		"logging": map[string]any{"level": "debug"},
	}, got)
	assert.Equal(t, 9, defaults["board"].(map[string]any)["max_fret"], "inputs must not change")
}

func TestMergeReplacesNonMaps(t *testing.T) {
	got := Merge(
		map[string]any{"board": map[string]any{"tuning": []any{"E4", "B3"}}},
		map[string]any{"board": map[string]any{"tuning": "D4,A3"}},
	)
	v, _ := Lookup(got, "board.tuning")
	assert.Equal(t, "D4,A3", v)

	got = Merge(
		map[string]any{"keys": "none"},
		map[string]any{"keys": map[string]any{"q": "quit"}},
	)
	v, _ = Lookup(got, "keys.q")
	assert.Equal(t, "quit", v)
}

func TestMergeCopiesSlices(t *testing.T) {
	src := map[string]any{"board": map[string]any{"tuning": []any{"E4"}}}
	got := Merge(src)
	got["board"].(map[string]any)["tuning"].([]any)[0] = "D4"

	v, _ := Lookup(src, "board.tuning")
	assert.Equal(t, []any{"E4"}, v)
}

func TestMergeEmpty(t *testing.T) {
	got := Merge()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLookupSet(t *testing.T) {
	m := map[string]any{"board": "flat"}
	Set(m, "board.show_fret_numbers", false)
	Set(m, "board.max_fret", 7)

	v, ok := Lookup(m, "board.show_fret_numbers")
	assert.True(t, ok)
	assert.Equal(t, false, v)

	_, ok = Lookup(m, "board.max_fret.x")
	assert.False(t, ok, "path through a scalar")
	_, ok = Lookup(nil, "board")
	assert.False(t, ok, "nil map")
}
