// Package config loads the fretmark configuration.
//
// Settings come from four places, each overriding the one before it:
// the built-in defaults, the configuration file, FRETMARK_* environment
// variables and finally command line flags, which the caller applies to
// the loaded Config. The loader sub-package reads the file and
// environment layers; the watcher sub-package reports file changes so a
// running editor can reload.
//
// # File Format
//
// Either TOML or YAML is accepted, chosen by the file extension:
//
//	[board]
//	tuning = ["E4", "B3", "G3", "D3", "A2", "E2"]
//	min_fret = 0
//	max_fret = 12
//	show_fret_numbers = true
//	show_string_names = false
//
//	[editor]
//	max_undo_entries = 1000
//	mode = "select"
//
//	[export]
//	dir = "."
//	scale = 2
//
//	[logging]
//	level = "info"
//	file = "/tmp/fretmark.log"
//
//	[keys]
//	x = "selection.delete"
//	"C-z" = "history.undo"
//
// FRETMARK_TUNING also accepts a comma or space separated list.
package config
