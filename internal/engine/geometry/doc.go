// Package geometry maps between fretboard coordinates and layout space.
//
// A Board answers musical questions (which pitch sits at a string and fret,
// where a pitch can be played). A Layout places a Board in 2D: frets follow
// the real-world fret-spacing law, strings are evenly spaced, and a k-d tree
// over every playable position answers nearest-position queries for
// hit-testing.
//
// # Coordinates
//
// Strings are numbered from 1 (the first entry of the tuning). Frets are
// numbered from 0 (the open string). Layout coordinates are world units;
// the viewport maps them to the screen.
//
// # Failure Semantics
//
// Out-of-range strings and frets never panic; lookups report false or return
// empty slices. Calling Layout methods on a Layout that was not built with
// NewLayout panics, since that is a wiring error rather than a user error.
package geometry
