// Package levels maps physical pressure values onto positions within a
// discretized atmospheric pressure-level set, and reshapes per-profile
// coordinates to match per-level variables for plotting.
package levels

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyLevels is returned when an Index is built from an empty
	// pressure sequence.
	ErrEmptyLevels = errors.New("empty pressure level sequence")
	// ErrLevelNotFound is returned when no level matches the requested
	// pressure.
	ErrLevelNotFound = errors.New("pressure level not found")
	// ErrShapeMismatch is returned when a coordinate cannot be broadcast
	// into the requested grid shape.
	ErrShapeMismatch = errors.New("coordinate shape mismatch")
)

// Index maps integer-rounded pressure values to their positions within the
// level sequence it was built from. Build it once per swath from one
// representative profile; an Index is read-only after construction.
type Index struct {
	byRounded map[int]int
	levels    []float64
}

// BuildIndex rounds each pressure to the nearest whole unit (millibars for
// NUCAPS) and records the position at which each rounded value occurs.
//
// If two levels round to the same integer the later position overwrites the
// earlier one. This hides a level and is kept deliberately: the lookup
// tables produced by the original sounding tutorials behave this way, and
// callers comparing outputs against them depend on it.
func BuildIndex(pressures []float64) (Index, error) {
	if len(pressures) == 0 {
		return Index{}, ErrEmptyLevels
	}
	byRounded := make(map[int]int, len(pressures))
	for i, p := range pressures {
		byRounded[int(math.Round(p))] = i
	}
	cp := make([]float64, len(pressures))
	copy(cp, pressures)
	return Index{byRounded: byRounded, levels: cp}, nil
}

// Len returns the number of levels the index was built from.
func (ix Index) Len() int {
	return len(ix.levels)
}

// Pressure returns the unrounded pressure at position i.
func (ix Index) Pressure(i int) float64 {
	return ix.levels[i]
}

// Lookup returns the position whose rounded pressure equals round(target).
//
// This is an exact match on the rounded value, not a distance search.
// Requesting 500mb against a level set containing 496 but not 500 fails
// with ErrLevelNotFound even though 496 is close. Use Nearest for a true
// closest-level search.
func (ix Index) Lookup(target float64) (int, error) {
	i, ok := ix.byRounded[int(math.Round(target))]
	if !ok {
		return 0, fmt.Errorf("%w: %gmb", ErrLevelNotFound, target)
	}
	return i, nil
}

// Nearest returns the position of the level closest to target by absolute
// difference over the unrounded levels. Ties resolve to the later position,
// consistent with the last-write-wins rule in BuildIndex. Unlike Lookup it
// succeeds for any target; it is a documented addition and does not
// reproduce legacy lookup results.
func (ix Index) Nearest(target float64) (int, error) {
	if len(ix.levels) == 0 {
		return 0, fmt.Errorf("%w: %gmb", ErrLevelNotFound, target)
	}
	best := 0
	for i, p := range ix.levels[1:] {
		if math.Abs(p-target) <= math.Abs(ix.levels[best]-target) {
			best = i + 1
		}
	}
	return best, nil
}

// Broadcast repeats a per-profile coordinate across levelCount columns,
// producing a profileCount×levelCount grid with grid[i][j] = coordinate[i].
// The grid's shape matches a per-level 2-D variable so the two can be
// plotted against each other with consistent axes. Rows do not alias the
// input or each other.
func Broadcast[T any](coordinate []T, levelCount, profileCount int) ([][]T, error) {
	if levelCount <= 0 || profileCount <= 0 || len(coordinate) != profileCount {
		return nil, fmt.Errorf("%w: cannot broadcast %d values into a %dx%d grid",
			ErrShapeMismatch, len(coordinate), profileCount, levelCount)
	}
	grid := make([][]T, profileCount)
	for i, v := range coordinate {
		row := make([]T, levelCount)
		for j := range row {
			row[j] = v
		}
		grid[i] = row
	}
	return grid, nil
}
