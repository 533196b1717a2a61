package core

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrGenerationExhausted is returned when no playable board was found
	// within the retry budget.
	ErrGenerationExhausted = errors.New("match3: board generation exhausted")

	// ErrInvalidDimensions is returned for grids with fewer than one row or column.
	ErrInvalidDimensions = errors.New("match3: invalid grid dimensions")
)

// TileSource draws tiles for the generator.
type TileSource interface {
	Tile() Tile
}

// TileSourceFunc adapts a function to TileSource.
type TileSourceFunc func() Tile

// Tile calls f.
func (f TileSourceFunc) Tile() Tile {
	return f()
}

// RandSource draws uniformly distributed tiles from a math/rand generator.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a tile source seeded with seed.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

// NewRandSourceFrom wraps an existing generator.
func NewRandSourceFrom(rng *rand.Rand) *RandSource {
	return &RandSource{rng: rng}
}

// Tile returns a uniformly random tile type.
func (s *RandSource) Tile() Tile {
	return Tile(s.rng.Intn(TileTypeCount) + 1)
}

// GenParams configures board generation.
type GenParams struct {
	Seed        int64 // RNG seed, used when Source is nil
	MaxAttempts int   // Whole-board restarts before giving up
	MaxRerolls  int   // Run-clearing rounds per attempt before restarting

	// Source overrides the seeded RNG (tests use scripted sources).
	Source TileSource
}

// DefaultGenParams returns sensible defaults for board generation.
func DefaultGenParams() GenParams {
	return GenParams{
		Seed:        0,
		MaxAttempts: 100,
		MaxRerolls:  1000,
	}
}

// GenStats describes how much work Generate did.
type GenStats struct {
	Attempts int // Boards filled from scratch
	Rerolls  int // Run-clearing rounds across all attempts
}

// Generate builds a cols x rows board that contains no run and has at
// least one swap that would create one.
func Generate(cols, rows int, p GenParams) (*Grid, error) {
	g, _, err := GenerateWithStats(cols, rows, p)
	return g, err
}

// GenerateWithStats is Generate that also reports attempt counters.
func GenerateWithStats(cols, rows int, p GenParams) (*Grid, GenStats, error) {
	var stats GenStats

	if cols < 1 || rows < 1 {
		return nil, stats, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.MaxRerolls < 1 {
		p.MaxRerolls = 1
	}

	src := p.Source
	if src == nil {
		src = NewRandSource(p.Seed)
	}

	g := NewGrid(cols, rows)
	for stats.Attempts < p.MaxAttempts {
		stats.Attempts++
		fill(g, src)

		cleared := false
		for range p.MaxRerolls {
			runs := FindRuns(g)
			if len(runs) == 0 {
				cleared = true
				break
			}
			stats.Rerolls++
			for _, run := range runs {
				for _, pos := range run {
					g.cells[pos.Col][pos.Row] = src.Tile()
				}
			}
		}
		if !cleared {
			continue
		}

		if HasPossibleMove(g) {
			return g, stats, nil
		}
	}

	return nil, stats, fmt.Errorf("%w: %dx%d after %d attempts", ErrGenerationExhausted, cols, rows, stats.Attempts)
}

// fill draws a fresh tile for every cell.
func fill(g *Grid, src TileSource) {
	for c := range g.cells {
		for r := range g.cells[c] {
			g.cells[c][r] = src.Tile()
		}
	}
}
