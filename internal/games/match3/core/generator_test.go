package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestGenerateProducesPlayableBoards(t *testing.T) {
	sizes := []struct {
		name       string
		cols, rows int
	}{
		{"3x3", 3, 3},
		{"6x6", 6, 6},
		{"8x5", 8, 5},
		{"10x10", 10, 10},
		{"1x5", 1, 5},
	}

	for _, sz := range sizes {
		t.Run(sz.name, func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				params := core.DefaultGenParams()
				params.Seed = seed

				g, err := core.Generate(sz.cols, sz.rows, params)
				require.NoError(t, err, "seed %d", seed)
				require.Equal(t, sz.cols, g.Cols())
				require.Equal(t, sz.rows, g.Rows())

				assert.True(t, g.IsFull(), "seed %d: board has empty cells", seed)
				assert.Empty(t, core.FindRuns(g), "seed %d: board has runs:\n%s", seed, g)
				assert.True(t, core.HasPossibleMove(g), "seed %d: board has no possible move:\n%s", seed, g)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	params := core.DefaultGenParams()
	params.Seed = 42

	a, err := core.Generate(6, 6, params)
	require.NoError(t, err)
	b, err := core.Generate(6, 6, params)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "same seed produced different boards:\n%s\n\n%s", a, b)
}

func TestGenerateExhaustedWhenNoMoveExists(t *testing.T) {
	params := core.DefaultGenParams()
	params.Seed = 3
	params.MaxAttempts = 5

	// A 2x2 board can never hold a run, so no swap can create one.
	_, stats, err := core.GenerateWithStats(2, 2, params)
	require.ErrorIs(t, err, core.ErrGenerationExhausted)
	assert.Equal(t, 5, stats.Attempts)
}

func TestGenerateExhaustedWhenRunsNeverClear(t *testing.T) {
	params := core.DefaultGenParams()
	params.MaxAttempts = 3
	params.MaxRerolls = 10
	params.Source = core.TileSourceFunc(func() core.Tile { return core.TileStar })

	_, stats, err := core.GenerateWithStats(3, 3, params)
	require.ErrorIs(t, err, core.ErrGenerationExhausted)
	assert.Equal(t, 30, stats.Rerolls)
}

func TestGenerateInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		_, err := core.Generate(dims[0], dims[1], core.DefaultGenParams())
		assert.ErrorIs(t, err, core.ErrInvalidDimensions, "Generate(%d, %d)", dims[0], dims[1])
	}
}

func TestRandSourceCoversAllTypes(t *testing.T) {
	src := core.NewRandSource(99)
	seen := make(map[core.Tile]int)
	for range 600 {
		tile := src.Tile()
		require.False(t, tile.IsNone(), "RandSource returned an empty tile")
		seen[tile]++
	}

	for _, tile := range core.AllTileTypes() {
		assert.NotZero(t, seen[tile], "tile %v never drawn", tile)
	}
}
