package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// swappable: exchanging (0,0) and (1,0) completes column 1 with triangles.
func swappableBoard(t *testing.T) *core.Grid {
	return board(t,
		"STC",
		"CTS",
		"TPS",
	)
}

// unswappable: the same exchange creates nothing.
func unswappableBoard(t *testing.T) *core.Grid {
	return board(t,
		"SDC",
		"CTS",
		"TPS",
	)
}

func TestSwapDirectionOffsets(t *testing.T) {
	tests := []struct {
		dir    core.SwapDirection
		dc, dr int
	}{
		{core.SwapLeft, -1, 0},
		{core.SwapRight, 1, 0},
		{core.SwapUp, 0, 1},
		{core.SwapDown, 0, -1},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			dc, dr := tc.dir.Offset()
			if dc != tc.dc || dr != tc.dr {
				t.Errorf("Offset() = (%d, %d), want (%d, %d)", dc, dr, tc.dc, tc.dr)
			}
			if tc.dir.Opposite().Opposite() != tc.dir {
				t.Errorf("Opposite() is not an involution for %v", tc.dir)
			}
			if !core.P(2, 2).Adjacent(core.P(2, 2).Neighbor(tc.dir)) {
				t.Errorf("Neighbor(%v) should be adjacent", tc.dir)
			}
		})
	}
}

func TestPositionAdjacent(t *testing.T) {
	assert.True(t, core.P(1, 1).Adjacent(core.P(1, 2)))
	assert.True(t, core.P(1, 1).Adjacent(core.P(0, 1)))
	assert.False(t, core.P(1, 1).Adjacent(core.P(2, 2)), "diagonal")
	assert.False(t, core.P(1, 1).Adjacent(core.P(1, 1)), "same cell")
	assert.False(t, core.P(1, 1).Adjacent(core.P(3, 1)), "two apart")
}

func TestCanSwapDoesNotMutate(t *testing.T) {
	for _, g := range []*core.Grid{swappableBoard(t), unswappableBoard(t)} {
		before := g.Clone()
		core.CanSwap(g, core.P(0, 0), core.P(1, 0))
		assert.True(t, before.Equal(g), "CanSwap changed the grid")
	}
}

func TestCanSwap(t *testing.T) {
	assert.True(t, core.CanSwap(swappableBoard(t), core.P(0, 0), core.P(1, 0)))
	assert.False(t, core.CanSwap(unswappableBoard(t), core.P(0, 0), core.P(1, 0)))
}

func TestCanSwapInvalidPositions(t *testing.T) {
	g := swappableBoard(t)
	assert.False(t, core.CanSwap(g, core.P(0, 0), core.P(0, 0)), "identical")
	assert.False(t, core.CanSwap(g, core.P(0, 0), core.P(-1, 0)), "out of bounds")
	assert.False(t, core.CanSwap(g, core.P(2, 2), core.P(3, 2)), "out of bounds")
}

func TestCommitSwapKeepsMatchingSwap(t *testing.T) {
	g := swappableBoard(t)
	a, b := g.At(core.P(0, 0)), g.At(core.P(1, 0))

	require.True(t, core.CommitSwap(g, core.P(0, 0), core.P(1, 0)))
	assert.Equal(t, b, g.At(core.P(0, 0)))
	assert.Equal(t, a, g.At(core.P(1, 0)))
	assert.True(t, core.HasAnyRun(g))
}

func TestCommitSwapRevertsNonMatchingSwap(t *testing.T) {
	g := unswappableBoard(t)
	before := g.Clone()

	require.False(t, core.CommitSwap(g, core.P(0, 0), core.P(1, 0)))
	assert.True(t, before.Equal(g), "grid should be unchanged after rejected swap")
}

func TestPossibleMoves(t *testing.T) {
	g := swappableBoard(t)
	moves := core.PossibleMoves(g)

	require.NotEmpty(t, moves)
	assert.Contains(t, moves, core.Move{A: core.P(0, 0), B: core.P(1, 0)})
	for _, m := range moves {
		assert.True(t, m.A.Adjacent(m.B))
		assert.True(t, core.CanSwap(g, m.A, m.B))
	}
	assert.True(t, core.HasPossibleMove(g))
}

func TestHasPossibleMoveNone(t *testing.T) {
	g := board(t,
		"PTS",
		"CDP",
		"TSC",
	)
	assert.False(t, core.HasPossibleMove(g))
	assert.Empty(t, core.PossibleMoves(g))
}
