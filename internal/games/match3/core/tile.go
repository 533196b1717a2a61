// Package core implements the match-3 rule engine: the tile grid, run
// detection, board generation, swap validation and the drag gesture state
// machine. It has no rendering or input-device dependencies.
package core

import "strings"

// Tile is the value held by a grid cell. TileNone marks an empty cell.
type Tile uint8

const (
	TileNone Tile = iota
	TilePentagon
	TileTriangle
	TileSquare
	TileCircle
	TileDiamond
	TileStar
)

// TileTypeCount is the number of real (non-empty) tile types.
const TileTypeCount = 6

// AllTileTypes returns the six tile types in declaration order.
func AllTileTypes() []Tile {
	return []Tile{TilePentagon, TileTriangle, TileSquare, TileCircle, TileDiamond, TileStar}
}

// IsNone reports whether the cell is empty.
func (t Tile) IsNone() bool {
	return t == TileNone
}

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case TileNone:
		return "none"
	case TilePentagon:
		return "pentagon"
	case TileTriangle:
		return "triangle"
	case TileSquare:
		return "square"
	case TileCircle:
		return "circle"
	case TileDiamond:
		return "diamond"
	case TileStar:
		return "star"
	default:
		return "unknown"
	}
}

// Glyph returns a single-rune symbol used by text renderers and fixtures.
func (t Tile) Glyph() rune {
	switch t {
	case TilePentagon:
		return 'P'
	case TileTriangle:
		return 'T'
	case TileSquare:
		return 'S'
	case TileCircle:
		return 'C'
	case TileDiamond:
		return 'D'
	case TileStar:
		return '*'
	default:
		return '.'
	}
}

// ParseTile parses a tile from its name or glyph (case-insensitive).
func ParseTile(s string) (Tile, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pentagon", "p":
		return TilePentagon, true
	case "triangle", "t":
		return TileTriangle, true
	case "square", "s":
		return TileSquare, true
	case "circle", "c":
		return TileCircle, true
	case "diamond", "d":
		return TileDiamond, true
	case "star", "*":
		return TileStar, true
	case "none", ".", "":
		return TileNone, true
	default:
		return TileNone, false
	}
}
