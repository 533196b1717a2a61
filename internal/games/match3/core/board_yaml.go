package core

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLBoard is the on-disk shape of a board fixture. Rows are listed top
// row first, as they appear on screen; each row is a string of glyphs or a
// space-separated list of tile names.
type YAMLBoard struct {
	Name string   `yaml:"name,omitempty"`
	Rows []string `yaml:"rows"`
}

// ParseBoardYAML parses a board fixture.
func ParseBoardYAML(data []byte) (*Grid, error) {
	var yb YAMLBoard
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return ParseBoardRows(yb.Rows)
}

// ParseBoardRows builds a grid from text rows, top row first.
func ParseBoardRows(lines []string) (*Grid, error) {
	rows := make([][]Tile, len(lines))
	for i, line := range lines {
		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		// Flip so that the last listed row becomes row 0.
		rows[len(lines)-1-i] = row
	}
	return GridFromRows(rows)
}

func parseRow(line string) ([]Tile, error) {
	var tokens []string
	if strings.ContainsAny(strings.TrimSpace(line), " \t") {
		tokens = strings.Fields(line)
	} else {
		for _, r := range strings.TrimSpace(line) {
			tokens = append(tokens, string(r))
		}
	}

	row := make([]Tile, 0, len(tokens))
	for _, tok := range tokens {
		t, ok := ParseTile(tok)
		if !ok {
			return nil, fmt.Errorf("unknown tile %q", tok)
		}
		row = append(row, t)
	}
	return row, nil
}

// MarshalBoardYAML encodes g as a fixture, top row first.
func MarshalBoardYAML(name string, g *Grid) ([]byte, error) {
	yb := YAMLBoard{Name: name, Rows: strings.Split(g.String(), "\n")}
	return yaml.Marshal(yb)
}
