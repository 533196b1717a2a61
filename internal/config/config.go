// Package config provides YAML-based game configuration loading and
// board size presets for the match-3 game.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid match3 config")

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Generator GeneratorConfig `yaml:"generator"`
	Drag      DragConfig      `yaml:"drag"`
	Terminal  TerminalConfig  `yaml:"terminal"`
}

// GridConfig defines the board dimensions.
type GridConfig struct {
	Rows     int `yaml:"rows"`
	Columns  int `yaml:"columns"`
	CellSize int `yaml:"cell_size"` // World units per tile, used for pointer translation
}

// GeneratorConfig bounds the board generator's retries.
type GeneratorConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // Fresh boards tried before giving up
	MaxRerolls  int `yaml:"max_rerolls"`  // Run-clearing passes per board
}

// DragConfig tunes drag gesture recognition.
type DragConfig struct {
	MinRadius float64 `yaml:"min_radius"` // Fraction of a tile before a direction is chosen
}

// TerminalConfig defines how one tile maps onto terminal characters.
type TerminalConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// Validate reports the first unusable setting, wrapping ErrInvalidConfig.
func (c Match3Config) Validate() error {
	switch {
	case c.Grid.Rows < 1 || c.Grid.Columns < 1:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Grid.Columns, c.Grid.Rows)
	case c.Grid.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive, got %d", ErrInvalidConfig, c.Grid.CellSize)
	case c.Generator.MaxAttempts < 1:
		return fmt.Errorf("%w: max_attempts must be at least 1, got %d", ErrInvalidConfig, c.Generator.MaxAttempts)
	case c.Generator.MaxRerolls < 0:
		return fmt.Errorf("%w: max_rerolls must not be negative, got %d", ErrInvalidConfig, c.Generator.MaxRerolls)
	case c.Drag.MinRadius <= 0 || c.Drag.MinRadius >= 1:
		return fmt.Errorf("%w: min_radius must be in (0, 1), got %v", ErrInvalidConfig, c.Drag.MinRadius)
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return fmt.Errorf("%w: terminal cell must be positive, got %dx%d", ErrInvalidConfig, c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	return nil
}
