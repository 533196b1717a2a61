package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Grid: GridConfig{
			Rows:     6,
			Columns:  6,
			CellSize: 80,
		},
		Generator: GeneratorConfig{
			MaxAttempts: 100,
			MaxRerolls:  1000,
		},
		Drag: DragConfig{
			MinRadius: 0.2,
		},
		Terminal: TerminalConfig{
			CellWidth:  5,
			CellHeight: 2,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultMatch3YAML
}
