package config

import "fmt"

// BoardPreset represents a named board size.
type BoardPreset string

const (
	PresetSmall   BoardPreset = "small"
	PresetClassic BoardPreset = "classic"
	PresetLarge   BoardPreset = "large"
	PresetHuge    BoardPreset = "huge"
)

// Presets lists every preset in ascending size.
func Presets() []BoardPreset {
	return []BoardPreset{PresetSmall, PresetClassic, PresetLarge, PresetHuge}
}

// SizeForPreset returns the columns and rows for a preset.
func SizeForPreset(preset BoardPreset) (cols, rows int, ok bool) {
	switch preset {
	case PresetSmall:
		return 5, 5, true
	case PresetClassic:
		return 6, 6, true
	case PresetLarge:
		return 8, 8, true
	case PresetHuge:
		return 10, 10, true
	default:
		return 0, 0, false
	}
}

// ApplyMatch3Preset resizes the grid to the named preset.
// An empty preset leaves the config untouched.
func ApplyMatch3Preset(cfg *Match3Config, preset BoardPreset) error {
	if preset == "" {
		return nil
	}
	cols, rows, ok := SizeForPreset(preset)
	if !ok {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, preset)
	}
	cfg.Grid.Columns = cols
	cfg.Grid.Rows = rows
	return nil
}
