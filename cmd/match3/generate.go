package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	m3core "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

var (
	flagGenCols  int
	flagGenRows  int
	flagGenYAML  bool
	flagGenName  string
	flagGenStats bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a generated board",
	Long: `Generate a board with no existing run and at least one valid swap,
then print it top row first.

Size defaults to the configured grid (see --config and --preset).
With --yaml the board is printed as a fixture that 'match3 play --board'
accepts.

Glyphs:
  P pentagon  T triangle  S square  C circle  D diamond  * star

Examples:
  match3 generate
  match3 generate --cols 8 --rows 8 --seed 42
  match3 generate --preset small --yaml > small.yaml`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagGenCols, "cols", 0, "Board columns (0 = configured)")
	generateCmd.Flags().IntVar(&flagGenRows, "rows", 0, "Board rows (0 = configured)")
	generateCmd.Flags().BoolVar(&flagGenYAML, "yaml", false, "Print the board as a YAML fixture")
	generateCmd.Flags().StringVar(&flagGenName, "name", "", "Fixture name for --yaml")
	generateCmd.Flags().BoolVar(&flagGenStats, "stats", false, "Print generation attempts to stderr")
}

func runGenerate(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}

	cols, rows := cfg.Grid.Columns, cfg.Grid.Rows
	if flagGenCols > 0 {
		cols = flagGenCols
	}
	if flagGenRows > 0 {
		rows = flagGenRows
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	params := m3core.DefaultGenParams()
	params.Seed = seed
	params.MaxAttempts = cfg.Generator.MaxAttempts
	params.MaxRerolls = cfg.Generator.MaxRerolls

	grid, stats, err := m3core.GenerateWithStats(cols, rows, params)
	if flagGenStats {
		fmt.Fprintf(os.Stderr, "seed=%d attempts=%d rerolls=%d\n", seed, stats.Attempts, stats.Rerolls)
	}
	if errors.Is(err, m3core.ErrGenerationExhausted) {
		exitErr("no playable %dx%d board after %d attempts, try another seed", cols, rows, stats.Attempts)
	}
	if err != nil {
		exitErr("%v", err)
	}

	if !flagGenYAML {
		fmt.Println(grid)
		return
	}

	name := flagGenName
	if name == "" {
		name = fmt.Sprintf("seed-%d", seed)
	}
	data, err := m3core.MarshalBoardYAML(name, grid)
	if err != nil {
		exitErr("%v", err)
	}
	//nolint:errcheck // Nothing useful to do if stdout is gone
	os.Stdout.Write(data)
}
