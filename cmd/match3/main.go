// match3 is a terminal drag-to-swap match-3 board.
//
// Usage:
//
//	match3 list               - List available boards
//	match3 play [board]       - Play a board (default: match3)
//	match3 serve              - Start SSH server for remote play
//	match3 generate           - Print a generated board
//	match3 journal            - Show recorded sessions and moves
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible boards
//	--db <path>        - Set journal path (default: ~/.match3/journal.db)
//	--config <path>    - Load a custom match3 YAML config
//	--preset <name>    - Board size preset: small, classic, large, huge
//	--debug            - Write engine notifications to ~/.match3/debug.log
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagPreset string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - Swap tiles in your terminal",
	Long: `Match-3 is a terminal drag-to-swap tile board. Grab a tile and drag
it onto a neighbour; the swap sticks only when it lines up three or more
equal tiles.

Available commands:
  list      - Show all board variants
  play      - Play a board
  serve     - Start SSH server for remote play
  generate  - Print a generated board
  journal   - Show recorded sessions and moves

Examples:
  match3 play
  match3 play match3_large --seed 42
  match3 play --board ./fixtures/corner.yaml
  match3 serve --ssh :2222
  match3 generate --cols 8 --rows 8 --yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/journal.db", "Path to move journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match3 config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Board size preset: small, classic, large, huge")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log engine notifications to ~/.match3/debug.log")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(journalCmd)
}

// loadConfig resolves the match3 config from --config and --preset and
// installs it for games created afterwards.
func loadConfig() (config.Match3Config, error) {
	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyMatch3Preset(&cfg, config.BoardPreset(flagPreset)); err != nil {
		return cfg, err
	}
	match3.SetConfig(cfg)
	return cfg, nil
}

// exitErr prints err the way every command reports failures and exits.
func exitErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
