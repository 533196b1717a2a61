package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	m3core "github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagBoard string

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the given board variant (default: match3).

Controls:
  Arrows/WASD  - Move cursor, or drag the grabbed tile
  Space/Enter  - Grab / drop a tile
  Mouse        - Press on a tile and drag it onto a neighbour
  Esc          - Cancel the drag
  ?            - Show a hint
  P            - Pause
  R            - New board
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  match3 play
  match3 play match3_small
  match3 play --preset large --seed 7
  match3 play --board ./fixtures/corner.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBoard, "board", "", "Play a fixed board from a YAML fixture")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "match3"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available boards.")
		os.Exit(1)
	}

	if _, err := loadConfig(); err != nil {
		exitErr("%v", err)
	}

	if flagBoard != "" {
		data, err := os.ReadFile(flagBoard)
		if err != nil {
			exitErr("cannot read board: %v", err)
		}
		grid, err := m3core.ParseBoardYAML(data)
		if err != nil {
			exitErr("invalid board %s: %v", flagBoard, err)
		}
		match3.SetStartBoard(grid)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		exitErr("creating board: %v", err)
	}

	logger, closeLog := debugLogger()
	defer closeLog()

	// Open move journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, cfg, tui.Options{Store: store, Source: "local", Logger: logger})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		exitErr("running board: %v", runErr)
	}
}

// debugLogger returns a file logger when --debug is set. The terminal is
// owned by Bubble Tea, so logs never go to stderr while playing.
func debugLogger() (*log.Logger, func()) {
	if !flagDebug {
		return nil, func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, func() {}
	}
	dir := filepath.Join(home, ".match3")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}
