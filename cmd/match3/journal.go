package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagJournalSession string
	flagJournalLimit   int
	flagJournalBrowse  bool
	flagJournalClear   bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recorded sessions and moves",
	Long: `Display the move journal: one session per board played, with the
committed and rejected swap attempts made on it.

Examples:
  match3 journal                      # Recent sessions
  match3 journal --session <id>       # Moves of one session
  match3 journal --browse             # Interactive browser
  match3 journal --clear              # Delete every record`,
	Args: cobra.NoArgs,
	Run:  runJournal,
}

func init() {
	journalCmd.Flags().StringVar(&flagJournalSession, "session", "", "Show the moves of one session")
	journalCmd.Flags().IntVar(&flagJournalLimit, "limit", 10, "Maximum rows to print")
	journalCmd.Flags().BoolVar(&flagJournalBrowse, "browse", false, "Open the interactive journal browser")
	journalCmd.Flags().BoolVar(&flagJournalClear, "clear", false, "Delete all sessions and moves")
}

func runJournal(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening journal database: %v", err)
	}
	defer store.Close()

	switch {
	case flagJournalClear:
		if err := store.ClearJournal(); err != nil {
			store.Close()
			exitErr("clearing journal: %v", err)
		}
		fmt.Println("Journal cleared.")

	case flagJournalBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunJournal(store, width, height); err != nil {
			store.Close()
			exitErr("%v", err)
		}

	case flagJournalSession != "":
		printSession(store, flagJournalSession)

	default:
		printSessions(store)
	}
}

func printSessions(store *storage.Store) {
	sessions, err := store.RecentSessions(flagJournalLimit)
	if err != nil {
		store.Close()
		exitErr("reading journal: %v", err)
	}

	fmt.Println("Recent sessions")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'match3 play' to start one!")
		return
	}

	fmt.Printf("  %-36s  %-14s  %-5s  %-5s  %-8s  %s\n", "Session", "Board", "Size", "Swaps", "Rejected", "Started")
	fmt.Printf("  %-36s  %-14s  %-5s  %-5s  %-8s  %s\n", "-------", "-----", "----", "-----", "--------", "-------")
	for _, s := range sessions {
		fmt.Printf("  %-36s  %-14s  %-5s  %-5d  %-8d  %s\n",
			s.SessionID, s.GameID, fmt.Sprintf("%dx%d", s.Cols, s.Rows),
			s.Committed, s.Rejected, s.StartedAt.Format("2006-01-02 15:04"))
	}
}

func printSession(store *storage.Store, id string) {
	stats, err := store.SessionStats(id)
	if errors.Is(err, storage.ErrUnknownSession) {
		store.Close()
		exitErr("unknown session %q", id)
	}
	if err != nil {
		store.Close()
		exitErr("reading journal: %v", err)
	}

	fmt.Printf("Session %s - %s %dx%d\n", stats.SessionID, stats.GameID, stats.Cols, stats.Rows)
	fmt.Printf("Started %s, %d attempts (%d swapped, %d rejected)\n",
		stats.StartedAt.Format("2006-01-02 15:04"), stats.Attempts(), stats.Committed, stats.Rejected)
	fmt.Println()

	moves, err := store.RecentMoves(id, flagJournalLimit)
	if err != nil {
		store.Close()
		exitErr("reading moves: %v", err)
	}
	if len(moves) == 0 {
		fmt.Println("No swaps in this session.")
		return
	}

	fmt.Printf("  %-7s  %-7s  %-8s  %s\n", "From", "To", "Result", "Time")
	fmt.Printf("  %-7s  %-7s  %-8s  %s\n", "----", "--", "------", "----")
	for _, mv := range moves {
		result := "rejected"
		if mv.Committed {
			result = "swapped"
		}
		fmt.Printf("  %-7s  %-7s  %-8s  %s\n",
			fmt.Sprintf("(%d,%d)", mv.FromCol, mv.FromRow),
			fmt.Sprintf("(%d,%d)", mv.ToCol, mv.ToRow),
			result, mv.CreatedAt.Format("15:04:05"))
	}
}
