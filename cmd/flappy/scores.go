package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/leaderboard"
)

var flagReset bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top 5 scores from the configured leaderboard.

Examples:
  flappy scores
  flappy scores --leaderboard ./highscores.txt
  flappy scores --backend sqlite --leaderboard ~/.flappy/scores.db
  flappy scores --reset`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete every entry from the leaderboard")
}

func runScores(cmd *cobra.Command, args []string) {
	s, err := config.Current()
	if err != nil {
		fail(err)
	}

	store, err := openStore(s)
	if err != nil {
		fail(fmt.Errorf("opening leaderboard: %w", err))
	}
	defer store.Close()

	if flagReset {
		if err := store.Reset(); err != nil {
			fail(fmt.Errorf("resetting leaderboard: %w", err))
		}
		fmt.Printf("Leaderboard %s reset.\n", s.Leaderboard)
		return
	}

	entries, err := store.Load()
	if err != nil {
		fail(fmt.Errorf("reading leaderboard: %w", err))
	}

	fmt.Printf("High Scores - %s\n", s.Leaderboard)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return
	}

	writeScores(os.Stdout, entries)
}

// writeScores renders the leaderboard as a table.
func writeScores(w io.Writer, entries []leaderboard.Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Rank", "Name", "Score"})
	for i, e := range entries {
		t.AppendRow(table.Row{i + 1, e.Name, e.Score})
	}

	t.Render()
}
