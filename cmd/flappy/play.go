package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy/internal/host"
	"github.com/vovakirdan/flappy/internal/platform/tui"
)

// Rows the terminal needs beyond the bordered playfield: the status line,
// the prompt or board heading and the help line.
const chromeRows = 4

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start Flappy Bird in the terminal.

Controls:
  Space/Up/W  - Flap (and start from the menu)
  Enter       - Start
  1/2/3       - Easy / Normal / Hard (menu)
  P           - Pause
  D           - Reset the leaderboard (menu)
  R           - Retry (after game over)
  Esc/Q       - Back to menu, quit from the menu
  Ctrl+C      - Quit

Examples:
  flappy play
  flappy play --difficulty easy
  flappy play --player Alice --seed 7`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := runFrontend(cmd.Context(), tui.ID, checkTerminal); err != nil {
		fail(err)
	}
}

// checkTerminal refuses to start when stdout is a terminal too small for
// the playfield. Non-terminal output is left to Bubble Tea.
func checkTerminal(v host.View) error {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return nil
	}
	return fitsTerminal(v, width, height)
}

func fitsTerminal(v host.View, width, height int) error {
	needW := v.Config.Width + 2
	needH := v.Config.Height + 2 + chromeRows
	if width < needW || height < needH {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", width, height, needW, needH)
	}
	return nil
}
