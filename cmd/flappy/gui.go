package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy/internal/registry"
)

// Window front end IDs. Binaries built with -tags nogui register neither.
const (
	modeVector = "vector"
	modeWidget = "widget"
)

var flagMode string

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Play in a desktop window",
	Long: `Open Flappy Bird in a desktop window.

Modes:
  vector - Shapes drawn every frame (Ebiten)
  widget - Stock toolkit widgets standing in for the bird and pipes (Fyne)

Controls:
  Space/Up/Click  - Flap (and start from the menu)
  Enter           - Start
  1/2/3           - Easy / Normal / Hard (menu)
  P               - Pause
  D               - Reset the leaderboard (menu)
  R               - Retry (after game over)
  Esc             - Back to menu, quit from the menu

Examples:
  flappy gui
  flappy gui --mode widget --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runGUI,
}

func init() {
	guiCmd.Flags().StringVar(&flagMode, "mode", modeVector, fmt.Sprintf("Window mode: %s, %s", modeVector, modeWidget))
}

func runGUI(cmd *cobra.Command, args []string) {
	if flagMode != modeVector && flagMode != modeWidget {
		fail(fmt.Errorf("unknown mode %q (want %s or %s)", flagMode, modeVector, modeWidget))
	}
	if !registry.Exists(flagMode) {
		fail(fmt.Errorf("mode %q is not built into this binary", flagMode))
	}
	if err := runFrontend(cmd.Context(), flagMode, nil); err != nil {
		fail(err)
	}
}
