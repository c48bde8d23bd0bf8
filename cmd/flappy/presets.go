package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Show the difficulty presets",
	Long: `Display the difficulty presets for both playfields, after applying
the --presets override or ~/.flappy/configs/flappy.yaml if present.

Examples:
  flappy presets
  flappy presets --presets ./my-presets.yaml`,
	Args: cobra.NoArgs,
	Run:  runPresets,
}

func runPresets(cmd *cobra.Command, args []string) {
	s, err := config.Current()
	if err != nil {
		fail(err)
	}

	tbl, err := config.LoadTable(s.Presets)
	if err != nil {
		fail(err)
	}

	if err := writePresets(os.Stdout, tbl); err != nil {
		fail(err)
	}
}

// writePresets renders one row per playfield and difficulty.
func writePresets(w io.Writer, tbl config.Table) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Field", "Difficulty", "Gap", "Spawn every", "Gravity", "Jump", "Scroll", "Tick"})
	for _, kind := range []config.Kind{config.KindGrid, config.KindPixel} {
		for _, d := range config.Difficulties {
			g, p, err := tbl.Resolve(kind, d)
			if err != nil {
				return err
			}
			t.AppendRow(table.Row{
				kind,
				d.Title(),
				p.GapSize,
				p.SpawnInterval,
				p.Gravity,
				p.JumpVelocity,
				p.ScrollSpeed,
				fmt.Sprintf("%dms", g.TickMillis),
			})
		}
		t.AppendSeparator()
	}

	t.Render()
	return nil
}
