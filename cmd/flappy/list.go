package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available front ends",
	Long:  `Shows the front ends built into this binary and the playfield each one uses.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	frontends := registry.List()

	if len(frontends) == 0 {
		fmt.Println("No front ends available.")
		return
	}

	fmt.Println("Available front ends:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, f := range frontends {
		maxIDLen = max(maxIDLen, len(f.ID))
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Field", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, f := range frontends {
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, f.ID, f.Kind, f.Title)
	}

	fmt.Println()
	fmt.Println("Run 'flappy play' for the terminal or 'flappy gui --mode <id>' for a window.")
}
