package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/host"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	activeDifficultyStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)

	difficultyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const title = "F L A P P Y   B I R D"

// renderMenu renders the start screen: title, difficulty picker, controls
// and the leaderboard.
func renderMenu(v host.View, width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), width))
	b.WriteString("\n\n")

	b.WriteString(centerText(renderDifficulties(v.Difficulty), width))
	b.WriteString("\n\n")

	controls := subtitleStyle.Render("Space/Enter: Play  |  Space: Flap  |  P: Pause  |  D: Reset scores  |  Esc: Quit")
	b.WriteString(centerText(controls, width))
	b.WriteString("\n\n")

	b.WriteString(centerBlock(renderBoard(v.Board, v.LastName), width))
	b.WriteString("\n")

	return b.String()
}

// renderDifficulties renders the three presets with the active one highlighted.
func renderDifficulties(active config.Difficulty) string {
	parts := make([]string, len(config.Difficulties))
	for i, d := range config.Difficulties {
		label := fmt.Sprintf("%d %s", i+1, d.Title())
		if d == active {
			parts[i] = activeDifficultyStyle.Render(label)
		} else {
			parts[i] = difficultyStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// centerText centers a single line within width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock centers a multi-line block as a unit.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
