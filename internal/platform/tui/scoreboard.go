package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy/internal/leaderboard"
)

// Scoreboard layout constants
const (
	rankWidth  = 6
	nameWidth  = leaderboard.MaxNameLength + 2
	scoreWidth = 8
)

var (
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	boardBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	emptyBoardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// newBoardTable builds a read-only table of the board. The row whose name
// matches highlight is selected.
func newBoardTable(entries []leaderboard.Entry, highlight string) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: rankWidth},
		{Title: "Name", Width: nameWidth},
		{Title: "Score", Width: scoreWidth},
	}

	rows := make([]table.Row, len(entries))
	cursor := -1
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			strconv.Itoa(e.Score),
		}
		if cursor < 0 && highlight != "" && strings.EqualFold(e.Name, highlight) {
			cursor = i
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(leaderboard.MaxEntries+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	if cursor >= 0 {
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetCursor(cursor)
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	t.SetStyles(s)

	return t
}

// renderBoard renders the leaderboard panel.
func renderBoard(entries []leaderboard.Entry, highlight string) string {
	var b strings.Builder
	b.WriteString(boardTitleStyle.Render("HIGH SCORES"))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(emptyBoardStyle.Render("No scores yet"))
	} else {
		b.WriteString(newBoardTable(entries, highlight).View())
	}

	return boardBoxStyle.Render(b.String())
}
