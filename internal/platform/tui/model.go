package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy/internal/core"
	"github.com/vovakirdan/flappy/internal/games/flappy"
	"github.com/vovakirdan/flappy/internal/host"
	"github.com/vovakirdan/flappy/internal/leaderboard"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// Model is the Bubble Tea model driving a host.Session.
type Model struct {
	session  *host.Session
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	input    textinput.Model
	screen   *core.Screen
	view     host.View
	pending  host.Signal // Latched input for the next tick
	interval time.Duration
	width    int
	height   int
	err      error
	quitting bool
}

// NewModel creates a model for the session. The playfield is sized from the
// session's geometry with a one-cell border.
func NewModel(s *host.Session, logger *log.Logger) Model {
	view := s.View()
	cfg := view.Config

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = leaderboard.MaxNameLength
	input.Width = leaderboard.MaxNameLength + 1

	interval := time.Duration(cfg.TickMillis) * time.Millisecond
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}

	return Model{
		session:  s,
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		screen:   core.NewScreen(cfg.Width+2, cfg.Height+2),
		view:     view,
		interval: interval,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	if m.view.Phase == host.PhaseNameEntry {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey latches a signal for the next tick, or feeds the name input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.view.Phase == host.PhaseNameEntry {
		if key.Matches(msg, m.keys.Submit) {
			return m.submitName()
		}
		if !key.Matches(msg, m.keys.Cancel) {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	if sig := m.keys.Signal(msg, m.view.Phase); sig != host.SignalNone {
		m.pending = sig
	}
	return m, nil
}

func (m Model) submitName() (tea.Model, tea.Cmd) {
	if err := m.session.SubmitName(m.input.Value()); err != nil {
		m.logger.Error("cannot save high score", "err", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.input.Blur()
	m.input.Reset()
	m.view = m.session.View()
	return m, nil
}

// handleTick hands the latched signal to the session.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	sig := m.pending
	m.pending = host.SignalNone
	prev := m.view.Phase

	if err := m.session.Handle(sig); err != nil {
		m.logger.Error("session failed", "signal", sig, "err", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	m.view = m.session.View()
	if m.view.Done {
		m.quitting = true
		return m, tea.Quit
	}

	if m.view.Phase == host.PhaseNameEntry && prev != host.PhaseNameEntry {
		m.input.Reset()
		m.input.Placeholder = m.view.LastName
		focus := m.input.Focus()
		return m, tea.Batch(tickCmd(m.interval), focus)
	}
	if m.view.Phase != host.PhaseNameEntry && m.input.Focused() {
		m.input.Blur()
	}

	return m, tickCmd(m.interval)
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	switch m.view.Phase {
	case host.PhaseMenu:
		b.WriteString(renderMenu(m.view, m.width))
	default:
		b.WriteString(m.renderPlayfield())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys.HelpFor(m.view.Phase))))
	return b.String()
}

// renderPlayfield draws the field with its overlays and the status line.
func (m Model) renderPlayfield() string {
	v := m.view
	cfg := v.Config

	m.screen.Clear()
	m.screen.DrawBox(core.NewRect(0, 0, cfg.Width+2, cfg.Height+2), core.ColorGray)
	flappy.DrawField(m.screen, 1, 1, v.State, cfg)

	mid := (cfg.Height + 2) / 2
	switch v.Phase {
	case host.PhasePaused:
		m.screen.DrawTextCentered(mid, " PAUSED ", core.ColorCyan)
	case host.PhaseNameEntry:
		m.screen.DrawTextCentered(mid, " NEW HIGH SCORE ", core.ColorOrange)
	case host.PhaseGameOver:
		m.screen.DrawTextCentered(mid-1, " GAME OVER ", core.ColorRed)
		m.screen.DrawTextCentered(mid+1, fmt.Sprintf(" Score: %d ", v.State.Score), core.ColorYellow)
	}

	var b strings.Builder
	b.WriteString(centerBlock(RenderScreen(m.screen), m.width))
	b.WriteString("\n")

	status := fmt.Sprintf("Score: %d  |  Best: %d  |  %s", v.State.Score, max(v.Best(), v.State.Score), v.Difficulty.Title())
	b.WriteString(centerText(statusStyle.Render(status), m.width))
	b.WriteString("\n")

	switch v.Phase {
	case host.PhaseNameEntry:
		b.WriteString("\n")
		b.WriteString(centerText(promptStyle.Render("Enter your name:"), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(m.input.View(), m.width))
		b.WriteString("\n")
	case host.PhaseGameOver:
		b.WriteString("\n")
		b.WriteString(centerBlock(renderBoard(v.Board, v.LastName), m.width))
		b.WriteString("\n")
	}

	return b.String()
}
