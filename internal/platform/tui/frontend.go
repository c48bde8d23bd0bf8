package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/host"
	"github.com/vovakirdan/flappy/internal/registry"
)

// ID is the registry name of the terminal front end.
const ID = "console"

func init() {
	registry.Register(ID, func() registry.Frontend { return Console{} })
}

// Console runs the game in the terminal.
type Console struct{}

// ID returns "console".
func (Console) ID() string { return ID }

// Title returns the display name.
func (Console) Title() string { return "Terminal" }

// Kind returns the character grid geometry.
func (Console) Kind() config.Kind { return config.KindGrid }

// Run starts the Bubble Tea program with a model for the session.
func (Console) Run(ctx context.Context, s *host.Session, logger *log.Logger) error {
	model := NewModel(s, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
