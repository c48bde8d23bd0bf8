package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy/internal/host"
)

// KeyMap defines the terminal key bindings.
// It centralizes bindings and makes them testable.
type KeyMap struct {
	Jump      key.Binding
	Start     key.Binding
	Retry     key.Binding
	Pause     key.Binding
	Easy      key.Binding
	Normal    key.Binding
	Hard      key.Binding
	Reset     key.Binding
	Back      key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "flap"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Easy: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "easy"),
		),
		Normal: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "normal"),
		),
		Hard: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "hard"),
		),
		Reset: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "reset scores"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "skip"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Signal translates a key press to a host signal for the given phase.
// Name entry keystrokes go to the text input, so only Cancel is mapped there.
func (k KeyMap) Signal(msg tea.KeyMsg, phase host.Phase) host.Signal {
	if phase == host.PhaseNameEntry && !key.Matches(msg, k.Cancel) {
		return host.SignalNone
	}
	return host.SignalFor(phase, k.hostKey(msg))
}

// hostKey translates a key message to a toolkit-neutral key.
func (k KeyMap) hostKey(msg tea.KeyMsg) host.Key {
	switch {
	case key.Matches(msg, k.Jump):
		return host.KeyFlap
	case key.Matches(msg, k.Start):
		return host.KeyConfirm
	case key.Matches(msg, k.Retry):
		return host.KeyRetry
	case key.Matches(msg, k.Pause):
		return host.KeyPause
	case key.Matches(msg, k.Easy):
		return host.KeyEasy
	case key.Matches(msg, k.Normal):
		return host.KeyNormal
	case key.Matches(msg, k.Hard):
		return host.KeyHard
	case key.Matches(msg, k.Reset):
		return host.KeyReset
	case key.Matches(msg, k.Back):
		return host.KeyBack
	}
	return host.KeyOther
}

// HelpFor returns the bindings worth showing in the given phase.
func (k KeyMap) HelpFor(phase host.Phase) help.KeyMap {
	switch phase {
	case host.PhaseMenu:
		return phaseHelp{k.Start, k.Easy, k.Normal, k.Hard, k.Reset, k.Back}
	case host.PhasePlaying:
		return phaseHelp{k.Jump, k.Pause, k.Back}
	case host.PhasePaused:
		return phaseHelp{k.Pause, k.Back}
	case host.PhaseNameEntry:
		return phaseHelp{k.Submit, k.Cancel}
	case host.PhaseGameOver:
		return phaseHelp{k.Retry, withHelp(k.Back, "any key", "menu")}
	}
	return phaseHelp{k.ForceQuit}
}

func withHelp(b key.Binding, keys, desc string) key.Binding {
	b.SetHelp(keys, desc)
	return b
}

// phaseHelp is a flat help.KeyMap.
type phaseHelp []key.Binding

// ShortHelp returns key bindings for the short help view.
func (h phaseHelp) ShortHelp() []key.Binding { return h }

// FullHelp returns key bindings for the full help view.
func (h phaseHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }
