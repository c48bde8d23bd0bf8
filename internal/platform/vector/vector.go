//go:build !nogui

// Package vector is the windowed front end drawn with Ebiten vector
// primitives: filled rectangles for pipes and a filled circle for the bird.
package vector

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/host"
	"github.com/vovakirdan/flappy/internal/leaderboard"
	"github.com/vovakirdan/flappy/internal/registry"
)

// ID is the registry name of the vector front end.
const ID = "vector"

func init() {
	registry.Register(ID, func() registry.Frontend { return Window{} })
}

// Window runs the game in an Ebiten window.
type Window struct{}

// ID returns "vector".
func (Window) ID() string { return ID }

// Title returns the display name.
func (Window) Title() string { return "Vector window" }

// Kind returns the pixel geometry.
func (Window) Kind() config.Kind { return config.KindPixel }

// Run opens the window and blocks until the player quits or ctx is cancelled.
// Ebiten requires this to be called from the main goroutine.
func (Window) Run(ctx context.Context, s *host.Session, logger *log.Logger) error {
	cfg := s.Config()

	tps := ebiten.DefaultTPS
	if cfg.TickMillis > 0 {
		tps = int(time.Second / (time.Duration(cfg.TickMillis) * time.Millisecond))
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Flappy Bird")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(tps)

	g := newGame(ctx, s, logger)
	logger.Debug("opening window", "width", cfg.Width, "height", cfg.Height, "tps", tps)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	if g.err != nil {
		return g.err
	}
	return ctx.Err()
}

// game implements ebiten.Game. One Update is one host tick.
type game struct {
	ctx     context.Context
	session *host.Session
	logger  *log.Logger
	view    host.View
	name    []rune // Name typed so far during name entry
	keys    []ebiten.Key
	err     error
}

func newGame(ctx context.Context, s *host.Session, logger *log.Logger) *game {
	return &game{
		ctx:     ctx,
		session: s,
		logger:  logger,
		view:    s.View(),
	}
}

// Update polls input and advances the session.
func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	if g.view.Phase == host.PhaseNameEntry {
		if err := g.updateNameEntry(); err != nil {
			return g.fail(err)
		}
	}

	prev := g.view.Phase
	if err := g.session.Handle(g.poll()); err != nil {
		return g.fail(err)
	}

	g.view = g.session.View()
	if g.view.Done {
		return ebiten.Termination
	}
	if g.view.Phase == host.PhaseNameEntry && prev != host.PhaseNameEntry {
		g.name = g.name[:0]
	}
	return nil
}

func (g *game) fail(err error) error {
	g.logger.Error("session failed", "err", err)
	g.err = err
	return ebiten.Termination
}

// poll returns this tick's signal. Name entry only reacts to Escape; the
// typed text is handled by updateNameEntry.
func (g *game) poll() host.Signal {
	if g.view.Phase == host.PhaseNameEntry {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return host.SignalQuit
		}
		return host.SignalNone
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	k := hostKey(g.keys)
	if k == host.KeyNone && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		k = host.KeyFlap
	}
	return host.SignalFor(g.view.Phase, k)
}

// updateNameEntry edits the typed name and submits it on Enter.
func (g *game) updateNameEntry() error {
	g.name = appendName(g.name, ebiten.AppendInputChars(nil))
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.name) > 0 {
		g.name = g.name[:len(g.name)-1]
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return nil
	}

	err := g.session.SubmitName(string(g.name))
	if errors.Is(err, host.ErrNotEnteringName) {
		return nil
	}
	return err
}

// appendName adds typed characters up to the name length limit.
func appendName(name, typed []rune) []rune {
	for _, r := range typed {
		if len(name) >= leaderboard.MaxNameLength {
			break
		}
		name = append(name, r)
	}
	return name
}

// Draw renders the last view.
func (g *game) Draw(screen *ebiten.Image) {
	drawView(screen, g.view, string(g.name))
}

// Layout returns the playfield size.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.view.Config.Width, g.view.Config.Height
}

// keyBindings maps Ebiten keys to host keys, first match wins.
var keyBindings = []struct {
	key  ebiten.Key
	host host.Key
}{
	{ebiten.KeySpace, host.KeyFlap},
	{ebiten.KeyArrowUp, host.KeyFlap},
	{ebiten.KeyEnter, host.KeyConfirm},
	{ebiten.KeyR, host.KeyRetry},
	{ebiten.KeyP, host.KeyPause},
	{ebiten.KeyDigit1, host.KeyEasy},
	{ebiten.KeyDigit2, host.KeyNormal},
	{ebiten.KeyDigit3, host.KeyHard},
	{ebiten.KeyD, host.KeyReset},
	{ebiten.KeyEscape, host.KeyBack},
}

// hostKey picks the host key for the keys pressed this tick.
func hostKey(pressed []ebiten.Key) host.Key {
	if len(pressed) == 0 {
		return host.KeyNone
	}
	for _, b := range keyBindings {
		for _, k := range pressed {
			if k == b.key {
				return b.host
			}
		}
	}
	return host.KeyOther
}
