//go:build !nogui

// Package widget is the windowed front end built from stock Fyne widgets: the
// bird is a button and every pipe half is a full progress bar. The widgets
// only mirror the simulation's rectangles; collisions are never read back
// from widget bounds.
package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/host"
	"github.com/vovakirdan/flappy/internal/registry"
)

// ID is the registry name of the widget front end.
const ID = "widget"

func init() {
	registry.Register(ID, func() registry.Frontend { return Window{} })
}

// Window runs the game in a Fyne window.
type Window struct{}

// ID returns "widget".
func (Window) ID() string { return ID }

// Title returns the display name.
func (Window) Title() string { return "Widget window" }

// Kind returns the pixel geometry.
func (Window) Kind() config.Kind { return config.KindPixel }

// Run opens the window and blocks until it is closed, the player quits or
// ctx is cancelled. The host loop runs on its own goroutine and hands every
// view to the UI thread with fyne.Do.
func (Window) Run(ctx context.Context, s *host.Session, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := s.Config()
	interval := time.Duration(cfg.TickMillis) * time.Millisecond
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}

	a := app.New()
	w := a.NewWindow("Flappy Bird")
	latch := &keyLatch{}
	field := newField(s, w, latch, logger, cancel)

	w.SetContent(field.root)
	w.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))
	w.SetFixedSize(true)
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		latch.press(hostKey(ev.Name))
	})
	w.SetOnClosed(cancel)

	poller := host.PollerFunc(func() host.Signal {
		return host.SignalFor(s.Phase(), latch.take())
	})

	var (
		wg      sync.WaitGroup
		loopErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		loopErr = host.Loop(ctx, s, poller, field, interval)
		fyne.Do(a.Quit)
	}()

	logger.Debug("opening window", "width", cfg.Width, "height", cfg.Height, "interval", interval)
	w.ShowAndRun()
	cancel()
	wg.Wait()

	if err := field.Err(); err != nil {
		return err
	}
	if errors.Is(loopErr, context.Canceled) {
		return nil
	}
	return loopErr
}

// keyLatch keeps the most recent key press until the next host tick. An
// unbound key never replaces a bound one pressed in the same tick.
type keyLatch struct {
	mu  sync.Mutex
	key host.Key
}

func (l *keyLatch) press(k host.Key) {
	if k == host.KeyNone {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if k == host.KeyOther && l.key != host.KeyNone {
		return
	}
	l.key = k
}

func (l *keyLatch) take() host.Key {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := l.key
	l.key = host.KeyNone
	return k
}

// hostKey maps a Fyne key name to a host key.
func hostKey(name fyne.KeyName) host.Key {
	switch name {
	case "":
		return host.KeyNone
	case fyne.KeySpace, fyne.KeyUp:
		return host.KeyFlap
	case fyne.KeyReturn, fyne.KeyEnter:
		return host.KeyConfirm
	case fyne.KeyR:
		return host.KeyRetry
	case fyne.KeyP:
		return host.KeyPause
	case fyne.Key1:
		return host.KeyEasy
	case fyne.Key2:
		return host.KeyNormal
	case fyne.Key3:
		return host.KeyHard
	case fyne.KeyD:
		return host.KeyReset
	case fyne.KeyEscape:
		return host.KeyBack
	}
	return host.KeyOther
}
