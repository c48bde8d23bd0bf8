//go:build !nogui

package widget

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fynewidget "fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/core"
	"github.com/vovakirdan/flappy/internal/host"
	"github.com/vovakirdan/flappy/internal/leaderboard"
)

var skyColor = color.RGBA{135, 206, 235, 255}

// field owns the widgets standing in for the playfield and implements
// host.Renderer. Render may be called from any goroutine; widget changes
// happen on the UI thread.
type field struct {
	session *host.Session
	window  fyne.Window
	latch   *keyLatch
	logger  *log.Logger
	cancel  context.CancelFunc

	root    *fyne.Container
	bird    *fynewidget.Button
	pipes   []*fynewidget.ProgressBar
	status  *fynewidget.Label
	overlay *fynewidget.Label

	phase host.Phase // Last applied phase, UI thread only

	mu  sync.Mutex
	err error
}

func newField(s *host.Session, w fyne.Window, latch *keyLatch, logger *log.Logger, cancel context.CancelFunc) *field {
	cfg := s.Config()

	f := &field{
		session: s,
		window:  w,
		latch:   latch,
		logger:  logger,
		cancel:  cancel,
		status:  fynewidget.NewLabel(""),
		overlay: fynewidget.NewLabel(""),
		phase:   host.PhaseMenu,
	}

	// Clicking the bird is a flap
	f.bird = fynewidget.NewButton("", func() {
		latch.press(host.KeyFlap)
		w.Canvas().Unfocus()
	})

	sky := canvas.NewRectangle(skyColor)
	sky.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))

	f.overlay.Alignment = fyne.TextAlignCenter
	f.overlay.TextStyle = fyne.TextStyle{Monospace: true}
	f.overlay.Move(fyne.NewPos(0, float32(cfg.Height)/6))
	f.overlay.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)*2/3))
	f.status.Move(fyne.NewPos(4, 0))
	f.status.Resize(fyne.NewSize(float32(cfg.Width)-8, 28))

	f.root = container.NewWithoutLayout(sky, f.bird, f.status, f.overlay)
	return f
}

// Render schedules the view onto the widgets.
func (f *field) Render(v host.View) error {
	if err := f.Err(); err != nil {
		return err
	}
	fyne.Do(func() { f.apply(v) })
	return nil
}

// Err returns the first failure recorded from a UI callback.
func (f *field) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *field) fail(err error) {
	f.logger.Error("session failed", "err", err)
	f.mu.Lock()
	if f.err == nil {
		f.err = err
	}
	f.mu.Unlock()
	f.cancel()
}

// apply moves and resizes the widgets to the view's rectangles.
func (f *field) apply(v host.View) {
	place(f.bird, v.State.BirdRect(v.Config))

	rects := pipeRects(v)
	for len(f.pipes) < len(rects) {
		bar := fynewidget.NewProgressBar()
		bar.TextFormatter = func() string { return "" }
		bar.SetValue(1)
		f.pipes = append(f.pipes, bar)
		// Keep pipes under the bird and the labels
		f.root.Objects = append(f.root.Objects[:1], append([]fyne.CanvasObject{bar}, f.root.Objects[1:]...)...)
	}
	for i, bar := range f.pipes {
		if i < len(rects) {
			place(bar, rects[i])
			bar.Show()
		} else {
			bar.Hide()
		}
	}

	f.status.SetText(statusText(v))
	if text := overlayText(v); text != "" {
		f.overlay.SetText(text)
		f.overlay.Show()
	} else {
		f.overlay.Hide()
	}
	f.root.Refresh()

	if v.Phase == host.PhaseNameEntry && f.phase != host.PhaseNameEntry {
		f.askName(v)
	}
	f.phase = v.Phase
}

// askName shows the high score form. Skipping is the same as Escape.
func (f *field) askName(v host.View) {
	entry := fynewidget.NewEntry()
	entry.SetPlaceHolder(v.LastName)
	entry.OnChanged = func(s string) {
		if r := []rune(s); len(r) > leaderboard.MaxNameLength {
			entry.SetText(string(r[:leaderboard.MaxNameLength]))
		}
	}

	items := []*fynewidget.FormItem{fynewidget.NewFormItem("Name", entry)}
	title := fmt.Sprintf("New high score: %d", v.State.Score)
	dialog.ShowForm(title, "Save", "Skip", items, func(save bool) {
		if !save {
			f.latch.press(host.KeyBack)
			return
		}
		err := f.session.SubmitName(entry.Text)
		if err != nil && !errors.Is(err, host.ErrNotEnteringName) {
			f.fail(err)
		}
	}, f.window)
}

func place(obj fyne.CanvasObject, r core.Rect) {
	obj.Move(fyne.NewPos(float32(r.X), float32(r.Y)))
	obj.Resize(fyne.NewSize(float32(r.W), float32(r.H)))
}

// pipeRects returns the non-empty pipe halves in drawing order.
func pipeRects(v host.View) []core.Rect {
	rects := make([]core.Rect, 0, 2*len(v.State.Pipes))
	for _, p := range v.State.Pipes {
		for _, r := range []core.Rect{p.TopRect(v.Config), p.BottomRect(v.Config)} {
			if !r.Empty() {
				rects = append(rects, r)
			}
		}
	}
	return rects
}

func statusText(v host.View) string {
	return fmt.Sprintf("Score: %d   Best: %d   %s", v.State.Score, max(v.Best(), v.State.Score), v.Difficulty.Title())
}

// overlayText is the centred text for the phase, empty while playing.
func overlayText(v host.View) string {
	var b strings.Builder
	switch v.Phase {
	case host.PhaseMenu:
		b.WriteString("FLAPPY BIRD\n\n")
		b.WriteString("Space, Enter or click the bird to play\n")
		for i, d := range config.Difficulties {
			marker := " "
			if d == v.Difficulty {
				marker = "*"
			}
			fmt.Fprintf(&b, "%s%d %s  ", marker, i+1, d.Title())
		}
		b.WriteString("\nD reset scores   Esc quit\n\n")
		writeBoard(&b, v.Board)
	case host.PhasePaused:
		b.WriteString("PAUSED\n\nP to resume")
	case host.PhaseGameOver:
		fmt.Fprintf(&b, "GAME OVER\nScore: %d\n\n", v.State.Score)
		writeBoard(&b, v.Board)
		b.WriteString("\n\nR to retry, any key for menu")
	}
	return b.String()
}

func writeBoard(b *strings.Builder, board []leaderboard.Entry) {
	if len(board) == 0 {
		b.WriteString("No scores yet")
		return
	}
	b.WriteString("HIGH SCORES")
	for i, e := range board {
		fmt.Fprintf(b, "\n%d. %-10s %5d", i+1, e.Name, e.Score)
	}
}
