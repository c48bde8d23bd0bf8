//go:build !nogui

package vector

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/core"
	"github.com/vovakirdan/flappy/internal/games/flappy"
	"github.com/vovakirdan/flappy/internal/host"
)

var (
	skyColor      = color.RGBA{135, 206, 235, 255}
	pipeColor     = color.RGBA{34, 160, 34, 255}
	pipeHeadColor = color.RGBA{0, 100, 0, 255}
	birdColor     = color.RGBA{255, 215, 0, 255}
	eyeColor      = color.RGBA{0, 0, 0, 255}
	textColor     = color.RGBA{0, 0, 0, 255}
	alertColor    = color.RGBA{200, 0, 0, 255}
	shadeColor    = color.RGBA{0, 0, 0, 96}
)

const (
	pipeHeadHeight = 10
	pipeHeadLip    = 3 // Extra width on each side of a pipe head
	lineHeight     = 16
	charWidth      = 7 // basicfont.Face7x13 advance
)

// drawView draws the playfield for every phase, then the phase's overlay.
func drawView(screen *ebiten.Image, v host.View, typedName string) {
	screen.Fill(skyColor)

	cfg := v.Config
	for _, p := range v.State.Pipes {
		drawPipe(screen, p, cfg)
	}
	drawBird(screen, v.State.BirdRect(cfg))

	text.Draw(screen, fmt.Sprintf("Score: %d", v.State.Score), basicfont.Face7x13, 10, 20, textColor)
	best := fmt.Sprintf("Best: %d", max(v.Best(), v.State.Score))
	text.Draw(screen, best, basicfont.Face7x13, cfg.Width-10-len(best)*charWidth, 20, textColor)

	switch v.Phase {
	case host.PhaseMenu:
		shade(screen, cfg)
		drawLines(screen, cfg, menuLines(v), textColor)
	case host.PhasePaused:
		drawLines(screen, cfg, []string{"PAUSED", "", "P to resume"}, textColor)
	case host.PhaseNameEntry:
		shade(screen, cfg)
		drawLines(screen, cfg, []string{
			"NEW HIGH SCORE!",
			fmt.Sprintf("Score: %d", v.State.Score),
			"",
			"Enter your name:",
			typedName + "_",
			"",
			fmt.Sprintf("(blank keeps %s)", v.LastName),
		}, alertColor)
	case host.PhaseGameOver:
		shade(screen, cfg)
		lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", v.State.Score), ""}
		lines = append(lines, boardLines(v)...)
		lines = append(lines, "", "R to retry, any key for menu")
		drawLines(screen, cfg, lines, alertColor)
	}
}

// drawPipe fills both halves of a pipe and darkens the head at each gap edge.
func drawPipe(screen *ebiten.Image, p flappy.Pipe, cfg flappy.Config) {
	top := p.TopRect(cfg)
	bottom := p.BottomRect(cfg)
	fillRect(screen, top, pipeColor)
	fillRect(screen, bottom, pipeColor)

	for _, head := range pipeHeads(p, cfg) {
		fillRect(screen, head, pipeHeadColor)
	}
}

// pipeHeads returns the head rectangles drawn over each non-empty pipe half.
// They are slightly wider than the pipe and purely decorative.
func pipeHeads(p flappy.Pipe, cfg flappy.Config) []core.Rect {
	var heads []core.Rect
	top := p.TopRect(cfg)
	if !top.Empty() {
		h := min(pipeHeadHeight, top.H)
		heads = append(heads, core.NewRect(top.X-pipeHeadLip, top.Bottom()-h, top.W+2*pipeHeadLip, h))
	}
	bottom := p.BottomRect(cfg)
	if !bottom.Empty() {
		h := min(pipeHeadHeight, bottom.H)
		heads = append(heads, core.NewRect(bottom.X-pipeHeadLip, bottom.Y, bottom.W+2*pipeHeadLip, h))
	}
	return heads
}

// drawBird draws a circle inscribed in the bird's collision rectangle.
func drawBird(screen *ebiten.Image, r core.Rect) {
	cx := float32(r.X) + float32(r.W)/2
	cy := float32(r.Y) + float32(r.H)/2
	radius := float32(min(r.W, r.H)) / 2
	vector.DrawFilledCircle(screen, cx, cy, radius, birdColor, true)
	vector.DrawFilledCircle(screen, cx+radius/2, cy-radius/3, radius/5, eyeColor, true)
}

func fillRect(screen *ebiten.Image, r core.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func shade(screen *ebiten.Image, cfg flappy.Config) {
	vector.DrawFilledRect(screen, 0, 0, float32(cfg.Width), float32(cfg.Height), shadeColor, false)
}

// drawLines draws centred lines around the middle of the field.
func drawLines(screen *ebiten.Image, cfg flappy.Config, lines []string, c color.Color) {
	y := cfg.Height/2 - len(lines)*lineHeight/2
	for _, line := range lines {
		x := (cfg.Width - len(line)*charWidth) / 2
		text.Draw(screen, line, basicfont.Face7x13, x, y, c)
		y += lineHeight
	}
}

// menuLines is the start screen text.
func menuLines(v host.View) []string {
	lines := []string{
		"FLAPPY BIRD",
		"",
		"Space/Enter/Click: play and flap",
		"P: pause   D: reset scores   Esc: quit",
		"",
	}
	for i, d := range config.Difficulties {
		marker := "  "
		if d == v.Difficulty {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%d %s", marker, i+1, d.Title()))
	}
	lines = append(lines, "")
	return append(lines, boardLines(v)...)
}

// boardLines is the leaderboard as text.
func boardLines(v host.View) []string {
	if len(v.Board) == 0 {
		return []string{"No scores yet"}
	}
	lines := []string{"HIGH SCORES"}
	for i, e := range v.Board {
		lines = append(lines, fmt.Sprintf("%d. %-10s %5d", i+1, e.Name, e.Score))
	}
	return lines
}
