package flappy

import "github.com/vovakirdan/flappy/internal/core"

// Characters used when drawing the playfield into a character grid.
const (
	BirdGlyph     = "O>"
	PipeBody      = '║'
	PipeCapTop    = '╦' // Lowest cell of the upper half
	PipeCapBottom = '╩' // Highest cell of the lower half
)

// DrawField draws the pipes and the bird into dst with the playfield's top-left
// corner at (ox, oy). One playfield unit maps to one cell, so it is meant for
// grid geometries. Cells come from the same rectangles Tick collides against.
func DrawField(dst *core.Screen, ox, oy int, s State, cfg Config) {
	for _, p := range s.Pipes {
		drawPipe(dst, ox, oy, p, cfg)
	}

	bird := s.BirdRect(cfg)
	glyph := []rune(BirdGlyph)
	for dy := 0; dy < bird.H; dy++ {
		for dx := 0; dx < bird.W; dx++ {
			r := glyph[len(glyph)-1]
			if dx < len(glyph) {
				r = glyph[dx]
			}
			dst.SetColored(ox+bird.X+dx, oy+bird.Y+dy, r, core.ColorYellow)
		}
	}
}

func drawPipe(dst *core.Screen, ox, oy int, p Pipe, cfg Config) {
	for _, half := range []core.Rect{p.TopRect(cfg), p.BottomRect(cfg)} {
		if half.Empty() {
			continue
		}
		for y := half.Y; y < half.Bottom(); y++ {
			for x := half.X; x < half.Right(); x++ {
				if x < 0 || x >= cfg.Width {
					continue
				}
				dst.SetColored(ox+x, oy+y, PipeBody, core.ColorGreen)
			}
		}
	}

	top := p.TopRect(cfg)
	bottom := p.BottomRect(cfg)
	for x := p.X; x < p.X+cfg.PipeWidth; x++ {
		if x < 0 || x >= cfg.Width {
			continue
		}
		if !top.Empty() {
			dst.SetColored(ox+x, oy+top.Bottom()-1, PipeCapTop, core.ColorBrightGreen)
		}
		if !bottom.Empty() {
			dst.SetColored(ox+x, oy+bottom.Y, PipeCapBottom, core.ColorBrightGreen)
		}
	}
}
