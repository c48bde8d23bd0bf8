// Package flappy implements the Flappy Bird simulation: a bird falling under
// gravity through a stream of pipes scrolling in from the right.
//
// The package is pure. A round is a State value advanced by Tick once per host
// tick; front ends read the returned value to draw and never mutate it.
package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/core"
)

// Rand is the random source used to place pipe gaps.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Config is the full parameter set for one round: the front end's playfield
// geometry plus the selected difficulty preset.
type Config struct {
	config.Geometry
	config.Preset
}

// NewConfig combines a geometry and a preset.
func NewConfig(g config.Geometry, p config.Preset) Config {
	return Config{Geometry: g, Preset: p}
}

// Validate reports configurations the tick cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("flappy: playfield %dx%d is empty", c.Width, c.Height)
	}
	if c.BirdWidth <= 0 || c.BirdHeight <= 0 || c.PipeWidth <= 0 {
		return fmt.Errorf("flappy: bird and pipe sizes must be positive")
	}
	if c.SpawnInterval <= 0 {
		return fmt.Errorf("flappy: spawn interval must be positive, got %d", c.SpawnInterval)
	}
	if c.ScrollSpeed <= 0 {
		return fmt.Errorf("flappy: scroll speed must be positive, got %d", c.ScrollSpeed)
	}
	if c.GapSize <= 0 || c.GapSize >= c.Height {
		return fmt.Errorf("flappy: gap size %d does not fit height %d", c.GapSize, c.Height)
	}
	return nil
}

// GapBounds returns the half-open range [min, max) a new gap's top edge is
// drawn from. On fields too small for the margins the range collapses to a
// single value.
func (c Config) GapBounds() (min, max int) {
	min = c.GapMargin
	max = c.Height - c.GapSize - c.GapMargin
	if max <= min {
		min = core.Clamp(min, 0, c.Height-c.GapSize)
		max = min + 1
	}
	return min, max
}

// Bird is the player's vertical state. Its column is fixed by the geometry.
type Bird struct {
	Y        float64 // Top of the hitbox, 0 = top of the playfield
	Velocity float64 // Positive = falling
}

// Pipe is a pair of obstacles sharing a column with an open gap between them.
type Pipe struct {
	X      int // Left edge
	GapTop int // First open row of the gap
}

// TopRect returns the collision rectangle of the upper half.
func (p Pipe) TopRect(cfg Config) core.Rect {
	return core.NewRect(p.X, 0, cfg.PipeWidth, p.GapTop)
}

// BottomRect returns the collision rectangle of the lower half.
func (p Pipe) BottomRect(cfg Config) core.Rect {
	bottomY := p.GapTop + cfg.GapSize
	return core.NewRect(p.X, bottomY, cfg.PipeWidth, cfg.Height-bottomY)
}

// Collides reports whether the rectangle touches either half of the pipe.
func (p Pipe) Collides(r core.Rect, cfg Config) bool {
	return r.Intersects(p.TopRect(cfg)) || r.Intersects(p.BottomRect(cfg))
}

// OffScreen reports whether the pipe has fully left the playfield.
func (p Pipe) OffScreen(cfg Config) bool {
	return p.X+cfg.PipeWidth <= 0
}

// State is one round of play. Pipes are kept in spawn order, so the oldest
// (leftmost) pipe is always first.
type State struct {
	Bird       Bird
	Pipes      []Pipe
	Score      int
	Alive      bool
	SpawnTicks int // Ticks since the last spawn
	Ticks      int // Ticks since the round started
}

// NewState returns the state at the start of a round: the bird mid-screen
// with the geometry's start velocity and no pipes.
func NewState(cfg Config) State {
	return State{
		Bird: Bird{
			Y:        float64(cfg.Height / 2),
			Velocity: cfg.StartVelocity,
		},
		Pipes: nil,
		Alive: true,
	}
}

// BirdRect returns the bird's collision rectangle.
func (s State) BirdRect(cfg Config) core.Rect {
	return core.NewRect(cfg.BirdX, int(math.Floor(s.Bird.Y)), cfg.BirdWidth, cfg.BirdHeight)
}
