// Package config provides the difficulty preset table, its YAML loader and the
// application settings shared by every front end.
package config

import (
	"fmt"
	"strings"
)

// Difficulty names one of the fixed presets.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the presets in menu order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficulty converts a user-supplied name to a Difficulty.
// An empty string selects normal.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// Title returns the capitalised display name.
func (d Difficulty) Title() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyHard:
		return "Hard"
	default:
		return "Normal"
	}
}

// Kind selects the playfield geometry a front end works in.
type Kind string

const (
	KindGrid  Kind = "grid"  // character cells, text console
	KindPixel Kind = "pixel" // 400x400 window, GUI front ends
)

// Geometry describes the playfield. It is fixed per front end and does not
// change with difficulty.
type Geometry struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	BirdX         int     `yaml:"bird_x"`
	BirdWidth     int     `yaml:"bird_width"`
	BirdHeight    int     `yaml:"bird_height"`
	PipeWidth     int     `yaml:"pipe_width"`
	SpawnX        int     `yaml:"spawn_x"`    // Column new pipes appear at
	GapMargin     int     `yaml:"gap_margin"` // Minimum distance of a gap from either edge
	StartVelocity float64 `yaml:"start_velocity"`
	TickMillis    int     `yaml:"tick_millis"` // Host tick period
}

// Preset holds the values that vary with difficulty.
type Preset struct {
	GapSize       int     `yaml:"gap_size"`       // Open span between the two pipe halves
	SpawnInterval int     `yaml:"spawn_interval"` // Ticks between pipe spawns
	Gravity       float64 `yaml:"gravity"`
	JumpVelocity  float64 `yaml:"jump_velocity"` // Negative = up
	ScrollSpeed   int     `yaml:"scroll_speed"`  // Columns per tick
}

// Layout is one geometry with its three presets.
type Layout struct {
	Geometry Geometry              `yaml:"geometry"`
	Presets  map[Difficulty]Preset `yaml:"presets"`
}

// Table holds a layout per geometry kind.
type Table struct {
	Grid  Layout `yaml:"grid"`
	Pixel Layout `yaml:"pixel"`
}

// Layout returns the layout for a geometry kind.
func (t Table) Layout(kind Kind) (Layout, error) {
	switch kind {
	case KindGrid:
		return t.Grid, nil
	case KindPixel:
		return t.Pixel, nil
	}
	return Layout{}, fmt.Errorf("config: unknown geometry %q", kind)
}

// Resolve looks up the geometry and preset for a front end and difficulty.
func (t Table) Resolve(kind Kind, d Difficulty) (Geometry, Preset, error) {
	layout, err := t.Layout(kind)
	if err != nil {
		return Geometry{}, Preset{}, err
	}
	p, ok := layout.Presets[d]
	if !ok {
		return Geometry{}, Preset{}, fmt.Errorf("config: %s layout has no %q preset", kind, d)
	}
	return layout.Geometry, p, nil
}

// Validate checks that every layout carries all three presets with usable values.
func (t Table) Validate() error {
	for _, kind := range []Kind{KindGrid, KindPixel} {
		layout, _ := t.Layout(kind)
		g := layout.Geometry
		if g.Width <= 0 || g.Height <= 0 || g.BirdWidth <= 0 || g.BirdHeight <= 0 || g.PipeWidth <= 0 {
			return fmt.Errorf("config: %s geometry has non-positive dimensions", kind)
		}
		if g.TickMillis <= 0 {
			return fmt.Errorf("config: %s geometry tick_millis must be positive", kind)
		}
		if g.GapMargin < 0 {
			return fmt.Errorf("config: %s geometry gap_margin must not be negative", kind)
		}
		for _, d := range Difficulties {
			p, ok := layout.Presets[d]
			if !ok {
				return fmt.Errorf("config: %s layout is missing preset %q", kind, d)
			}
			if p.GapSize <= 0 || p.SpawnInterval <= 0 || p.ScrollSpeed <= 0 {
				return fmt.Errorf("config: %s/%s preset needs positive gap_size, spawn_interval and scroll_speed", kind, d)
			}
			if p.GapSize >= g.Height {
				return fmt.Errorf("config: %s/%s gap_size %d does not fit height %d", kind, d, p.GapSize, g.Height)
			}
		}
	}
	return nil
}
