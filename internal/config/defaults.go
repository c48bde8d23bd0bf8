package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultTableYAML []byte

// DefaultTable returns the built-in preset table. The grid layout matches the
// text console, the pixel layout the 400x400 window driven by a 20 ms timer.
func DefaultTable() Table {
	return Table{
		Grid: Layout{
			Geometry: Geometry{
				Width:         40,
				Height:        20,
				BirdX:         10,
				BirdWidth:     2,
				BirdHeight:    1,
				PipeWidth:     1,
				SpawnX:        39,
				GapMargin:     2,
				StartVelocity: -2,
				TickMillis:    50,
			},
			Presets: map[Difficulty]Preset{
				DifficultyEasy:   {GapSize: 9, SpawnInterval: 24, Gravity: 1, JumpVelocity: -3, ScrollSpeed: 1},
				DifficultyNormal: {GapSize: 7, SpawnInterval: 20, Gravity: 1, JumpVelocity: -3, ScrollSpeed: 1},
				DifficultyHard:   {GapSize: 5, SpawnInterval: 16, Gravity: 1, JumpVelocity: -2, ScrollSpeed: 1},
			},
		},
		Pixel: Layout{
			Geometry: Geometry{
				Width:         400,
				Height:        400,
				BirdX:         60,
				BirdWidth:     28,
				BirdHeight:    20,
				PipeWidth:     32,
				SpawnX:        400,
				GapMargin:     40,
				StartVelocity: -4,
				TickMillis:    20,
			},
			Presets: map[Difficulty]Preset{
				DifficultyEasy:   {GapSize: 120, SpawnInterval: 40, Gravity: 1, JumpVelocity: -10, ScrollSpeed: 3},
				DifficultyNormal: {GapSize: 80, SpawnInterval: 30, Gravity: 1, JumpVelocity: -8, ScrollSpeed: 4},
				DifficultyHard:   {GapSize: 60, SpawnInterval: 20, Gravity: 2, JumpVelocity: -7, ScrollSpeed: 5},
			},
		},
	}
}

// DefaultYAML returns the embedded preset table as YAML.
func DefaultYAML() []byte {
	return defaultTableYAML
}
