package flappy

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/core"
)

// fixedRand always returns the same offset (modulo n).
type fixedRand int

func (f fixedRand) Intn(n int) int {
	return int(f) % n
}

func testConfig(t *testing.T, kind config.Kind, d config.Difficulty) Config {
	t.Helper()
	g, p, err := config.DefaultTable().Resolve(kind, d)
	if err != nil {
		t.Fatalf("Resolve(%s, %s): %v", kind, d, err)
	}
	cfg := NewConfig(g, p)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	return cfg
}

// hoverConfig disables gravity so the bird holds its height.
func hoverConfig(t *testing.T, kind config.Kind) Config {
	cfg := testConfig(t, kind, config.DifficultyNormal)
	cfg.Gravity = 0
	cfg.StartVelocity = 0
	return cfg
}

func TestNewState(t *testing.T) {
	cfg := testConfig(t, config.KindGrid, config.DifficultyNormal)
	s := NewState(cfg)

	if !s.Alive {
		t.Error("new round should be alive")
	}
	if s.Bird.Y != float64(cfg.Height/2) {
		t.Errorf("bird starts at %f, expected %d", s.Bird.Y, cfg.Height/2)
	}
	if s.Bird.Velocity != cfg.StartVelocity {
		t.Errorf("start velocity = %f, expected %f", s.Bird.Velocity, cfg.StartVelocity)
	}
	if len(s.Pipes) != 0 || s.Score != 0 {
		t.Error("new round should have no pipes and no score")
	}
}

func TestGravityAddsConstantEachTick(t *testing.T) {
	for _, kind := range []config.Kind{config.KindGrid, config.KindPixel} {
		for _, d := range config.Difficulties {
			cfg := testConfig(t, kind, d)
			s := NewState(cfg)

			for i := 0; i < 1000 && s.Alive; i++ {
				prev := s.Bird.Velocity
				s = Tick(s, false, fixedRand(0), cfg)
				if s.Bird.Velocity != prev+cfg.Gravity {
					t.Fatalf("%s/%s tick %d: velocity %f -> %f, expected +%f",
						kind, d, i, prev, s.Bird.Velocity, cfg.Gravity)
				}
			}
			if s.Alive {
				t.Errorf("%s/%s: bird never hit the floor without jumping", kind, d)
			}
		}
	}
}

func TestJumpSetsVelocityExactly(t *testing.T) {
	cfg := testConfig(t, config.KindPixel, config.DifficultyHard)

	for _, start := range []float64{-20, -7, 0, 3, 15} {
		s := NewState(cfg)
		s.Bird.Velocity = start
		s = Tick(s, true, fixedRand(0), cfg)

		if s.Bird.Velocity != cfg.JumpVelocity {
			t.Errorf("from velocity %f: got %f after jump, expected %f", start, s.Bird.Velocity, cfg.JumpVelocity)
		}
	}
}

func TestJumpMovesBirdUp(t *testing.T) {
	cfg := testConfig(t, config.KindGrid, config.DifficultyNormal)
	s := NewState(cfg)
	before := s.Bird.Y

	s = Tick(s, true, fixedRand(0), cfg)

	if s.Bird.Y != before+cfg.JumpVelocity {
		t.Errorf("Y = %f, expected %f", s.Bird.Y, before+cfg.JumpVelocity)
	}
}

func TestTopBoundaryClamps(t *testing.T) {
	cfg := testConfig(t, config.KindGrid, config.DifficultyNormal)
	s := NewState(cfg)
	s.Bird.Y = 1

	s = Tick(s, true, fixedRand(0), cfg)

	if s.Bird.Y != 0 {
		t.Errorf("Y = %f, expected clamp at 0", s.Bird.Y)
	}
	if !s.Alive {
		t.Error("touching the top boundary is not terminal")
	}
}

func TestBottomBoundaryIsTerminal(t *testing.T) {
	cfg := testConfig(t, config.KindGrid, config.DifficultyNormal)
	s := NewState(cfg)
	s.Bird.Y = float64(cfg.Height - cfg.BirdHeight)

	// Resting exactly on the floor is still in bounds
	s.Bird.Velocity = -cfg.Gravity
	s = Tick(s, false, fixedRand(0), cfg)
	if !s.Alive {
		t.Fatal("bird touching the floor edge should still be alive")
	}

	s = Tick(s, false, fixedRand(0), cfg)
	if s.Alive {
		t.Error("bird below the floor should be dead")
	}
}

func TestTerminalStateIsSticky(t *testing.T) {
	cfg := testConfig(t, config.KindGrid, config.DifficultyNormal)
	s := NewState(cfg)
	s.Pipes = []Pipe{{X: 30, GapTop: 4}}
	s.Alive = false

	next := Tick(s, true, fixedRand(0), cfg)

	if !reflect.DeepEqual(next, s) {
		t.Errorf("Tick on a terminal state changed it: %+v -> %+v", s, next)
	}
}

func TestTickDoesNotMutateInput(t *testing.T) {
	cfg := hoverConfig(t, config.KindGrid)
	s := NewState(cfg)
	s.Pipes = []Pipe{{X: 30, GapTop: 5}, {X: 35, GapTop: 6}}
	snapshot := append([]Pipe(nil), s.Pipes...)

	next := Tick(s, false, fixedRand(3), cfg)

	if !reflect.DeepEqual(s.Pipes, snapshot) {
		t.Errorf("input pipes changed: %+v", s.Pipes)
	}
	if next.Pipes[0].X != 30-cfg.ScrollSpeed {
		t.Errorf("returned pipe X = %d, expected %d", next.Pipes[0].X, 30-cfg.ScrollSpeed)
	}
}

func TestPipeSpawnInterval(t *testing.T) {
	cfg := hoverConfig(t, config.KindGrid)
	s := NewState(cfg)

	for i := 1; i < cfg.SpawnInterval; i++ {
		s = Tick(s, false, fixedRand(3), cfg)
		if len(s.Pipes) != 0 {
			t.Fatalf("pipe spawned early at tick %d", i)
		}
	}

	s = Tick(s, false, fixedRand(3), cfg)
	if len(s.Pipes) != 1 {
		t.Fatalf("expected one pipe after %d ticks, got %d", cfg.SpawnInterval, len(s.Pipes))
	}
	if s.SpawnTicks != 0 {
		t.Errorf("spawn counter should reset, got %d", s.SpawnTicks)
	}

	p := s.Pipes[0]
	if p.X != cfg.SpawnX-cfg.ScrollSpeed {
		t.Errorf("new pipe X = %d, expected %d (spawned then scrolled)", p.X, cfg.SpawnX-cfg.ScrollSpeed)
	}
	min, _ := cfg.GapBounds()
	if p.GapTop != min+3 {
		t.Errorf("GapTop = %d, expected %d", p.GapTop, min+3)
	}
}

func TestGapDrawnWithinBounds(t *testing.T) {
	for _, kind := range []config.Kind{config.KindGrid, config.KindPixel} {
		for _, d := range config.Difficulties {
			cfg := testConfig(t, kind, d)
			min, max := cfg.GapBounds()
			rng := rand.New(rand.NewSource(7))

			for i := 0; i < 500; i++ {
				p := spawnPipe(rng, cfg)
				if p.GapTop < min || p.GapTop >= max {
					t.Fatalf("%s/%s: GapTop %d outside [%d, %d)", kind, d, p.GapTop, min, max)
				}
				if p.GapTop+cfg.GapSize > cfg.Height {
					t.Fatalf("%s/%s: gap runs past the floor", kind, d)
				}
			}
		}
	}
}

func TestGapBoundsCollapseOnSmallField(t *testing.T) {
	cfg := testConfig(t, config.KindGrid, config.DifficultyEasy)
	cfg.Height = cfg.GapSize + 1

	min, max := cfg.GapBounds()
	if max != min+1 {
		t.Errorf("GapBounds() = [%d, %d), expected a single value", min, max)
	}
	if min+cfg.GapSize > cfg.Height {
		t.Errorf("collapsed gap %d does not fit height %d", min, cfg.Height)
	}
}

func TestScoreOnRetire(t *testing.T) {
	cfg := hoverConfig(t, config.KindGrid)
	s := NewState(cfg)
	s.Pipes = []Pipe{{X: 0, GapTop: 5}, {X: 25, GapTop: 5}}

	s = Tick(s, false, fixedRand(3), cfg)

	if s.Score != 1 {
		t.Errorf("Score = %d, expected 1", s.Score)
	}
	if len(s.Pipes) != 1 || s.Pipes[0].X != 25-cfg.ScrollSpeed {
		t.Errorf("leftmost pipe should be retired, pipes = %+v", s.Pipes)
	}

	s = Tick(s, false, fixedRand(3), cfg)
	if s.Score != 1 {
		t.Errorf("Score = %d after a tick with nothing retired, expected 1", s.Score)
	}
}

func TestScoreCountsEachPipeOnce(t *testing.T) {
	for _, kind := range []config.Kind{config.KindGrid, config.KindPixel} {
		cfg := hoverConfig(t, kind)
		s := NewState(cfg)

		// Centre every gap on the hovering bird
		birdRow := int(s.Bird.Y)
		min, _ := cfg.GapBounds()
		offset := birdRow - min - (cfg.GapSize-cfg.BirdHeight)/2
		rng := fixedRand(offset)

		spawned := 0
		for i := 0; i < 2000; i++ {
			before := s
			s = Tick(s, false, rng, cfg)
			if !s.Alive {
				t.Fatalf("%s: bird should fly through centred gaps, died at tick %d", kind, i)
			}
			if s.Score-before.Score > 1 {
				t.Fatalf("%s: score jumped by %d in one tick", kind, s.Score-before.Score)
			}
			if before.SpawnTicks+1 >= cfg.SpawnInterval {
				spawned++
			}
			for j := 1; j < len(s.Pipes); j++ {
				if s.Pipes[j-1].X >= s.Pipes[j].X {
					t.Fatalf("%s: pipes out of spawn order: %+v", kind, s.Pipes)
				}
			}
		}

		if s.Score == 0 {
			t.Fatalf("%s: no pipe was ever retired", kind)
		}
		if s.Score != spawned-len(s.Pipes) {
			t.Errorf("%s: score %d, expected spawned %d - on screen %d", kind, s.Score, spawned, len(s.Pipes))
		}
	}
}

func TestCollisionThroughGap(t *testing.T) {
	cfg := hoverConfig(t, config.KindGrid)
	const gapTop = 5

	tests := []struct {
		name  string
		birdY int
		alive bool
	}{
		{"first open row", gapTop, true},
		{"last open row", gapTop + cfg.GapSize - cfg.BirdHeight, true},
		{"upper pipe", gapTop - 1, false},
		{"lower pipe", gapTop + cfg.GapSize, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(cfg)
			s.Bird = Bird{Y: float64(tc.birdY)}
			s.Pipes = []Pipe{{X: cfg.BirdX + cfg.ScrollSpeed, GapTop: gapTop}}

			s = Tick(s, false, fixedRand(0), cfg)

			if s.Alive != tc.alive {
				t.Errorf("bird at row %d: alive = %v, expected %v", tc.birdY, s.Alive, tc.alive)
			}
		})
	}
}

func TestCollisionOnSecondBirdColumn(t *testing.T) {
	cfg := hoverConfig(t, config.KindGrid)
	s := NewState(cfg)
	s.Bird = Bird{Y: 2}
	// After scrolling, the pipe sits on the bird's beak column only
	s.Pipes = []Pipe{{X: cfg.BirdX + 1 + cfg.ScrollSpeed, GapTop: 8}}

	s = Tick(s, false, fixedRand(0), cfg)

	if s.Alive {
		t.Error("pipe on the second bird column should collide")
	}
}

func TestCollisionChecksEveryOverlappingPipe(t *testing.T) {
	cfg := hoverConfig(t, config.KindPixel)
	birdY := 200
	open := Pipe{X: 40, GapTop: birdY - 30}   // Gap around the bird
	closed := Pipe{X: 84, GapTop: birdY + 60} // Upper half covers the bird

	s := NewState(cfg)
	s.Bird = Bird{Y: float64(birdY)}
	s.Pipes = []Pipe{open, closed}

	bird := s.BirdRect(cfg)
	for _, p := range s.Pipes {
		if !bird.OverlapsColumns(p.X-cfg.ScrollSpeed, cfg.PipeWidth) {
			t.Fatalf("test setup: pipe %+v should overlap the bird's columns", p)
		}
	}

	if s = Tick(s, false, fixedRand(0), cfg); s.Alive {
		t.Error("collision with the second overlapping pipe was missed")
	}

	// The open pipe alone is survivable
	s = NewState(cfg)
	s.Bird = Bird{Y: float64(birdY)}
	s.Pipes = []Pipe{open}
	if s = Tick(s, false, fixedRand(0), cfg); !s.Alive {
		t.Error("bird inside the gap should survive")
	}
}

func TestDeterminism(t *testing.T) {
	cfg := testConfig(t, config.KindPixel, config.DifficultyNormal)

	run := func() State {
		rng := rand.New(rand.NewSource(12345))
		s := NewState(cfg)
		for i := 0; i < 400 && s.Alive; i++ {
			s = Tick(s, i%9 == 0, rng, cfg)
		}
		return s
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs produced different rounds:\n%+v\n%+v", a, b)
	}
}

func TestConfigValidate(t *testing.T) {
	base := testConfig(t, config.KindGrid, config.DifficultyNormal)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.SpawnInterval = 0 }},
		{"zero speed", func(c *Config) { c.ScrollSpeed = 0 }},
		{"gap as tall as field", func(c *Config) { c.GapSize = c.Height }},
		{"empty field", func(c *Config) { c.Width = 0 }},
		{"zero pipe width", func(c *Config) { c.PipeWidth = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestDrawField(t *testing.T) {
	cfg := testConfig(t, config.KindGrid, config.DifficultyNormal)
	s := NewState(cfg)
	s.Pipes = []Pipe{{X: 20, GapTop: 5}}

	screen := core.NewScreen(cfg.Width, cfg.Height)
	DrawField(screen, 0, 0, s, cfg)

	row := screen.Row(int(s.Bird.Y))
	if !strings.Contains(row, BirdGlyph) {
		t.Errorf("bird row %q should contain %q", row, BirdGlyph)
	}
	if screen.GetCell(cfg.BirdX, int(s.Bird.Y)).Color != core.ColorYellow {
		t.Error("bird should be yellow")
	}

	if screen.Get(20, 0) != PipeBody {
		t.Errorf("expected pipe body at top, got %q", screen.Get(20, 0))
	}
	if screen.Get(20, 4) != PipeCapTop {
		t.Errorf("expected upper cap above the gap, got %q", screen.Get(20, 4))
	}
	for y := 5; y < 5+cfg.GapSize; y++ {
		if screen.Get(20, y) != ' ' {
			t.Errorf("gap row %d should be open, got %q", y, screen.Get(20, y))
		}
	}
	if screen.Get(20, 5+cfg.GapSize) != PipeCapBottom {
		t.Errorf("expected lower cap below the gap, got %q", screen.Get(20, 5+cfg.GapSize))
	}
	if screen.Get(20, cfg.Height-1) != PipeBody {
		t.Errorf("expected pipe body at the floor, got %q", screen.Get(20, cfg.Height-1))
	}
}
