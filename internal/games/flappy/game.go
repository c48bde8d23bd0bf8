package flappy

// Tick advances a round by one step and returns the new state. The argument is
// not modified: the returned state owns a fresh pipe slice.
//
// Once Alive is false the state is terminal and Tick returns it unchanged.
func Tick(s State, jump bool, rng Rand, cfg Config) State {
	if !s.Alive {
		return s
	}

	next := s
	next.Pipes = make([]Pipe, len(s.Pipes), len(s.Pipes)+1)
	copy(next.Pipes, s.Pipes)
	next.Ticks++

	// A jump replaces the velocity outright instead of adding to it
	if jump {
		next.Bird.Velocity = cfg.JumpVelocity
	} else {
		next.Bird.Velocity += cfg.Gravity
	}

	next.Bird.Y += next.Bird.Velocity
	if next.Bird.Y < 0 {
		next.Bird.Y = 0
	}
	if next.Bird.Y+float64(cfg.BirdHeight) > float64(cfg.Height) {
		next.Alive = false
	}

	next.SpawnTicks++
	if next.SpawnTicks >= cfg.SpawnInterval {
		next.SpawnTicks = 0
		next.Pipes = append(next.Pipes, spawnPipe(rng, cfg))
	}

	for i := range next.Pipes {
		next.Pipes[i].X -= cfg.ScrollSpeed
	}

	retired := 0
	for retired < len(next.Pipes) && next.Pipes[retired].OffScreen(cfg) {
		retired++
	}
	if retired > 0 {
		next.Pipes = next.Pipes[retired:]
		next.Score += retired
	}

	if Collided(next, cfg) {
		next.Alive = false
	}

	return next
}

// Collided reports whether the bird overlaps any pipe. Every pipe sharing a
// column with the bird is checked, since wide pipes can overlap it two at a time.
func Collided(s State, cfg Config) bool {
	bird := s.BirdRect(cfg)
	for _, p := range s.Pipes {
		if !bird.OverlapsColumns(p.X, cfg.PipeWidth) {
			continue
		}
		if p.Collides(bird, cfg) {
			return true
		}
	}
	return false
}

// spawnPipe creates a pipe at the spawn column with a random gap.
func spawnPipe(rng Rand, cfg Config) Pipe {
	min, max := cfg.GapBounds()
	return Pipe{
		X:      cfg.SpawnX,
		GapTop: min + rng.Intn(max-min),
	}
}
