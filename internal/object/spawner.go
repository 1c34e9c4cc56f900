package object

import (
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/omega/internal/loop/config"
	"github.com/tomz197/omega/internal/timer"
)

// Spawner creates entities on a fixed period while the live count is below
// its capacity.
type Spawner struct {
	capacity int
	glyphs   []string
	rng      *rand.Rand
	timer    *timer.Repeating
}

// NewSpawner creates a stopped spawner. Glyphs are drawn uniformly from
// glyphs, duplicates included.
func NewSpawner(capacity int, period time.Duration, glyphs []string, rng *rand.Rand) *Spawner {
	if capacity < 0 {
		capacity = 0
	}
	return &Spawner{
		capacity: capacity,
		glyphs:   glyphs,
		rng:      rng,
		timer:    timer.NewRepeating(period),
	}
}

// Capacity returns the live entity limit.
func (s *Spawner) Capacity() int {
	return s.capacity
}

// SetCapacity changes the limit. It applies from the next spawn attempt.
func (s *Spawner) SetCapacity(n int) {
	if n < 0 {
		n = 0
	}
	s.capacity = n
}

// Period returns the spawn period.
func (s *Spawner) Period() time.Duration {
	return s.timer.Period()
}

// SetPeriod changes the period and restarts the schedule if it was running.
func (s *Spawner) SetPeriod(d time.Duration) {
	running := s.timer.Running()
	s.timer.Reset(d)
	if !running {
		s.timer.Stop()
	}
}

// Start resumes spawning from a fresh period.
func (s *Spawner) Start() {
	s.timer.Start()
}

// Stop pauses spawning. Missed ticks are not queued.
func (s *Spawner) Stop() {
	s.timer.Stop()
}

// Running reports whether the spawn schedule is active.
func (s *Spawner) Running() bool {
	return s.timer.Running()
}

// Tick advances the schedule and spawns one entity when it fires.
func (s *Spawner) Tick(ctx UpdateContext, level, live int) (*Entity, bool) {
	if !s.timer.Advance(ctx.Delta) {
		return nil, false
	}
	return s.Spawn(ctx.Screen, level, live)
}

// Spawn creates one entity unless live has reached the capacity.
func (s *Spawner) Spawn(screen Screen, level, live int) (*Entity, bool) {
	if live >= s.capacity || len(s.glyphs) == 0 {
		return nil, false
	}

	size := s.rng.Float64()*config.EntitySizeRange + config.MinEntitySize
	speed := float64(level + 2)
	e := &Entity{
		Glyph: s.glyphs[s.rng.Intn(len(s.glyphs))],
		X:     s.rng.Float64() * (screen.Width - size),
		Y:     s.rng.Float64() * (screen.Height - size),
		Size:  size,
		VX:    (s.rng.Float64() - 0.5) * speed,
		VY:    (s.rng.Float64() - 0.5) * speed,
		Color: colorful.Hsl(s.rng.Float64()*360, 1, config.EntityLightness),
	}
	return e, true
}
