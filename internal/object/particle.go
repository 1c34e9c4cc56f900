package object

import (
	"math/rand"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/omega/internal/loop/config"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived explosion fragment. Life counts simulation steps.
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Size        float64
	Color       colorful.Color
	Life        int
	InitialLife int
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, size float64, col colorful.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Size = size
	p.Color = col
	p.Life = config.ParticleLife
	p.InitialLife = config.ParticleLife
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates a burst of ParticleBurst particles at (x, y) in col.
func SpawnBurst(x, y float64, col colorful.Color, rng *rand.Rand) []*Particle {
	out := make([]*Particle, 0, config.ParticleBurst)
	for i := 0; i < config.ParticleBurst; i++ {
		vx := (rng.Float64() - 0.5) * config.ParticleSpeed
		vy := (rng.Float64() - 0.5) * config.ParticleSpeed
		size := rng.Float64()*config.ParticleSizeSpan + config.ParticleMinSize
		out = append(out, NewParticle(x, y, vx, vy, size, col))
	}
	return out
}

// Opacity is the remaining fraction of the particle's life.
func (p *Particle) Opacity() float64 {
	if p.InitialLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.InitialLife)
}

// Update moves the particle and ages it by one step.
func (p *Particle) Update(_ UpdateContext) (bool, error) {
	p.X += p.VX
	p.Y += p.VY
	p.Life--
	return p.Life <= 0, nil
}

// Draw renders the particle as a square whose opacity follows its life.
func (p *Particle) Draw(ctx DrawContext) error {
	alpha := p.Opacity()
	if alpha <= 0 {
		return nil
	}
	ctx.Canvas.FillRect(p.X, p.Y, p.Size, p.Size, p.Color, alpha)
	return nil
}
