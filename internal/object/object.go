// Package object holds the things that live on the play field: bouncing
// entities, their explosion particles and the spawner that creates them.
package object

import (
	"time"

	"github.com/tomz197/omega/internal/draw"
)

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta  time.Duration
	Screen Screen
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
}

// Screen is the size of the play field in logical units.
type Screen struct {
	Width  float64
	Height float64
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by one simulation step. Returns true if the
	// object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw paints the object onto ctx.Canvas.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
