package object

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/omega/internal/physics"
)

// traceAlpha is the opacity of the pixel an entity leaves behind each frame.
const traceAlpha = 0.6

// Entity is a bouncing glyph. X and Y are the top-left corner of its square
// bounding box.
type Entity struct {
	Glyph  string
	X, Y   float64
	Size   float64
	VX, VY float64
	Color  colorful.Color
}

// Center returns the middle of the bounding box.
func (e *Entity) Center() (float64, float64) {
	return e.X + e.Size/2, e.Y + e.Size/2
}

// Contains reports whether (px, py) lies strictly inside the bounding box.
func (e *Entity) Contains(px, py float64) bool {
	return physics.PointInSquare(px, py, e.X, e.Y, e.Size)
}

// Update moves the entity by its velocity and bounces it off the field edges.
// The position is not clamped.
func (e *Entity) Update(ctx UpdateContext) (bool, error) {
	e.X += e.VX
	e.Y += e.VY
	e.VX = physics.Reflect(e.X, e.Size, ctx.Screen.Width, e.VX)
	e.VY = physics.Reflect(e.Y, e.Size, ctx.Screen.Height, e.VY)
	return false, nil
}

// Draw paints the glyph centred on the bounding box over a faint trace pixel
// that the canvas fade turns into a trail.
func (e *Entity) Draw(ctx DrawContext) error {
	cx, cy := e.Center()
	ctx.Canvas.FillRect(cx, cy, 1, 1, e.Color, traceAlpha)
	ctx.Canvas.DrawGlyph(cx, cy, e.Glyph, e.Color)
	return nil
}
