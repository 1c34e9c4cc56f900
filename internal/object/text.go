package object

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Text is a label drawn into the canvas text layer.
// Coordinates are 0-based terminal cells.
type Text struct {
	Col   int
	Row   int
	Value string
	FG    colorful.Color
	BG    colorful.Color
}

// Draw writes the text at its position.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	col, row := t.Col, t.Row
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}
	ctx.Canvas.DrawText(col, row, t.Value, t.FG, t.BG)
	return nil
}

// Update is a no-op for static text.
func (t Text) Update(_ UpdateContext) (bool, error) {
	return false, nil
}
