package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

func TestFadeLeavesTrailThenSettles(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillRect(0, 0, 10, 10, white, 1)
	require.Equal(t, white, c.Pixel(0, 0))

	c.Fade(0.3)
	faded := c.Pixel(0, 0)
	assert.Less(t, faded.R, 1.0)
	assert.Greater(t, faded.R, Background.R)

	for i := 0; i < 40; i++ {
		c.Fade(0.3)
	}
	assert.Equal(t, Background, c.Pixel(0, 0))
}

func TestFillRectCoversAtLeastOnePixel(t *testing.T) {
	c := NewScaledCanvas(10, 5, 1000, 1000)
	c.FillRect(505, 505, 1, 1, white, 1)
	assert.Equal(t, white, c.Pixel(5, 5))
}

func TestFillRectBlendsWithOpacity(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.FillRect(0, 0, 1, 1, white, 0.5)
	p := c.Pixel(0, 0)
	assert.InDelta(t, (Background.R+1)/2, p.R, 1e-9)
}

func TestTerminalToLogicalRoundTrip(t *testing.T) {
	c := NewScaledCanvas(80, 25, 800, 500)
	x, y := c.TerminalToLogical(11, 6)
	col, row := c.LogicalToTerminal(x-0.1, y)
	assert.Equal(t, 11, col)
	assert.Equal(t, 6, row)
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := NewScaledCanvas(20, 5, 20, 10)
	var first bytes.Buffer
	c.Render(&first)
	assert.Contains(t, first.String(), "\033[2J")

	var second bytes.Buffer
	c.Render(&second)
	assert.Empty(t, second.String())

	c.DrawText(2, 1, "hi", white, Background)
	var third bytes.Buffer
	c.Render(&third)
	out := third.String()
	assert.Contains(t, out, "hi")
	assert.NotContains(t, out, "\033[2J")
}

func TestWideGlyphOccupiesTwoCells(t *testing.T) {
	c := NewScaledCanvas(20, 5, 20, 10)
	used := c.DrawText(0, 0, "👻x", white, Background)
	assert.Equal(t, 3, used)

	var buf bytes.Buffer
	c.Render(&buf)
	assert.Equal(t, 1, strings.Count(buf.String(), "👻"))
	assert.Contains(t, buf.String(), "x")
}

func TestOverwritingHalfOfWideGlyphClearsIt(t *testing.T) {
	c := NewScaledCanvas(20, 5, 20, 10)
	c.DrawText(0, 0, "👻", white, Background)
	c.DrawText(1, 0, "y", white, Background)

	var buf bytes.Buffer
	c.Render(&buf)
	assert.NotContains(t, buf.String(), "👻")
	assert.Contains(t, buf.String(), "y")
}

func TestDrawGlyphCentres(t *testing.T) {
	c := NewScaledCanvas(80, 25, 800, 500)
	var buf bytes.Buffer
	c.Render(&buf)
	buf.Reset()

	c.DrawGlyph(400, 250, "💎", white)
	c.Render(&buf)
	assert.Contains(t, buf.String(), "\033[13;40H")
}

func TestResizeForcesRedraw(t *testing.T) {
	c := NewScaledCanvas(20, 5, 20, 10)
	var buf bytes.Buffer
	c.Render(&buf)
	c.Resize(30, 6)
	buf.Reset()
	c.Render(&buf)
	assert.Contains(t, buf.String(), "\033[2J")
	assert.Equal(t, 30, c.TerminalWidth())
}
