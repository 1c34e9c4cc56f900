// Package draw renders the play field to a terminal.
package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Background is the colour of an empty play field. Fade pulls every
// sub-pixel toward it.
var Background = colorful.Color{R: 10.0 / 255, G: 10.0 / 255, B: 12.0 / 255}

// fadeSnap is the RGB distance under which a fading pixel is snapped to the
// background, so trails settle instead of rounding forever.
const fadeSnap = 0.02

// RGB is a quantized 24-bit colour as sent to the terminal.
type RGB struct {
	R, G, B uint8
}

func toRGB(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// textCell is one terminal cell of the glyph/text layer.
type textCell struct {
	set   bool
	text  string
	width int // 0 marks the right half of a wide glyph
	fg    colorful.Color
	bg    colorful.Color
	hasBG bool // false lets the sub-pixels show through as background
}

// cellState is what a terminal cell looked like after the last Render.
type cellState struct {
	text string
	fg   RGB
	bg   RGB
	cont bool
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Sub-pixels keep their colour between frames so Fade can leave trails; the
// text layer is rebuilt every frame. Render only emits cells that changed.
type Canvas struct {
	termWidth      int // Actual terminal columns
	termHeight     int // Actual terminal rows
	subPixelHeight int // termHeight * 2
	pixels         []colorful.Color
	cells          []textCell
	prev           []cellState
	valid          bool // prev reflects what the terminal shows

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for placing the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.allocate(termWidth, termHeight)
	return c
}

func (c *Canvas) allocate(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]colorful.Color, c.subPixelHeight*termWidth)
	for i := range c.pixels {
		c.pixels[i] = Background
	}
	c.cells = make([]textCell, termWidth*termHeight)
	c.prev = make([]cellState, termWidth*termHeight)
	c.valid = false
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A changed size drops the trail buffer and forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth == c.termWidth && termHeight == c.termHeight {
		return
	}
	c.allocate(termWidth, termHeight)
}

// SetOffset sets the column and row offset for the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.valid = false
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render clear the terminal and repaint every cell.
func (c *Canvas) ForceRedraw() {
	c.valid = false
}

// Clear resets every sub-pixel to the background and empties the text layer.
func (c *Canvas) Clear() {
	for i := range c.pixels {
		c.pixels[i] = Background
	}
	c.ClearText()
}

// ClearText empties the text layer.
func (c *Canvas) ClearText() {
	clear(c.cells)
}

// Fade paints a translucent background-coloured overlay over the sub-pixels.
// alpha is the overlay opacity; what was drawn in earlier frames stays
// visible at (1-alpha) strength, which produces motion trails.
func (c *Canvas) Fade(alpha float64) {
	for i, p := range c.pixels {
		p = p.BlendRgb(Background, alpha)
		if p.DistanceRgb(Background) < fadeSnap {
			p = Background
		}
		c.pixels[i] = p
	}
}

// setPixel blends a colour into a sub-pixel at actual terminal coordinates.
func (c *Canvas) setPixel(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	idx := y*c.termWidth + x
	if alpha >= 1 {
		c.pixels[idx] = col
		return
	}
	c.pixels[idx] = c.pixels[idx].BlendRgb(col, alpha)
}

// Pixel returns the colour of the sub-pixel at terminal column x and
// sub-pixel row y.
func (c *Canvas) Pixel(x, y int) colorful.Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Background
	}
	return c.pixels[y*c.termWidth+x]
}

// FillRect blends a rectangle given in logical coordinates into the
// sub-pixels with the given opacity. Anything non-empty covers at least one
// sub-pixel.
func (c *Canvas) FillRect(x, y, w, h float64, col colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col, alpha)
		}
	}
}

// DrawGlyph places a glyph centred on the logical point (cx, cy). The cell
// takes its background from the sub-pixels underneath.
func (c *Canvas) DrawGlyph(cx, cy float64, glyph string, fg colorful.Color) {
	width := uniseg.StringWidth(glyph)
	if width < 1 {
		width = 1
	}
	if width > 2 {
		width = 2
	}
	col := int(math.Round(cx*c.scaleX)) - width/2
	row := int(math.Floor(cy*c.scaleY)) / 2
	c.placeCell(col, row, glyph, width, fg, colorful.Color{}, false)
}

// DrawText writes text starting at the 0-based cell (col, row) with explicit
// colours. It returns the number of columns used.
func (c *Canvas) DrawText(col, row int, text string, fg, bg colorful.Color) int {
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		width := g.Width()
		if width <= 0 {
			continue
		}
		if width > 2 {
			width = 2
		}
		c.placeCell(col+used, row, cluster, width, fg, bg, true)
		used += width
	}
	return used
}

// FillCells paints a block of cells with a solid background.
func (c *Canvas) FillCells(col, row, width, height int, bg colorful.Color) {
	for r := row; r < row+height; r++ {
		for x := col; x < col+width; x++ {
			c.placeCell(x, r, " ", 1, bg, bg, true)
		}
	}
}

func (c *Canvas) placeCell(col, row int, text string, width int, fg, bg colorful.Color, hasBG bool) {
	if row < 0 || row >= c.termHeight || col < 0 || col+width > c.termWidth {
		return
	}
	idx := row*c.termWidth + col
	// Break any wide glyph this cell is half of.
	if cur := c.cells[idx]; cur.set && cur.width == 0 && col > 0 {
		c.cells[idx-1] = textCell{}
	}
	if cur := c.cells[idx]; cur.set && cur.width == 2 && col+1 < c.termWidth {
		c.cells[idx+1] = textCell{}
	}
	c.cells[idx] = textCell{set: true, text: text, width: width, fg: fg, bg: bg, hasBG: hasBG}
	if width == 2 {
		next := idx + 1
		if cur := c.cells[next]; cur.set && cur.width == 2 && col+2 < c.termWidth {
			c.cells[next+1] = textCell{}
		}
		c.cells[next] = textCell{set: true, width: 0, fg: fg, bg: bg, hasBG: hasBG}
	}
}

// stateAt computes the final appearance of the cell at idx.
func (c *Canvas) stateAt(row, col int) cellState {
	idx := row*c.termWidth + col
	top := c.pixels[(row*2)*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]

	if tc := c.cells[idx]; tc.set {
		if tc.width == 0 {
			return cellState{cont: true}
		}
		bg := tc.bg
		if !tc.hasBG {
			bg = top.BlendRgb(bottom, 0.5)
		}
		return cellState{text: tc.text, fg: toRGB(tc.fg), bg: toRGB(bg)}
	}

	t, b := toRGB(top), toRGB(bottom)
	if t == b {
		return cellState{text: " ", fg: t, bg: t}
	}
	return cellState{text: string(BlockUpperHalf), fg: t, bg: b}
}

// Render outputs every changed cell to w using 24-bit colour sequences.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	full := !c.valid
	if full {
		c.renderBuf.WriteString("\033[0m\033[H\033[2J")
	}

	var curFG, curBG RGB
	colorsKnown := false
	cursorRow, cursorCol := -1, -1

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			st := c.stateAt(row, col)
			if !full && st == c.prev[idx] {
				continue
			}
			c.prev[idx] = st
			if st.cont {
				continue
			}

			if cursorRow != row || cursorCol != col {
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			}
			if !colorsKnown || st.fg != curFG {
				fmt.Fprintf(&c.renderBuf, "\033[38;2;%d;%d;%dm", st.fg.R, st.fg.G, st.fg.B)
				curFG = st.fg
			}
			if !colorsKnown || st.bg != curBG {
				fmt.Fprintf(&c.renderBuf, "\033[48;2;%d;%d;%dm", st.bg.R, st.bg.G, st.bg.B)
				curBG = st.bg
			}
			colorsKnown = true
			c.renderBuf.WriteString(st.text)

			advance := 1
			if tc := c.cells[idx]; tc.set && tc.width == 2 {
				advance = 2
			}
			cursorRow, cursorCol = row, col+advance
		}
	}
	if colorsKnown {
		c.renderBuf.WriteString("\033[0m")
	}
	c.valid = true

	io.WriteString(w, c.renderBuf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

// TerminalToLogical converts a 1-based terminal position (as reported by
// mouse events) to the logical coordinates at the middle of that cell.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	cx := float64(col-1-c.offsetCol) + 0.5
	cy := float64((row-1-c.offsetRow)*2) + 1
	return cx / c.scaleX, cy / c.scaleY
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)
