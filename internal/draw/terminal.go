package draw

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// maxChunkSize keeps each write under a typical MTU so a frame streams
// smoothly over SSH instead of arriving as one large burst.
const maxChunkSize = 1400

// ChunkWriter collects one frame of output and hands it to the connection
// in MTU-sized writes on Flush. Canvas.Render writes into it.
type ChunkWriter struct {
	buf    bytes.Buffer
	out    *bufio.Writer
	chunks int
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{out: bufio.NewWriterSize(w, maxChunkSize)}
}

// Write buffers p until the next Flush.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// Pending returns the number of bytes waiting for Flush.
func (cw *ChunkWriter) Pending() int {
	return cw.buf.Len()
}

// Chunks returns how many writes the last Flush issued.
func (cw *ChunkWriter) Chunks() int {
	return cw.chunks
}

// Flush writes the pending frame and empties the buffer. An empty frame
// writes nothing.
func (cw *ChunkWriter) Flush() error {
	cw.chunks = 0
	for cw.buf.Len() > 0 {
		if _, err := cw.out.Write(cw.buf.Next(maxChunkSize)); err != nil {
			cw.buf.Reset()
			return err
		}
		if err := cw.out.Flush(); err != nil {
			cw.buf.Reset()
			return err
		}
		cw.chunks++
	}
	cw.buf.Reset()
	return nil
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedSize returns a TermSizeFunc that always reports width x height.
func FixedSize(width, height int) TermSizeFunc {
	return func() (int, int, error) { return width, height, nil }
}

const (
	seqClear       = "\033[0m\033[H\033[2J"
	seqHideCursor  = "\033[?25l"
	seqShowCursor  = "\033[?25h"
	seqMouseOn     = "\033[?1000h\033[?1006h" // Button presses, SGR encoding
	seqMouseOff    = "\033[?1006l\033[?1000l"
	seqResetColors = "\033[0m"
)

// ClearScreen resets colours, clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClear)
}

// EnterGame hides the cursor, turns on mouse reporting and clears the screen.
func EnterGame(w io.Writer) {
	io.WriteString(w, seqHideCursor+seqMouseOn+seqClear)
}

// LeaveGame undoes EnterGame and leaves an empty screen behind.
func LeaveGame(w io.Writer) {
	io.WriteString(w, seqMouseOff+seqResetColors+seqShowCursor+seqClear)
}
