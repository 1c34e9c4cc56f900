// Package input turns the raw terminal byte stream into discrete key and mouse input.
package input

import (
	"bufio"
	"unicode"
	"unicode/utf8"
)

// MouseButton identifies which button a mouse report refers to.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// Click is a mouse button press at a 1-based terminal cell.
type Click struct {
	Col    int
	Row    int
	Button MouseButton
}

// StrokeKind identifies a keystroke.
type StrokeKind int

const (
	StrokeRune StrokeKind = iota
	StrokeEnter
	StrokeBackspace
	StrokeTab
	StrokeEscape
	StrokeUp
	StrokeDown
	StrokeLeft
	StrokeRight
)

// Stroke is one keystroke. Rune is set for StrokeRune.
type Stroke struct {
	Kind StrokeKind
	Rune rune
}

// Input represents everything that arrived since the previous frame.
type Input struct {
	Quit    bool     // Ctrl-C or the reader ended
	Strokes []Stroke // Every keystroke in arrival order, wheel included
	Clicks  []Click  // Button presses in arrival order
	Pressed []byte   // Raw bytes consumed this frame
}

func (in *Input) stroke(kind StrokeKind, r rune) {
	in.Strokes = append(in.Strokes, Stroke{Kind: kind, Rune: r})
}

// Stream delivers input bytes via a channel. Escape sequences split across
// reads are held back until they complete.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 512),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	if len(rest) > 0 && !s.closed {
		s.pending = append([]byte(nil), rest...)
	}
	if s.closed {
		in.Quit = true
	}
	return in
}

// Parse decodes buf. Any trailing incomplete escape sequence is returned as
// rest so the caller can retry once more bytes arrive.
func Parse(buf []byte) (in Input, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]

		if b == '\x1b' {
			n, complete := parseEscape(buf[i:], &in)
			if !complete {
				in.Pressed = append(in.Pressed, buf[:i]...)
				return in, buf[i:]
			}
			i += n
			continue
		}

		switch b {
		case 0x03:
			in.Quit = true
			i++
			continue
		case '\t':
			in.stroke(StrokeTab, 0)
			i++
			continue
		case '\r', '\n':
			in.stroke(StrokeEnter, 0)
			i++
			continue
		case '\b', 0x7f:
			in.stroke(StrokeBackspace, 0)
			i++
			continue
		}

		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(buf[i:]) {
				in.Pressed = append(in.Pressed, buf[:i]...)
				return in, buf[i:]
			}
			i++
			continue
		}
		if unicode.IsPrint(r) {
			in.stroke(StrokeRune, r)
		}
		i += size
	}
	in.Pressed = append(in.Pressed, buf...)
	return in, nil
}

// parseEscape decodes the escape sequence at the start of seq. It returns the
// number of bytes consumed and whether the sequence was complete.
func parseEscape(seq []byte, in *Input) (int, bool) {
	if len(seq) == 1 {
		// A lone ESC at the end of a read is the Escape key.
		in.stroke(StrokeEscape, 0)
		return 1, true
	}
	if seq[1] != '[' {
		in.stroke(StrokeEscape, 0)
		return 1, true
	}
	if len(seq) < 3 {
		return 0, false
	}

	if seq[2] == '<' {
		return parseSGRMouse(seq, in)
	}

	// Generic CSI: parameters then one final byte in 0x40-0x7E.
	for j := 2; j < len(seq); j++ {
		c := seq[j]
		if c >= 0x40 && c <= 0x7e {
			switch c {
			case 'A':
				in.stroke(StrokeUp, 0)
			case 'B':
				in.stroke(StrokeDown, 0)
			case 'C':
				in.stroke(StrokeRight, 0)
			case 'D':
				in.stroke(StrokeLeft, 0)
			}
			return j + 1, true
		}
	}
	return 0, false
}

// parseSGRMouse decodes ESC [ < b ; x ; y (M|m).
func parseSGRMouse(seq []byte, in *Input) (int, bool) {
	var fields [3]int
	field := 0
	for j := 3; j < len(seq); j++ {
		c := seq[j]
		switch {
		case c >= '0' && c <= '9':
			fields[field] = fields[field]*10 + int(c-'0')
		case c == ';':
			field++
			if field > 2 {
				return j + 1, true
			}
		case c == 'M' || c == 'm':
			applyMouse(fields[0], fields[1], fields[2], c == 'M', in)
			return j + 1, true
		default:
			return j + 1, true
		}
	}
	return 0, false
}

func applyMouse(button, col, row int, press bool, in *Input) {
	if !press || button&32 != 0 {
		return // Releases and motion are ignored
	}
	if button&64 != 0 {
		if button&1 == 0 {
			in.stroke(StrokeUp, 0)
		} else {
			in.stroke(StrokeDown, 0)
		}
		return
	}
	in.Clicks = append(in.Clicks, Click{Col: col, Row: row, Button: MouseButton(button & 3)})
}
