package client

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"

	"github.com/tomz197/omega/internal/game"
	"github.com/tomz197/omega/internal/input"
	"github.com/tomz197/omega/internal/loop/config"
	"github.com/tomz197/omega/internal/object"
)

// theme holds the box styles and the palette. Boxes are laid out by
// lipgloss as plain text and painted into the canvas cell by cell, so the
// renderer never emits escape codes of its own.
type theme struct {
	box    lipgloss.Style
	prompt lipgloss.Style

	fg, dim, accent, gold, danger colorful.Color
	hudBG, panelBG, selectBG      colorful.Color
	rarity                        map[game.Rarity]colorful.Color
}

func newTheme() *theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return &theme{
		box:      r.NewStyle().Border(lipgloss.RoundedBorder()),
		prompt:   r.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 3).Align(lipgloss.Center),
		fg:       mustHex("#e8e8f0"),
		dim:      mustHex("#8a8a99"),
		accent:   mustHex("#5fd7ff"),
		gold:     mustHex("#ffd75f"),
		danger:   mustHex("#ff5f5f"),
		hudBG:    mustHex("#1c1c28"),
		panelBG:  mustHex("#14141c"),
		selectBG: mustHex("#33334d"),
		rarity: map[game.Rarity]colorful.Color{
			game.Common:    mustHex("#c0c0c0"),
			game.Rare:      mustHex("#5f87ff"),
			game.Epic:      mustHex("#af5fff"),
			game.Legendary: mustHex("#ffaf00"),
			game.Mythic:    mustHex("#ff5faf"),
		},
	}
}

// mustHex parses a "#rrggbb" palette entry. The palette is fixed, so a bad
// entry is a programming error.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (t *theme) noticeColor(kind game.NoticeKind) colorful.Color {
	switch kind {
	case game.NoticeSecret:
		return t.gold
	case game.NoticeMilestone:
		return t.accent
	case game.NoticeError:
		return t.danger
	}
	return t.fg
}

// region is a clickable span of cells on one row.
type region struct {
	col, row, width int
	label           string
	action          func()
}

func (c *Client) addRegion(col, row, width int, label string, action func()) {
	c.regions = append(c.regions, region{col: col, row: row, width: width, label: strings.TrimSpace(label), action: action})
}

// regionAt returns the topmost region covering the 0-based cell.
func (c *Client) regionAt(col, row int) (region, bool) {
	for i := len(c.regions) - 1; i >= 0; i-- {
		r := c.regions[i]
		if row == r.row && col >= r.col && col < r.col+r.width {
			return r, true
		}
	}
	return region{}, false
}

func (c *Client) sidebarCol() int {
	return c.canvas.TerminalWidth() - config.SidebarWidth
}

// drawFrame renders the current frame into the canvas and flushes it.
func (c *Client) drawFrame() error {
	// Start from a blank canvas when switching screens.
	if c.state.Mode != c.state.prevMode || c.state.isInactive != c.state.wasInactive {
		c.canvas.Clear()
		c.canvas.ForceRedraw()
		c.state.prevMode = c.state.Mode
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Fade(config.TrailFade)
	c.canvas.ClearText()
	c.regions = c.regions[:0]

	w, h := c.canvas.TerminalWidth(), c.canvas.TerminalHeight()
	if w < config.MinTermWidth || h < config.MinTermHeight {
		c.drawTooSmall()
	} else {
		if err := c.game.Draw(object.DrawContext{Canvas: c.canvas}); err != nil {
			return err
		}
		c.drawScreens()
	}

	c.canvas.Render(c.chunkWriter)
	return c.chunkWriter.Flush()
}

func (c *Client) drawScreens() {
	switch c.state.Mode {
	case ModeUsername:
		c.drawUsernameScreen()
		return
	case ModeShutdown:
		c.drawHUD()
		c.drawShutdownScreen()
		return
	}

	c.drawHUD()
	if c.game.MenuOpen() {
		c.drawSidebar()
	}
	c.drawStatusBar()

	switch c.state.Mode {
	case ModeRename:
		c.drawPrompt([]string{
			"Change username",
			"",
			"> " + c.state.field.String() + "_",
			c.state.fieldError,
			"Enter to save, Esc to cancel",
		}, nil)
	case ModeAdminInput:
		c.drawPrompt([]string{
			"Set " + adminFieldNames[c.state.adminField],
			"",
			"> " + c.state.field.String() + "_",
			c.state.fieldError,
			"Enter to save, Esc to cancel",
		}, nil)
	case ModeConfirmPrestige:
		st := c.game.State()
		c.drawPrompt([]string{
			"Prestige?",
			"",
			"Your auto-clicker resets to level 0.",
			fmt.Sprintf("Prestige %d makes upgrades cheaper and faster.", st.PrestigeLevel+1),
			"",
			"[ Yes ]",
			"[ No ]",
		}, map[int]func(){
			5: func() { c.handleConfirmStroke(keyStroke('y')) },
			6: func() { c.handleConfirmStroke(keyStroke('n')) },
		})
	}

	if c.state.isInactive {
		c.drawInactiveScreen()
	}
}

// drawHUD draws the top bar.
func (c *Client) drawHUD() {
	w := c.canvas.TerminalWidth()
	c.canvas.FillCells(0, 0, w, 1, c.ui.hudBG)

	left := fmt.Sprintf(" Score %d  Level %d  Secrets %d/%d",
		c.game.Score(), c.game.Level(), c.game.SecretsFound(), game.SecretTotal())
	c.drawText(object.Text{Col: 0, Row: 0, Value: left, FG: c.ui.fg, BG: c.ui.hudBG})

	menu := "[MENU]"
	menuCol := w - uniseg.StringWidth(menu) - 1
	who := fmt.Sprintf("%s  %d online  ", c.game.Username(), c.server.Players())
	whoCol := menuCol - uniseg.StringWidth(who)
	if whoCol > uniseg.StringWidth(left)+1 {
		c.drawText(object.Text{Col: whoCol, Row: 0, Value: who, FG: c.ui.dim, BG: c.ui.hudBG})
	}
	c.drawText(object.Text{Col: menuCol, Row: 0, Value: menu, FG: c.ui.accent, BG: c.ui.hudBG})
	if c.state.Mode == ModePlaying {
		c.addRegion(menuCol, 0, len(menu), menu, c.toggleMenu)
	}
}

// drawStatusBar draws the bottom row: the current toast or a hint.
func (c *Client) drawStatusBar() {
	w, h := c.canvas.TerminalWidth(), c.canvas.TerminalHeight()
	row := h - 1
	if t, ok := c.currentToast(time.Now()); ok {
		c.canvas.FillCells(0, row, w, 1, c.ui.hudBG)
		c.drawText(object.Text{Col: 1, Row: row, Value: truncate(t.text, w-2), FG: c.ui.noticeColor(t.kind), BG: c.ui.hudBG})
		return
	}
	hint := "Click the emojis   Tab: menu   q: quit"
	if c.game.MenuOpen() {
		hint = "Arrows: move   Enter: select   Esc: back"
	}
	c.drawText(object.Text{Col: 1, Row: row, Value: truncate(hint, w-2), FG: c.ui.dim, BG: c.ui.panelBG})
}

// drawSidebar draws the menu box on the right edge.
func (c *Client) drawSidebar() {
	h := c.canvas.TerminalHeight()
	left, top := c.sidebarCol(), 1
	boxH := h - 2
	inner := config.SidebarWidth - 2
	m := &c.state.menu

	header := []line{
		{text: " Ω OMEGA", fg: c.ui.gold, action: func() { c.dispatch(game.TitleClick{}) }},
	}
	if m.panelOpen {
		header = append(header, line{text: " ‹ Back  " + m.panel.String(), fg: c.ui.accent, action: c.closePanel})
	} else {
		header = append(header, line{text: " Choose a panel", fg: c.ui.dim})
	}
	header = append(header, line{text: strings.Repeat("─", inner), fg: c.ui.dim})

	body := c.menuBody()
	c.clampScroll(len(body))
	end := min(len(body), m.scroll+c.bodyCapacity())

	texts := make([]string, 0, boxH-2)
	for _, ln := range header {
		texts = append(texts, truncate(ln.text, inner))
	}
	for _, ln := range body[m.scroll:end] {
		texts = append(texts, truncate(" "+ln.text, inner))
	}

	c.canvas.FillCells(left, top, config.SidebarWidth, boxH, c.ui.panelBG)
	box := c.ui.box.Width(inner).Height(boxH - 2).Render(strings.Join(texts, "\n"))
	for i, s := range strings.Split(box, "\n") {
		c.drawText(object.Text{Col: left, Row: top + i, Value: s, FG: c.ui.dim, BG: c.ui.panelBG})
	}

	paint := func(i int, ln line, selected bool) {
		row := top + 1 + i
		bg := c.ui.panelBG
		if selected {
			bg = c.ui.selectBG
		}
		fg := ln.fg
		if fg == (colorful.Color{}) {
			fg = c.ui.fg
		}
		c.canvas.FillCells(left+1, row, inner, 1, bg)
		c.drawText(object.Text{Col: left + 1, Row: row, Value: texts[i], FG: fg, BG: bg})
		if ln.action != nil && c.state.Mode == ModePlaying {
			c.addRegion(left+1, row, inner, ln.text, ln.action)
		}
	}
	for i, ln := range header {
		paint(i, ln, false)
	}
	for i, ln := range body[m.scroll:end] {
		paint(menuHeaderLines+i, ln, m.scroll+i == m.selected)
	}
}

// drawPrompt draws a centred modal box. Lines listed in actions become
// clickable across the width of the box.
func (c *Client) drawPrompt(lines []string, actions map[int]func()) {
	w, h := c.canvas.TerminalWidth(), c.canvas.TerminalHeight()
	maxInner := max(10, w-12)
	for i, l := range lines {
		lines[i] = truncate(l, maxInner)
	}
	box := c.ui.prompt.Render(strings.Join(lines, "\n"))
	rows := strings.Split(box, "\n")
	boxW := lipgloss.Width(box)
	col := max(0, (w-boxW)/2)
	top := max(0, (h-len(rows))/2)

	c.canvas.FillCells(col, top, boxW, len(rows), c.ui.panelBG)
	for i, s := range rows {
		c.drawText(object.Text{Col: col, Row: top + i, Value: s, FG: c.ui.fg, BG: c.ui.panelBG})
	}
	// Border and top padding come before the first content line.
	for i, action := range actions {
		c.addRegion(col, top+2+i, boxW, lines[i], action)
	}
}

func (c *Client) drawUsernameScreen() {
	c.drawPrompt([]string{
		"Ω  O M E G A  Ω",
		"",
		"Click the emojis. Find all 25 secrets.",
		"",
		fmt.Sprintf("Pick a username (%d-%d characters)", config.MinUsernameLength, config.MaxUsernameLength),
		"> " + c.state.field.String() + "_",
		c.state.fieldError,
		"Enter to start, Esc to leave",
	}, nil)
}

func (c *Client) drawShutdownScreen() {
	remaining := int(c.state.shutdownTimer) + 1
	if c.state.shutdownTimer <= 0 {
		remaining = 0
	}
	c.drawPrompt([]string{
		"SERVER SHUTTING DOWN",
		"",
		"Your progress has been saved.",
		fmt.Sprintf("Disconnecting in %d seconds", remaining),
		"",
		"Press q to quit now",
	}, nil)
}

func (c *Client) drawInactiveScreen() {
	left := config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds()
	c.drawPrompt([]string{
		"Are you still there?",
		"",
		fmt.Sprintf("Disconnecting in %d seconds", max(0, int(left))),
		"Press any key to keep playing",
	}, nil)
}

func (c *Client) drawTooSmall() {
	msg := []string{
		"Terminal too small",
		fmt.Sprintf("Need at least %dx%d", config.MinTermWidth, config.MinTermHeight),
	}
	for i, s := range msg {
		c.drawText(object.Text{Col: 0, Row: i, Value: truncate(s, c.canvas.TerminalWidth()), FG: c.ui.fg, BG: c.ui.panelBG})
	}
}

func (c *Client) drawText(t object.Text) {
	_ = t.Draw(object.DrawContext{Canvas: c.canvas})
}

func keyStroke(r rune) input.Stroke {
	return input.Stroke{Kind: input.StrokeRune, Rune: r}
}

// truncate cuts s to at most width terminal columns.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if used+g.Width() > width {
			break
		}
		b.WriteString(g.Str())
		used += g.Width()
	}
	return b.String()
}

// wrapText breaks s into lines of at most width columns at spaces.
func wrapText(s string, width int) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		switch {
		case cur == "":
			cur = word
		case uniseg.StringWidth(cur)+1+uniseg.StringWidth(word) <= width:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
		for uniseg.StringWidth(cur) > width {
			head := truncate(cur, width)
			if head == "" {
				break
			}
			lines = append(lines, head)
			cur = cur[len(head):]
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
