package client

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/omega/internal/game"
	"github.com/tomz197/omega/internal/loop/config"
)

// line is one row of sidebar content. Lines with an action are selectable.
type line struct {
	text   string
	fg     colorful.Color // Zero means the default text colour
	action func()
}

type menuItem struct {
	label string
	panel game.Panel
}

// menuHeaderLines is the title, the back or hint row and the rule above
// the sidebar body.
const menuHeaderLines = 3

var basePanels = []game.Panel{
	game.PanelLeaderboard,
	game.PanelRarity,
	game.PanelSecrets,
	game.PanelUpgrades,
	game.PanelAccount,
	game.PanelInfo,
	game.PanelSettings,
	game.PanelLog,
}

// menuItems lists the panels the player can open right now.
func (c *Client) menuItems() []menuItem {
	panels := slices.Clone(basePanels)
	if c.game.OmegaUnlocked() {
		panels = append(panels, game.PanelOmega)
	}
	if c.game.DevMode() {
		panels = append(panels, game.PanelAdmin)
	}
	items := make([]menuItem, len(panels))
	for i, p := range panels {
		items[i] = menuItem{label: p.String(), panel: p}
	}
	return items
}

func (c *Client) toggleMenu() {
	c.dispatch(game.MenuToggle{})
	c.state.menu = menuState{}
}

func (c *Client) openPanel(p game.Panel) {
	if err := c.game.Dispatch(game.PanelOpen{Panel: p}); err != nil {
		c.game.Report(err)
		return
	}
	m := &c.state.menu
	m.panelOpen = true
	m.panel = p
	m.selected = -1
	m.scroll = 0
	m.scores = nil
	if p == game.PanelLeaderboard {
		m.scores = c.game.Leaderboard()
	}
	c.moveSelection(1)
	m.scroll = 0
}

func (c *Client) closePanel() {
	m := &c.state.menu
	p := m.panel
	*m = menuState{}
	for i, item := range c.menuItems() {
		if item.panel == p {
			m.selected = i
		}
	}
	c.ensureVisible(len(c.menuItems()))
}

// menuBody returns the sidebar body below the header.
func (c *Client) menuBody() []line {
	m := &c.state.menu
	if m.panelOpen {
		return c.panelLines(m.panel)
	}
	items := c.menuItems()
	lines := make([]line, len(items))
	for i, item := range items {
		lines[i] = line{text: "  " + item.label, action: func() { c.openPanel(item.panel) }}
	}
	return lines
}

// moveSelection moves the cursor to the next selectable body line in dir.
// Panels without selectable lines scroll instead.
func (c *Client) moveSelection(dir int) {
	if !c.game.MenuOpen() {
		return
	}
	m := &c.state.menu
	body := c.menuBody()
	for i := m.selected + dir; i >= 0 && i < len(body); i += dir {
		if body[i].action != nil {
			m.selected = i
			c.ensureVisible(len(body))
			return
		}
	}
	if m.panelOpen {
		m.scroll += dir
		c.clampScroll(len(body))
	}
}

func (c *Client) activateSelection() {
	body := c.menuBody()
	m := c.state.menu
	if m.selected < 0 || m.selected >= len(body) || body[m.selected].action == nil {
		return
	}
	body[m.selected].action()
}

// bodyCapacity is how many body lines fit in the sidebar.
func (c *Client) bodyCapacity() int {
	// HUD and status rows, the box border and the header.
	return max(1, c.canvas.TerminalHeight()-2-2-menuHeaderLines)
}

func (c *Client) ensureVisible(total int) {
	m := &c.state.menu
	capacity := c.bodyCapacity()
	if m.selected >= 0 {
		if m.selected < m.scroll {
			m.scroll = m.selected
		}
		if m.selected >= m.scroll+capacity {
			m.scroll = m.selected - capacity + 1
		}
	}
	c.clampScroll(total)
}

func (c *Client) clampScroll(total int) {
	m := &c.state.menu
	m.scroll = min(m.scroll, total-c.bodyCapacity())
	m.scroll = max(m.scroll, 0)
}

// panelLines builds the body of panel p.
func (c *Client) panelLines(p game.Panel) []line {
	width := config.SidebarWidth - 4
	switch p {
	case game.PanelLeaderboard:
		return c.leaderboardLines()
	case game.PanelRarity:
		return c.rarityLines(width)
	case game.PanelSecrets:
		return c.secretLines(width)
	case game.PanelUpgrades:
		return c.upgradeLines()
	case game.PanelAccount:
		return c.accountLines()
	case game.PanelInfo:
		return textLines(infoText, width, colorful.Color{})
	case game.PanelSettings:
		return c.settingLines()
	case game.PanelLog:
		return c.logLines(width)
	case game.PanelOmega:
		return c.omegaLines()
	case game.PanelAdmin:
		return c.adminLines()
	}
	return nil
}

func (c *Client) leaderboardLines() []line {
	scores := c.state.menu.scores
	if len(scores) == 0 {
		return []line{{text: "No scores yet", fg: c.ui.dim}}
	}
	lines := make([]line, 0, len(scores))
	for i, hs := range scores {
		ln := line{text: fmt.Sprintf("%d. %-15s %6d", i+1, hs.User, hs.Score)}
		if hs.User == c.game.Username() {
			ln.fg = c.ui.gold
		}
		lines = append(lines, ln)
	}
	return lines
}

func (c *Client) rarityLines(width int) []line {
	var lines []line
	byRarity := game.EmojisByRarity()
	for _, r := range game.RarityOrder {
		lines = append(lines, line{
			text: fmt.Sprintf("%s %s", r, r.DisplayChance()),
			fg:   c.ui.rarity[r],
		})
		var glyphs []string
		for _, e := range byRarity {
			if e.Rarity == r {
				glyphs = append(glyphs, e.Glyph)
			}
		}
		lines = append(lines, textLines(strings.Join(glyphs, " "), width, colorful.Color{})...)
	}
	return lines
}

func (c *Client) secretLines(width int) []line {
	lines := []line{{
		text: fmt.Sprintf("Found %d/%d", c.game.SecretsFound(), game.SecretTotal()),
		fg:   c.ui.accent,
	}}
	for _, s := range game.Secrets() {
		if c.game.Found(s.ID) {
			lines = append(lines, line{text: "✓ " + s.Title, fg: c.ui.gold})
		} else {
			lines = append(lines, line{text: "? ???"})
		}
		for _, l := range wrapText(s.Clue, width-2) {
			lines = append(lines, line{text: "  " + l, fg: c.ui.dim})
		}
	}
	return lines
}

func (c *Client) upgradeLines() []line {
	st := c.game.State()
	lines := []line{
		{text: fmt.Sprintf("Score: %d", st.Score)},
		{text: fmt.Sprintf("Auto-clicker: level %d", st.AutoClickerLevel)},
	}
	if st.AutoClickerLevel > 0 {
		lines = append(lines, line{text: fmt.Sprintf("Clicks every %.1fs", c.game.Speed().Seconds())})
	}
	lines = append(lines,
		line{text: fmt.Sprintf("Prestige: %d", st.PrestigeLevel)},
		line{},
		line{
			text:   fmt.Sprintf("[ Buy level %d for %d ]", st.AutoClickerLevel+1, c.game.Cost()),
			fg:     c.ui.accent,
			action: func() { c.dispatch(game.Action{Kind: game.ActionBuyAutoClicker}) },
		},
	)
	if c.game.CanPrestige() {
		lines = append(lines, line{
			text:   "[ Prestige ]",
			fg:     c.ui.gold,
			action: func() { c.state.Mode = ModeConfirmPrestige },
		})
	} else {
		lines = append(lines, line{
			text: fmt.Sprintf("Prestige at level %d", config.PrestigeRequiredLevel),
			fg:   c.ui.dim,
		})
	}
	return lines
}

func (c *Client) accountLines() []line {
	return []line{
		{text: "Signed in as"},
		{text: "  " + c.game.Username(), fg: c.ui.gold},
		{text: fmt.Sprintf("Players online: %d", c.server.Players())},
		{},
		{
			text: "[ Change username ]",
			fg:   c.ui.accent,
			action: func() {
				c.state.field.set(c.game.Username(), config.MaxUsernameLength)
				c.state.fieldError = ""
				c.state.Mode = ModeRename
			},
		},
	}
}

func (c *Client) settingLines() []line {
	capacity := c.game.Capacity()
	periodMS := int(c.game.SpawnPeriod().Milliseconds())
	minPeriod := int(config.MinSpawnPeriod.Milliseconds())
	maxPeriod := int(config.MaxSpawnPeriod.Milliseconds())

	setCapacity := func(v int) func() {
		return func() { c.dispatch(game.Setting{Name: game.SettingCapacity, Value: v}) }
	}
	setPeriod := func(v int) func() {
		return func() { c.dispatch(game.Setting{Name: game.SettingSpawnPeriod, Value: v}) }
	}
	return []line{
		{text: fmt.Sprintf("Max emojis: %d", capacity)},
		{text: "  [ - fewer ]", fg: c.ui.accent, action: setCapacity(max(config.MinMaxEntities, capacity-10))},
		{text: "  [ + more ]", fg: c.ui.accent, action: setCapacity(min(config.MaxMaxEntities, capacity+10))},
		{text: fmt.Sprintf("Spawn every: %dms", periodMS)},
		{text: "  [ - faster ]", fg: c.ui.accent, action: setPeriod(max(minPeriod, periodMS-100))},
		{text: "  [ + slower ]", fg: c.ui.accent, action: setPeriod(min(maxPeriod, periodMS+100))},
		{},
		{text: "[ PANIC ]", fg: c.ui.danger, action: func() { c.dispatch(game.Action{Kind: game.ActionPanic}) }},
	}
}

func (c *Client) logLines(width int) []line {
	notices := c.game.Notices()
	if len(notices) == 0 {
		return []line{{text: "No messages yet", fg: c.ui.dim}}
	}
	var lines []line
	for i := len(notices) - 1; i >= 0; i-- {
		fg := c.ui.noticeColor(notices[i].Kind)
		for j, l := range wrapText(notices[i].Text, width-2) {
			prefix := "  "
			if j == 0 {
				prefix = "• "
			}
			lines = append(lines, line{text: prefix + l, fg: fg})
		}
	}
	return lines
}

func (c *Client) omegaLines() []line {
	return []line{
		{text: "The board obeys you now.", fg: c.ui.dim},
		{},
		{text: "[ MEGA EXPLOSION ]", fg: c.ui.danger, action: func() { c.dispatch(game.Action{Kind: game.ActionMegaExplosion}) }},
		{text: "[ Spawn max ]", fg: c.ui.accent, action: func() { c.dispatch(game.Action{Kind: game.ActionSpawnMax}) }},
	}
}

func (c *Client) adminLines() []line {
	st := c.game.State()
	field := func(f game.AdminField) func() {
		return func() {
			c.state.adminField = f
			c.state.field.set("", 9)
			c.state.fieldError = ""
			c.state.Mode = ModeAdminInput
		}
	}
	return []line{
		{text: fmt.Sprintf("[ Score: %d ]", st.Score), action: field(game.AdminScore)},
		{text: fmt.Sprintf("[ Level: %d ]", st.Level), action: field(game.AdminLevel)},
		{text: fmt.Sprintf("[ Auto-clicker: %d ]", st.AutoClickerLevel), action: field(game.AdminAutoClicker)},
		{text: fmt.Sprintf("[ Prestige: %d ]", st.PrestigeLevel), action: field(game.AdminPrestige)},
	}
}

var adminFieldNames = map[game.AdminField]string{
	game.AdminScore:       "score",
	game.AdminLevel:       "level",
	game.AdminAutoClicker: "auto-clicker level",
	game.AdminPrestige:    "prestige level",
}

const infoText = "Click the emojis drifting across the field. " +
	"Each one is worth 10 points and levels come faster than you think. " +
	"Spend points on an auto-clicker in Upgrades. " +
	"There are 25 secrets hidden in the game; the Secrets panel has a clue for each. " +
	"Tab opens and closes this menu, q quits."

func textLines(s string, width int, fg colorful.Color) []line {
	var lines []line
	for _, l := range wrapText(s, width) {
		lines = append(lines, line{text: l, fg: fg})
	}
	return lines
}
