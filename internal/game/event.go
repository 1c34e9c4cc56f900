package game

// Event is a discrete player action fed into Game.Dispatch.
type Event interface {
	event()
}

// PointerDown is a click at logical canvas coordinates.
type PointerDown struct {
	X, Y float64
}

// Key is a typed character.
type Key struct {
	Rune rune
}

// MenuToggle opens or closes the side menu.
type MenuToggle struct{}

// SettingName selects which setting a Setting event changes.
type SettingName int

const (
	SettingCapacity    SettingName = iota // Value is the live entity limit
	SettingSpawnPeriod                    // Value is the period in milliseconds
)

// Setting changes a named setting.
type Setting struct {
	Name  SettingName
	Value int
}

// ActionKind names a button action.
type ActionKind int

const (
	ActionPanic ActionKind = iota
	ActionBuyAutoClicker
	ActionPrestige
	ActionMegaExplosion
	ActionSpawnMax
)

// Action is a button press. Confirm carries the player's answer for actions
// that need one (prestige).
type Action struct {
	Kind    ActionKind
	Confirm bool
}

// Panel names a menu panel.
type Panel int

const (
	PanelLeaderboard Panel = iota
	PanelRarity
	PanelSecrets
	PanelUpgrades
	PanelAccount
	PanelInfo
	PanelSettings
	PanelLog
	PanelOmega
	PanelAdmin
)

var panelNames = [...]string{
	"Leaderboard", "Rarity", "Secrets", "Upgrades", "Account",
	"Info", "Settings", "Log", "Omega", "Admin",
}

func (p Panel) String() string {
	if p < 0 || int(p) >= len(panelNames) {
		return "Unknown"
	}
	return panelNames[p]
}

// PanelOpen reports that the player opened a panel.
type PanelOpen struct {
	Panel Panel
}

// TitleClick is a click on the menu title.
type TitleClick struct{}

func (PointerDown) event() {}
func (Key) event()         {}
func (MenuToggle) event()  {}
func (Setting) event()     {}
func (Action) event()      {}
func (PanelOpen) event()   {}
func (TitleClick) event()  {}
