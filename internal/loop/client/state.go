package client

import (
	"time"

	"github.com/tomz197/omega/internal/game"
	"github.com/tomz197/omega/internal/input"
	"github.com/tomz197/omega/internal/store"
)

// Mode represents what the session is showing and where keystrokes go.
type Mode int

const (
	ModeUsername        Mode = iota // Choosing a name before the first game
	ModePlaying                     // Field and menu
	ModeRename                      // Text entry for a new username
	ModeAdminInput                  // Text entry for a developer setter
	ModeConfirmPrestige             // Yes/no question before prestige
	ModeShutdown                    // Server is shutting down
)

// ClientState holds per-session UI state. The game itself lives in game.Game.
type ClientState struct {
	Input         input.Input
	Mode          Mode
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	prevMode      Mode
	wasInactive   bool

	field      textField // Username, rename and admin entry
	fieldError string
	adminField game.AdminField

	menu       menuState
	toasts     []toast
	lastNotice int // Seq of the newest notice already queued
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Mode:    ModeUsername,
		Running: true,
	}
}

// menuState tracks the side menu. Outside a panel selected indexes the item
// list; inside a panel it indexes the panel lines.
type menuState struct {
	panelOpen bool
	panel     game.Panel
	selected  int
	scroll    int
	scores    []store.HighScore // Leaderboard captured when the panel opened
}

type toast struct {
	text  string
	kind  game.NoticeKind
	until time.Time // Zero until the toast reaches the front of the queue
}

// textField is a single-line rune buffer with a length limit.
type textField struct {
	value []rune
	limit int
}

func (f *textField) set(s string, limit int) {
	f.limit = limit
	f.value = f.value[:0]
	for _, r := range s {
		f.insert(r)
	}
}

func (f *textField) insert(r rune) {
	if f.limit > 0 && len(f.value) >= f.limit {
		return
	}
	f.value = append(f.value, r)
}

func (f *textField) backspace() {
	if len(f.value) > 0 {
		f.value = f.value[:len(f.value)-1]
	}
}

func (f *textField) String() string {
	return string(f.value)
}
