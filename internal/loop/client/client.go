package client

import (
	"bufio"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/omega/internal/draw"
	"github.com/tomz197/omega/internal/game"
	"github.com/tomz197/omega/internal/input"
	"github.com/tomz197/omega/internal/loop/config"
	"github.com/tomz197/omega/internal/loop/server"
	"github.com/tomz197/omega/internal/store"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	game         *game.Game
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	log          *log.Logger
	ui           *theme
	regions      []region // Clickable areas from the last drawn frame
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string // Pre-fills the username prompt
	Store        *store.Store
	Logger       *log.Logger
	Rand         *rand.Rand
	Capacity     int
	SpawnPeriod  time.Duration
	DevMode      bool
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := game.New(game.Options{
		Store:       opts.Store,
		Logger:      logger,
		Rand:        opts.Rand,
		Capacity:    opts.Capacity,
		SpawnPeriod: opts.SpawnPeriod,
		DevMode:     opts.DevMode,
	})

	state := NewClientState()
	if g.Playing() {
		state.Mode = ModePlaying
	} else {
		state.field.set(opts.Username, config.MaxUsernameLength)
	}
	state.prevMode = state.Mode
	// Notices raised while loading are not shown as toasts.
	if ns := g.Notices(); len(ns) > 0 {
		state.lastNotice = ns[len(ns)-1].Seq
	}

	handle := gs.RegisterClient(g.Username())

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.CanvasWidth, config.CanvasHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w)

	return &Client{
		server:       gs,
		handle:       handle,
		game:         g,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		log:          logger,
		ui:           newTheme(),
	}
}

// Game returns the session's engine.
func (c *Client) Game() *game.Game {
	return c.game
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.EnterGame(c.writer)
	defer draw.LeaveGame(c.writer)

	c.log.Info("session started", "client", c.handle.ID, "user", c.game.Username())
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()
		c.update()

		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)
	c.log.Info("session ended", "client", c.handle.ID, "user", c.game.Username(), "score", c.game.Score())
	return nil
}

// update advances everything that moves with time.
func (c *Client) update() {
	if c.state.Mode == ModeShutdown {
		c.updateShutdownState()
	}
	if c.game.Playing() {
		c.game.Update(c.state.delta)
	}
	c.collectNotices()
}

// processInput reads pending input and applies it.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)

	if len(in.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.log.Info("disconnecting inactive session", "client", c.handle.ID)
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	c.handleInput(in)
}

// handleInput applies one frame of input to the current mode.
func (c *Client) handleInput(in input.Input) {
	c.state.Input = in
	if in.Quit {
		c.state.Running = false
		return
	}

	for _, s := range in.Strokes {
		switch c.state.Mode {
		case ModeUsername, ModeRename, ModeAdminInput:
			c.handleFieldStroke(s)
		case ModeConfirmPrestige:
			c.handleConfirmStroke(s)
		case ModePlaying:
			c.handlePlayingStroke(s)
		case ModeShutdown:
			if s.Kind == input.StrokeRune && (s.Rune == 'q' || s.Rune == 'Q') {
				c.state.Running = false
			}
		}
		if !c.state.Running {
			return
		}
	}

	for _, click := range in.Clicks {
		if click.Button != input.MouseLeft {
			continue
		}
		c.handleClick(click)
	}
}

func (c *Client) handleFieldStroke(s input.Stroke) {
	switch s.Kind {
	case input.StrokeRune:
		c.state.field.insert(s.Rune)
		c.state.fieldError = ""
	case input.StrokeBackspace:
		c.state.field.backspace()
		c.state.fieldError = ""
	case input.StrokeEnter:
		c.submitField()
	case input.StrokeEscape:
		if c.state.Mode == ModeUsername {
			c.state.Running = false
			return
		}
		c.state.Mode = ModePlaying
	}
}

// submitField applies the text entry for the current mode.
func (c *Client) submitField() {
	value := c.state.field.String()
	var err error
	switch c.state.Mode {
	case ModeUsername, ModeRename:
		err = c.game.SetUsername(value)
		if err == nil {
			c.server.Rename(c.handle.ID, c.game.Username())
		}
	case ModeAdminInput:
		err = c.game.AdminSet(c.state.adminField, value)
	}
	if err != nil {
		c.state.fieldError = fieldErrorText(err)
		return
	}
	c.state.fieldError = ""
	c.state.Mode = ModePlaying
}

func fieldErrorText(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidUsername):
		return "Username must be 3-15 characters"
	case errors.Is(err, game.ErrInvalidAdminValue):
		return "Enter a whole number in range"
	default:
		return err.Error()
	}
}

func (c *Client) handleConfirmStroke(s input.Stroke) {
	switch {
	case s.Kind == input.StrokeEnter, s.Kind == input.StrokeRune && (s.Rune == 'y' || s.Rune == 'Y'):
		c.dispatch(game.Action{Kind: game.ActionPrestige, Confirm: true})
		c.state.Mode = ModePlaying
	case s.Kind == input.StrokeEscape, s.Kind == input.StrokeRune && (s.Rune == 'n' || s.Rune == 'N'):
		c.state.Mode = ModePlaying
	}
}

func (c *Client) handlePlayingStroke(s input.Stroke) {
	menu := &c.state.menu
	switch s.Kind {
	case input.StrokeTab:
		c.toggleMenu()
	case input.StrokeEscape:
		switch {
		case menu.panelOpen:
			c.closePanel()
		case c.game.MenuOpen():
			c.toggleMenu()
		}
	case input.StrokeUp:
		c.moveSelection(-1)
	case input.StrokeDown:
		c.moveSelection(1)
	case input.StrokeEnter:
		if c.game.MenuOpen() {
			c.activateSelection()
		}
	case input.StrokeRune:
		if !c.game.MenuOpen() && (s.Rune == 'q' || s.Rune == 'Q') {
			c.state.Running = false
			return
		}
		c.dispatch(game.Key{Rune: s.Rune})
	}
}

// handleClick routes a click to a UI region or to the field.
func (c *Client) handleClick(click input.Click) {
	col := click.Col - 1 - c.canvas.OffsetCol()
	row := click.Row - 1 - c.canvas.OffsetRow()
	if r, ok := c.regionAt(col, row); ok {
		r.action()
		return
	}
	if c.state.Mode != ModePlaying {
		return
	}
	if c.game.MenuOpen() && col >= c.sidebarCol() {
		return
	}
	x, y := c.canvas.TerminalToLogical(click.Col, click.Row)
	c.dispatch(game.PointerDown{X: x, Y: y})
}

// dispatch sends ev to the game and shows any rejection as a toast.
func (c *Client) dispatch(ev game.Event) {
	if err := c.game.Dispatch(ev); err != nil {
		c.game.Report(err)
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventAnnouncement:
				c.pushToast(event.From+": "+event.Text, game.NoticeMilestone)
			case server.EventServerShutdown:
				c.state.Mode = ModeShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// collectNotices turns new game notices into toasts and relays milestones.
func (c *Client) collectNotices() {
	for _, n := range c.game.NoticesSince(c.state.lastNotice) {
		c.state.lastNotice = n.Seq
		c.pushToast(n.Text, n.Kind)
		if n.Kind == game.NoticeMilestone {
			c.server.Announce(c.handle.ID, n.Text)
		}
	}
}

func (c *Client) pushToast(text string, kind game.NoticeKind) {
	c.state.toasts = append(c.state.toasts, toast{text: text, kind: kind})
	if over := len(c.state.toasts) - config.ToastQueueLimit; over > 0 {
		c.state.toasts = append(c.state.toasts[:0], c.state.toasts[over:]...)
	}
}

// currentToast returns the toast to show this frame, expiring old ones.
func (c *Client) currentToast(now time.Time) (toast, bool) {
	for len(c.state.toasts) > 0 {
		front := &c.state.toasts[0]
		if front.until.IsZero() {
			front.until = now.Add(config.NoticeTTL)
		}
		if now.Before(front.until) {
			return *front, true
		}
		c.state.toasts = c.state.toasts[1:]
	}
	return toast{}, false
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
