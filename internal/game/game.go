// Package game is the clicker engine: it owns the progress record, the live
// entities and particles, the spawn and auto-clicker schedules and the
// secret table, and it reacts to player events.
package game

import (
	"io"
	"math/rand"
	"slices"
	"time"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/tomz197/omega/internal/loop/config"
	"github.com/tomz197/omega/internal/object"
	"github.com/tomz197/omega/internal/physics"
	"github.com/tomz197/omega/internal/store"
	"github.com/tomz197/omega/internal/timer"
)

// Options configures a new Game.
type Options struct {
	Store       *store.Store
	Logger      *log.Logger
	Rand        *rand.Rand
	Capacity    int
	SpawnPeriod time.Duration
	DevMode     bool
}

// Game is one player's session. It is not safe for concurrent use; the
// session loop drives it from a single goroutine.
type Game struct {
	store   *store.Store
	log     *log.Logger
	rng     *rand.Rand
	devMode bool
	screen  object.Screen

	state          store.GameState
	username       string
	nextLevelScore int

	entities  []*object.Entity
	particles []*object.Particle
	spawner   *object.Spawner
	auto      *timer.Repeating

	menuOpen       bool
	keys           []rune
	playTime       time.Duration
	idle           time.Duration
	manualDestroys int

	notices   []Notice
	noticeSeq int
}

// New loads the saved progress and username from opts.Store.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	st := opts.Store
	if st == nil {
		st = store.New(store.NewMemKV(), logger)
	}
	capacity := opts.Capacity
	if capacity == 0 {
		capacity = config.DefaultMaxEntities
	}
	period := opts.SpawnPeriod
	if period == 0 {
		period = config.DefaultSpawnPeriod
	}

	g := &Game{
		store:          st,
		log:            logger,
		rng:            rng,
		devMode:        opts.DevMode,
		screen:         object.Screen{Width: config.CanvasWidth, Height: config.CanvasHeight},
		state:          st.LoadState(),
		nextLevelScore: config.BaseLevelThreshold,
		spawner:        object.NewSpawner(capacity, period, Glyphs(), rng),
		auto:           timer.NewRepeating(0),
	}
	if name, ok := st.Username(); ok && validUsername(name) {
		g.username = name
		g.begin()
	}
	return g
}

// begin starts the schedules once a player is known.
func (g *Game) begin() {
	if !g.menuOpen {
		g.spawner.Start()
	}
	g.restartAutoClicker()
	g.log.Info("session started", "user", g.username, "score", g.state.Score, "level", g.state.Level)
}

// Playing reports whether a username is set and the game runs.
func (g *Game) Playing() bool {
	return g.username != ""
}

// Update advances timers by dt and, unless the menu is open, runs one
// simulation step.
func (g *Game) Update(dt time.Duration) {
	if !g.Playing() {
		return
	}

	prevPlay := g.playTime
	g.playTime += dt
	if prevPlay < config.SurvivorPlayTime && g.playTime >= config.SurvivorPlayTime {
		g.observe(occurrence{kind: occPlayTime, elapsed: g.playTime})
	}

	prevIdle := g.idle
	g.idle += dt
	if prevIdle < config.ProcrastinatorIdleTime && g.idle >= config.ProcrastinatorIdleTime {
		g.observe(occurrence{kind: occIdle, elapsed: g.idle})
	}

	ctx := object.UpdateContext{Delta: dt, Screen: g.screen}
	if e, ok := g.spawner.Tick(ctx, g.state.Level, len(g.entities)); ok {
		g.addEntity(e)
	}

	if g.auto.Advance(dt) {
		g.autoClick()
	}

	if g.menuOpen {
		return
	}
	g.step(ctx)
}

// step moves entities and ages particles by one frame.
func (g *Game) step(ctx object.UpdateContext) {
	for _, e := range g.entities {
		if _, err := e.Update(ctx); err != nil {
			g.log.Error("entity update", "err", err)
		}
	}

	alive := g.particles[:0]
	for _, p := range g.particles {
		remove, err := p.Update(ctx)
		if err != nil {
			g.log.Error("particle update", "err", err)
		}
		if remove {
			object.ReleaseObject(p)
			continue
		}
		alive = append(alive, p)
	}
	clear(g.particles[len(alive):])
	g.particles = alive
}

// Draw paints every live entity and particle. Entities are painted even
// while the simulation is frozen.
func (g *Game) Draw(ctx object.DrawContext) error {
	for _, e := range g.entities {
		if err := e.Draw(ctx); err != nil {
			return err
		}
	}
	for _, p := range g.particles {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) addEntity(e *object.Entity) {
	g.entities = append(g.entities, e)
	g.observe(occurrence{kind: occPopulation, live: len(g.entities), capacity: g.spawner.Capacity()})
}

// Dispatch applies one player event. Errors describe rejected input; the
// state is unchanged when an error is returned.
func (g *Game) Dispatch(ev Event) error {
	if !g.Playing() {
		return ErrNoUsername
	}
	g.idle = 0

	switch ev := ev.(type) {
	case PointerDown:
		g.click(ev.X, ev.Y)
	case Key:
		g.typeKey(ev.Rune)
	case MenuToggle:
		g.toggleMenu()
	case Setting:
		return g.applySetting(ev)
	case Action:
		return g.runAction(ev)
	case PanelOpen:
		return g.openPanel(ev.Panel)
	case TitleClick:
		g.observe(occurrence{kind: occTitleClick})
	}
	return nil
}

// click destroys the newest entity under the pointer.
func (g *Game) click(x, y float64) {
	if g.menuOpen {
		return
	}
	for i := len(g.entities) - 1; i >= 0; i-- {
		e := g.entities[i]
		if !e.Contains(x, y) {
			continue
		}
		cx, cy := e.Center()
		precise := physics.PointInCircle(x, y, cx, cy, e.Size*config.PrecisionRadius)
		g.manualDestroys++
		g.destroy(i)
		g.observe(occurrence{
			kind:      occClickDestroy,
			glyph:     e.Glyph,
			precise:   precise,
			remaining: len(g.entities),
			score:     g.state.Score,
		})
		return
	}
}

// autoClick consumes the oldest entity, if any.
func (g *Game) autoClick() {
	if len(g.entities) == 0 {
		return
	}
	g.destroy(0)
	g.observe(occurrence{kind: occAutoDestroy, score: g.state.Score, manual: g.manualDestroys})
}

// destroy removes entity i, bursts particles at its centre, pays the reward
// and runs the level-up check.
func (g *Game) destroy(i int) {
	e := g.entities[i]
	cx, cy := e.Center()
	g.particles = append(g.particles, object.SpawnBurst(cx, cy, e.Color, g.rng)...)
	g.entities = slices.Delete(g.entities, i, i+1)

	g.state.Score += config.DestroyReward
	g.persist()
	g.checkLevelUp()
}

// checkLevelUp raises the level by at most one.
func (g *Game) checkLevelUp() {
	if g.state.Score < g.nextLevelScore {
		return
	}
	g.state.Level++
	g.nextLevelScore += config.LevelStep * g.state.Level
	g.persist()
	g.log.Debug("level up", "level", g.state.Level, "next", g.nextLevelScore)
	g.observe(occurrence{kind: occLevelUp, level: g.state.Level})
}

func (g *Game) typeKey(r rune) {
	g.keys = append(g.keys, unicode.ToLower(r))
	for _, phrase := range []string{PhraseOmega, PhraseHacker} {
		if hasSuffix(g.keys, phrase) {
			g.keys = g.keys[:0]
			g.observe(occurrence{kind: occPhrase, phrase: phrase})
			if phrase == PhraseOmega {
				g.notify(NoticeInfo, "The Omega panel is open to you.")
			}
			return
		}
	}
	if len(g.keys) > config.KeyBufferLimit {
		g.keys = g.keys[:0]
	}
}

func (g *Game) toggleMenu() {
	g.menuOpen = !g.menuOpen
	if g.menuOpen {
		g.spawner.Stop()
	} else {
		g.spawner.Start()
	}
	g.observe(occurrence{
		kind:     occMenuToggle,
		open:     g.menuOpen,
		live:     len(g.entities),
		capacity: g.spawner.Capacity(),
	})
}

func (g *Game) applySetting(s Setting) error {
	switch s.Name {
	case SettingCapacity:
		if s.Value < config.MinMaxEntities || s.Value > config.MaxMaxEntities {
			return ErrSettingOutOfRange
		}
		g.spawner.SetCapacity(s.Value)
		g.observe(occurrence{kind: occCapacityChanged, value: s.Value})
	case SettingSpawnPeriod:
		period := time.Duration(s.Value) * time.Millisecond
		if period < config.MinSpawnPeriod || period > config.MaxSpawnPeriod {
			return ErrSettingOutOfRange
		}
		g.spawner.SetPeriod(period)
		g.observe(occurrence{kind: occSpawnPeriodChanged, value: s.Value})
	default:
		return ErrSettingOutOfRange
	}
	return nil
}

func (g *Game) runAction(a Action) error {
	switch a.Kind {
	case ActionPanic:
		g.Panic()
	case ActionBuyAutoClicker:
		return g.BuyAutoClicker()
	case ActionPrestige:
		return g.Prestige(a.Confirm)
	case ActionMegaExplosion:
		return g.MegaExplosion()
	case ActionSpawnMax:
		return g.SpawnMax()
	}
	return nil
}

func (g *Game) openPanel(p Panel) error {
	switch p {
	case PanelOmega:
		if !g.OmegaUnlocked() {
			return ErrOmegaLocked
		}
	case PanelAdmin:
		if !g.devMode {
			return ErrDevModeDisabled
		}
	case PanelLeaderboard:
		g.SubmitScore()
	}
	g.observe(occurrence{kind: occPanelOpen, panel: p})
	return nil
}

// persist saves the progress record. Failures are logged; play goes on.
func (g *Game) persist() {
	if err := g.store.SaveState(g.state); err != nil {
		g.log.Error("save game state", "err", err)
	}
}

func hasSuffix(keys []rune, phrase string) bool {
	p := []rune(phrase)
	if len(keys) < len(p) {
		return false
	}
	return slices.Equal(keys[len(keys)-len(p):], p)
}
