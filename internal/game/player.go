package game

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/omega/internal/loop/config"
	"github.com/tomz197/omega/internal/object"
	"github.com/tomz197/omega/internal/store"
)

func validUsername(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= config.MinUsernameLength && n <= config.MaxUsernameLength
}

// SetUsername sets the player name. The first call starts the game; later
// calls rename the player, including their leaderboard entries.
func (g *Game) SetUsername(name string) error {
	name = strings.TrimSpace(name)
	if !validUsername(name) {
		return ErrInvalidUsername
	}
	if err := g.store.SetUsername(name); err != nil {
		g.log.Error("save username", "err", err)
	}

	old := g.username
	g.username = name
	if old == "" {
		g.begin()
		return nil
	}
	if old != name {
		scores := store.Rename(g.store.LoadHighScores(), old, name)
		if err := g.store.SaveHighScores(scores); err != nil {
			g.log.Error("save high scores", "err", err)
		}
		g.log.Info("username changed", "from", old, "to", name)
		g.notify(NoticeInfo, "Hello, "+name+"!")
	}
	return nil
}

// Username returns the player name, empty until set.
func (g *Game) Username() string {
	return g.username
}

// AdminField names a value the developer panel can set.
type AdminField int

const (
	AdminScore AdminField = iota
	AdminLevel
	AdminAutoClicker
	AdminPrestige
)

// AdminSet parses input and assigns it to field. It is only available in
// developer mode.
func (g *Game) AdminSet(field AdminField, input string) error {
	if !g.devMode {
		return ErrDevModeDisabled
	}
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return ErrInvalidAdminValue
	}

	switch field {
	case AdminScore:
		if v < 0 {
			return ErrInvalidAdminValue
		}
		g.state.Score = v
	case AdminLevel:
		if v < 1 {
			return ErrInvalidAdminValue
		}
		g.state.Level = v
	case AdminAutoClicker:
		if v < 0 {
			return ErrInvalidAdminValue
		}
		g.state.AutoClickerLevel = v
		g.restartAutoClicker()
	case AdminPrestige:
		if v < 0 {
			return ErrInvalidAdminValue
		}
		g.state.PrestigeLevel = v
		g.restartAutoClicker()
	default:
		return ErrInvalidAdminValue
	}
	g.persist()
	g.log.Warn("admin set", "field", int(field), "value", v)
	return nil
}

// DevMode reports whether developer tools are enabled.
func (g *Game) DevMode() bool {
	return g.devMode
}

// State returns a copy of the progress record.
func (g *Game) State() store.GameState {
	return g.state.Clone()
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.state.Score
}

// Level returns the current level.
func (g *Game) Level() int {
	return g.state.Level
}

// NextLevelScore is the score of the next level-up in this session.
func (g *Game) NextLevelScore() int {
	return g.nextLevelScore
}

// SecretsFound counts the unlocked secrets.
func (g *Game) SecretsFound() int {
	n := 0
	for _, s := range secrets {
		if g.found(s.ID) {
			n++
		}
	}
	return n
}

func (g *Game) found(id SecretID) bool {
	i := int(id)
	return i >= 0 && i < len(g.state.FoundSecrets) && g.state.FoundSecrets[i]
}

// Found reports whether secret id is unlocked.
func (g *Game) Found(id SecretID) bool {
	return g.found(id)
}

// Entities returns the live entities, oldest first. The slice is owned by
// the game and valid until the next Update or Dispatch.
func (g *Game) Entities() []*object.Entity {
	return g.entities
}

// Particles returns the live particles. Same ownership as Entities.
func (g *Game) Particles() []*object.Particle {
	return g.particles
}

// MenuOpen reports whether the side menu freezes the field.
func (g *Game) MenuOpen() bool {
	return g.menuOpen
}

// Capacity returns the live entity limit.
func (g *Game) Capacity() int {
	return g.spawner.Capacity()
}

// SpawnPeriod returns the spawn period.
func (g *Game) SpawnPeriod() time.Duration {
	return g.spawner.Period()
}

// SpawnRunning reports whether the spawn schedule is active.
func (g *Game) SpawnRunning() bool {
	return g.spawner.Running()
}

// AutoClickerRunning reports whether the auto-clicker schedule is active.
func (g *Game) AutoClickerRunning() bool {
	return g.auto.Running()
}

// Screen returns the logical play field size.
func (g *Game) Screen() object.Screen {
	return g.screen
}
