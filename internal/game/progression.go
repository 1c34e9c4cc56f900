package game

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/omega/internal/loop/config"
	"github.com/tomz197/omega/internal/object"
	"github.com/tomz197/omega/internal/store"
)

// AutoClickerCost is floor(50 * 1.5^level * 0.8^prestige).
func AutoClickerCost(level, prestige int) int {
	return int(math.Floor(config.AutoClickerBaseCost *
		math.Pow(config.AutoClickerCostGrowth, float64(level)) *
		math.Pow(config.PrestigeDiscount, float64(prestige))))
}

// AutoClickerPeriod is max(500ms, 10s - level*(0.3s + prestige*0.1s)).
func AutoClickerPeriod(level, prestige int) time.Duration {
	step := config.AutoClickerStep + float64(prestige)*config.PrestigeStepBonus
	seconds := config.AutoClickerBasePeriod - float64(level)*step
	period := time.Duration(math.Round(seconds*1000)) * time.Millisecond
	if period < config.AutoClickerMinPeriod {
		period = config.AutoClickerMinPeriod
	}
	return period
}

// Cost is the price of the next auto-clicker level.
func (g *Game) Cost() int {
	return AutoClickerCost(g.state.AutoClickerLevel, g.state.PrestigeLevel)
}

// Speed is the current auto-clicker period.
func (g *Game) Speed() time.Duration {
	return AutoClickerPeriod(g.state.AutoClickerLevel, g.state.PrestigeLevel)
}

// CanPrestige reports whether the auto-clicker is high enough to prestige.
func (g *Game) CanPrestige() bool {
	return g.state.AutoClickerLevel >= config.PrestigeRequiredLevel
}

// restartAutoClicker replaces the auto-clicker schedule. At level 0 the
// schedule is stopped.
func (g *Game) restartAutoClicker() {
	if g.state.AutoClickerLevel <= 0 {
		g.auto.Stop()
		return
	}
	g.auto.Reset(g.Speed())
}

// BuyAutoClicker spends score on the next auto-clicker level.
func (g *Game) BuyAutoClicker() error {
	cost := g.Cost()
	if g.state.Score < cost {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientScore, cost, g.state.Score)
	}
	g.state.Score -= cost
	g.state.AutoClickerLevel++
	g.persist()
	g.restartAutoClicker()
	g.log.Info("auto-clicker bought", "level", g.state.AutoClickerLevel, "cost", cost)
	g.notify(NoticeInfo, fmt.Sprintf("Auto-clicker level %d (every %.1fs)", g.state.AutoClickerLevel, g.Speed().Seconds()))
	g.observe(occurrence{kind: occPurchase})
	return nil
}

// Prestige resets the auto-clicker for a permanent discount and speed bonus.
// The player has to confirm.
func (g *Game) Prestige(confirmed bool) error {
	if !g.CanPrestige() {
		return ErrPrestigeLocked
	}
	if !confirmed {
		return ErrPrestigeNotConfirmed
	}
	g.state.AutoClickerLevel = 0
	g.state.PrestigeLevel++
	g.persist()
	g.restartAutoClicker()
	g.log.Info("prestige", "level", g.state.PrestigeLevel)
	g.notify(NoticeMilestone, fmt.Sprintf("Prestige Level %d achieved!", g.state.PrestigeLevel))
	g.observe(occurrence{kind: occPrestige})
	return nil
}

// Panic clears the field without particles.
func (g *Game) Panic() {
	score := g.state.Score
	clear(g.entities)
	g.entities = g.entities[:0]
	g.observe(occurrence{kind: occPanic, score: score})
}

// MegaExplosion bursts every entity at its top-left corner and clears the
// field. It needs the Omega panel.
func (g *Game) MegaExplosion() error {
	if !g.OmegaUnlocked() {
		return ErrOmegaLocked
	}
	for _, e := range g.entities {
		g.particles = append(g.particles, object.SpawnBurst(e.X, e.Y, e.Color, g.rng)...)
	}
	clear(g.entities)
	g.entities = g.entities[:0]
	g.observe(occurrence{kind: occMegaExplosion})
	return nil
}

// SpawnMax attempts capacity spawns at once; the capacity still applies.
func (g *Game) SpawnMax() error {
	if !g.OmegaUnlocked() {
		return ErrOmegaLocked
	}
	for i := 0; i < g.spawner.Capacity(); i++ {
		if e, ok := g.spawner.Spawn(g.screen, g.state.Level, len(g.entities)); ok {
			g.addEntity(e)
		}
	}
	return nil
}

// OmegaUnlocked reports whether the Omega panel is available.
func (g *Game) OmegaUnlocked() bool {
	return g.found(SecretOmega)
}

// SubmitScore records the current score on the leaderboard and returns it.
func (g *Game) SubmitScore() []store.HighScore {
	scores := store.Submit(g.store.LoadHighScores(), g.username, g.state.Score)
	if err := g.store.SaveHighScores(scores); err != nil {
		g.log.Error("save high scores", "err", err)
	}
	return scores
}

// Leaderboard returns the stored top scores.
func (g *Game) Leaderboard() []store.HighScore {
	return g.store.LoadHighScores()
}
