package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/omega/internal/loop/config"
	"github.com/tomz197/omega/internal/object"
	"github.com/tomz197/omega/internal/store"
)

func newGame(t *testing.T, mutate ...func(*Options)) (*Game, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemKV(), nil)
	opts := Options{Store: st, Rand: rand.New(rand.NewSource(42))}
	for _, m := range mutate {
		m(&opts)
	}
	g := New(opts)
	require.NoError(t, g.SetUsername("tester"))
	return g, st
}

// put adds a motionless entity and returns it.
func put(g *Game, glyph string, x, y, size float64) *object.Entity {
	e := &object.Entity{Glyph: glyph, X: x, Y: y, Size: size, Color: colorful.Color{R: 1}}
	g.entities = append(g.entities, e)
	return e
}

// clickOff destroys e with a click away from its centre.
func clickOff(t *testing.T, g *Game, e *object.Entity) {
	t.Helper()
	require.NoError(t, g.Dispatch(PointerDown{X: e.X + 1, Y: e.Y + 1}))
}

func TestTenDestroysLevelUpOnceAndUnlockBeginner(t *testing.T) {
	g, _ := newGame(t)
	for i := 0; i < 10; i++ {
		put(g, "🤖", 100, 100, 30)
		put(g, "🤖", 300, 300, 30) // keeps Unlucky out of the way
		clickOff(t, g, g.entities[0])
	}
	assert.Equal(t, 100, g.Score())
	assert.Equal(t, 2, g.Level())
	assert.Equal(t, 300, g.NextLevelScore())
	assert.True(t, g.Found(SecretBeginner))
	assert.True(t, g.Found(SecretShattered))
}

func TestLevelThresholdRecurrence(t *testing.T) {
	g, _ := newGame(t)
	threshold := g.NextLevelScore()
	require.Equal(t, 100, threshold)

	for level := 1; level < 6; level++ {
		g.state.Score = threshold - config.DestroyReward
		put(g, "🤖", 100, 100, 30)
		g.autoClick()
		require.Equal(t, level+1, g.Level())
		assert.Equal(t, threshold+100*(level+1), g.NextLevelScore())
		threshold = g.NextLevelScore()
	}
}

func TestAtMostOneLevelPerDestroy(t *testing.T) {
	g, _ := newGame(t)
	g.state.Score = 5000
	put(g, "🤖", 100, 100, 30)
	g.autoClick()
	assert.Equal(t, 2, g.Level())
}

func TestThresholdResetsEachSession(t *testing.T) {
	st := store.New(store.NewMemKV(), nil)
	saved := store.DefaultState()
	saved.Score = 250
	saved.Level = 2
	require.NoError(t, st.SaveState(saved))
	require.NoError(t, st.SetUsername("returning"))

	g := New(Options{Store: st, Rand: rand.New(rand.NewSource(1))})
	require.True(t, g.Playing())
	assert.Equal(t, 100, g.NextLevelScore())

	put(g, "🤖", 100, 100, 30)
	g.autoClick()
	assert.Equal(t, 3, g.Level())
	assert.Equal(t, 400, g.NextLevelScore())
}

func TestBuyAutoClickerFromFifty(t *testing.T) {
	g, st := newGame(t)
	g.state.Score = 50
	require.NoError(t, g.Dispatch(Action{Kind: ActionBuyAutoClicker}))

	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 1, g.State().AutoClickerLevel)
	assert.True(t, g.Found(SecretCollector))
	assert.True(t, g.AutoClickerRunning())
	assert.Equal(t, 9700*time.Millisecond, g.Speed())

	saved := st.LoadState()
	assert.Equal(t, 1, saved.AutoClickerLevel)
	assert.Equal(t, 0, saved.Score)
}

func TestBuyAutoClickerInsufficient(t *testing.T) {
	g, _ := newGame(t)
	g.state.Score = 49
	err := g.Dispatch(Action{Kind: ActionBuyAutoClicker})
	assert.ErrorIs(t, err, ErrInsufficientScore)
	assert.Equal(t, 49, g.Score())
	assert.Equal(t, 0, g.State().AutoClickerLevel)
	assert.False(t, g.AutoClickerRunning())
	assert.False(t, g.Found(SecretCollector))
}

func TestAutoClickerCost(t *testing.T) {
	assert.Equal(t, 50, AutoClickerCost(0, 0))
	assert.Equal(t, 75, AutoClickerCost(1, 0))
	assert.Equal(t, 168, AutoClickerCost(3, 0))
	assert.Equal(t, 40, AutoClickerCost(0, 1))
	assert.Equal(t, 60, AutoClickerCost(1, 1))
}

func TestAutoClickerPeriod(t *testing.T) {
	assert.Equal(t, 10*time.Second, AutoClickerPeriod(0, 0))
	assert.Equal(t, 9700*time.Millisecond, AutoClickerPeriod(1, 0))
	assert.Equal(t, 9600*time.Millisecond, AutoClickerPeriod(1, 1))
	assert.Equal(t, 4*time.Second, AutoClickerPeriod(20, 0))
	assert.Equal(t, 500*time.Millisecond, AutoClickerPeriod(40, 0))
	assert.Equal(t, 500*time.Millisecond, AutoClickerPeriod(20, 5))
}

func TestAutoClickerConsumesOldest(t *testing.T) {
	g, _ := newGame(t)
	g.spawner.Stop()
	oldest := put(g, "🤖", 100, 100, 30)
	newest := put(g, "👾", 200, 200, 30)

	g.state.AutoClickerLevel = 1
	g.restartAutoClicker()
	g.Update(g.Speed() - time.Millisecond)
	require.Len(t, g.Entities(), 2)

	g.Update(time.Millisecond)
	require.Len(t, g.Entities(), 1)
	assert.Same(t, newest, g.Entities()[0])
	assert.NotSame(t, oldest, g.Entities()[0])
	assert.Equal(t, 10, g.Score())
	assert.Len(t, g.Particles(), config.ParticleBurst)
}

func TestAutoClickerIdleWithoutEntities(t *testing.T) {
	g, _ := newGame(t)
	g.spawner.Stop()
	g.state.AutoClickerLevel = 1
	g.restartAutoClicker()
	g.Update(g.Speed())
	assert.Equal(t, 0, g.Score())
}

func TestAutoClickerStoppedAtLevelZero(t *testing.T) {
	g, _ := newGame(t)
	assert.False(t, g.AutoClickerRunning())
	put(g, "🤖", 100, 100, 30)
	g.spawner.Stop()
	g.Update(time.Minute)
	assert.Equal(t, 0, g.Score())
}

func TestAutoClickerKeepsRunningWhileMenuOpen(t *testing.T) {
	g, _ := newGame(t)
	put(g, "🤖", 100, 100, 30)
	g.state.AutoClickerLevel = 1
	g.restartAutoClicker()

	require.NoError(t, g.Dispatch(MenuToggle{}))
	g.Update(g.Speed())
	assert.Empty(t, g.Entities())
	assert.Equal(t, 10, g.Score())
}

func TestAutoClickerResumesFromSavedLevel(t *testing.T) {
	st := store.New(store.NewMemKV(), nil)
	saved := store.DefaultState()
	saved.AutoClickerLevel = 3
	require.NoError(t, st.SaveState(saved))
	require.NoError(t, st.SetUsername("idle"))

	g := New(Options{Store: st})
	assert.True(t, g.AutoClickerRunning())
	assert.Equal(t, AutoClickerPeriod(3, 0), g.Speed())
}

func TestGlassCannon(t *testing.T) {
	g, _ := newGame(t)
	g.state.Score = 990
	put(g, "🤖", 100, 100, 30)
	g.autoClick()
	assert.True(t, g.Found(SecretGlassCannon))
}

func TestGlassCannonNeedsHandsOff(t *testing.T) {
	g, _ := newGame(t)
	put(g, "🤖", 100, 100, 30)
	put(g, "🤖", 300, 300, 30)
	clickOff(t, g, g.entities[0])
	g.state.Score = 990
	g.autoClick()
	assert.False(t, g.Found(SecretGlassCannon))
}

func TestPrestige(t *testing.T) {
	g, st := newGame(t)

	assert.ErrorIs(t, g.Dispatch(Action{Kind: ActionPrestige, Confirm: true}), ErrPrestigeLocked)

	g.state.AutoClickerLevel = 20
	g.restartAutoClicker()
	assert.ErrorIs(t, g.Dispatch(Action{Kind: ActionPrestige}), ErrPrestigeNotConfirmed)
	assert.Equal(t, 20, g.State().AutoClickerLevel)

	require.NoError(t, g.Dispatch(Action{Kind: ActionPrestige, Confirm: true}))
	assert.Equal(t, 0, g.State().AutoClickerLevel)
	assert.Equal(t, 1, g.State().PrestigeLevel)
	assert.False(t, g.AutoClickerRunning())
	assert.True(t, g.Found(SecretPrestigeMaster))
	assert.Equal(t, 40, g.Cost())
	assert.Equal(t, 1, st.LoadState().PrestigeLevel)

	var texts []string
	for _, n := range g.Notices() {
		texts = append(texts, n.Text)
	}
	assert.Contains(t, texts, "Prestige Level 1 achieved!")
}

func TestTriggerSecretIsIdempotent(t *testing.T) {
	g, _ := newGame(t)
	g.triggerSecret(SecretObserver)
	notices := len(g.Notices())
	g.triggerSecret(SecretObserver)
	require.NoError(t, g.Dispatch(TitleClick{}))

	assert.Equal(t, 1, g.SecretsFound())
	assert.Len(t, g.Notices(), notices)
}

func TestAllSecretsFoundNotice(t *testing.T) {
	g, _ := newGame(t)
	for id := 0; id < SecretTotal()-1; id++ {
		g.triggerSecret(SecretID(id))
	}
	for _, n := range g.Notices() {
		require.NotEqual(t, "ALL SECRETS FOUND!", n.Text)
	}
	g.triggerSecret(SecretID(SecretTotal() - 1))
	assert.Equal(t, 25, g.SecretsFound())
	last := g.Notices()[len(g.Notices())-1]
	assert.Equal(t, "ALL SECRETS FOUND!", last.Text)
}

func TestSecretTableIsComplete(t *testing.T) {
	all := Secrets()
	require.Len(t, all, store.SecretCount)
	for i, s := range all {
		assert.Equal(t, SecretID(i), s.ID)
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Clue)
		assert.NotNil(t, s.trigger)
	}
}

func TestPanic(t *testing.T) {
	g, _ := newGame(t)
	put(g, "🤖", 100, 100, 30)
	g.state.Score = 500
	require.NoError(t, g.Dispatch(Action{Kind: ActionPanic}))
	assert.Empty(t, g.Entities())
	assert.Empty(t, g.Particles())
	assert.False(t, g.Found(SecretPanic))

	g.state.Score = 501
	require.NoError(t, g.Dispatch(Action{Kind: ActionPanic}))
	assert.True(t, g.Found(SecretPanic))
}

func TestClickHitsNewestFirstAndOnlyOne(t *testing.T) {
	g, _ := newGame(t)
	older := put(g, "🤖", 100, 100, 40)
	put(g, "👾", 110, 110, 40)

	require.NoError(t, g.Dispatch(PointerDown{X: 120, Y: 120}))
	require.Len(t, g.Entities(), 1)
	assert.Same(t, older, g.Entities()[0])
	assert.Equal(t, 10, g.Score())
}

func TestClickOnEdgeMisses(t *testing.T) {
	g, _ := newGame(t)
	put(g, "🤖", 100, 100, 40)
	require.NoError(t, g.Dispatch(PointerDown{X: 100, Y: 120}))
	require.NoError(t, g.Dispatch(PointerDown{X: 140, Y: 120}))
	assert.Len(t, g.Entities(), 1)
	assert.Equal(t, 0, g.Score())
}

func TestClickIgnoredWhileMenuOpen(t *testing.T) {
	g, _ := newGame(t)
	put(g, "🤖", 100, 100, 40)
	require.NoError(t, g.Dispatch(MenuToggle{}))
	require.NoError(t, g.Dispatch(PointerDown{X: 120, Y: 120}))
	assert.Len(t, g.Entities(), 1)
}

func TestGlyphSecrets(t *testing.T) {
	g, _ := newGame(t)
	put(g, "🤖", 500, 400, 30)
	clickOff(t, g, put(g, "👻", 100, 100, 30))
	assert.True(t, g.Found(SecretGhostHunter))
	assert.False(t, g.Found(SecretBling))

	clickOff(t, g, put(g, "💎", 100, 100, 30))
	assert.True(t, g.Found(SecretBling))
	assert.False(t, g.Found(SecretPrecision))
	assert.False(t, g.Found(SecretUnlucky))
}

func TestPrecision(t *testing.T) {
	g, _ := newGame(t)
	put(g, "🤖", 500, 400, 30)
	put(g, "🤖", 100, 100, 40)
	require.NoError(t, g.Dispatch(PointerDown{X: 125, Y: 120}))
	assert.True(t, g.Found(SecretPrecision), "5 units off a 40 unit entity is inside 15%")
}

func TestUnlucky(t *testing.T) {
	g, _ := newGame(t)
	clickOff(t, g, put(g, "🤖", 100, 100, 30))
	assert.True(t, g.Found(SecretUnlucky))
}

func TestMenuTogglePausesSpawner(t *testing.T) {
	g, _ := newGame(t)
	require.True(t, g.SpawnRunning())

	require.NoError(t, g.Dispatch(MenuToggle{}))
	assert.True(t, g.MenuOpen())
	assert.False(t, g.SpawnRunning())
	assert.True(t, g.Found(SecretNavigator))
	for i := 0; i < 10; i++ {
		g.Update(time.Second)
	}
	assert.Empty(t, g.Entities(), "nothing spawns or queues while paused")

	require.NoError(t, g.Dispatch(MenuToggle{}))
	assert.True(t, g.SpawnRunning())
	g.Update(999 * time.Millisecond)
	assert.Empty(t, g.Entities())
	g.Update(time.Millisecond)
	assert.Len(t, g.Entities(), 1)
}

func TestMenuFreezesSimulation(t *testing.T) {
	g, _ := newGame(t)
	g.spawner.Stop()
	e := put(g, "🤖", 100, 100, 30)
	e.VX, e.VY = 2, 1
	g.particles = object.SpawnBurst(50, 50, e.Color, g.rng)

	require.NoError(t, g.Dispatch(MenuToggle{}))
	g.Update(time.Second / 60)
	assert.Equal(t, 100.0, e.X)
	assert.Equal(t, config.ParticleLife, g.Particles()[0].Life)

	require.NoError(t, g.Dispatch(MenuToggle{}))
	g.Update(time.Second / 60)
	assert.Equal(t, 102.0, e.X)
	assert.Equal(t, 101.0, e.Y)
	assert.Equal(t, config.ParticleLife-1, g.Particles()[0].Life)
}

func TestParticlesExpire(t *testing.T) {
	g, _ := newGame(t)
	g.spawner.Stop()
	g.particles = object.SpawnBurst(50, 50, colorful.Color{G: 1}, g.rng)
	for i := 0; i < config.ParticleLife; i++ {
		g.Update(time.Second / 60)
	}
	assert.Empty(t, g.Particles())
}

func TestSpawnedEntitiesBounce(t *testing.T) {
	g, _ := newGame(t)
	e := put(g, "🤖", 779, 10, 20)
	e.VX = 2
	g.spawner.Stop()
	g.Update(time.Second / 60)
	assert.Equal(t, -2.0, e.VX)
}

func TestTimeBender(t *testing.T) {
	g, _ := newGame(t, func(o *Options) { o.Capacity = 10 })
	for i := 0; i < 10; i++ {
		put(g, "🤖", float64(i*40), 100, 30)
	}
	require.NoError(t, g.Dispatch(MenuToggle{}))
	assert.True(t, g.Found(SecretTimeBender))
}

func TestSettings(t *testing.T) {
	g, _ := newGame(t)

	assert.ErrorIs(t, g.Dispatch(Setting{Name: SettingCapacity, Value: 9}), ErrSettingOutOfRange)
	assert.ErrorIs(t, g.Dispatch(Setting{Name: SettingCapacity, Value: 151}), ErrSettingOutOfRange)
	assert.Equal(t, 40, g.Capacity())

	require.NoError(t, g.Dispatch(Setting{Name: SettingCapacity, Value: 100}))
	assert.Equal(t, 100, g.Capacity())
	assert.False(t, g.Found(SecretArchitect))
	require.NoError(t, g.Dispatch(Setting{Name: SettingCapacity, Value: 150}))
	assert.True(t, g.Found(SecretArchitect))

	assert.ErrorIs(t, g.Dispatch(Setting{Name: SettingSpawnPeriod, Value: 99}), ErrSettingOutOfRange)
	assert.False(t, g.Found(SecretTechnophile))
	require.NoError(t, g.Dispatch(Setting{Name: SettingSpawnPeriod, Value: 250}))
	assert.Equal(t, 250*time.Millisecond, g.SpawnPeriod())
	assert.True(t, g.Found(SecretTechnophile))
}

func TestSpawnPeriodChangeRestartsTimer(t *testing.T) {
	g, _ := newGame(t)
	g.Update(900 * time.Millisecond)
	require.NoError(t, g.Dispatch(Setting{Name: SettingSpawnPeriod, Value: 500}))
	g.Update(400 * time.Millisecond)
	assert.Empty(t, g.Entities())
	g.Update(100 * time.Millisecond)
	assert.Len(t, g.Entities(), 1)
}

func TestCapacityChangeAppliesOnNextTick(t *testing.T) {
	g, _ := newGame(t, func(o *Options) { o.Capacity = 10 })
	for i := 0; i < 10; i++ {
		put(g, "🤖", float64(i*40), 100, 30)
	}
	g.Update(time.Second)
	assert.Len(t, g.Entities(), 10)

	require.NoError(t, g.Dispatch(Setting{Name: SettingCapacity, Value: 11}))
	g.Update(time.Second)
	assert.Len(t, g.Entities(), 11)
}

func TestKeyPhrases(t *testing.T) {
	g, _ := newGame(t)
	for _, r := range "xxOmEgA" {
		require.NoError(t, g.Dispatch(Key{Rune: r}))
	}
	assert.True(t, g.Found(SecretOmega))
	assert.True(t, g.OmegaUnlocked())

	for _, r := range "13337" {
		require.NoError(t, g.Dispatch(Key{Rune: r}))
	}
	assert.False(t, g.Found(SecretHacker))
	for _, r := range "1337" {
		require.NoError(t, g.Dispatch(Key{Rune: r}))
	}
	assert.True(t, g.Found(SecretHacker))
}

func TestKeyBufferClearsPastLimit(t *testing.T) {
	g, _ := newGame(t)
	for i := 0; i < 18; i++ {
		require.NoError(t, g.Dispatch(Key{Rune: 'x'}))
	}
	for _, r := range "omega" {
		require.NoError(t, g.Dispatch(Key{Rune: r}))
	}
	assert.False(t, g.Found(SecretOmega))
}

func TestOmegaActions(t *testing.T) {
	g, _ := newGame(t, func(o *Options) { o.Capacity = 10 })
	assert.ErrorIs(t, g.Dispatch(Action{Kind: ActionSpawnMax}), ErrOmegaLocked)
	assert.ErrorIs(t, g.Dispatch(Action{Kind: ActionMegaExplosion}), ErrOmegaLocked)
	assert.ErrorIs(t, g.Dispatch(PanelOpen{Panel: PanelOmega}), ErrOmegaLocked)

	g.triggerSecret(SecretOmega)
	require.NoError(t, g.Dispatch(PanelOpen{Panel: PanelOmega}))

	require.NoError(t, g.Dispatch(Action{Kind: ActionSpawnMax}))
	assert.Len(t, g.Entities(), 10)
	require.NoError(t, g.Dispatch(Action{Kind: ActionSpawnMax}))
	assert.Len(t, g.Entities(), 10, "capacity still applies")

	first := g.Entities()[0]
	require.NoError(t, g.Dispatch(Action{Kind: ActionMegaExplosion}))
	assert.Empty(t, g.Entities())
	require.Len(t, g.Particles(), 10*config.ParticleBurst)
	assert.Equal(t, first.X, g.Particles()[0].X)
	assert.Equal(t, first.Y, g.Particles()[0].Y)
	assert.True(t, g.Found(SecretCleanSlate))
	assert.Equal(t, 0, g.Score(), "mega explosion pays nothing")
}

func TestHoarder(t *testing.T) {
	g, _ := newGame(t)
	g.triggerSecret(SecretOmega)
	require.NoError(t, g.Dispatch(Setting{Name: SettingCapacity, Value: 120}))
	require.NoError(t, g.Dispatch(Action{Kind: ActionSpawnMax}))
	assert.True(t, g.Found(SecretHoarder))
}

func TestPanels(t *testing.T) {
	g, st := newGame(t)
	g.state.Score = 70

	require.NoError(t, g.Dispatch(PanelOpen{Panel: PanelSettings}))
	assert.True(t, g.Found(SecretArchivist))
	require.NoError(t, g.Dispatch(PanelOpen{Panel: PanelInfo}))
	assert.True(t, g.Found(SecretExplorer))
	require.NoError(t, g.Dispatch(PanelOpen{Panel: PanelRarity}))

	require.NoError(t, g.Dispatch(PanelOpen{Panel: PanelLeaderboard}))
	assert.True(t, g.Found(SecretSpeedDemon))
	assert.Equal(t, []store.HighScore{{User: "tester", Score: 70}}, st.LoadHighScores())

	assert.ErrorIs(t, g.Dispatch(PanelOpen{Panel: PanelAdmin}), ErrDevModeDisabled)
}

func TestIdleAndPlayTimeSecrets(t *testing.T) {
	g, _ := newGame(t)
	g.Update(59 * time.Second)
	require.NoError(t, g.Dispatch(Key{Rune: 'z'}))
	g.Update(59 * time.Second)
	assert.False(t, g.Found(SecretProcrastinator))
	g.Update(time.Second)
	assert.True(t, g.Found(SecretProcrastinator))

	assert.False(t, g.Found(SecretSurvivor))
	for i := 0; i < 10; i++ {
		g.Update(time.Minute)
	}
	assert.True(t, g.Found(SecretSurvivor))
}

func TestUsername(t *testing.T) {
	st := store.New(store.NewMemKV(), nil)
	g := New(Options{Store: st})
	assert.False(t, g.Playing())
	assert.ErrorIs(t, g.Dispatch(MenuToggle{}), ErrNoUsername)
	g.Update(5 * time.Second)
	assert.Empty(t, g.Entities())

	assert.ErrorIs(t, g.SetUsername("ab"), ErrInvalidUsername)
	assert.ErrorIs(t, g.SetUsername("sixteen-chars-xyz"), ErrInvalidUsername)
	assert.False(t, g.Playing())

	require.NoError(t, g.SetUsername("øøø"))
	assert.True(t, g.Playing())
	assert.True(t, g.SpawnRunning())
	name, ok := st.Username()
	assert.True(t, ok)
	assert.Equal(t, "øøø", name)
}

func TestRenameMovesLeaderboardEntry(t *testing.T) {
	g, st := newGame(t)
	g.state.Score = 30
	g.SubmitScore()

	require.NoError(t, g.SetUsername("renamed"))
	assert.Equal(t, []store.HighScore{{User: "renamed", Score: 30}}, st.LoadHighScores())
	assert.ErrorIs(t, g.SetUsername("x"), ErrInvalidUsername)
	assert.Equal(t, "renamed", g.Username())
}

func TestAdminSetters(t *testing.T) {
	g, _ := newGame(t)
	assert.ErrorIs(t, g.AdminSet(AdminScore, "10"), ErrDevModeDisabled)

	g, st := newGame(t, func(o *Options) { o.DevMode = true })
	require.NoError(t, g.Dispatch(PanelOpen{Panel: PanelAdmin}))

	assert.ErrorIs(t, g.AdminSet(AdminScore, "lots"), ErrInvalidAdminValue)
	assert.ErrorIs(t, g.AdminSet(AdminLevel, "0"), ErrInvalidAdminValue)
	assert.ErrorIs(t, g.AdminSet(AdminAutoClicker, "-1"), ErrInvalidAdminValue)
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 1, g.Level())

	require.NoError(t, g.AdminSet(AdminScore, " 1200 "))
	require.NoError(t, g.AdminSet(AdminLevel, "7"))
	require.NoError(t, g.AdminSet(AdminAutoClicker, "5"))
	require.NoError(t, g.AdminSet(AdminPrestige, "2"))
	assert.Equal(t, 1200, g.Score())
	assert.Equal(t, 7, g.Level())
	assert.True(t, g.AutoClickerRunning())
	assert.Equal(t, AutoClickerPeriod(5, 2), g.Speed())
	assert.Equal(t, 2, st.LoadState().PrestigeLevel)

	require.NoError(t, g.AdminSet(AdminAutoClicker, "0"))
	assert.False(t, g.AutoClickerRunning())
}

func TestDestroyPersists(t *testing.T) {
	g, st := newGame(t)
	put(g, "🤖", 500, 400, 30)
	clickOff(t, g, put(g, "👾", 100, 100, 30))
	assert.Equal(t, 10, st.LoadState().Score)
	assert.True(t, st.LoadState().FoundSecrets[SecretShattered])
}

func TestEmojiTable(t *testing.T) {
	assert.Len(t, Emojis, 38)
	assert.Len(t, Glyphs(), 38)

	sorted := EmojisByRarity()
	require.Len(t, sorted, 38)
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, int(sorted[i-1].Rarity), int(sorted[i].Rarity))
	}
	assert.Equal(t, "4.5%", Legendary.DisplayChance())
	assert.Equal(t, "Mythic", Mythic.String())
}
