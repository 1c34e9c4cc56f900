// Package config centralizes all tunable game parameters.
package config

import "time"

// Canvas resolution - the play field in logical units.
// Actual rendering scales to fit terminal size.
const (
	CanvasWidth  = 800
	CanvasHeight = 500
)

// Scoring and levels
const (
	DestroyReward      = 10
	BaseLevelThreshold = 100 // First level-up score; resets every session
	LevelStep          = 100 // Threshold grows by LevelStep * newLevel
)

// Spawning
const (
	DefaultMaxEntities = 40
	MinMaxEntities     = 10
	MaxMaxEntities     = 150
	DefaultSpawnPeriod = 1000 * time.Millisecond
	MinSpawnPeriod     = 100 * time.Millisecond
	MaxSpawnPeriod     = 3000 * time.Millisecond
	MinEntitySize      = 20.0
	EntitySizeRange    = 20.0 // Size is uniform in [MinEntitySize, MinEntitySize+EntitySizeRange)
	EntityLightness    = 0.7  // HSL lightness of entity colours (saturation is always 1)
)

// Particles
const (
	ParticleBurst    = 15
	ParticleLife     = 30   // Frames
	ParticleSpeed    = 10.0 // Velocity components are uniform in ±ParticleSpeed/2
	ParticleMinSize  = 1.0
	ParticleSizeSpan = 3.0
)

// Auto-clicker and prestige
const (
	AutoClickerBaseCost    = 50.0
	AutoClickerCostGrowth  = 1.5
	PrestigeDiscount       = 0.8
	AutoClickerBasePeriod  = 10.0 // Seconds at level 0
	AutoClickerStep        = 0.3  // Seconds removed per level
	PrestigeStepBonus      = 0.1  // Extra seconds removed per level per prestige
	AutoClickerMinPeriod   = 500 * time.Millisecond
	PrestigeRequiredLevel  = 20
	PanicSecretScore       = 500
	GlassCannonScore       = 1000
	HoarderEntities        = 100
	PrecisionRadius        = 0.15 // Fraction of entity size around its centre
	SurvivorPlayTime       = 10 * time.Minute
	ProcrastinatorIdleTime = 60 * time.Second
)

// Player
const (
	MinUsernameLength = 3
	MaxUsernameLength = 15
	KeyBufferLimit    = 20 // Typed-key buffer is cleared once it grows past this
	MaxNotices        = 50
)

// Rendering
const (
	TrailFade    = 0.3 // Opacity of the per-frame background overlay
	NoticeTTL    = 3 * time.Second
	SidebarWidth = 30
)

// Shutdown and inactivity
const (
	ShutdownDisplaySeconds   = 10.0   // Seconds to show shutdown message before auto-disconnect
	InactivityWarnUser       = 1500.0 // Seconds without input before the warning screen
	InactivityDisconnectUser = 1800.0 // Seconds without input before disconnect
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 200 // Render area is clamped and centred beyond this
	MaxTermHeight         = 60
	MinTermWidth          = 50 // Below this the game asks for a larger window
	MinTermHeight         = 16
	ToastQueueLimit       = 5
)
