package game

import (
	"time"

	"github.com/tomz197/omega/internal/loop/config"
)

// SecretID indexes the found-secrets record.
type SecretID int

const (
	SecretPanic SecretID = iota
	SecretObserver
	SecretArchivist
	SecretShattered
	SecretBeginner
	SecretSpeedDemon
	SecretGlassCannon
	SecretTechnophile
	SecretNavigator
	SecretCollector
	SecretTimeBender
	SecretExplorer
	SecretSurvivor
	SecretHoarder
	SecretGhostHunter
	SecretPrecision
	SecretUnlucky
	SecretArchitect
	SecretProcrastinator
	SecretOmega
	SecretBling
	SecretHacker
	SecretPrestigeMaster
	SecretUnstoppable
	SecretCleanSlate
)

// Key phrases recognised in typed input.
const (
	PhraseOmega  = "omega"
	PhraseHacker = "1337"
)

// occurrenceKind classifies something that happened in the engine.
type occurrenceKind int

const (
	occClickDestroy occurrenceKind = iota
	occAutoDestroy
	occLevelUp
	occPanic
	occTitleClick
	occPanelOpen
	occSpawnPeriodChanged
	occCapacityChanged
	occMenuToggle
	occPurchase
	occPrestige
	occPlayTime
	occIdle
	occPopulation
	occPhrase
	occMegaExplosion
)

// occurrence carries the facts secret triggers inspect. Only the fields
// relevant to kind are set.
type occurrence struct {
	kind      occurrenceKind
	glyph     string        // destroyed glyph
	precise   bool          // click landed near the centre
	remaining int           // live entities after a destroy
	score     int           // score after the change
	manual    int           // click destroys this session
	level     int           // level after a level-up
	value     int           // new setting value
	panel     Panel         // opened panel
	open      bool          // menu state after a toggle
	live      int           // live entities
	capacity  int           // spawn capacity
	elapsed   time.Duration // play or idle time
	phrase    string        // matched key phrase
}

// Secret is one hidden achievement. Trigger decides from an occurrence
// whether the secret unlocks.
type Secret struct {
	ID      SecretID
	Title   string
	Clue    string
	trigger func(o occurrence) bool
}

func on(kind occurrenceKind) func(o occurrence) bool {
	return func(o occurrence) bool { return o.kind == kind }
}

func onPanel(p Panel) func(o occurrence) bool {
	return func(o occurrence) bool { return o.kind == occPanelOpen && o.panel == p }
}

func onPhrase(phrase string) func(o occurrence) bool {
	return func(o occurrence) bool { return o.kind == occPhrase && o.phrase == phrase }
}

func onClickGlyph(glyph string) func(o occurrence) bool {
	return func(o occurrence) bool { return o.kind == occClickDestroy && o.glyph == glyph }
}

// secrets is the id -> trigger table. Every secret has exactly one trigger.
var secrets = []Secret{
	{SecretPanic, "Panic!", "A button for when things get too hectic.", func(o occurrence) bool {
		return o.kind == occPanic && o.score > config.PanicSecretScore
	}},
	{SecretObserver, "Observer", "The header knows all.", on(occTitleClick)},
	{SecretArchivist, "Archivist", "Where configurations lie.", onPanel(PanelSettings)},
	{SecretShattered, "Shattered", "A single interaction.", on(occClickDestroy)},
	{SecretBeginner, "Beginner", "Time brings progress.", func(o occurrence) bool {
		return o.kind == occLevelUp && o.level >= 2
	}},
	{SecretSpeedDemon, "Speed Demon", "Swift fingers win.", onPanel(PanelLeaderboard)},
	{SecretGlassCannon, "Glass Cannon", "Reach high without touching.", func(o occurrence) bool {
		return o.kind == occAutoDestroy && o.score >= config.GlassCannonScore && o.manual == 0
	}},
	{SecretTechnophile, "Technophile", "Fine-tune your experience.", on(occSpawnPeriodChanged)},
	{SecretNavigator, "Navigator", "Come and go.", on(occMenuToggle)},
	{SecretCollector, "Collector", "Amass a fortune.", on(occPurchase)},
	{SecretTimeBender, "Time Bender", "Halt the inevitable.", func(o occurrence) bool {
		return o.kind == occMenuToggle && o.open && o.live >= o.capacity
	}},
	{SecretExplorer, "Explorer", "A curious clicker.", onPanel(PanelInfo)},
	{SecretSurvivor, "Survivor", "Persistence is key.", func(o occurrence) bool {
		return o.kind == occPlayTime && o.elapsed >= config.SurvivorPlayTime
	}},
	{SecretHoarder, "Hoarder", "Crowd the workspace.", func(o occurrence) bool {
		return o.kind == occPopulation && o.live >= config.HoarderEntities
	}},
	{SecretGhostHunter, "Ghost Hunter", "Spooky encounter.", onClickGlyph("👻")},
	{SecretPrecision, "Precision", "Right in the bullseye.", func(o occurrence) bool {
		return o.kind == occClickDestroy && o.precise
	}},
	{SecretUnlucky, "Unlucky", "End of the line.", func(o occurrence) bool {
		return o.kind == occClickDestroy && o.remaining == 0
	}},
	{SecretArchitect, "Architect", "Pushing the limits.", func(o occurrence) bool {
		return o.kind == occCapacityChanged && o.value == config.MaxMaxEntities
	}},
	{SecretProcrastinator, "Procrastinator", "A moment of stillness.", func(o occurrence) bool {
		return o.kind == occIdle && o.elapsed >= config.ProcrastinatorIdleTime
	}},
	{SecretOmega, "OMEGA", "The final word.", onPhrase(PhraseOmega)},
	{SecretBling, "Bling", "Click the shiny objects.", onClickGlyph("💎")},
	{SecretHacker, "Hacker", "Type the numbers.", onPhrase(PhraseHacker)},
	{SecretPrestigeMaster, "Prestige Master", "Reset for power.", on(occPrestige)},
	{SecretUnstoppable, "Unstoppable", "Reach level 10.", func(o occurrence) bool {
		return o.kind == occLevelUp && o.level >= 10
	}},
	{SecretCleanSlate, "Clean Slate", "Wipe the board clean.", on(occMegaExplosion)},
}

// Secrets returns the secret definitions in id order.
func Secrets() []Secret {
	return append([]Secret(nil), secrets...)
}

// SecretTotal is the number of defined secrets.
func SecretTotal() int {
	return len(secrets)
}

// observe unlocks every secret whose trigger matches o.
func (g *Game) observe(o occurrence) {
	for _, s := range secrets {
		if s.trigger(o) {
			g.triggerSecret(s.ID)
		}
	}
}

// triggerSecret unlocks id. Unlocking an already found secret does nothing.
func (g *Game) triggerSecret(id SecretID) {
	i := int(id)
	if i < 0 || i >= len(secrets) || i >= len(g.state.FoundSecrets) || g.state.FoundSecrets[i] {
		return
	}
	g.state.FoundSecrets[i] = true
	count := g.SecretsFound()
	g.persist()

	s := secrets[i]
	g.log.Info("secret unlocked", "id", i, "title", s.Title, "found", count)
	g.notify(NoticeSecret, "Secret unlocked: "+s.Title)
	if count >= len(secrets) {
		g.notify(NoticeMilestone, "ALL SECRETS FOUND!")
	}
}
