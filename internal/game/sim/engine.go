// Package sim is the combat and progression engine: a fixed-interval tick
// scheduler driving player attacks, enemy charge/strike behavior, damage over
// time, loot, and the run lifecycle state machine. The engine is
// single-threaded; every timer in the simulation (cooldowns, effect expiry,
// delayed ability hits) advances on the same tick clock.
package sim

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/riftward/riftward/internal/game/ability"
	"github.com/riftward/riftward/internal/game/effect"
	"github.com/riftward/riftward/internal/game/enemy"
	"github.com/riftward/riftward/internal/game/event"
	"github.com/riftward/riftward/internal/game/item"
	"github.com/riftward/riftward/internal/game/loot"
	"github.com/riftward/riftward/internal/game/rng"
	"github.com/riftward/riftward/internal/game/ruleset"
	"github.com/riftward/riftward/internal/game/stats"
	"github.com/riftward/riftward/internal/game/upgrade"
)

// Config holds the engine's timing and tuning knobs. DefaultConfig matches
// the reference pacing; internal/config overlays file and env values.
type Config struct {
	TickInterval             time.Duration
	PlayerAttackIntervalBase time.Duration
	// DoTSubTickEvery applies damage-over-time once per this many ticks.
	DoTSubTickEvery int
	// BossSubstage is the substage at which the realm boss spawns; substages
	// 1..BossSubstage-1 are minions.
	BossSubstage int
	// VictoryPauseTicks is the beat between a defeat and the next spawn.
	VictoryPauseTicks int
	StartingCoins     float64
	// EventChance is the probability a substage completion offers an event.
	EventChance float64
	// BossSpecialEvery makes a boss wind up its special attack once per this
	// many strikes.
	BossSpecialEvery int
	// ScriptInstructionLimit caps Lua opcodes per event consequence script;
	// <= 0 uses the event package default.
	ScriptInstructionLimit int
}

// DefaultConfig returns the reference pacing.
func DefaultConfig() Config {
	return Config{
		TickInterval:             100 * time.Millisecond,
		PlayerAttackIntervalBase: 2000 * time.Millisecond,
		DoTSubTickEvery:          5,
		BossSubstage:             6,
		VictoryPauseTicks:        10,
		StartingCoins:            10,
		EventChance:              0.15,
		BossSpecialEvery:         4,
	}
}

// Validate collects configuration violations.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be > 0")
	}
	if c.PlayerAttackIntervalBase <= 0 {
		return fmt.Errorf("player attack interval must be > 0")
	}
	if c.DoTSubTickEvery <= 0 {
		return fmt.Errorf("dot sub-tick cadence must be > 0")
	}
	if c.BossSubstage < 2 {
		return fmt.Errorf("boss substage must be >= 2")
	}
	if c.BossSpecialEvery <= 0 {
		return fmt.Errorf("boss special cadence must be > 0")
	}
	if c.EventChance < 0 || c.EventChance > 1 {
		return fmt.Errorf("event chance must be within [0,1]")
	}
	return nil
}

// Content bundles the static catalogs the engine runs on. Any nil field is
// replaced with the built-in defaults.
type Content struct {
	Rules     *ruleset.Registry
	Upgrades  *upgrade.Catalog
	Items     *item.Catalog
	Enemies   *enemy.Catalog
	Abilities *ability.Catalog
	Events    *event.Catalog
}

// classPassive is a chance-based on-hit DoT gated behind an upgrade level.
type classPassive struct {
	classID    string // "" = any class
	upgradeID  string
	minLevel   int
	kind       effect.DoTKind
	chance     float64
	multiplier float64 // of attack power, delivered over the default window
}

var classPassives = []classPassive{
	{upgradeID: "serration", minLevel: 1, kind: effect.Bleed, chance: 0.15, multiplier: 1.0},
	{classID: "mystic", upgradeID: "attunement", minLevel: 5, kind: effect.Poison, chance: 0.20, multiplier: 1.5},
	{classID: "ember_knight", upgradeID: "sharpen", minLevel: 5, kind: effect.Burn, chance: 0.20, multiplier: 1.5},
}

// Engine owns the whole simulation: catalogs, per-run state, and the tick
// step. All access is single-threaded.
type Engine struct {
	cfg    Config
	logger *zap.Logger
	src    rng.Source

	rules     *ruleset.Registry
	upgrades  *upgrade.Ledger
	tracker   *upgrade.Tracker
	items     *item.Catalog
	equipment *item.Equipment
	inventory []*item.Instance
	spawner   *enemy.Spawner
	abilities *ability.Resolver
	events    *event.Director

	queue   *Queue
	effects *effect.Registry

	phase   Phase
	run     RunState
	classID string

	playerStats  stats.PlayerStats
	playerHealth float64
	evolveBonus  float64
	winBoon      bool
	// advancedUnlocked persists across evolutions: first stage-1 boss kill.
	advancedUnlocked bool

	foe              *enemy.Enemy
	timers           CombatTimers
	enemyStrikeCount int
	processedDefeats map[string]bool
	pendingEvent     *event.GameEvent

	tickCount    int
	victoryTicks int

	logLines []LogEntry
	cues     []Cue
}

// New builds an Engine over cfg and content, filling absent catalogs with
// the built-in defaults. The engine starts in GameOver phase; call StartRun.
//
// Precondition: logger and src must be non-nil.
func New(cfg Config, content Content, logger *zap.Logger, src rng.Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim config: %w", err)
	}

	if content.Rules == nil {
		content.Rules = ruleset.NewRegistry(ruleset.DefaultClasses(), ruleset.DefaultRealms(), logger)
	}
	if content.Upgrades == nil {
		content.Upgrades = upgrade.DefaultCatalog()
	}
	if content.Items == nil {
		content.Items = item.DefaultCatalog()
	}
	if content.Enemies == nil {
		content.Enemies = enemy.DefaultCatalog()
	}
	var err error
	if content.Abilities == nil {
		if content.Abilities, err = ability.NewCatalog(ability.DefaultAbilities()); err != nil {
			return nil, err
		}
	}
	if content.Events == nil {
		if content.Events, err = event.NewCatalog(event.DefaultEvents()); err != nil {
			return nil, err
		}
	}

	queue := NewQueue()
	e := &Engine{
		cfg:              cfg,
		logger:           logger,
		src:              src,
		rules:            content.Rules,
		upgrades:         upgrade.NewLedger(content.Upgrades),
		tracker:          upgrade.NewTracker(),
		items:            content.Items,
		equipment:        item.NewEquipment(),
		spawner:          enemy.NewSpawner(content.Enemies, src),
		abilities:        ability.NewResolver(content.Abilities),
		queue:            queue,
		phase:            GameOver,
		classID:          ruleset.DefaultClassID,
		processedDefeats: make(map[string]bool),
	}
	e.effects = effect.NewRegistry(queue, queue.Now)
	e.events = event.NewDirector(content.Events, event.NewScriptRunner(cfg.ScriptInstructionLimit, logger), src)
	return e, nil
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Run returns a copy of the run state. The maps are shared; callers must
// treat the snapshot as read-only.
func (e *Engine) Run() RunState { return e.run }

// Stats returns the current finalized player stats.
func (e *Engine) Stats() stats.PlayerStats { return e.playerStats }

// PlayerHealth returns the player's current health.
func (e *Engine) PlayerHealth() float64 { return e.playerHealth }

// Enemy returns a copy of the live enemy, or nil between spawns.
func (e *Engine) Enemy() *enemy.Enemy {
	if e.foe == nil {
		return nil
	}
	snapshot := *e.foe
	return &snapshot
}

// PendingEvent returns the event awaiting a choice, or nil.
func (e *Engine) PendingEvent() *event.GameEvent { return e.pendingEvent }

// ActiveEffects returns the UI-facing effect list.
func (e *Engine) ActiveEffects() []effect.ActiveEffect { return e.effects.Active() }

// Abilities returns the ability resolver, for cooldown/cast inspection.
func (e *Engine) Abilities() *ability.Resolver { return e.abilities }

// Upgrades returns the upgrade ledger for read access.
func (e *Engine) Upgrades() *upgrade.Ledger { return e.upgrades }

// Tracker returns the unlock tracker for notification reads.
func (e *Engine) Tracker() *upgrade.Tracker { return e.tracker }

// Inventory returns the unequipped item instances.
func (e *Engine) Inventory() []*item.Instance { return e.inventory }

// Equipment returns the equipped item set.
func (e *Engine) Equipment() *item.Equipment { return e.equipment }

// recompute rebuilds the player stat snapshot from every current input.
// Current health is preserved in absolute terms, clamped to the new maximum.
func (e *Engine) recompute() {
	class := e.rules.ClassOrDefault(e.classID)
	base, err := class.ClassBase()
	if err != nil {
		e.logger.Warn("class conversion failed, using defaults", zap.String("class", e.classID), zap.Error(err))
	}
	effectMods := e.effects.StatModifiers()
	e.playerStats = stats.Compute(stats.Inputs{
		Class:       base,
		EvolveBonus: e.evolveBonus,
		Upgrades:    e.upgrades.Contributions(),
		ItemMods:    e.equipment.Modifiers(e.upgrades.TotalLevels()),
		EffectMods:  effectMods,
		HasWinBoon:  e.winBoon,
	})
	if e.playerHealth > e.playerStats.MaxHealth {
		e.playerHealth = e.playerStats.MaxHealth
	}
}

// Step advances the simulation one tick. Sub-steps run in strict order:
// cooldown decay, scheduled callbacks, player attack, DoT sub-tick, enemy
// charge/strike. Phases other than Playing advance only what the phase
// allows: VictoryPaused counts down to the next spawn, everything else
// freezes the clock entirely.
func (e *Engine) Step() {
	switch e.phase {
	case Playing:
	case VictoryPaused:
		e.abilities.TickCooldowns(e.cfg.TickInterval)
		e.victoryTicks++
		if e.victoryTicks >= e.cfg.VictoryPauseTicks {
			e.enterSubstage()
		}
		return
	default:
		return
	}

	e.tickCount++
	e.abilities.TickCooldowns(e.cfg.TickInterval)
	e.queue.Advance(e.cfg.TickInterval)
	e.recompute()

	if e.phase != Playing {
		// A scheduled callback (delayed kill shot) may have ended the fight.
		return
	}
	if e.foe == nil || e.foe.IsDead() {
		return
	}

	e.stepPlayerAttack()
	if e.phase != Playing || e.foe == nil || e.foe.IsDead() {
		return
	}
	if e.tickCount%e.cfg.DoTSubTickEvery == 0 {
		e.stepDoTs()
	}
	if e.phase != Playing || e.foe == nil || e.foe.IsDead() {
		return
	}
	e.stepEnemy()
}

// stepPlayerAttack accumulates the player's attack timer and resolves an
// automatic attack when it fills.
func (e *Engine) stepPlayerAttack() {
	mods := e.effects.Modifiers()
	speed := e.playerStats.AttackSpeed * (1 + mods.AttackSpeedBuff)
	if mods.Frenzy {
		speed *= 2
	}
	if speed <= 0 {
		return
	}
	interval := time.Duration(float64(e.cfg.PlayerAttackIntervalBase) / speed)
	e.timers.PlayerAttack += e.cfg.TickInterval
	if e.timers.PlayerAttack < interval {
		return
	}
	e.timers.PlayerAttack -= interval
	e.resolvePlayerAttack()
}

// resolvePlayerAttack rolls accuracy and crit, applies damage, and evaluates
// class-passive DoT triggers. Shared by the automatic cadence and
// ManualAttack.
func (e *Engine) resolvePlayerAttack() {
	if e.foe == nil || e.foe.IsDead() {
		return
	}
	mods := e.effects.Modifiers()

	if e.src.Float64() >= e.playerStats.Accuracy {
		e.cue("miss", 0)
		e.log(LogPlayer, "Your attack misses!")
		return
	}

	crit := e.src.Float64() < e.playerStats.CritChance+mods.CritChanceBuff
	if !crit && e.effects.ConsumeGuaranteedCrit() {
		crit = true
	}
	damage := e.playerStats.AttackPower * (1 + mods.AttackPowerBuff)
	if crit {
		damage *= e.playerStats.CritDamage + mods.CritDamageBuff
	}
	damage = math.Floor(damage)

	target := e.foe.InstanceID
	if crit {
		e.cue("crit", damage)
		e.log(LogCrit, fmt.Sprintf("Critical hit for %.0f damage!", damage))
	} else {
		e.cue("damage", damage)
		e.log(LogPlayer, fmt.Sprintf("You strike %s for %.0f.", e.foe.Name, damage))
	}
	if !e.damageEnemy(target, damage) {
		return
	}
	e.rollClassPassives()
}

// rollClassPassives applies chance-based on-hit DoTs gated by upgrade levels.
func (e *Engine) rollClassPassives() {
	for _, p := range classPassives {
		if p.classID != "" && p.classID != e.classID {
			continue
		}
		if e.upgrades.Level(p.upgradeID) < p.minLevel {
			continue
		}
		if e.src.Float64() >= p.chance {
			continue
		}
		total := e.playerStats.AttackPower * p.multiplier
		e.effects.ApplyDoT(p.kind, total, effect.DefaultDoTDuration)
		e.log(LogSpecial, fmt.Sprintf("Your strike inflicts %s!", p.kind))
	}
}

// stepDoTs applies one damage-over-time sub-tick to the enemy.
func (e *Engine) stepDoTs() {
	if e.foe == nil || e.foe.IsDead() {
		return
	}
	target := e.foe.InstanceID
	for _, tick := range e.effects.TickDoTs(time.Duration(e.cfg.DoTSubTickEvery) * e.cfg.TickInterval) {
		e.cue(tick.Kind.String(), tick.Damage)
		if !e.damageEnemy(target, tick.Damage) {
			return
		}
	}
}

// stepEnemy advances the two-phase wind-up/strike machine.
func (e *Engine) stepEnemy() {
	mods := e.effects.Modifiers()
	if mods.Frozen {
		// Freeze suspends the machine; clearing a wind-up in progress
		// avoids an instant strike on unfreeze.
		if e.timers.Charging {
			e.timers.Charging = false
			e.timers.EnemyCharge = 0
		}
		return
	}
	slow := 1 + mods.EnemySpeedDebuff

	if !e.timers.Charging {
		e.timers.EnemyAttack += e.cfg.TickInterval
		interval := time.Duration(float64(e.foe.AttackInterval) * slow)
		if e.timers.EnemyAttack < interval {
			return
		}
		e.timers.EnemyAttack = 0
		e.enemyStrikeCount++
		e.timers.Charging = true
		e.timers.EnemyCharge = 0
		e.timers.SpecialPending = e.foe.Boss && e.foe.Special != nil &&
			e.enemyStrikeCount%e.cfg.BossSpecialEvery == 0
		charge := e.foe.ChargeTime
		if e.timers.SpecialPending {
			charge = e.foe.Special.ChargeTime
			e.log(LogEnemy, fmt.Sprintf("%s begins %s!", e.foe.Name, e.foe.Special.Name))
		}
		e.timers.ChargeDuration = time.Duration(float64(charge) * slow)
		return
	}

	e.timers.EnemyCharge += e.cfg.TickInterval
	if e.timers.EnemyCharge < e.timers.ChargeDuration {
		return
	}
	special := e.timers.SpecialPending
	e.timers.Charging = false
	e.timers.EnemyCharge = 0
	e.timers.SpecialPending = false
	e.resolveEnemyStrike(special)
}

// resolveEnemyStrike lands the wound the wind-up promised.
func (e *Engine) resolveEnemyStrike(special bool) {
	mods := e.effects.Modifiers()

	if e.effects.ConsumeEnemyMissCharge() {
		e.cue("enemy_miss", 0)
		e.log(LogEnemy, fmt.Sprintf("%s strikes at nothing but shadow.", e.foe.Name))
		return
	}

	damage := e.foe.AttackPower
	if special && e.foe.Special != nil {
		damage *= e.foe.Special.Multiplier
	}
	damage *= 1 - mods.EnemyPowerDebuff
	raw := damage

	damage = e.effects.AbsorbDamage(damage)
	damage *= 1 - e.playerStats.DamageReduction
	damage = math.Floor(damage)
	if damage < 0 {
		damage = 0
	}

	e.playerHealth -= damage
	if e.playerHealth < 0 {
		e.playerHealth = 0
	}
	if special {
		e.cue("enemy_special", damage)
		e.log(LogEnemy, fmt.Sprintf("%s's %s hits you for %.0f!", e.foe.Name, e.foe.Special.Name, damage))
	} else {
		e.cue("enemy_damage", damage)
		e.log(LogEnemy, fmt.Sprintf("%s hits you for %.0f.", e.foe.Name, damage))
	}

	if mods.ReflectPercent > 0 && damage > 0 {
		reflected := math.Floor(raw * mods.ReflectPercent)
		if reflected > 0 {
			e.log(LogSpecial, fmt.Sprintf("You reflect %.0f damage back.", reflected))
			e.damageEnemy(e.foe.InstanceID, reflected)
		}
	}
	if e.foe != nil && e.foe.Lifesteal > 0 && damage > 0 {
		e.foe.Heal(damage * e.foe.Lifesteal)
	}

	if e.playerHealth <= 0 {
		e.phase = GameOver
		e.log(LogInfo, "You have fallen. The run is over.")
	}
}

// damageEnemy applies amount to the enemy identified by instanceID, guarding
// against stale targets, and runs defeat handling exactly once per instance.
// Reports whether the enemy survived the hit.
func (e *Engine) damageEnemy(instanceID string, amount float64) bool {
	if e.foe == nil || e.foe.InstanceID != instanceID {
		return false
	}
	if e.phase != Playing {
		return false
	}
	e.foe.ApplyDamage(amount)
	if e.foe.IsDead() {
		e.handleDefeat()
		return false
	}
	return true
}

// handleDefeat rolls loot, applies post-kill passives, and advances the run.
// Idempotent per enemy instance: the processed set absorbs a second kill
// signal from a DoT and a direct hit landing in the same tick.
func (e *Engine) handleDefeat() {
	if e.processedDefeats[e.foe.InstanceID] {
		return
	}
	e.processedDefeats[e.foe.InstanceID] = true

	mods := e.effects.Modifiers()
	effectiveLuck := e.playerStats.Luck * (1 + mods.LuckBuff)

	gold := loot.GoldReward(e.foe.CoinReward, effectiveLuck)
	e.run.Coins += gold
	e.cue("gold", gold)
	e.log(LogReward, fmt.Sprintf("%s defeated! +%.0f coins.", e.foe.Name, gold))

	for _, drop := range loot.RollDrops(e.items, effectiveLuck, e.playerStats.Luck, e.src) {
		if e.equipment.AutoEquip(drop) {
			e.log(LogItem, fmt.Sprintf("Found and equipped %s (%s).", drop.Template.Name, drop.Rarity))
		} else {
			e.inventory = append(e.inventory, drop)
			e.log(LogItem, fmt.Sprintf("Found %s (%s).", drop.Template.Name, drop.Rarity))
		}
	}

	if heal := e.upgrades.OnKillHeal(); heal > 0 {
		e.healPlayer(heal)
	}
	if shield := e.upgrades.OnKillShield(); shield > 0 {
		e.effects.AddDamageShield(shield)
	}

	if e.foe.Boss {
		e.handleBossDefeat()
	} else {
		e.advanceSubstage()
	}
	e.refreshUnlocks()
}

// advanceSubstage moves one substage forward and may hand control to a
// narrative event before the next spawn.
func (e *Engine) advanceSubstage() {
	e.run.SubStage++
	if e.src.Float64() < e.cfg.EventChance {
		if drawn := e.events.Draw(e.currentRealmTag(), e.run.EventFlags, e.run.TriggeredEvents); drawn != nil {
			e.run.TriggeredEvents[drawn.ID] = true
			e.pendingEvent = drawn
			e.phase = Event
			e.log(LogInfo, fmt.Sprintf("%s %s", drawn.Emoji, drawn.Name))
			return
		}
	}
	e.beginVictoryPause()
}

// handleBossDefeat heals, checks the advanced-class unlock, and either wins
// the game on the final realm or advances to the next one.
func (e *Engine) handleBossDefeat() {
	e.healPlayer(e.playerStats.MaxHealth * 0.25)
	if e.run.Stage == 1 && !e.advancedUnlocked {
		e.advancedUnlocked = true
		e.log(LogInfo, "An advanced class lineage reveals itself!")
	}
	if e.run.Stage >= len(e.run.RealmOrder) {
		e.winBoon = true
		e.phase = GameWon
		e.recompute()
		e.log(LogInfo, "The final realm falls. Legend doubles your every strength!")
		return
	}
	e.run.Stage++
	e.run.SubStage = 1
	realm, _ := e.rules.Realm(e.run.RealmOrder[e.run.Stage-1])
	if realm != nil {
		e.log(LogInfo, fmt.Sprintf("%s You enter %s.", realm.Emoji, realm.Name))
	}
	e.beginVictoryPause()
}

func (e *Engine) beginVictoryPause() {
	e.phase = VictoryPaused
	e.victoryTicks = 0
}

// enterSubstage spawns the enemy for the current run position and resumes
// combat.
func (e *Engine) enterSubstage() {
	e.foe = e.spawner.Spawn(e.currentRealmTag(), e.run.Stage, e.run.SubStage, e.cfg.BossSubstage, e.run.AscensionCount)
	e.timers.reset()
	e.enemyStrikeCount = 0
	if e.foe == nil {
		e.logger.Warn("no enemy template for realm", zap.String("tag", e.currentRealmTag()))
		e.phase = GameOver
		return
	}
	e.phase = Playing
	e.log(LogInfo, fmt.Sprintf("%s %s appears!", e.foe.Emoji, e.foe.Name))
}

// currentRealmTag resolves the enemy tag for the stage's realm.
func (e *Engine) currentRealmTag() string {
	if e.run.Stage < 1 || e.run.Stage > len(e.run.RealmOrder) {
		return ""
	}
	realm, ok := e.rules.Realm(e.run.RealmOrder[e.run.Stage-1])
	if !ok {
		return ""
	}
	return realm.EnemyTag
}

// healPlayer restores health, clamped to max, and cues the number.
func (e *Engine) healPlayer(amount float64) {
	if amount <= 0 {
		return
	}
	e.playerHealth = math.Min(e.playerHealth+amount, e.playerStats.MaxHealth)
	e.cue("heal", amount)
}

// refreshUnlocks re-evaluates unlock criteria for upgrades and abilities.
func (e *Engine) refreshUnlocks() {
	total := e.upgrades.TotalLevels()
	variety := e.upgrades.CoreVariety()

	var items []upgrade.Unlockable
	for _, u := range e.upgrades.Catalog().All() {
		cost, _ := e.upgrades.NextCost(u.ID)
		items = append(items, upgrade.Unlockable{ID: u.ID, Tab: u.Tab, Criteria: u.Unlock, Cost: cost})
	}
	for _, a := range e.abilities.Catalog().Kit(e.classID) {
		items = append(items, upgrade.Unlockable{
			ID:       "ability:" + a.ID,
			Tab:      "abilities",
			Criteria: a.Unlock,
			Cost:     a.Cost(e.run.Stage, e.abilities.Casts(a.ID)),
		})
	}
	e.tracker.Refresh(items, total, variety, e.run.Coins)
}
