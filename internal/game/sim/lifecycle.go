package sim

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/riftward/riftward/internal/game/ruleset"
)

// Run lifecycle. Every path through here funnels into resetRun, which
// synchronously cancels all pending timers before rebuilding state — a stale
// timer from one run must never leak an effect into the next.

// ClassID returns the player's current class id.
func (e *Engine) ClassID() string { return e.classID }

// EvolveBonus returns the accumulated permanent lineage bonus.
func (e *Engine) EvolveBonus() float64 { return e.evolveBonus }

// AdvancedUnlocked reports whether advanced classes are selectable.
func (e *Engine) AdvancedUnlocked() bool { return e.advancedUnlocked }

// HasWinBoon reports whether the permanent double-stats boon is held.
func (e *Engine) HasWinBoon() bool { return e.winBoon }

// StartRun begins a fresh game as classID: all progression, lineage, and
// boons are wiped. An unknown or still-locked class falls back to the
// default with a logged warning.
func (e *Engine) StartRun(classID string) {
	e.setClass(classID)
	e.upgrades.Reset()
	e.equipment.Clear()
	e.inventory = nil
	e.tracker.Reset()
	e.evolveBonus = 0
	e.winBoon = false
	e.advancedUnlocked = false
	e.resetRun(e.cfg.StartingCoins, 0, 0)
	e.log(LogInfo, fmt.Sprintf("A new legend begins: the %s.", e.rules.ClassOrDefault(e.classID).Name))
}

// Evolve is the rebirth path: progress resets in exchange for a permanent
// percentage bonus derived from total upgrade levels plus a treasure-hoard
// term from the banked coins.
func (e *Engine) Evolve() {
	gained := float64(e.upgrades.TotalLevels())*0.01 + hoardBonus(e.run.Coins)
	e.evolveBonus += gained
	lineage := e.run.LineageCount + 1
	ascension := e.run.AscensionCount

	e.upgrades.Reset()
	e.equipment.Clear()
	e.inventory = nil
	e.tracker.Reset()
	e.winBoon = false

	e.resetRun(e.cfg.StartingCoins, ascension, lineage)
	e.log(LogInfo, fmt.Sprintf("You evolve! Lineage %d grants a permanent +%.0f%% bonus.", lineage, e.evolveBonus*100))
}

// Retain is the soft reset: the run position restarts but upgrades,
// equipment, and coins all carry over.
func (e *Engine) Retain() {
	e.winBoon = false
	e.resetRun(e.run.Coins, e.run.AscensionCount, e.run.LineageCount)
	e.log(LogInfo, "You regroup and press on, gear and knowledge intact.")
}

// Ascend is New Game Plus, available only after winning: enemy difficulty
// scales up, progress resets, and only the win boon and permanent
// narrative-event boons carry forward.
func (e *Engine) Ascend() {
	if e.phase != GameWon {
		return
	}
	boons := e.effects.PermanentBoons()
	ascension := e.run.AscensionCount + 1
	lineage := e.run.LineageCount

	e.upgrades.Reset()
	e.equipment.Clear()
	e.inventory = nil
	e.tracker.Reset()

	e.resetRun(e.cfg.StartingCoins, ascension, lineage)
	for _, b := range boons {
		e.effects.ApplyStatBoon(b.Key, b.Name, b.Mods, 0)
	}
	e.recompute()
	e.playerHealth = e.playerStats.MaxHealth
	e.log(LogInfo, fmt.Sprintf("Ascension %d. The realms sharpen their knives.", ascension))
}

// ChangeClass swaps the class and performs a retain-style reset.
func (e *Engine) ChangeClass(classID string) {
	e.setClass(classID)
	e.Retain()
}

// Restart wipes everything and starts over with the current class.
func (e *Engine) Restart() {
	e.StartRun(e.classID)
}

// setClass applies the class choice, falling back to the default for unknown
// ids and for advanced classes not yet unlocked.
func (e *Engine) setClass(classID string) {
	class, ok := e.rules.Class(classID)
	if !ok {
		e.logger.Warn("unknown class, using default", zap.String("class", classID))
		e.classID = ruleset.DefaultClassID
		return
	}
	if class.Advanced && !e.advancedUnlocked {
		e.logger.Warn("advanced class still locked, using default", zap.String("class", classID))
		e.classID = ruleset.DefaultClassID
		return
	}
	e.classID = classID
}

// resetRun rebuilds the per-run state: cancels every pending timer, clears
// transient effects and ability state, regenerates the realm order, and
// spawns the first enemy.
func (e *Engine) resetRun(coins float64, ascension, lineage int) {
	e.queue.Clear()
	e.effects.Clear()
	e.abilities.Reset()
	e.processedDefeats = make(map[string]bool)
	e.pendingEvent = nil
	e.timers.reset()
	e.enemyStrikeCount = 0
	e.tickCount = 0
	e.victoryTicks = 0

	order, err := ruleset.RealmOrder(e.rules.Realms(), e.src)
	if err != nil {
		e.logger.Error("realm order generation failed", zap.Error(err))
	}
	e.run = newRunState(coins, order)
	e.run.AscensionCount = ascension
	e.run.LineageCount = lineage

	e.recompute()
	e.playerHealth = e.playerStats.MaxHealth
	e.refreshUnlocks()
	e.enterSubstage()
}

// hoardBonus converts banked coins into the evolve hoard term: a log10 step
// per order of magnitude, capped.
func hoardBonus(coins float64) float64 {
	b := 0.05 * math.Floor(math.Log10(math.Max(coins, 1)))
	return math.Min(b, 0.25)
}
