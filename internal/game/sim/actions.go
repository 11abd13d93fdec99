package sim

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/riftward/riftward/internal/game/ability"
	"github.com/riftward/riftward/internal/game/effect"
	"github.com/riftward/riftward/internal/game/item"
	"github.com/riftward/riftward/internal/game/rng"
	"github.com/riftward/riftward/internal/game/stats"
)

// Player actions. Invalid actions (wrong phase, locked content, insufficient
// funds, stale targets) silently decline: the UI is allowed to lag the
// simulation by a tick, so these are expected outcomes, not errors.

// ManualAttack resolves one player attack immediately, independent of the
// automatic cadence.
func (e *Engine) ManualAttack() {
	if e.phase != Playing || e.foe == nil || e.foe.IsDead() {
		return
	}
	e.resolvePlayerAttack()
}

// BuyUpgrade purchases one level of the upgrade if its unlock criteria are
// met and the balance covers the next level.
func (e *Engine) BuyUpgrade(id string) {
	u, ok := e.upgrades.Catalog().Get(id)
	if !ok {
		return
	}
	if u.Unlock != nil && !u.Unlock.Met(e.upgrades.TotalLevels(), e.upgrades.CoreVariety()) {
		return
	}
	spent, ok := e.upgrades.Purchase(id, e.run.Coins)
	if !ok {
		return
	}
	e.run.Coins -= spent
	e.log(LogInfo, fmt.Sprintf("%s upgraded to level %d.", u.Name, e.upgrades.Level(id)))
	e.recompute()
	e.refreshUnlocks()
}

// BuyUpgradeMax purchases as many levels as the balance allows.
func (e *Engine) BuyUpgradeMax(id string) {
	u, ok := e.upgrades.Catalog().Get(id)
	if !ok {
		return
	}
	if u.Unlock != nil && !u.Unlock.Met(e.upgrades.TotalLevels(), e.upgrades.CoreVariety()) {
		return
	}
	spent, levels := e.upgrades.PurchaseMax(id, e.run.Coins)
	if levels == 0 {
		return
	}
	e.run.Coins -= spent
	e.log(LogInfo, fmt.Sprintf("%s upgraded %d levels to %d.", u.Name, levels, e.upgrades.Level(id)))
	e.recompute()
	e.refreshUnlocks()
}

// EquipItem equips the inventory instance with the given id, returning any
// displaced item to the inventory.
func (e *Engine) EquipItem(instanceID string) {
	for i, inst := range e.inventory {
		if inst.InstanceID != instanceID {
			continue
		}
		e.inventory = append(e.inventory[:i], e.inventory[i+1:]...)
		if displaced := e.equipment.Equip(inst); displaced != nil {
			e.inventory = append(e.inventory, displaced)
		}
		e.log(LogItem, fmt.Sprintf("Equipped %s.", inst.Template.Name))
		e.recompute()
		return
	}
}

// UnequipItem moves the item in slot back to the inventory.
func (e *Engine) UnequipItem(slot item.Slot) {
	inst := e.equipment.Unequip(slot)
	if inst == nil {
		return
	}
	e.inventory = append(e.inventory, inst)
	e.recompute()
}

// UseAbility activates the ability if its unlock criteria are met; cost,
// cooldown, and class gating are the resolver's job.
func (e *Engine) UseAbility(id string) ability.Outcome {
	if e.phase != Playing {
		return ability.Blocked
	}
	a, ok := e.abilities.Catalog().Get(id)
	if !ok {
		return ability.UnknownAbility
	}
	if a.Unlock != nil && !a.Unlock.Met(e.upgrades.TotalLevels(), e.upgrades.CoreVariety()) {
		return ability.Blocked
	}
	outcome := e.abilities.Use(id, e.classID, e)
	if outcome == ability.Activated {
		e.recompute()
	}
	return outcome
}

// ChooseEventOption resolves the pending event with the chosen option and
// resumes the run. An unaffordable option leaves the event open.
func (e *Engine) ChooseEventOption(optionID string) {
	if e.phase != Event || e.pendingEvent == nil {
		return
	}
	if err := e.events.Resolve(e.pendingEvent, optionID, e); err != nil {
		e.log(LogInfo, err.Error())
		return
	}
	e.pendingEvent = nil
	e.recompute()
	e.beginVictoryPause()
}

// Pause suspends the simulation; Resume continues it. Only Playing pauses.
func (e *Engine) Pause() {
	if e.phase == Playing {
		e.phase = Paused
	}
}

// Resume returns a paused simulation to combat.
func (e *Engine) Resume() {
	if e.phase == Paused {
		e.phase = Playing
	}
}

// ClearTab zeroes the unlock notification counter for a tab.
func (e *Engine) ClearTab(tab string) { e.tracker.ClearTab(tab) }

// ability.Combat implementation. Handlers see the engine through this
// surface only.

// EnemyID returns the live enemy's instance id, or "" between spawns.
func (e *Engine) EnemyID() string {
	if e.foe == nil {
		return ""
	}
	return e.foe.InstanceID
}

// DamageEnemy lands amount on the enemy only if enemyID still matches the
// live enemy and combat is running. Reports whether the hit landed.
func (e *Engine) DamageEnemy(enemyID string, amount float64, _ string) bool {
	if e.phase != Playing || e.foe == nil || e.foe.InstanceID != enemyID {
		return false
	}
	e.damageEnemy(enemyID, math.Floor(amount))
	return true
}

// HealPlayer restores amount health, clamped to max.
func (e *Engine) HealPlayer(amount float64) { e.healPlayer(amount) }

// PlayerStats returns the current finalized stat snapshot.
func (e *Engine) PlayerStats() stats.PlayerStats { return e.playerStats }

// Coins returns the current balance.
func (e *Engine) Coins() float64 { return e.run.Coins }

// AddCoins credits (or debits) the balance, flooring at zero.
func (e *Engine) AddCoins(amount float64) {
	e.run.Coins += amount
	if e.run.Coins < 0 {
		e.run.Coins = 0
	}
}

// Stage returns the current stage number.
func (e *Engine) Stage() int { return e.run.Stage }

// Effects returns the transient effect registry.
func (e *Engine) Effects() *effect.Registry { return e.effects }

// Schedule queues fn on the simulation clock.
func (e *Engine) Schedule(delay time.Duration, fn func()) (cancel func()) {
	return e.queue.After(delay, fn)
}

// Random returns the engine's random source.
func (e *Engine) Random() rng.Source { return e.src }

// Log appends a combat log line under the named category.
func (e *Engine) Log(category, message string) {
	e.log(LogCategory(category), message)
}

// Cue emits an advisory visual cue.
func (e *Engine) Cue(kind string, amount float64) { e.cue(kind, amount) }

// event.Sink implementation. Consequences see the engine through this
// surface only.

// HealPlayerPercent restores the fraction of max health; a negative fraction
// wounds instead but never kills.
func (e *Engine) HealPlayerPercent(p float64) {
	if p >= 0 {
		e.healPlayer(e.playerStats.MaxHealth * p)
		return
	}
	e.playerHealth += e.playerStats.MaxHealth * p
	if e.playerHealth < 1 {
		e.playerHealth = 1
	}
}

// DamageEnemyPercent deals the fraction of the live enemy's max health.
func (e *Engine) DamageEnemyPercent(p float64) {
	if e.foe == nil || e.foe.IsDead() {
		return
	}
	e.foe.ApplyDamage(math.Floor(e.foe.MaxHealth * p))
}

// GrantItem mints the template at the given rarity into the inventory,
// auto-equipping when its slot is empty.
func (e *Engine) GrantItem(templateID string, rarity item.Rarity) {
	tpl, ok := e.items.Get(templateID)
	if !ok {
		e.logger.Warn("event granted unknown item", zap.String("template", templateID))
		return
	}
	inst := item.Mint(tpl, rarity)
	if !e.equipment.AutoEquip(inst) {
		e.inventory = append(e.inventory, inst)
	}
	e.log(LogItem, fmt.Sprintf("Received %s (%s).", tpl.Name, rarity))
	e.recompute()
}

// ApplyBoon installs an event stat boon; duration 0 lasts the rest of the
// run (and survives ascension).
func (e *Engine) ApplyBoon(key, name string, mods []stats.Modifier, duration time.Duration) {
	e.effects.ApplyStatBoon(key, name, mods, duration)
	e.recompute()
}

// TeleportSubstages jumps forward within the realm, capped at the boss.
func (e *Engine) TeleportSubstages(n int) {
	e.run.SubStage += n
	if e.run.SubStage > e.cfg.BossSubstage {
		e.run.SubStage = e.cfg.BossSubstage
	}
	if e.run.SubStage < 1 {
		e.run.SubStage = 1
	}
}

// SetFlag records a run flag for flag-gated event pools.
func (e *Engine) SetFlag(flag string) { e.run.EventFlags[flag] = true }
