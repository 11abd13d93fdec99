// Package effect tracks transient combat modifiers: timed buffs and debuffs,
// consumable charges (guaranteed crits, enemy misses, damage shield), and
// damage-over-time stacks. The registry keeps two views in step: a UI-facing
// list of named effects with start time and duration, and a logic-facing
// aggregate consumed directly by the tick scheduler and stat pipeline.
package effect

import (
	"time"

	"github.com/riftward/riftward/internal/game/stats"
)

// Scheduler schedules a callback after a simulated delay and returns a cancel
// function. The engine's pending-action queue implements it, so every expiry
// runs on the same tick clock as combat.
type Scheduler interface {
	After(delay time.Duration, fn func()) (cancel func())
}

// Clock reports elapsed simulation time. Used only to stamp UI-facing
// ActiveEffects for countdown display.
type Clock func() time.Duration

// ActiveEffect is the UI-facing record of one named effect.
type ActiveEffect struct {
	Key       string
	Name      string
	AppliedAt time.Duration
	Duration  time.Duration // 0 = permanent boon
}

// CombatModifiers is the logic-facing aggregate of every active effect,
// read each tick by the combat loop.
type CombatModifiers struct {
	Frozen           bool
	Frenzy           bool
	AttackPowerBuff  float64
	AttackSpeedBuff  float64
	CritChanceBuff   float64
	CritDamageBuff   float64
	LuckBuff         float64
	EnemySpeedDebuff float64
	EnemyPowerDebuff float64
	ReflectPercent   float64
	DamageShield     float64
	GuaranteedCrits  int
	EnemyMissCharges int
}

// entry is one applied effect: how to undo exactly the delta it applied, and
// how to cancel its pending expiry.
type entry struct {
	effect ActiveEffect
	revert func(*Registry)
	cancel func()
}

// Registry holds all transient effects for one run.
// Not safe for concurrent use; the single-threaded engine serialises access.
type Registry struct {
	sched Scheduler
	clock Clock

	entries map[string]*entry
	order   []string // insertion order of live keys, for stable UI listing

	frozenCount int
	frenzyCount int

	attackPowerBuff  float64
	attackSpeedBuff  float64
	critChanceBuff   float64
	critDamageBuff   float64
	luckBuff         float64
	enemySpeedDebuff float64
	enemyPowerDebuff float64
	reflectPercent   float64

	damageShield     float64
	guaranteedCrits  int
	enemyMissCharges int

	statMods map[string][]stats.Modifier // pipeline-facing boons keyed like entries

	dots []*DoT
}

// NewRegistry creates an empty Registry bound to the given scheduler and clock.
//
// Precondition: sched and clock must be non-nil.
func NewRegistry(sched Scheduler, clock Clock) *Registry {
	return &Registry{
		sched:    sched,
		clock:    clock,
		entries:  make(map[string]*entry),
		statMods: make(map[string][]stats.Modifier),
	}
}

// Modifiers returns a snapshot of the logic-facing aggregate.
func (r *Registry) Modifiers() CombatModifiers {
	return CombatModifiers{
		Frozen:           r.frozenCount > 0,
		Frenzy:           r.frenzyCount > 0,
		AttackPowerBuff:  r.attackPowerBuff,
		AttackSpeedBuff:  r.attackSpeedBuff,
		CritChanceBuff:   r.critChanceBuff,
		CritDamageBuff:   r.critDamageBuff,
		LuckBuff:         r.luckBuff,
		EnemySpeedDebuff: r.enemySpeedDebuff,
		EnemyPowerDebuff: r.enemyPowerDebuff,
		ReflectPercent:   r.reflectPercent,
		DamageShield:     r.damageShield,
		GuaranteedCrits:  r.guaranteedCrits,
		EnemyMissCharges: r.enemyMissCharges,
	}
}

// Active returns the UI-facing effect list in application order.
func (r *Registry) Active() []ActiveEffect {
	out := make([]ActiveEffect, 0, len(r.order))
	for _, key := range r.order {
		if e, ok := r.entries[key]; ok {
			out = append(out, e.effect)
		}
	}
	return out
}

// StatModifiers returns the pipeline-facing modifiers of every active boon,
// flattened for aggregate-then-apply consumption by stats.Compute.
func (r *Registry) StatModifiers() []stats.Modifier {
	var out []stats.Modifier
	for _, key := range r.order {
		if mods, ok := r.statMods[key]; ok {
			out = append(out, mods...)
		}
	}
	return out
}

// Boon couples a permanent stat boon's identity with its modifiers, so the
// run lifecycle can carry boons across a full reset.
type Boon struct {
	Key  string
	Name string
	Mods []stats.Modifier
}

// PermanentBoons returns the active boons with no expiry, in application
// order. Timed effects are excluded.
func (r *Registry) PermanentBoons() []Boon {
	var out []Boon
	for _, key := range r.order {
		e, ok := r.entries[key]
		if !ok || e.effect.Duration != 0 {
			continue
		}
		if mods, ok := r.statMods[key]; ok {
			out = append(out, Boon{Key: key, Name: e.effect.Name, Mods: append([]stats.Modifier(nil), mods...)})
		}
	}
	return out
}

// apply installs an effect under key. A re-application under the same key
// first reverts the previous delta and cancels its expiry, so an ability
// re-trigger replaces its own effect without touching other abilities'
// timers. duration 0 means permanent (no expiry scheduled).
func (r *Registry) apply(key, name string, duration time.Duration, do func(*Registry), revert func(*Registry)) {
	r.remove(key)

	do(r)
	e := &entry{
		effect: ActiveEffect{Key: key, Name: name, AppliedAt: r.clock(), Duration: duration},
		revert: revert,
	}
	if duration > 0 {
		e.cancel = r.sched.After(duration, func() { r.remove(key) })
	}
	r.entries[key] = e
	r.order = append(r.order, key)
}

// remove reverts and discards the effect under key, cancelling its expiry.
// No-op when key is absent.
func (r *Registry) remove(key string) {
	e, ok := r.entries[key]
	if !ok {
		return
	}
	if e.cancel != nil {
		e.cancel()
	}
	e.revert(r)
	delete(r.entries, key)
	delete(r.statMods, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Remove discards the effect under key, reverting its delta.
func (r *Registry) Remove(key string) { r.remove(key) }

// Clear synchronously reverts every effect, cancels every pending expiry,
// and drops all DoT stacks and consumable charges. Called on every full run
// reset so no timer from one run can leak an effect into the next.
//
// Postcondition: Modifiers() is the zero aggregate; Active() is empty.
func (r *Registry) Clear() {
	for _, key := range append([]string(nil), r.order...) {
		r.remove(key)
	}
	r.damageShield = 0
	r.guaranteedCrits = 0
	r.enemyMissCharges = 0
	r.dots = nil
}
