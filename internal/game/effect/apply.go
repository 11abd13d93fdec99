package effect

import (
	"time"

	"github.com/riftward/riftward/internal/game/stats"
)

// ApplyFreeze holds the enemy's attack and charge timers for duration.
// Overlapping freezes from different keys compose: the enemy stays frozen
// until every freeze has expired.
func (r *Registry) ApplyFreeze(key, name string, duration time.Duration) {
	r.apply(key, name, duration,
		func(r *Registry) { r.frozenCount++ },
		func(r *Registry) { r.frozenCount-- })
}

// ApplyFrenzy doubles the player's effective attack speed for duration.
func (r *Registry) ApplyFrenzy(key, name string, duration time.Duration) {
	r.apply(key, name, duration,
		func(r *Registry) { r.frenzyCount++ },
		func(r *Registry) { r.frenzyCount-- })
}

// ApplyAttackPowerBuff adds amount (0.5 = +50%) to the attack power buff for
// duration. Buffs under different keys stack additively and expire
// independently; expiry reverts only this application's amount.
func (r *Registry) ApplyAttackPowerBuff(key, name string, amount float64, duration time.Duration) {
	r.apply(key, name, duration,
		func(r *Registry) { r.attackPowerBuff += amount },
		func(r *Registry) { r.attackPowerBuff -= amount })
}

// ApplyAttackSpeedBuff adds amount to the attack speed buff for duration.
func (r *Registry) ApplyAttackSpeedBuff(key, name string, amount float64, duration time.Duration) {
	r.apply(key, name, duration,
		func(r *Registry) { r.attackSpeedBuff += amount },
		func(r *Registry) { r.attackSpeedBuff -= amount })
}

// ApplyCritBuff adds chance to the crit chance buff and damage to the crit
// damage buff for duration.
func (r *Registry) ApplyCritBuff(key, name string, chance, damage float64, duration time.Duration) {
	r.apply(key, name, duration,
		func(r *Registry) { r.critChanceBuff += chance; r.critDamageBuff += damage },
		func(r *Registry) { r.critChanceBuff -= chance; r.critDamageBuff -= damage })
}

// ApplyLuckBuff adds amount to the luck buff for duration.
func (r *Registry) ApplyLuckBuff(key, name string, amount float64, duration time.Duration) {
	r.apply(key, name, duration,
		func(r *Registry) { r.luckBuff += amount },
		func(r *Registry) { r.luckBuff -= amount })
}

// ApplyEnemySpeedDebuff slows the enemy's attack and charge timers by amount
// (0.5 = 50% longer intervals) for duration.
func (r *Registry) ApplyEnemySpeedDebuff(key, name string, amount float64, duration time.Duration) {
	r.apply(key, name, duration,
		func(r *Registry) { r.enemySpeedDebuff += amount },
		func(r *Registry) { r.enemySpeedDebuff -= amount })
}

// ApplyEnemyPowerDebuff reduces enemy strike damage by amount (0.3 = -30%)
// for duration.
func (r *Registry) ApplyEnemyPowerDebuff(key, name string, amount float64, duration time.Duration) {
	r.apply(key, name, duration,
		func(r *Registry) { r.enemyPowerDebuff += amount },
		func(r *Registry) { r.enemyPowerDebuff -= amount })
}

// ApplyReflect reflects percent of post-mitigation strike damage back to the
// enemy for duration.
func (r *Registry) ApplyReflect(key, name string, percent float64, duration time.Duration) {
	r.apply(key, name, duration,
		func(r *Registry) { r.reflectPercent += percent },
		func(r *Registry) { r.reflectPercent -= percent })
}

// ApplyStatBoon installs pipeline-facing stat modifiers under key for
// duration; duration 0 is a permanent boon that survives until Clear.
func (r *Registry) ApplyStatBoon(key, name string, mods []stats.Modifier, duration time.Duration) {
	r.apply(key, name, duration,
		func(r *Registry) { r.statMods[key] = mods },
		func(r *Registry) {})
}

// AddDamageShield grants a pool of shield points that absorb enemy strike
// damage before health. Pools from any source merge; the shield has no
// timer and persists until consumed or the run resets.
func (r *Registry) AddDamageShield(amount float64) {
	if amount > 0 {
		r.damageShield += amount
	}
}

// AbsorbDamage routes dmg through the shield pool and returns the unabsorbed
// remainder.
//
// Postcondition: Returns a value in [0, dmg]; the shield never goes negative.
func (r *Registry) AbsorbDamage(dmg float64) float64 {
	if dmg <= 0 || r.damageShield <= 0 {
		return dmg
	}
	if r.damageShield >= dmg {
		r.damageShield -= dmg
		return 0
	}
	rest := dmg - r.damageShield
	r.damageShield = 0
	return rest
}

// AddGuaranteedCrits grants n charges, each forcing one non-crit player hit
// to crit.
func (r *Registry) AddGuaranteedCrits(n int) {
	if n > 0 {
		r.guaranteedCrits += n
	}
}

// ConsumeGuaranteedCrit spends one charge; reports whether one was available.
func (r *Registry) ConsumeGuaranteedCrit() bool {
	if r.guaranteedCrits <= 0 {
		return false
	}
	r.guaranteedCrits--
	return true
}

// AddEnemyMissCharges grants n charges, each making one enemy strike miss.
func (r *Registry) AddEnemyMissCharges(n int) {
	if n > 0 {
		r.enemyMissCharges += n
	}
}

// ConsumeEnemyMissCharge spends one charge; reports whether one was available.
func (r *Registry) ConsumeEnemyMissCharge() bool {
	if r.enemyMissCharges <= 0 {
		return false
	}
	r.enemyMissCharges--
	return true
}
