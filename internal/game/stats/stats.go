// Package stats implements the layered stat-calculation pipeline. The
// pipeline is a pure function of its inputs: class base values, the evolve
// bonus, upgrade levels, equipped-item bonuses, active-effect modifiers, and
// the permanent win boon. It is recomputed in full whenever any input changes.
package stats

import "math"

// Stat identifies one numeric field of PlayerStats.
type Stat int

const (
	AttackPower Stat = iota
	AttackSpeed
	MaxHealth
	CritChance
	CritDamage
	Luck
	Accuracy
	DamageReduction
)

// String returns the canonical lower-camel name used in content files.
func (s Stat) String() string {
	switch s {
	case AttackPower:
		return "attackPower"
	case AttackSpeed:
		return "attackSpeed"
	case MaxHealth:
		return "maxHealth"
	case CritChance:
		return "critChance"
	case CritDamage:
		return "critDamage"
	case Luck:
		return "luck"
	case Accuracy:
		return "accuracy"
	case DamageReduction:
		return "damageReduction"
	default:
		return "unknown"
	}
}

// ParseStat maps a content-file stat name to its Stat. The second return is
// false for unrecognized names.
func ParseStat(name string) (Stat, bool) {
	for s := AttackPower; s <= DamageReduction; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// IsPercentage reports whether the stat is a ratio in [0,1]-space rather than
// a magnitude. Percentage stats on items scale with rarity only, never with
// upgrade levels.
func (s Stat) IsPercentage() bool {
	switch s {
	case CritChance, Accuracy, DamageReduction:
		return true
	default:
		return false
	}
}

// PlayerStats is one finalized snapshot of the player's derived stats.
// Snapshots are never mutated in place; every change to an input rebuilds the
// whole struct through Compute.
type PlayerStats struct {
	AttackPower     float64
	AttackSpeed     float64
	MaxHealth       float64
	CritChance      float64
	CritDamage      float64
	Luck            float64
	Accuracy        float64
	DamageReduction float64
	EvolveBonus     float64
}

// get returns the value of stat s.
func (p PlayerStats) get(s Stat) float64 {
	switch s {
	case AttackPower:
		return p.AttackPower
	case AttackSpeed:
		return p.AttackSpeed
	case MaxHealth:
		return p.MaxHealth
	case CritChance:
		return p.CritChance
	case CritDamage:
		return p.CritDamage
	case Luck:
		return p.Luck
	case Accuracy:
		return p.Accuracy
	case DamageReduction:
		return p.DamageReduction
	default:
		return 0
	}
}

// set assigns the value of stat s.
func (p *PlayerStats) set(s Stat, v float64) {
	switch s {
	case AttackPower:
		p.AttackPower = v
	case AttackSpeed:
		p.AttackSpeed = v
	case MaxHealth:
		p.MaxHealth = v
	case CritChance:
		p.CritChance = v
	case CritDamage:
		p.CritDamage = v
	case Luck:
		p.Luck = v
	case Accuracy:
		p.Accuracy = v
	case DamageReduction:
		p.DamageReduction = v
	}
}

// finalize floors the integer-valued stats and clamps the ratio stats.
//
// Postcondition: CritChance and Accuracy are in [0, 1]; DamageReduction is in
// [0, 0.9]; AttackPower and MaxHealth are whole numbers >= 0.
func (p *PlayerStats) finalize() {
	p.AttackPower = math.Floor(math.Max(p.AttackPower, 0))
	p.MaxHealth = math.Floor(math.Max(p.MaxHealth, 0))
	p.CritChance = clamp(p.CritChance, 0, 1)
	p.Accuracy = clamp(p.Accuracy, 0, 1)
	p.DamageReduction = clamp(p.DamageReduction, 0, 0.9)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
