package stats

// ClassBase is the stat-pipeline view of a player class: its base stats, the
// signature upgrade that drives specialization, and the two specialization
// modifier sets.
type ClassBase struct {
	ID                 string
	Base               PlayerStats
	SignatureUpgradeID string
	Novice             []Modifier
	Expert             []Modifier
}

// UpgradeContribution is the stat-pipeline view of one owned upgrade: which
// stat it feeds, how much per level, and whether the per-level amount is a
// flat or percent contribution.
type UpgradeContribution struct {
	ID       string
	Stat     Stat
	PerLevel float64
	Percent  bool
	Level    int
	Core     bool
}

// Specialization margins: the signature upgrade's level must exceed every
// other core upgrade's level by at least this much.
const (
	noviceMargin = 5
	expertMargin = 10
)

// Inputs bundles every source-of-truth value the pipeline consumes. Item and
// effect bonuses arrive pre-expressed as Modifiers (items scale themselves by
// rarity and upgrade level; effects aggregate their own stacks).
type Inputs struct {
	Class       ClassBase
	EvolveBonus float64
	Upgrades    []UpgradeContribution
	ItemMods    []Modifier
	EffectMods  []Modifier
	HasWinBoon  bool
}

// Compute derives a finalized PlayerStats snapshot from in. Pure and
// deterministic: identical inputs yield bit-identical outputs.
//
// Stage order (each stage consumes the previous stage's output):
// class base -> evolve bonus -> class modifier hook -> upgrade bonuses ->
// specialization -> item bonuses -> active effects -> win boon -> finalize.
//
// Postcondition: CritChance and Accuracy in [0,1]; DamageReduction in
// [0,0.9]; AttackPower and MaxHealth floored to whole numbers.
func Compute(in Inputs) PlayerStats {
	p := in.Class.Base

	applyEvolveBonus(&p, in.EvolveBonus)
	applyClassModifier(&p, in.Class)
	applyUpgrades(&p, in.Upgrades)
	applySpecialization(&p, in.Class, in.Upgrades)

	items := NewModifierSet()
	items.AddAll(in.ItemMods)
	items.Apply(&p)

	effects := NewModifierSet()
	effects.AddAll(in.EffectMods)
	effects.Apply(&p)

	if in.HasWinBoon {
		applyWinBoon(&p)
	}

	p.EvolveBonus = in.EvolveBonus
	p.finalize()
	return p
}

// applyEvolveBonus multiplies the three magnitude stats by (1+bonus) and adds
// bonus additively to the three fortune stats.
func applyEvolveBonus(p *PlayerStats, bonus float64) {
	if bonus == 0 {
		return
	}
	p.AttackPower *= 1 + bonus
	p.AttackSpeed *= 1 + bonus
	p.MaxHealth *= 1 + bonus
	p.CritChance += bonus
	p.CritDamage += bonus
	p.Luck += bonus
}

// applyClassModifier is the per-class passive scaling hook. Currently the
// identity for every class; kept as an explicit stage so the pipeline order
// stays visible when a class gains a passive.
func applyClassModifier(p *PlayerStats, _ ClassBase) {}

// applyUpgrades folds every owned upgrade's contribution into p. Flat amounts
// are summed per stat; percent amounts are summed per stat and applied once
// after the flats, so two +10% upgrades yield +20%, not +21%.
func applyUpgrades(p *PlayerStats, ups []UpgradeContribution) {
	set := NewModifierSet()
	for _, u := range ups {
		if u.Level <= 0 || u.PerLevel == 0 {
			continue
		}
		amount := u.PerLevel * float64(u.Level)
		if u.Percent {
			set.Add(Modifier{Stat: u.Stat, Percent: amount})
		} else {
			set.Add(Modifier{Stat: u.Stat, Flat: amount})
		}
	}
	set.Apply(p)
}

// applySpecialization applies the class's expert or novice modifier set when
// its signature upgrade's level leads every other core upgrade by the
// required margin. A tie for highest yields no specialization.
func applySpecialization(p *PlayerStats, class ClassBase, ups []UpgradeContribution) {
	margin, ok := specializationMargin(class.SignatureUpgradeID, ups)
	if !ok {
		return
	}
	var mods []Modifier
	switch {
	case margin >= expertMargin:
		mods = class.Expert
	case margin >= noviceMargin:
		mods = class.Novice
	default:
		return
	}
	set := NewModifierSet()
	set.AddAll(mods)
	set.Apply(p)
}

// specializationMargin returns how far the signature upgrade's level exceeds
// the highest sibling core upgrade. Unowned siblings count as level 0, so a
// signature-only build specializes once its level alone clears the margin.
// ok is false when the signature upgrade is absent or not strictly highest.
func specializationMargin(signatureID string, ups []UpgradeContribution) (int, bool) {
	signature := -1
	highestOther := 0
	for _, u := range ups {
		if !u.Core {
			continue
		}
		if u.ID == signatureID {
			signature = u.Level
			continue
		}
		if u.Level > highestOther {
			highestOther = u.Level
		}
	}
	if signature <= highestOther {
		return 0, false
	}
	return signature - highestOther, true
}

// applyWinBoon doubles every numeric stat. The permanent boon is granted once
// on the first run win; finalize re-clamps the ratio stats afterwards.
func applyWinBoon(p *PlayerStats) {
	p.AttackPower *= 2
	p.AttackSpeed *= 2
	p.MaxHealth *= 2
	p.CritChance *= 2
	p.CritDamage *= 2
	p.Luck *= 2
	p.Accuracy *= 2
	p.DamageReduction *= 2
}
