package stats

// Modifier is one flat and/or percent adjustment to a single stat. Content
// files and active effects both express their bonuses as Modifiers.
type Modifier struct {
	Stat    Stat
	Flat    float64
	Percent float64 // 0.25 = +25%
}

// ModifierSet accumulates modifiers per stat so that a whole batch can be
// applied in one pass: flats are summed first, then the summed percent is
// applied once multiplicatively. Aggregating before applying prevents
// order-dependent compounding when several simultaneous sources touch the
// same stat.
type ModifierSet struct {
	flat    map[Stat]float64
	percent map[Stat]float64
}

// NewModifierSet returns an empty ModifierSet.
func NewModifierSet() *ModifierSet {
	return &ModifierSet{
		flat:    make(map[Stat]float64),
		percent: make(map[Stat]float64),
	}
}

// Add accumulates m into the set.
func (ms *ModifierSet) Add(m Modifier) {
	ms.flat[m.Stat] += m.Flat
	ms.percent[m.Stat] += m.Percent
}

// AddAll accumulates every modifier in mods.
func (ms *ModifierSet) AddAll(mods []Modifier) {
	for _, m := range mods {
		ms.Add(m)
	}
}

// Apply folds the accumulated modifiers into p: for each touched stat,
// value = (value + sumFlat) * (1 + sumPercent).
//
// Postcondition: stats not present in the set are unchanged.
func (ms *ModifierSet) Apply(p *PlayerStats) {
	for s := AttackPower; s <= DamageReduction; s++ {
		f, hasFlat := ms.flat[s]
		pc, hasPct := ms.percent[s]
		if !hasFlat && !hasPct {
			continue
		}
		p.set(s, (p.get(s)+f)*(1+pc))
	}
}
