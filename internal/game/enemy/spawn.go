package enemy

import (
	"math"

	"github.com/riftward/riftward/internal/game/rng"
)

// Stage-scaling curve: each stage multiplies enemy health, power, and reward;
// each ascension compounds a further global multiplier on top.
const (
	healthGrowthPerStage = 1.35
	powerGrowthPerStage  = 1.25
	rewardGrowthPerStage = 1.30
	substageGrowth       = 0.06 // per substage within a realm
	ascensionGrowth      = 0.75 // per ascension, applied to health and power

	bossHealthMultiplier = 4.0
	bossPowerMultiplier  = 1.6
	bossRewardMultiplier = 6.0
)

// archetypeWeights gives Standard the majority share; the five twists split
// the remainder evenly.
var archetypeWeights = map[Archetype]int{
	Standard:   50,
	Swift:      10,
	Heavy:      10,
	Arcane:     10,
	Vampiric:   10,
	Juggernaut: 10,
}

// Spawner generates live enemies for a run position.
type Spawner struct {
	catalog *Catalog
	src     rng.Source
}

// NewSpawner creates a Spawner over catalog using src for template and
// archetype selection.
//
// Precondition: catalog and src must be non-nil.
func NewSpawner(catalog *Catalog, src rng.Source) *Spawner {
	return &Spawner{catalog: catalog, src: src}
}

// Spawn generates the enemy for the given realm tag and run position.
// Substages 1..bossSubstage-1 are minions with a rolled archetype; the boss
// substage spawns a boss (always Standard — bosses are defined, not rolled).
//
// Precondition: stage >= 1, substage >= 1, ascension >= 0.
// Postcondition: Returns a non-nil enemy at full health, or nil if the
// catalog has no usable template.
func (s *Spawner) Spawn(realmTag string, stage, substage, bossSubstage, ascension int) *Enemy {
	isBoss := substage >= bossSubstage
	var pool []*Template
	if isBoss {
		pool = s.catalog.Bosses(realmTag)
	} else {
		pool = s.catalog.Minions(realmTag)
	}
	if len(pool) == 0 {
		return nil
	}
	tpl := *pool[s.src.Intn(len(pool))]

	scale := func(base, perStage float64) float64 {
		v := base * math.Pow(perStage, float64(stage-1))
		v *= 1 + substageGrowth*float64(substage-1)
		return v
	}
	difficulty := 1 + ascensionGrowth*float64(ascension)

	tpl.MaxHealth = math.Floor(scale(tpl.MaxHealth, healthGrowthPerStage) * difficulty)
	tpl.AttackPower = math.Floor(scale(tpl.AttackPower, powerGrowthPerStage) * difficulty)
	tpl.CoinReward = math.Floor(scale(tpl.CoinReward, rewardGrowthPerStage))

	if isBoss {
		tpl.Boss = true
		tpl.MaxHealth = math.Floor(tpl.MaxHealth * bossHealthMultiplier)
		tpl.AttackPower = math.Floor(tpl.AttackPower * bossPowerMultiplier)
		tpl.CoinReward = math.Floor(tpl.CoinReward * bossRewardMultiplier)
		return instantiate(tpl, Standard)
	}
	return instantiate(tpl, s.rollArchetype())
}

// rollArchetype picks an archetype by weight.
func (s *Spawner) rollArchetype() Archetype {
	total := 0
	for _, w := range archetypeWeights {
		total += w
	}
	roll := s.src.Intn(total)
	for _, a := range Archetypes() {
		roll -= archetypeWeights[a]
		if roll < 0 {
			return a
		}
	}
	return Standard
}
