// Package loot rolls the rewards for a defeated enemy: a luck-scaled gold
// payout and zero or more item drops with luck-derived rarities.
package loot

import (
	"math"

	"github.com/riftward/riftward/internal/game/item"
	"github.com/riftward/riftward/internal/game/rng"
)

// Rarity odds grow with luck above the 1.0 baseline.
const (
	legendaryPerLuck = 0.25
	rarePerLuck      = 0.5
)

// GoldReward returns the coins paid for a kill: floor(coinReward * effectiveLuck).
//
// Precondition: coinReward >= 0; effectiveLuck > 0.
// Postcondition: Returns a whole number >= 0.
func GoldReward(coinReward, effectiveLuck float64) float64 {
	return math.Floor(coinReward * effectiveLuck)
}

// RollRarity rolls an item rarity from luck: legendary is checked first at
// (luck-1)*0.25, then rare at (luck-1)*0.5, defaulting to common.
//
// Precondition: src must be non-nil.
func RollRarity(luck float64, src rng.Source) item.Rarity {
	bonus := luck - 1
	if bonus < 0 {
		bonus = 0
	}
	if src.Float64() < bonus*legendaryPerLuck {
		return item.Legendary
	}
	if src.Float64() < bonus*rarePerLuck {
		return item.Rare
	}
	return item.Common
}

// RollDrops rolls item drops for one kill. The drop budget is
// effectiveLuck - 1: every full point is a guaranteed drop attempt and the
// fractional remainder is one probabilistic attempt. Each successful attempt
// mints a uniformly random template at a rarity rolled from rarityLuck.
//
// Precondition: catalog must be non-nil and non-empty; src must be non-nil.
// Postcondition: Returns at least floor(effectiveLuck-1) instances when
// effectiveLuck > 1, and none when effectiveLuck <= 1.
func RollDrops(catalog *item.Catalog, effectiveLuck, rarityLuck float64, src rng.Source) []*item.Instance {
	templates := catalog.All()
	if len(templates) == 0 {
		return nil
	}
	var drops []*item.Instance
	for chance := effectiveLuck - 1; chance > 0; chance-- {
		p := chance
		if p > 1 {
			p = 1
		}
		if src.Float64() >= p {
			continue
		}
		tpl := templates[src.Intn(len(templates))]
		drops = append(drops, item.Mint(tpl, RollRarity(rarityLuck, src)))
	}
	return drops
}
