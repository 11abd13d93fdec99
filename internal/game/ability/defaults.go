package ability

import (
	"time"

	"github.com/riftward/riftward/internal/game/effect"
	"github.com/riftward/riftward/internal/game/upgrade"
)

// DefaultAbilities returns the built-in ability kit. Class-tagged abilities
// appear only in that class's kit; the rest are shared.
func DefaultAbilities() []*Ability {
	return []*Ability{
		{
			ID:              "power_strike",
			Name:            "Power Strike",
			Description:     "Wind up and deliver a crushing blow for triple damage.",
			Emoji:           "💥",
			ClassID:         "warrior",
			Cooldown:        8 * time.Second,
			BaseCost:        15,
			CostStageFactor: 0.5,
			Handler:         StrikeHandler{Multiplier: 3.0, Delay: 300 * time.Millisecond},
		},
		{
			ID:              "battle_rage",
			Name:            "Battle Rage",
			Description:     "Fury sharpens every swing for a short while.",
			Emoji:           "😤",
			ClassID:         "warrior",
			Cooldown:        20 * time.Second,
			BaseCost:        25,
			CostStageFactor: 0.5,
			CostCastFactor:  1.15,
			Handler:         BuffHandler{Duration: 10 * time.Second, AttackPower: 0.5},
		},
		{
			ID:              "flurry",
			Name:            "Flurry",
			Description:     "A blur of five rapid strikes.",
			Emoji:           "🗡️",
			ClassID:         "rogue",
			Cooldown:        12 * time.Second,
			BaseCost:        20,
			CostStageFactor: 0.5,
			Handler:         BurstHandler{Hits: 5, Interval: 200 * time.Millisecond, Multiplier: 1.0},
		},
		{
			ID:              "shadow_veil",
			Name:            "Shadow Veil",
			Description:     "Slip into shadow; the next three enemy attacks find nothing.",
			Emoji:           "🌑",
			ClassID:         "rogue",
			Cooldown:        25 * time.Second,
			BaseCost:        30,
			CostStageFactor: 0.5,
			Handler:         MissChargeHandler{Charges: 3},
		},
		{
			ID:              "frost_nova",
			Name:            "Frost Nova",
			Description:     "Encase the enemy in ice, halting its attacks.",
			Emoji:           "❄️",
			ClassID:         "mystic",
			Cooldown:        18 * time.Second,
			BaseCost:        25,
			CostStageFactor: 0.5,
			Handler:         FreezeHandler{Duration: 4 * time.Second},
		},
		{
			ID:              "venom_brand",
			Name:            "Venom Brand",
			Description:     "Sear a toxic rune into the enemy's flesh.",
			Emoji:           "🧪",
			ClassID:         "mystic",
			Cooldown:        10 * time.Second,
			BaseCost:        20,
			CostStageFactor: 0.5,
			Handler:         DoTHandler{Kind: effect.Poison, Multiplier: 5.0},
		},
		{
			ID:              "second_wind",
			Name:            "Second Wind",
			Description:     "Catch your breath and recover a third of your health.",
			Emoji:           "💨",
			Cooldown:        30 * time.Second,
			BaseCost:        20,
			CostStageFactor: 0.5,
			CostCastFactor:  1.2,
			Handler:         HealHandler{Percent: 0.30},
		},
		{
			ID:              "aegis",
			Name:            "Aegis",
			Description:     "A ward that soaks incoming blows.",
			Emoji:           "🛡️",
			Cooldown:        25 * time.Second,
			BaseCost:        25,
			CostStageFactor: 0.5,
			Handler:         ShieldHandler{Percent: 0.25},
		},
		{
			ID:              "haste",
			Name:            "Haste",
			Description:     "Time bends; you attack twice as fast.",
			Emoji:           "⏩",
			Cooldown:        30 * time.Second,
			BaseCost:        35,
			CostStageFactor: 0.5,
			Unlock:          &upgrade.UnlockCriteria{TotalLevels: 10},
			Handler:         FrenzyHandler{Duration: 8 * time.Second},
		},
		{
			ID:              "expose_weakness",
			Name:            "Expose Weakness",
			Description:     "Read the enemy's stance and blunt its blows.",
			Emoji:           "🔍",
			Cooldown:        20 * time.Second,
			BaseCost:        20,
			CostStageFactor: 0.5,
			Handler:         BuffHandler{Duration: 10 * time.Second, EnemyPower: 0.3},
		},
		{
			ID:              "deadeye",
			Name:            "Deadeye",
			Description:     "Perfect focus: your next two hits strike true.",
			Emoji:           "🎯",
			Cooldown:        22 * time.Second,
			BaseCost:        30,
			CostStageFactor: 0.5,
			Unlock:          &upgrade.UnlockCriteria{TotalLevels: 15},
			Handler:         CritChargeHandler{Charges: 2},
		},
		{
			ID:              "midas_gamble",
			Name:            "Midas Gamble",
			Description:     "Stake your coins on a coin flip; heads pays triple.",
			Emoji:           "🎲",
			Cooldown:        15 * time.Second,
			BaseCost:        50,
			CostStageFactor: 1.0,
			Handler:         GambleHandler{WinMultiplier: 3.0},
		},
		{
			ID:          "liquidate_assets",
			Name:        "Liquidate Assets",
			Description: "Hurl your entire fortune at the enemy as raw force.",
			Emoji:       "💰",
			Cooldown:    60 * time.Second,
			// Cost fields unused: activation consumes the whole balance.
			BaseCost:       1,
			SpendsAllCoins: true,
			Unlock:         &upgrade.UnlockCriteria{TotalLevels: 20},
			Handler:        LiquidateHandler{DamagePerCoin: 2.0},
		},
	}
}
