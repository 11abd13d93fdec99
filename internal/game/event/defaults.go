package event

import "github.com/riftward/riftward/internal/game/ruleset"

// DefaultEvents returns the built-in encounter catalog: a common pool, two
// realm-tagged encounters, and a flag-gated follow-up chain seeded by the
// wandering cartographer.
func DefaultEvents() []*GameEvent {
	return []*GameEvent{
		{
			ID:          "roadside_shrine",
			Name:        "Roadside Shrine",
			Description: "A mossy shrine hums faintly. Offerings glint in its bowl.",
			Emoji:       "⛩️",
			Options: []Option{
				{
					ID: "pray", Label: "Kneel and pray",
					Consequences: []Consequence{{HealPercent: 0.30}},
				},
				{
					ID: "offer", Label: "Offer 25 coins", Cost: 25,
					Consequences: []Consequence{{Boon: &BoonDef{
						Name:       "Shrine's Favor",
						DurationMs: 60_000,
						Modifiers:  []ruleset.ModifierDef{{Stat: "luck", Flat: 0.25}},
					}}},
				},
				{ID: "leave", Label: "Walk on"},
			},
		},
		{
			ID:          "abandoned_cache",
			Name:        "Abandoned Cache",
			Description: "A half-buried strongbox, its lock already broken.",
			Emoji:       "📦",
			Options: []Option{
				{
					ID: "loot", Label: "Rifle through it",
					Consequences: []Consequence{{Coins: 40}},
				},
				{
					ID: "search", Label: "Search thoroughly",
					Consequences: []Consequence{{
						Script: `
if engine.coins() >= 100 then
  engine.grant_coins(20)
  engine.log("Your practiced eye finds a hidden seam: 20 more coins.")
else
  engine.grant_coins(60)
  engine.log("Desperation sharpens the search: 60 coins!")
end`,
					}},
				},
			},
		},
		{
			ID:          "wandering_cartographer",
			Name:        "Wandering Cartographer",
			Description: "A traveler offers to mark a shortcut on your map.",
			Emoji:       "🗺️",
			Options: []Option{
				{
					ID: "buy", Label: "Buy the map for 50 coins", Cost: 50,
					Consequences: []Consequence{
						{TeleportSubstages: 2},
						{SetFlag: "knows_cartographer"},
					},
				},
				{ID: "decline", Label: "Decline politely"},
			},
		},
		{
			ID:           "cartographers_debt",
			Name:         "The Cartographer's Debt",
			Description:  "The traveler again, flushed and grateful: your coins saved their hide.",
			Emoji:        "🧭",
			RequiresFlag: "knows_cartographer",
			Options: []Option{
				{
					ID: "accept", Label: "Accept their thanks",
					Consequences: []Consequence{
						{Coins: 100},
						{ItemTemplate: "lucky_coin", ItemRarity: "rare"},
					},
				},
			},
		},
		{
			ID:          "smoldering_forge",
			Name:        "Smoldering Forge",
			Description: "An abandoned forge still glows. The coals whisper of sharper edges.",
			Emoji:       "⚒️",
			RealmTag:    "ember",
			Options: []Option{
				{
					ID: "quench", Label: "Quench your blade in the coals", Cost: 30,
					Consequences: []Consequence{{Boon: &BoonDef{
						Name:      "Forge-Tempered",
						Modifiers: []ruleset.ModifierDef{{Stat: "attackPower", Percent: 0.10}},
					}}},
				},
				{
					ID: "scavenge", Label: "Scavenge the scrap",
					Consequences: []Consequence{{Coins: 20}},
				},
			},
		},
		{
			ID:          "tidal_pool",
			Name:        "Luminous Tidal Pool",
			Description: "Something large stirs beneath the glowing water.",
			Emoji:       "🫧",
			RealmTag:    "deep",
			Options: []Option{
				{
					ID: "reach", Label: "Reach into the water",
					Consequences: []Consequence{
						{DamageEnemyPercent: 0.25},
						{HealPercent: -0.10},
					},
				},
				{ID: "back_away", Label: "Back away slowly"},
			},
		},
		{
			ID:          "dubious_merchant",
			Name:        "Dubious Merchant",
			Description: "A cloaked figure spreads suspiciously fine wares on a blanket.",
			Emoji:       "🛒",
			Options: []Option{
				{
					ID: "charm", Label: "Buy the glowing charm (75 coins)", Cost: 75,
					Consequences: []Consequence{{ItemTemplate: "ember_charm", ItemRarity: "rare"}},
				},
				{
					ID: "haggle", Label: "Haggle aggressively",
					Consequences: []Consequence{{
						Script: `
engine.log("The merchant mutters a curse and packs up.")
engine.set_flag("offended_merchant")`,
					}},
				},
			},
		},
		{
			ID:          "blood_pact",
			Name:        "Blood Pact",
			Description: "A voice from nowhere offers power for a price paid in red.",
			Emoji:       "🩸",
			Options: []Option{
				{
					ID: "accept", Label: "Seal the pact",
					Consequences: []Consequence{
						{HealPercent: -0.25},
						{Boon: &BoonDef{
							Name:       "Pact-Marked",
							DurationMs: 120_000,
							Modifiers: []ruleset.ModifierDef{
								{Stat: "attackPower", Percent: 0.20},
								{Stat: "critDamage", Flat: 0.20},
							},
						}},
					},
				},
				{ID: "refuse", Label: "Refuse"},
			},
		},
	}
}
