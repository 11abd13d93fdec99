package enemy

import "time"

// DefaultCatalog returns the built-in enemy templates used when no enemy
// content directory is configured. Tags line up with the default realm
// catalog's enemy tags; untagged realms fall back to the whole pool.
//
// Postcondition: the returned catalog always validates.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]*Template{
		{ID: "thorn_wolf", Name: "Thorn Wolf", Emoji: "🐺", Tag: "beast",
			MaxHealth: 40, AttackPower: 6, AttackInterval: 3300 * time.Millisecond,
			ChargeTime: 900 * time.Millisecond, CoinReward: 8},
		{ID: "marsh_lurker", Name: "Marsh Lurker", Emoji: "🐸", Tag: "venom",
			MaxHealth: 55, AttackPower: 5, AttackInterval: 3800 * time.Millisecond,
			ChargeTime: 1100 * time.Millisecond, CoinReward: 9},
		{ID: "tide_wraith", Name: "Tide Wraith", Emoji: "🌊", Tag: "deep",
			MaxHealth: 45, AttackPower: 7, AttackInterval: 3500 * time.Millisecond,
			ChargeTime: 1000 * time.Millisecond, CoinReward: 10},
		{ID: "cinder_imp", Name: "Cinder Imp", Emoji: "👹", Tag: "ember",
			MaxHealth: 35, AttackPower: 8, AttackInterval: 3000 * time.Millisecond,
			ChargeTime: 800 * time.Millisecond, CoinReward: 10},
		{ID: "frost_shade", Name: "Frost Shade", Emoji: "🧊", Tag: "frost",
			MaxHealth: 50, AttackPower: 6, AttackInterval: 3600 * time.Millisecond,
			ChargeTime: 1000 * time.Millisecond, CoinReward: 9},
		{ID: "gale_harpy", Name: "Gale Harpy", Emoji: "🦅", Tag: "wind",
			MaxHealth: 38, AttackPower: 7, AttackInterval: 3100 * time.Millisecond,
			ChargeTime: 850 * time.Millisecond, CoinReward: 9},
		{ID: "vault_sentinel", Name: "Vault Sentinel", Emoji: "🤖", Tag: "construct",
			MaxHealth: 70, AttackPower: 8, AttackInterval: 4200 * time.Millisecond,
			ChargeTime: 1300 * time.Millisecond, CoinReward: 12},
		{ID: "gloom_stalker", Name: "Gloom Stalker", Emoji: "🦇", Tag: "shade",
			MaxHealth: 42, AttackPower: 7, AttackInterval: 3200 * time.Millisecond,
			ChargeTime: 900 * time.Millisecond, CoinReward: 10},
		{ID: "crag_golem", Name: "Crag Golem", Emoji: "🗿", Tag: "stone",
			MaxHealth: 80, AttackPower: 9, AttackInterval: 4500 * time.Millisecond,
			ChargeTime: 1400 * time.Millisecond, CoinReward: 13},
		{ID: "rift_spawn", Name: "Rift Spawn", Emoji: "👾", Tag: "rift",
			MaxHealth: 60, AttackPower: 10, AttackInterval: 3400 * time.Millisecond,
			ChargeTime: 950 * time.Millisecond, CoinReward: 14},

		{ID: "alpha_direwolf", Name: "Alpha Direwolf", Emoji: "🐺", Tag: "beast", Boss: true,
			MaxHealth: 60, AttackPower: 8, AttackInterval: 3600 * time.Millisecond,
			ChargeTime: 1200 * time.Millisecond, CoinReward: 15,
			Special: &SpecialAttack{Name: "Rending Howl", Multiplier: 2.5, ChargeTime: 2000 * time.Millisecond}},
		{ID: "vault_warden", Name: "Vault Warden", Emoji: "🛡", Tag: "construct", Boss: true,
			MaxHealth: 90, AttackPower: 10, AttackInterval: 4200 * time.Millisecond,
			ChargeTime: 1500 * time.Millisecond, CoinReward: 18,
			Special: &SpecialAttack{Name: "Crushing Slam", Multiplier: 3.0, ChargeTime: 2400 * time.Millisecond}},
		{ID: "rift_tyrant", Name: "Rift Tyrant", Emoji: "💀", Tag: "rift", Boss: true,
			MaxHealth: 120, AttackPower: 12, AttackInterval: 3800 * time.Millisecond,
			ChargeTime: 1300 * time.Millisecond, CoinReward: 25,
			Special: &SpecialAttack{Name: "Riftquake", Multiplier: 3.5, ChargeTime: 2600 * time.Millisecond}},
	})
	if err != nil {
		panic("enemy: default catalog invalid: " + err.Error())
	}
	return c
}
