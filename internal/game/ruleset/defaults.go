package ruleset

// DefaultClasses returns the built-in class catalog used when no class
// content directory is configured. The ember knight is the advanced class
// unlocked by the first stage-1 boss kill.
func DefaultClasses() []*Class {
	return []*Class{
		{
			ID:               "warrior",
			Name:             "Warrior",
			Description:      "Steady damage and a deep health pool.",
			BaseStats:        BaseStats{AttackPower: 10, AttackSpeed: 1.0, MaxHealth: 100, CritChance: 0.05, CritDamage: 1.5, Luck: 1.0, Accuracy: 0.9},
			SignatureUpgrade: "sharpen",
			Novice:           []ModifierDef{{Stat: "attackPower", Percent: 0.10}},
			Expert:           []ModifierDef{{Stat: "attackPower", Percent: 0.25}, {Stat: "damageReduction", Flat: 0.05}},
		},
		{
			ID:               "rogue",
			Name:             "Rogue",
			Description:      "Fast, critical-heavy, fragile.",
			BaseStats:        BaseStats{AttackPower: 7, AttackSpeed: 1.4, MaxHealth: 75, CritChance: 0.15, CritDamage: 1.8, Luck: 1.2, Accuracy: 0.85},
			SignatureUpgrade: "keen_edge",
			Novice:           []ModifierDef{{Stat: "critChance", Flat: 0.05}},
			Expert:           []ModifierDef{{Stat: "critChance", Flat: 0.10}, {Stat: "critDamage", Flat: 0.25}},
		},
		{
			ID:               "mystic",
			Name:             "Mystic",
			Description:      "Lingering damage and fortunate finds.",
			BaseStats:        BaseStats{AttackPower: 8, AttackSpeed: 0.9, MaxHealth: 85, CritChance: 0.08, CritDamage: 1.6, Luck: 1.4, Accuracy: 0.95},
			SignatureUpgrade: "attunement",
			Novice:           []ModifierDef{{Stat: "luck", Flat: 0.15}},
			Expert:           []ModifierDef{{Stat: "luck", Flat: 0.30}, {Stat: "attackPower", Percent: 0.15}},
		},
		{
			ID:               "ember_knight",
			Name:             "Ember Knight",
			Description:      "Burning strikes behind heavy plate.",
			BaseStats:        BaseStats{AttackPower: 12, AttackSpeed: 1.1, MaxHealth: 120, CritChance: 0.08, CritDamage: 1.6, Luck: 1.1, Accuracy: 0.9, DamageReduction: 0.05},
			SignatureUpgrade: "sharpen",
			Novice:           []ModifierDef{{Stat: "attackPower", Percent: 0.12}},
			Expert:           []ModifierDef{{Stat: "attackPower", Percent: 0.30}, {Stat: "maxHealth", Percent: 0.10}},
			Advanced:         true,
		},
	}
}

// DefaultRealms returns the built-in ten-realm catalog: nine ordinary realms
// shuffled per run plus the fixed final realm.
func DefaultRealms() []*Realm {
	return []*Realm{
		{ID: "verdant_wilds", Name: "Verdant Wilds", Emoji: "🌿", EnemyTag: "beast"},
		{ID: "sunken_grotto", Name: "Sunken Grotto", Emoji: "🌊", EnemyTag: "deep"},
		{ID: "ashen_barrens", Name: "Ashen Barrens", Emoji: "🔥", EnemyTag: "ember"},
		{ID: "gloom_marsh", Name: "Gloom Marsh", Emoji: "🕸", EnemyTag: "venom"},
		{ID: "frostspire", Name: "Frostspire", Emoji: "❄️", EnemyTag: "frost"},
		{ID: "howling_steppe", Name: "Howling Steppe", Emoji: "🌪", EnemyTag: "wind"},
		{ID: "gilded_vaults", Name: "Gilded Vaults", Emoji: "🪙", EnemyTag: "construct"},
		{ID: "umbral_woods", Name: "Umbral Woods", Emoji: "🌑", EnemyTag: "shade"},
		{ID: "shattered_peaks", Name: "Shattered Peaks", Emoji: "⛰", EnemyTag: "stone"},
		{ID: "riftheart", Name: "The Riftheart", Emoji: "💜", EnemyTag: "rift", Final: true},
	}
}
