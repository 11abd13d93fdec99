package upgrade

// DefaultCatalog returns the built-in upgrade templates used when no
// upgrade content directory is configured.
//
// Postcondition: the returned catalog always validates.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]*Upgrade{
		{ID: "sharpen", Name: "Sharpened Blade", Description: "+2 attack power per level.",
			Category: CategoryCore, Stat: "attackPower", PerLevel: 2,
			BaseCost: 10, CostIncreaseFactor: 1.15, Tab: "combat"},
		{ID: "keen_edge", Name: "Keen Edge", Description: "+1% crit chance per level.",
			Category: CategoryCore, Stat: "critChance", PerLevel: 0.01,
			BaseCost: 15, CostIncreaseFactor: 1.2, Tab: "combat"},
		{ID: "attunement", Name: "Attunement", Description: "+3% luck per level.",
			Category: CategoryCore, Stat: "luck", PerLevel: 0.03,
			BaseCost: 20, CostIncreaseFactor: 1.2, Tab: "combat"},
		{ID: "toughen", Name: "Toughened Hide", Description: "+10 max health per level.",
			Category: CategoryCore, Stat: "maxHealth", PerLevel: 10,
			BaseCost: 10, CostIncreaseFactor: 1.15, Tab: "combat"},
		{ID: "quicken", Name: "Quickened Strikes", Description: "+4% attack speed per level.",
			Category: CategoryCore, Stat: "attackSpeed", PerLevel: 0.04, Percent: true,
			BaseCost: 25, CostIncreaseFactor: 1.25, Tab: "combat",
			Unlock: &UnlockCriteria{TotalLevels: 5}},
		{ID: "brutality", Name: "Brutality", Description: "+5% attack power per level.",
			Category: CategoryCore, Stat: "attackPower", PerLevel: 0.05, Percent: true,
			BaseCost: 50, CostIncreaseFactor: 1.3, Tab: "combat",
			Unlock: &UnlockCriteria{TotalLevels: 10, CoreVariety: 3}},
		{ID: "mending", Name: "Battlefield Mending", Description: "Heal 5 health after every kill, per level.",
			Category: CategoryGrind, OnKillHeal: 5,
			BaseCost: 30, CostIncreaseFactor: 1.25, Tab: "survival",
			Unlock: &UnlockCriteria{TotalLevels: 8}},
		{ID: "bulwark", Name: "Bulwark Ritual", Description: "Gain a 3-point shield after every kill, per level.",
			Category: CategoryGrind, OnKillShield: 3,
			BaseCost: 40, CostIncreaseFactor: 1.3, Tab: "survival",
			Unlock: &UnlockCriteria{TotalLevels: 12}},
		{ID: "serration", Name: "Serrated Edges", Description: "Strikes may open bleeding wounds.",
			Category: CategoryGrind,
			BaseCost: 60, CostIncreaseFactor: 1.35, Tab: "survival",
			Unlock: &UnlockCriteria{TotalLevels: 15, CoreVariety: 4}},
	})
	if err != nil {
		panic("upgrade: default catalog invalid: " + err.Error())
	}
	return c
}
