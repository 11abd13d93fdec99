package item

// DefaultCatalog returns the built-in item templates used when no item
// content directory is configured.
//
// Postcondition: the returned catalog always validates.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]*Template{
		{ID: "worn_sword", Name: "Worn Sword", Emoji: "🗡", Slot: SlotWeapon,
			BaseStats: []StatValue{{Stat: "attackPower", Amount: 3}}},
		{ID: "cleaver", Name: "Rift Cleaver", Emoji: "🪓", Slot: SlotWeapon,
			BaseStats: []StatValue{{Stat: "attackPower", Amount: 5}, {Stat: "critChance", Amount: 0.02}}},
		{ID: "leather_jerkin", Name: "Leather Jerkin", Emoji: "🦺", Slot: SlotArmor,
			BaseStats: []StatValue{{Stat: "maxHealth", Amount: 15}}},
		{ID: "runed_plate", Name: "Runed Plate", Emoji: "🛡", Slot: SlotArmor,
			BaseStats: []StatValue{{Stat: "maxHealth", Amount: 25}, {Stat: "damageReduction", Amount: 0.03}}},
		{ID: "lucky_coin", Name: "Lucky Coin", Emoji: "🪙", Slot: SlotTrinket,
			BaseStats: []StatValue{{Stat: "luck", Amount: 0.2}}},
		{ID: "eagle_eye", Name: "Eagle Eye Pendant", Emoji: "🦅", Slot: SlotTrinket,
			BaseStats: []StatValue{{Stat: "accuracy", Amount: 0.05}, {Stat: "critChance", Amount: 0.03}}},
		{ID: "ember_charm", Name: "Ember Charm", Emoji: "🔥", Slot: SlotCharm,
			BaseStats: []StatValue{{Stat: "critDamage", Amount: 0.15}}},
		{ID: "swift_charm", Name: "Swift Charm", Emoji: "💨", Slot: SlotCharm,
			BaseStats: []StatValue{{Stat: "attackSpeed", Amount: 0.1}}},
	})
	if err != nil {
		panic("item: default catalog invalid: " + err.Error())
	}
	return c
}
