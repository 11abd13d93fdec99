package item_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/riftward/riftward/internal/game/item"
	"github.com/riftward/riftward/internal/game/stats"
)

func weaponTemplate() *item.Template {
	return &item.Template{
		ID: "test_sword", Name: "Test Sword", Slot: item.SlotWeapon,
		BaseStats: []item.StatValue{
			{Stat: "attackPower", Amount: 10},
			{Stat: "critChance", Amount: 0.04},
		},
	}
}

func TestRarity_Multiplier(t *testing.T) {
	assert.Equal(t, 1.0, item.Common.Multiplier())
	assert.Equal(t, 1.75, item.Rare.Multiplier())
	assert.Equal(t, 3.0, item.Legendary.Multiplier())
}

func TestMint_UniqueInstanceIDs(t *testing.T) {
	tpl := weaponTemplate()
	a := item.Mint(tpl, item.Common)
	b := item.Mint(tpl, item.Common)
	assert.NotEqual(t, a.InstanceID, b.InstanceID)
	assert.NotEmpty(t, a.InstanceID)
}

func TestInstance_Modifiers_RarityAndLevelScaling(t *testing.T) {
	inst := item.Mint(weaponTemplate(), item.Legendary)
	mods := inst.Modifiers(20) // level scale 1.20

	require.Len(t, mods, 2)
	// attackPower: 10 * 3.0 * 1.20 = 36 (magnitude stats scale with both).
	assert.Equal(t, stats.AttackPower, mods[0].Stat)
	assert.InDelta(t, 36, mods[0].Flat, 1e-9)
	// critChance: 0.04 * 3.0 = 0.12 (percentage stats scale with rarity only).
	assert.Equal(t, stats.CritChance, mods[1].Stat)
	assert.InDelta(t, 0.12, mods[1].Flat, 1e-9)
}

func TestInstance_Modifiers_Property_PercentStatsIgnoreLevels(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		levels := rapid.IntRange(0, 500).Draw(rt, "levels")
		inst := item.Mint(weaponTemplate(), item.Rare)
		mods := inst.Modifiers(levels)
		require.Len(rt, mods, 2)
		assert.InDelta(rt, 0.04*1.75, mods[1].Flat, 1e-9)
	})
}

func TestEquipment_EquipDisplaces(t *testing.T) {
	eq := item.NewEquipment()
	first := item.Mint(weaponTemplate(), item.Common)
	second := item.Mint(weaponTemplate(), item.Rare)

	assert.Nil(t, eq.Equip(first))
	displaced := eq.Equip(second)
	require.NotNil(t, displaced)
	assert.Equal(t, first.InstanceID, displaced.InstanceID)
	assert.Equal(t, second.InstanceID, eq.At(item.SlotWeapon).InstanceID)
}

func TestEquipment_AutoEquipOnlyIntoEmptySlot(t *testing.T) {
	eq := item.NewEquipment()
	first := item.Mint(weaponTemplate(), item.Common)
	second := item.Mint(weaponTemplate(), item.Legendary)

	assert.True(t, eq.AutoEquip(first))
	assert.False(t, eq.AutoEquip(second), "occupied slot must not be overwritten by drops")
	assert.Equal(t, first.InstanceID, eq.At(item.SlotWeapon).InstanceID)
}

func TestEquipment_UnequipAndClear(t *testing.T) {
	eq := item.NewEquipment()
	inst := item.Mint(weaponTemplate(), item.Common)
	eq.Equip(inst)

	got := eq.Unequip(item.SlotWeapon)
	require.NotNil(t, got)
	assert.Nil(t, eq.At(item.SlotWeapon))
	assert.Nil(t, eq.Unequip(item.SlotWeapon))

	eq.Equip(inst)
	eq.Clear()
	assert.Empty(t, eq.Equipped())
}

func TestEquipment_ModifiersSumAcrossSlots(t *testing.T) {
	eq := item.NewEquipment()
	cat := item.DefaultCatalog()
	sword, _ := cat.Get("worn_sword")
	coin, _ := cat.Get("lucky_coin")
	eq.Equip(item.Mint(sword, item.Common))
	eq.Equip(item.Mint(coin, item.Common))

	mods := eq.Modifiers(0)
	require.Len(t, mods, 2)
}

func TestDefaultCatalog_CoversEverySlot(t *testing.T) {
	cat := item.DefaultCatalog()
	seen := make(map[item.Slot]bool)
	for _, tpl := range cat.All() {
		require.NoError(t, tpl.Validate())
		seen[tpl.Slot] = true
	}
	for _, s := range item.Slots() {
		assert.True(t, seen[s], "slot %s has no template", s)
	}
}
