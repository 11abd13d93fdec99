package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/riftward/riftward/internal/game/item"
	"github.com/riftward/riftward/internal/game/rng"
	"github.com/riftward/riftward/internal/game/ruleset"
	"github.com/riftward/riftward/internal/game/stats"
)

type fakeSink struct {
	coins       float64
	healed      float64
	enemyDamage float64
	items       []string
	boons       []string
	teleported  int
	flags       map[string]bool
	logs        []string
}

func newFakeSink() *fakeSink {
	return &fakeSink{coins: 100, flags: make(map[string]bool)}
}

func (f *fakeSink) Coins() float64                { return f.coins }
func (f *fakeSink) AddCoins(amount float64)       { f.coins += amount }
func (f *fakeSink) HealPlayerPercent(p float64)   { f.healed += p }
func (f *fakeSink) DamageEnemyPercent(p float64)  { f.enemyDamage += p }
func (f *fakeSink) TeleportSubstages(n int)       { f.teleported += n }
func (f *fakeSink) SetFlag(flag string)           { f.flags[flag] = true }
func (f *fakeSink) Log(category, message string)  { f.logs = append(f.logs, message) }
func (f *fakeSink) GrantItem(templateID string, rarity item.Rarity) {
	f.items = append(f.items, templateID+":"+rarity.String())
}
func (f *fakeSink) ApplyBoon(key, name string, mods []stats.Modifier, duration time.Duration) {
	f.boons = append(f.boons, key)
}

func newTestDirector(t *testing.T, seed int64) *Director {
	t.Helper()
	catalog, err := NewCatalog(DefaultEvents())
	require.NoError(t, err)
	scripts := NewScriptRunner(0, zaptest.NewLogger(t))
	return NewDirector(catalog, scripts, rng.NewSeededSource(seed))
}

func TestDrawPrefersFlaggedOverRealmOverCommon(t *testing.T) {
	d := newTestDirector(t, 1)
	flags := map[string]bool{"knows_cartographer": true}
	triggered := map[string]bool{}

	e := d.Draw("ember", flags, triggered)
	require.NotNil(t, e)
	assert.Equal(t, "cartographers_debt", e.ID)

	// Without the flag, the realm-tagged event wins.
	e = d.Draw("ember", nil, triggered)
	require.NotNil(t, e)
	assert.Equal(t, "smoldering_forge", e.ID)

	// In a realm with no tagged events, the common pool serves.
	e = d.Draw("frost", nil, triggered)
	require.NotNil(t, e)
	assert.Empty(t, e.RealmTag)
	assert.Empty(t, e.RequiresFlag)
}

func TestDrawSkipsTriggeredEvents(t *testing.T) {
	d := newTestDirector(t, 1)
	triggered := map[string]bool{"smoldering_forge": true}

	e := d.Draw("ember", nil, triggered)
	require.NotNil(t, e)
	assert.NotEqual(t, "smoldering_forge", e.ID)
}

func TestDrawExhaustsToNil(t *testing.T) {
	d := newTestDirector(t, 1)
	triggered := map[string]bool{}
	for _, e := range DefaultEvents() {
		triggered[e.ID] = true
	}
	assert.Nil(t, d.Draw("ember", map[string]bool{"knows_cartographer": true}, triggered))
}

func TestResolvePaysCostAndAppliesConsequences(t *testing.T) {
	d := newTestDirector(t, 1)
	e, ok := d.catalog.Get("wandering_cartographer")
	require.True(t, ok)
	s := newFakeSink()

	require.NoError(t, d.Resolve(e, "buy", s))
	assert.Equal(t, 50.0, s.coins)
	assert.Equal(t, 2, s.teleported)
	assert.True(t, s.flags["knows_cartographer"])
}

func TestResolveRejectsUnaffordableOption(t *testing.T) {
	d := newTestDirector(t, 1)
	e, ok := d.catalog.Get("wandering_cartographer")
	require.True(t, ok)
	s := newFakeSink()
	s.coins = 10

	err := d.Resolve(e, "buy", s)
	require.Error(t, err)
	assert.Equal(t, 10.0, s.coins)
	assert.Zero(t, s.teleported)
	assert.False(t, s.flags["knows_cartographer"])
}

func TestResolveUnknownOption(t *testing.T) {
	d := newTestDirector(t, 1)
	e, ok := d.catalog.Get("roadside_shrine")
	require.True(t, ok)

	assert.Error(t, d.Resolve(e, "no_such_option", newFakeSink()))
}

func TestResolveFreeOptionLeavesCoinsAlone(t *testing.T) {
	d := newTestDirector(t, 1)
	e, ok := d.catalog.Get("roadside_shrine")
	require.True(t, ok)
	s := newFakeSink()

	require.NoError(t, d.Resolve(e, "pray", s))
	assert.Equal(t, 100.0, s.coins)
	assert.Equal(t, 0.30, s.healed)
}

func TestResolveGrantsItemsAtRarity(t *testing.T) {
	d := newTestDirector(t, 1)
	e, ok := d.catalog.Get("cartographers_debt")
	require.True(t, ok)
	s := newFakeSink()

	require.NoError(t, d.Resolve(e, "accept", s))
	assert.Equal(t, 200.0, s.coins)
	assert.Equal(t, []string{"lucky_coin:rare"}, s.items)
}

func TestScriptConsequenceBranchesOnCoins(t *testing.T) {
	d := newTestDirector(t, 1)
	e, ok := d.catalog.Get("abandoned_cache")
	require.True(t, ok)

	rich := newFakeSink()
	rich.coins = 150
	require.NoError(t, d.Resolve(e, "search", rich))
	assert.Equal(t, 170.0, rich.coins)

	poor := newFakeSink()
	poor.coins = 10
	require.NoError(t, d.Resolve(e, "search", poor))
	assert.Equal(t, 70.0, poor.coins)
}

func TestScriptSandboxStripsDangerousGlobals(t *testing.T) {
	r := NewScriptRunner(0, zaptest.NewLogger(t))
	for _, global := range []string{"dofile", "loadfile", "load", "require"} {
		err := r.Run(global+`("x")`, newFakeSink())
		assert.Error(t, err, global)
	}
}

func TestScriptInstructionLimitStopsRunawayLoops(t *testing.T) {
	r := NewScriptRunner(1000, zaptest.NewLogger(t))
	err := r.Run(`while true do end`, newFakeSink())
	assert.Error(t, err)
}

func TestCatalogValidation(t *testing.T) {
	opt := Option{ID: "a", Label: "A"}
	cases := []struct {
		name  string
		event *GameEvent
	}{
		{"missing id", &GameEvent{Name: "X", Options: []Option{opt}}},
		{"no options", &GameEvent{ID: "x", Name: "X"}},
		{"duplicate option ids", &GameEvent{ID: "x", Name: "X", Options: []Option{opt, opt}}},
		{"negative cost", &GameEvent{ID: "x", Name: "X", Options: []Option{{ID: "a", Label: "A", Cost: -1}}}},
		{"unknown rarity", &GameEvent{ID: "x", Name: "X", Options: []Option{{
			ID: "a", Label: "A",
			Consequences: []Consequence{{ItemTemplate: "t", ItemRarity: "mythic"}},
		}}}},
		{"unknown boon stat", &GameEvent{ID: "x", Name: "X", Options: []Option{{
			ID: "a", Label: "A",
			Consequences: []Consequence{{Boon: &BoonDef{Modifiers: []ruleset.ModifierDef{{Stat: "mana"}}}}},
		}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog([]*GameEvent{tc.event})
			assert.Error(t, err)
		})
	}
}

func TestDrawNeverRepeatsWithinARun(t *testing.T) {
	catalog, err := NewCatalog(DefaultEvents())
	require.NoError(t, err)
	rapid.Check(t, func(t *rapid.T) {
		seed := int64(rapid.IntRange(0, 1<<30).Draw(t, "seed"))
		d := NewDirector(catalog, nil, rng.NewSeededSource(seed))
		realmTag := rapid.SampledFrom([]string{"ember", "deep", "frost"}).Draw(t, "realm")
		triggered := map[string]bool{}
		seen := map[string]bool{}
		for {
			e := d.Draw(realmTag, nil, triggered)
			if e == nil {
				break
			}
			if seen[e.ID] {
				t.Fatalf("event %s drawn twice", e.ID)
			}
			seen[e.ID] = true
			triggered[e.ID] = true
		}
	})
}
