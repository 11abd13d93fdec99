package effect_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/riftward/riftward/internal/game/effect"
	"github.com/riftward/riftward/internal/game/stats"
)

// fakeScheduler is a manually-pumped Scheduler: Advance moves simulated time
// forward and fires due callbacks in schedule order.
type fakeScheduler struct {
	now     time.Duration
	nextID  int
	pending map[int]*fakeTimer
}

type fakeTimer struct {
	at time.Duration
	fn func()
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[int]*fakeTimer)}
}

func (s *fakeScheduler) After(delay time.Duration, fn func()) func() {
	id := s.nextID
	s.nextID++
	s.pending[id] = &fakeTimer{at: s.now + delay, fn: fn}
	return func() { delete(s.pending, id) }
}

func (s *fakeScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		fired := false
		for id, t := range s.pending {
			if t.at <= target {
				s.now = t.at
				delete(s.pending, id)
				t.fn()
				fired = true
				break
			}
		}
		if !fired {
			break
		}
	}
	s.now = target
}

func (s *fakeScheduler) Now() time.Duration { return s.now }

func newRegistry() (*effect.Registry, *fakeScheduler) {
	sched := newFakeScheduler()
	return effect.NewRegistry(sched, sched.Now), sched
}

func TestRegistry_BuffAppliesAndExpires(t *testing.T) {
	reg, sched := newRegistry()
	reg.ApplyAttackPowerBuff("rage", "Rage", 0.5, 10*time.Second)

	assert.InDelta(t, 0.5, reg.Modifiers().AttackPowerBuff, 1e-9)
	require.Len(t, reg.Active(), 1)
	assert.Equal(t, "Rage", reg.Active()[0].Name)

	sched.Advance(10 * time.Second)
	assert.Zero(t, reg.Modifiers().AttackPowerBuff)
	assert.Empty(t, reg.Active())
}

func TestRegistry_OverlappingBuffsComposeAndExpireIndependently(t *testing.T) {
	reg, sched := newRegistry()
	reg.ApplyAttackPowerBuff("rage", "Rage", 0.5, 5*time.Second)
	reg.ApplyAttackPowerBuff("warcry", "War Cry", 0.25, 10*time.Second)

	assert.InDelta(t, 0.75, reg.Modifiers().AttackPowerBuff, 1e-9)

	sched.Advance(5 * time.Second)
	assert.InDelta(t, 0.25, reg.Modifiers().AttackPowerBuff, 1e-9)

	sched.Advance(5 * time.Second)
	assert.Zero(t, reg.Modifiers().AttackPowerBuff)
}

func TestRegistry_RetriggerReplacesOwnTimerOnly(t *testing.T) {
	reg, sched := newRegistry()
	reg.ApplyAttackPowerBuff("rage", "Rage", 0.5, 5*time.Second)
	reg.ApplyFrenzy("frenzy", "Frenzy", 8*time.Second)

	sched.Advance(4 * time.Second)
	// Re-trigger: replaces the previous rage, restarts its timer.
	reg.ApplyAttackPowerBuff("rage", "Rage", 0.5, 5*time.Second)

	sched.Advance(2 * time.Second) // t=6: old rage timer must not fire
	assert.InDelta(t, 0.5, reg.Modifiers().AttackPowerBuff, 1e-9)

	sched.Advance(2 * time.Second) // t=8: frenzy expires on schedule
	assert.False(t, reg.Modifiers().Frenzy)
	assert.InDelta(t, 0.5, reg.Modifiers().AttackPowerBuff, 1e-9)

	sched.Advance(1 * time.Second) // t=9: replacement rage expires
	assert.Zero(t, reg.Modifiers().AttackPowerBuff)
}

func TestRegistry_FreezeComposes(t *testing.T) {
	reg, sched := newRegistry()
	reg.ApplyFreeze("frost_nova", "Frost Nova", 2*time.Second)
	reg.ApplyFreeze("time_stop", "Time Stop", 4*time.Second)

	assert.True(t, reg.Modifiers().Frozen)
	sched.Advance(2 * time.Second)
	assert.True(t, reg.Modifiers().Frozen)
	sched.Advance(2 * time.Second)
	assert.False(t, reg.Modifiers().Frozen)
}

func TestRegistry_ShieldAbsorbs(t *testing.T) {
	reg, _ := newRegistry()
	reg.AddDamageShield(30)

	assert.Zero(t, reg.AbsorbDamage(20))
	assert.InDelta(t, 10, reg.Modifiers().DamageShield, 1e-9)
	assert.InDelta(t, 15, reg.AbsorbDamage(25), 1e-9)
	assert.Zero(t, reg.Modifiers().DamageShield)
	assert.InDelta(t, 7, reg.AbsorbDamage(7), 1e-9)
}

func TestRegistry_ConsumableCharges(t *testing.T) {
	reg, _ := newRegistry()
	assert.False(t, reg.ConsumeGuaranteedCrit())
	reg.AddGuaranteedCrits(2)
	assert.True(t, reg.ConsumeGuaranteedCrit())
	assert.True(t, reg.ConsumeGuaranteedCrit())
	assert.False(t, reg.ConsumeGuaranteedCrit())

	reg.AddEnemyMissCharges(1)
	assert.True(t, reg.ConsumeEnemyMissCharge())
	assert.False(t, reg.ConsumeEnemyMissCharge())
}

func TestRegistry_StatBoonPermanentUntilClear(t *testing.T) {
	reg, sched := newRegistry()
	reg.ApplyStatBoon("blessing", "Blessing", []stats.Modifier{{Stat: stats.Luck, Flat: 0.5}}, 0)

	sched.Advance(time.Hour)
	require.Len(t, reg.StatModifiers(), 1)

	reg.Clear()
	assert.Empty(t, reg.StatModifiers())
	assert.Empty(t, reg.Active())
}

func TestRegistry_ClearCancelsPendingExpiries(t *testing.T) {
	reg, sched := newRegistry()
	reg.ApplyFrenzy("frenzy", "Frenzy", 5*time.Second)
	reg.AddDamageShield(10)
	reg.ApplyDoT(effect.Burn, 60, 3*time.Second)
	reg.Clear()

	// A stale timer firing after the reset must not revert anything in the
	// next run's registry state.
	reg.ApplyFrenzy("frenzy", "Frenzy", time.Hour)
	sched.Advance(10 * time.Second)
	assert.True(t, reg.Modifiers().Frenzy)
	assert.Zero(t, reg.Modifiers().DamageShield)
	assert.Empty(t, reg.DoTs())
}

func TestTickDoTs_DeliversExactTotal(t *testing.T) {
	reg, _ := newRegistry()
	reg.ApplyDoT(effect.Poison, 60, 3*time.Second)

	total := 0.0
	for i := 0; i < 6; i++ {
		ticks := reg.TickDoTs(500 * time.Millisecond)
		require.Len(t, ticks, 1)
		assert.InDelta(t, 10, ticks[0].Damage, 1e-9) // 60 / (3000ms/500ms)
		total += ticks[0].Damage
	}
	assert.InDelta(t, 60, total, 1e-9)
	assert.Empty(t, reg.DoTs())
	assert.Empty(t, reg.TickDoTs(500*time.Millisecond))
}

func TestTickDoTs_Property_TotalDeliveryWithinTolerance(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		reg, _ := newRegistry()
		damage := rapid.Float64Range(1, 1000).Draw(rt, "damage")
		halfSeconds := rapid.IntRange(1, 40).Draw(rt, "half_seconds")
		duration := time.Duration(halfSeconds) * 500 * time.Millisecond
		reg.ApplyDoT(effect.Bleed, damage, duration)

		total := 0.0
		for i := 0; i < halfSeconds; i++ {
			for _, tick := range reg.TickDoTs(500 * time.Millisecond) {
				total += tick.Damage
			}
		}
		assert.InDelta(rt, damage, total, 1e-6)
		assert.Empty(rt, reg.DoTs())
	})
}

func TestTickDoTs_StacksAccumulate(t *testing.T) {
	reg, _ := newRegistry()
	reg.ApplyDoT(effect.Bleed, 30, 3*time.Second)
	reg.ApplyDoT(effect.Bleed, 60, 3*time.Second)

	ticks := reg.TickDoTs(500 * time.Millisecond)
	require.Len(t, ticks, 2)
	assert.InDelta(t, 5, ticks[0].Damage, 1e-9)
	assert.InDelta(t, 10, ticks[1].Damage, 1e-9)
}
