package ability

import (
	"fmt"
	"math"
	"time"

	"github.com/riftward/riftward/internal/game/effect"
)

// noGate is embedded by handlers that need no gating beyond cost/cooldown.
type noGate struct{}

func (noGate) Validate(Combat) bool { return true }

// StrikeHandler deals Multiplier x attack power after Delay. The target is
// captured at activation, so the hit fizzles if that enemy dies first.
type StrikeHandler struct {
	noGate
	Multiplier float64
	Delay      time.Duration
}

func (h StrikeHandler) Apply(c Combat, ctx Context) {
	target := c.EnemyID()
	if target == "" {
		return
	}
	amount := c.PlayerStats().AttackPower * h.Multiplier
	if h.Delay <= 0 {
		h.land(c, ctx, target, amount)
		return
	}
	c.Schedule(h.Delay, func() {
		h.land(c, ctx, target, amount)
	})
}

func (h StrikeHandler) land(c Combat, ctx Context, target string, amount float64) {
	if !c.DamageEnemy(target, amount, ctx.Ability.Name) {
		return
	}
	c.Cue("ability_damage", amount)
	c.Log("special", fmt.Sprintf("%s %s hits for %.0f!", ctx.Ability.Emoji, ctx.Ability.Name, amount))
}

// BurstHandler deals Hits strikes of Multiplier x attack power, Interval
// apart, all against the enemy captured at activation.
type BurstHandler struct {
	noGate
	Hits       int
	Interval   time.Duration
	Multiplier float64
}

func (h BurstHandler) Apply(c Combat, ctx Context) {
	target := c.EnemyID()
	if target == "" {
		return
	}
	amount := c.PlayerStats().AttackPower * h.Multiplier
	for i := 0; i < h.Hits; i++ {
		delay := time.Duration(i) * h.Interval
		c.Schedule(delay, func() {
			if !c.DamageEnemy(target, amount, ctx.Ability.Name) {
				return
			}
			c.Cue("ability_damage", amount)
		})
	}
	c.Log("special", fmt.Sprintf("%s %s unleashes %d strikes!", ctx.Ability.Emoji, ctx.Ability.Name, h.Hits))
}

// HealHandler restores Percent of max health.
type HealHandler struct {
	noGate
	Percent float64
}

func (h HealHandler) Apply(c Combat, ctx Context) {
	amount := c.PlayerStats().MaxHealth * h.Percent
	c.HealPlayer(amount)
	c.Cue("heal", amount)
	c.Log("special", fmt.Sprintf("%s %s restores %.0f health.", ctx.Ability.Emoji, ctx.Ability.Name, amount))
}

// ShieldHandler grants a damage shield worth Percent of max health.
type ShieldHandler struct {
	noGate
	Percent float64
}

func (h ShieldHandler) Apply(c Combat, ctx Context) {
	amount := c.PlayerStats().MaxHealth * h.Percent
	c.Effects().AddDamageShield(amount)
	c.Cue("shield", amount)
	c.Log("special", fmt.Sprintf("%s %s absorbs the next %.0f damage.", ctx.Ability.Emoji, ctx.Ability.Name, amount))
}

// BuffHandler applies a timed combat buff or debuff through the effect
// registry. Exactly one of the Apply* fields drives each instance.
type BuffHandler struct {
	noGate
	Duration time.Duration

	AttackPower float64 // fractional attack power buff
	AttackSpeed float64 // fractional attack speed buff
	CritChance  float64
	CritDamage  float64
	Luck        float64
	EnemySpeed  float64 // fractional enemy slow
	EnemyPower  float64 // fractional enemy weaken
	Reflect     float64
}

func (h BuffHandler) Apply(c Combat, ctx Context) {
	reg := c.Effects()
	key := "ability:" + ctx.Ability.ID
	switch {
	case h.AttackPower != 0:
		reg.ApplyAttackPowerBuff(key, ctx.Ability.Name, h.AttackPower, h.Duration)
	case h.AttackSpeed != 0:
		reg.ApplyAttackSpeedBuff(key, ctx.Ability.Name, h.AttackSpeed, h.Duration)
	case h.CritChance != 0 || h.CritDamage != 0:
		reg.ApplyCritBuff(key, ctx.Ability.Name, h.CritChance, h.CritDamage, h.Duration)
	case h.Luck != 0:
		reg.ApplyLuckBuff(key, ctx.Ability.Name, h.Luck, h.Duration)
	case h.EnemySpeed != 0:
		reg.ApplyEnemySpeedDebuff(key, ctx.Ability.Name, h.EnemySpeed, h.Duration)
	case h.EnemyPower != 0:
		reg.ApplyEnemyPowerDebuff(key, ctx.Ability.Name, h.EnemyPower, h.Duration)
	case h.Reflect != 0:
		reg.ApplyReflect(key, ctx.Ability.Name, h.Reflect, h.Duration)
	}
	c.Log("special", fmt.Sprintf("%s %s takes hold.", ctx.Ability.Emoji, ctx.Ability.Name))
}

// FreezeHandler locks the enemy in place for Duration, suspending its
// attacks and charge-ups.
type FreezeHandler struct {
	noGate
	Duration time.Duration
}

func (h FreezeHandler) Apply(c Combat, ctx Context) {
	c.Effects().ApplyFreeze("ability:"+ctx.Ability.ID, ctx.Ability.Name, h.Duration)
	c.Cue("freeze", h.Duration.Seconds())
	c.Log("special", fmt.Sprintf("%s %s freezes the enemy solid!", ctx.Ability.Emoji, ctx.Ability.Name))
}

// FrenzyHandler doubles attack rate for Duration.
type FrenzyHandler struct {
	noGate
	Duration time.Duration
}

func (h FrenzyHandler) Apply(c Combat, ctx Context) {
	c.Effects().ApplyFrenzy("ability:"+ctx.Ability.ID, ctx.Ability.Name, h.Duration)
	c.Log("special", fmt.Sprintf("%s %s sends you into a frenzy!", ctx.Ability.Emoji, ctx.Ability.Name))
}

// DoTHandler brands the current enemy with damage over time worth
// Multiplier x attack power, delivered across the default window.
type DoTHandler struct {
	noGate
	Kind       effect.DoTKind
	Multiplier float64
}

func (h DoTHandler) Apply(c Combat, ctx Context) {
	if c.EnemyID() == "" {
		return
	}
	total := c.PlayerStats().AttackPower * h.Multiplier
	c.Effects().ApplyDoT(h.Kind, total, effect.DefaultDoTDuration)
	c.Log("special", fmt.Sprintf("%s %s afflicts the enemy for %.0f over time.", ctx.Ability.Emoji, ctx.Ability.Name, total))
}

// CritChargeHandler banks Charges guaranteed critical hits.
type CritChargeHandler struct {
	noGate
	Charges int
}

func (h CritChargeHandler) Apply(c Combat, ctx Context) {
	c.Effects().AddGuaranteedCrits(h.Charges)
	c.Log("special", fmt.Sprintf("%s %s: your next %d hits will crit.", ctx.Ability.Emoji, ctx.Ability.Name, h.Charges))
}

// MissChargeHandler banks Charges enemy misses.
type MissChargeHandler struct {
	noGate
	Charges int
}

func (h MissChargeHandler) Apply(c Combat, ctx Context) {
	c.Effects().AddEnemyMissCharges(h.Charges)
	c.Log("special", fmt.Sprintf("%s %s: the next %d enemy attacks will miss.", ctx.Ability.Emoji, ctx.Ability.Name, h.Charges))
}

// GambleHandler is a 50/50 bet on the paid cost: heads returns the stake
// times WinMultiplier, tails returns nothing.
type GambleHandler struct {
	noGate
	WinMultiplier float64
}

func (h GambleHandler) Apply(c Combat, ctx Context) {
	if c.Random().Float64() < 0.5 {
		payout := math.Floor(ctx.CostPaid * h.WinMultiplier)
		c.AddCoins(payout)
		c.Cue("gold", payout)
		c.Log("reward", fmt.Sprintf("%s %s pays out %.0f coins!", ctx.Ability.Emoji, ctx.Ability.Name, payout))
		return
	}
	c.Log("special", fmt.Sprintf("%s %s comes up empty.", ctx.Ability.Emoji, ctx.Ability.Name))
}

// LiquidateHandler converts the entire coin balance (already deducted as
// the activation cost) into a single strike of DamagePerCoin per coin.
type LiquidateHandler struct {
	DamagePerCoin float64
}

func (h LiquidateHandler) Validate(c Combat) bool {
	return c.EnemyID() != ""
}

func (h LiquidateHandler) Apply(c Combat, ctx Context) {
	amount := ctx.CostPaid * h.DamagePerCoin
	if !c.DamageEnemy(c.EnemyID(), amount, ctx.Ability.Name) {
		return
	}
	c.Cue("ability_damage", amount)
	c.Log("special", fmt.Sprintf("%s %s converts %.0f coins into %.0f damage!", ctx.Ability.Emoji, ctx.Ability.Name, ctx.CostPaid, amount))
}
