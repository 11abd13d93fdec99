package event

import (
	"fmt"
	"time"

	"github.com/riftward/riftward/internal/game/item"
	"github.com/riftward/riftward/internal/game/rng"
	"github.com/riftward/riftward/internal/game/ruleset"
)

// Director draws eligible events for substage completions and resolves the
// chosen options against the run.
type Director struct {
	catalog *Catalog
	scripts *ScriptRunner
	src     rng.Source
}

// NewDirector builds a Director. scripts may be nil when no event in the
// catalog uses script consequences.
func NewDirector(catalog *Catalog, scripts *ScriptRunner, src rng.Source) *Director {
	return &Director{catalog: catalog, scripts: scripts, src: src}
}

// Draw picks one eligible event, or nil when none qualifies. Pools are tried
// in priority order: flag-gated events whose flag is set, then events tagged
// for the current realm, then the common pool. Within a pool the pick is
// uniform. Events already triggered this run never reappear.
func (d *Director) Draw(realmTag string, flags map[string]bool, triggered map[string]bool) *GameEvent {
	var flagged, realm, common []*GameEvent
	for _, e := range d.catalog.All() {
		if triggered[e.ID] {
			continue
		}
		switch {
		case e.RequiresFlag != "":
			if flags[e.RequiresFlag] {
				flagged = append(flagged, e)
			}
		case e.RealmTag != "":
			if e.RealmTag == realmTag {
				realm = append(realm, e)
			}
		default:
			common = append(common, e)
		}
	}
	for _, pool := range [][]*GameEvent{flagged, realm, common} {
		if len(pool) > 0 {
			return pool[d.src.Intn(len(pool))]
		}
	}
	return nil
}

// Resolve pays for and applies option optionID of e against s. The coin cost
// is checked first; an unaffordable option is rejected with no side effects.
// Consequences apply in declaration order.
func (d *Director) Resolve(e *GameEvent, optionID string, s Sink) error {
	opt, ok := e.Option(optionID)
	if !ok {
		return fmt.Errorf("event %s: no option %q", e.ID, optionID)
	}
	if s.Coins() < opt.Cost {
		return fmt.Errorf("event %s option %s: costs %.0f coins", e.ID, optionID, opt.Cost)
	}
	if opt.Cost > 0 {
		s.AddCoins(-opt.Cost)
	}
	for i, c := range opt.Consequences {
		if err := d.applyConsequence(e, c, s); err != nil {
			return fmt.Errorf("event %s option %s consequence[%d]: %w", e.ID, optionID, i, err)
		}
	}
	return nil
}

func (d *Director) applyConsequence(e *GameEvent, c Consequence, s Sink) error {
	if c.Coins != 0 {
		s.AddCoins(c.Coins)
	}
	if c.HealPercent != 0 {
		s.HealPlayerPercent(c.HealPercent)
	}
	if c.DamageEnemyPercent != 0 {
		s.DamageEnemyPercent(c.DamageEnemyPercent)
	}
	if c.ItemTemplate != "" {
		rarity := item.Common
		if c.ItemRarity != "" {
			rarity, _ = item.ParseRarity(c.ItemRarity)
		}
		s.GrantItem(c.ItemTemplate, rarity)
	}
	if c.Boon != nil {
		mods, err := ruleset.Modifiers(c.Boon.Modifiers)
		if err != nil {
			return err
		}
		s.ApplyBoon("event:"+e.ID, c.Boon.Name, mods, time.Duration(c.Boon.DurationMs)*time.Millisecond)
	}
	if c.TeleportSubstages != 0 {
		s.TeleportSubstages(c.TeleportSubstages)
	}
	if c.SetFlag != "" {
		s.SetFlag(c.SetFlag)
	}
	if c.Script != "" {
		if d.scripts == nil {
			return fmt.Errorf("script consequence with no script runner")
		}
		if err := d.scripts.Run(c.Script, s); err != nil {
			return err
		}
	}
	return nil
}
