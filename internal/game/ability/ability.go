// Package ability implements the special-ability resolver: a registered
// table of ability handlers, per-run cooldown and cast-count state, and the
// affordability/cooldown gating that decides whether an activation proceeds.
package ability

import (
	"fmt"
	"math"
	"time"

	"github.com/riftward/riftward/internal/game/effect"
	"github.com/riftward/riftward/internal/game/rng"
	"github.com/riftward/riftward/internal/game/stats"
	"github.com/riftward/riftward/internal/game/upgrade"
)

// Combat is the slice of the simulation an ability handler may touch. The
// engine implements it; tests substitute a fake.
type Combat interface {
	// EnemyID returns the live enemy's instance id, or "" when none.
	EnemyID() string
	// DamageEnemy applies amount to the enemy only if enemyID still matches
	// the live enemy, and reports whether it landed. Handlers capture the id
	// at activation so a delayed hit cannot strike a replacement enemy.
	DamageEnemy(enemyID string, amount float64, source string) bool
	// HealPlayer restores amount health, clamped to max.
	HealPlayer(amount float64)
	PlayerStats() stats.PlayerStats
	Coins() float64
	// AddCoins credits (or debits, when negative) the coin balance.
	AddCoins(amount float64)
	Stage() int
	Effects() *effect.Registry
	// Schedule runs fn after delay on the simulation clock.
	Schedule(delay time.Duration, fn func()) (cancel func())
	Random() rng.Source
	Log(category, message string)
	Cue(kind string, amount float64)
}

// Context carries the activation details into a handler.
type Context struct {
	Ability  *Ability
	CostPaid float64
}

// Handler is one ability's behavior. Validate covers gating beyond the
// shared cost/cooldown checks (most handlers have none); Apply executes the
// effect after payment.
type Handler interface {
	Validate(c Combat) bool
	Apply(c Combat, ctx Context)
}

// Ability is a special-ability template. Per-run cooldown and cast-count
// state lives in the Resolver.
//
// Precondition: ID and Name non-empty; Cooldown > 0; Handler non-nil.
type Ability struct {
	ID          string
	Name        string
	Description string
	Emoji       string
	// ClassID restricts the ability to one class's kit; empty = every class.
	ClassID  string
	Cooldown time.Duration
	// BaseCost seeds the cost curve; cost grows with the current stage and
	// with how often the ability has been cast this run.
	BaseCost        float64
	CostStageFactor float64 // +fraction of BaseCost per stage past the first
	CostCastFactor  float64 // multiplier per prior cast; 0 means flat
	// SpendsAllCoins marks the liquidation ability: it is exempt from the
	// exact-cost rule, requires only a positive balance, and consumes it all.
	SpendsAllCoins bool
	Unlock         *upgrade.UnlockCriteria
	Handler        Handler
}

// Cost returns the activation price at the given stage and prior cast count.
//
// Precondition: stage >= 1; casts >= 0.
func (a *Ability) Cost(stage, casts int) float64 {
	cost := a.BaseCost * (1 + a.CostStageFactor*float64(stage-1))
	if a.CostCastFactor > 0 {
		cost *= math.Pow(a.CostCastFactor, float64(casts))
	}
	return math.Floor(cost)
}

// Validate checks the template's invariants.
func (a *Ability) Validate() error {
	if a.ID == "" || a.Name == "" {
		return fmt.Errorf("ability must have id and name")
	}
	if a.Cooldown <= 0 {
		return fmt.Errorf("ability %s: cooldown must be > 0", a.ID)
	}
	if a.Handler == nil {
		return fmt.Errorf("ability %s: handler must not be nil", a.ID)
	}
	return nil
}

// Catalog is the registered ability table for one engine instance.
type Catalog struct {
	byID  map[string]*Ability
	order []*Ability
}

// NewCatalog builds a Catalog, validating every ability.
func NewCatalog(abilities []*Ability) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Ability, len(abilities))}
	for _, a := range abilities {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate ability id %q", a.ID)
		}
		c.byID[a.ID] = a
		c.order = append(c.order, a)
	}
	return c, nil
}

// Get returns the ability for id, or (nil, false) if not found.
func (c *Catalog) Get(id string) (*Ability, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// All returns the abilities in declaration order.
func (c *Catalog) All() []*Ability {
	return c.order
}

// Kit returns the abilities available to classID, in declaration order.
func (c *Catalog) Kit(classID string) []*Ability {
	var out []*Ability
	for _, a := range c.order {
		if a.ClassID == "" || a.ClassID == classID {
			out = append(out, a)
		}
	}
	return out
}
