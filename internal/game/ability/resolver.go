package ability

import "time"

// Outcome reports why an activation was rejected, or that it succeeded.
type Outcome int

const (
	Activated Outcome = iota
	UnknownAbility
	WrongClass
	OnCooldown
	CannotAfford
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case Activated:
		return "activated"
	case UnknownAbility:
		return "unknown ability"
	case WrongClass:
		return "wrong class"
	case OnCooldown:
		return "on cooldown"
	case CannotAfford:
		return "cannot afford"
	case Blocked:
		return "blocked"
	}
	return "invalid"
}

// Resolver holds the per-run activation state for a catalog of abilities:
// remaining cooldowns and cast counts, both keyed by ability id.
type Resolver struct {
	catalog   *Catalog
	cooldowns map[string]time.Duration
	casts     map[string]int
}

// NewResolver builds a Resolver with no cooldowns and zero cast counts.
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{
		catalog:   catalog,
		cooldowns: make(map[string]time.Duration),
		casts:     make(map[string]int),
	}
}

// Catalog returns the resolver's ability table.
func (r *Resolver) Catalog() *Catalog { return r.catalog }

// Cooldown returns the remaining cooldown for id, zero when ready.
func (r *Resolver) Cooldown(id string) time.Duration { return r.cooldowns[id] }

// Casts returns how many times id has been activated this run.
func (r *Resolver) Casts(id string) int { return r.casts[id] }

// Cost returns the current activation price for id at the given stage,
// accounting for this run's cast count.
func (r *Resolver) Cost(id string, stage int) (float64, bool) {
	a, ok := r.catalog.Get(id)
	if !ok {
		return 0, false
	}
	return a.Cost(stage, r.casts[id]), true
}

// TickCooldowns decays every remaining cooldown by elapsed, dropping the
// entries that reach zero.
func (r *Resolver) TickCooldowns(elapsed time.Duration) {
	for id, remaining := range r.cooldowns {
		remaining -= elapsed
		if remaining <= 0 {
			delete(r.cooldowns, id)
			continue
		}
		r.cooldowns[id] = remaining
	}
}

// Use attempts to activate id for classID against c. The shared gates run
// first: the ability must exist, belong to the class's kit, be off cooldown,
// and be affordable (an all-coins ability needs only a positive balance).
// On success the cost is deducted, the cooldown starts, the cast count
// increments, and the handler fires.
//
// Postcondition: the coin balance is untouched unless the Outcome is
// Activated.
func (r *Resolver) Use(id, classID string, c Combat) Outcome {
	a, ok := r.catalog.Get(id)
	if !ok {
		return UnknownAbility
	}
	if a.ClassID != "" && a.ClassID != classID {
		return WrongClass
	}
	if r.cooldowns[id] > 0 {
		return OnCooldown
	}
	cost := a.Cost(c.Stage(), r.casts[id])
	if a.SpendsAllCoins {
		if c.Coins() <= 0 {
			return CannotAfford
		}
		cost = c.Coins()
	} else if c.Coins() < cost {
		return CannotAfford
	}
	if !a.Handler.Validate(c) {
		return Blocked
	}
	c.AddCoins(-cost)
	r.cooldowns[id] = a.Cooldown
	r.casts[id]++
	a.Handler.Apply(c, Context{Ability: a, CostPaid: cost})
	return Activated
}

// Reset clears all cooldowns and cast counts, e.g. when a run ends.
func (r *Resolver) Reset() {
	r.cooldowns = make(map[string]time.Duration)
	r.casts = make(map[string]int)
}
