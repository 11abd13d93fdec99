package upgrade

import "github.com/riftward/riftward/internal/game/stats"

// Ledger tracks owned upgrade levels for one run. Levels start at zero;
// purchasing level n costs CostOfLevel(n).
// Not safe for concurrent use; the engine serialises access.
type Ledger struct {
	catalog *Catalog
	levels  map[string]int
}

// NewLedger creates an empty ledger over catalog.
//
// Precondition: catalog must be non-nil.
func NewLedger(catalog *Catalog) *Ledger {
	return &Ledger{catalog: catalog, levels: make(map[string]int)}
}

// Catalog returns the catalog the ledger is bound to.
func (l *Ledger) Catalog() *Catalog { return l.catalog }

// Level returns the owned level for id (0 if unowned).
func (l *Ledger) Level(id string) int {
	return l.levels[id]
}

// TotalLevels returns the sum of all owned levels.
func (l *Ledger) TotalLevels() int {
	total := 0
	for _, lvl := range l.levels {
		total += lvl
	}
	return total
}

// CoreVariety returns how many distinct core upgrades are owned at level >= 1.
func (l *Ledger) CoreVariety() int {
	variety := 0
	for id, lvl := range l.levels {
		if lvl <= 0 {
			continue
		}
		if u, ok := l.catalog.Get(id); ok && u.Category == CategoryCore {
			variety++
		}
	}
	return variety
}

// NextCost returns the price of the next level of id, or (0, false) for an
// unknown upgrade.
func (l *Ledger) NextCost(id string) (float64, bool) {
	u, ok := l.catalog.Get(id)
	if !ok {
		return 0, false
	}
	return u.CostOfLevel(l.levels[id] + 1), true
}

// Purchase buys one level of id if coins cover the next level's cost.
// Returns the amount spent and whether the purchase happened; insufficient
// funds or an unknown id is a silent no-op per the invalid-action policy.
//
// Postcondition: on success, Level(id) is incremented and spent > 0.
func (l *Ledger) Purchase(id string, coins float64) (spent float64, ok bool) {
	cost, ok := l.NextCost(id)
	if !ok || cost > coins {
		return 0, false
	}
	l.levels[id]++
	return cost, true
}

// PurchaseMax buys as many levels of id as coins allow, returning the total
// spent and the number of levels gained.
func (l *Ledger) PurchaseMax(id string, coins float64) (spent float64, levels int) {
	for {
		s, ok := l.Purchase(id, coins-spent)
		if !ok {
			return spent, levels
		}
		spent += s
		levels++
	}
}

// Contributions returns the stat-pipeline view of every owned upgrade.
// Upgrades without a stat (pure passives such as on-kill heal) carry no
// modifier but still report their level and core flag, since specialization
// compares the signature upgrade's level against every core sibling.
func (l *Ledger) Contributions() []stats.UpgradeContribution {
	var out []stats.UpgradeContribution
	for _, u := range l.catalog.All() {
		lvl := l.levels[u.ID]
		if lvl <= 0 {
			continue
		}
		c := stats.UpgradeContribution{
			ID:    u.ID,
			Level: lvl,
			Core:  u.Category == CategoryCore,
		}
		if s, ok := stats.ParseStat(u.Stat); ok {
			c.Stat = s
			c.PerLevel = u.PerLevel
			c.Percent = u.Percent
		}
		out = append(out, c)
	}
	return out
}

// OnKillHeal returns the total post-kill heal granted by owned passives.
func (l *Ledger) OnKillHeal() float64 {
	total := 0.0
	for _, u := range l.catalog.All() {
		if lvl := l.levels[u.ID]; lvl > 0 && u.OnKillHeal > 0 {
			total += u.OnKillHeal * float64(lvl)
		}
	}
	return total
}

// OnKillShield returns the total post-kill shield granted by owned passives.
func (l *Ledger) OnKillShield() float64 {
	total := 0.0
	for _, u := range l.catalog.All() {
		if lvl := l.levels[u.ID]; lvl > 0 && u.OnKillShield > 0 {
			total += u.OnKillShield * float64(lvl)
		}
	}
	return total
}

// Reset drops every owned level. Used on evolve and ascend; retain keeps the
// ledger intact.
func (l *Ledger) Reset() {
	l.levels = make(map[string]int)
}
