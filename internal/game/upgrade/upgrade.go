// Package upgrade defines purchasable upgrade templates, the per-run ledger
// of owned levels, and the unlock tracker that gates content behind
// cumulative-progress thresholds.
package upgrade

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/riftward/riftward/internal/game/stats"
)

// Category splits upgrades into the core combat track and the grind track.
// Only core upgrades count toward specialization and core-variety criteria.
type Category string

const (
	CategoryCore  Category = "core"
	CategoryGrind Category = "grind"
)

// UnlockCriteria gates visibility of an upgrade or ability behind cumulative
// progress. A zero field auto-passes that criterion.
type UnlockCriteria struct {
	TotalLevels int `yaml:"total_levels"`
	CoreVariety int `yaml:"core_variety"`
}

// Met reports whether the criteria pass for the given progress totals.
func (c UnlockCriteria) Met(totalLevels, coreVariety int) bool {
	return totalLevels >= c.TotalLevels && coreVariety >= c.CoreVariety
}

// Upgrade is a static upgrade template. Per-run level state lives in the
// Ledger, not here.
//
// Precondition: ID and Name non-empty; BaseCost > 0; CostIncreaseFactor >= 1.
type Upgrade struct {
	ID                 string          `yaml:"id"`
	Name               string          `yaml:"name"`
	Description        string          `yaml:"description"`
	Category           Category        `yaml:"category"`
	Stat               string          `yaml:"stat"`
	PerLevel           float64         `yaml:"per_level"`
	Percent            bool            `yaml:"percent"`
	BaseCost           float64         `yaml:"base_cost"`
	CostIncreaseFactor float64         `yaml:"cost_increase_factor"`
	Tab                string          `yaml:"tab"`
	Unlock             *UnlockCriteria `yaml:"unlock"`
	// OnKillHeal and OnKillShield are passive post-combat effects granted
	// per owned level, applied after every enemy defeat.
	OnKillHeal   float64 `yaml:"on_kill_heal"`   // health restored per level
	OnKillShield float64 `yaml:"on_kill_shield"` // shield points per level
}

// CostOfLevel returns the price of purchasing level n (1-based):
// baseCost * costIncreaseFactor^(n-1).
//
// Precondition: n >= 1.
func (u *Upgrade) CostOfLevel(n int) float64 {
	return u.BaseCost * math.Pow(u.CostIncreaseFactor, float64(n-1))
}

// Validate checks the template's invariants.
func (u *Upgrade) Validate() error {
	if u.ID == "" || u.Name == "" {
		return fmt.Errorf("upgrade must have id and name")
	}
	if u.Category != CategoryCore && u.Category != CategoryGrind {
		return fmt.Errorf("upgrade %s: category must be core or grind, got %q", u.ID, u.Category)
	}
	if u.BaseCost <= 0 {
		return fmt.Errorf("upgrade %s: base_cost must be > 0", u.ID)
	}
	if u.CostIncreaseFactor < 1 {
		return fmt.Errorf("upgrade %s: cost_increase_factor must be >= 1", u.ID)
	}
	if u.Stat != "" {
		if _, ok := stats.ParseStat(u.Stat); !ok {
			return fmt.Errorf("upgrade %s: unknown stat %q", u.ID, u.Stat)
		}
	}
	return nil
}

// Catalog holds the upgrade templates for one engine instance, in a stable
// declaration order.
type Catalog struct {
	byID  map[string]*Upgrade
	order []*Upgrade
}

// NewCatalog builds a Catalog, validating every template.
//
// Postcondition: Returns an error naming the first invalid or duplicated template.
func NewCatalog(ups []*Upgrade) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Upgrade, len(ups))}
	for _, u := range ups {
		if err := u.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[u.ID]; dup {
			return nil, fmt.Errorf("duplicate upgrade id %q", u.ID)
		}
		c.byID[u.ID] = u
		c.order = append(c.order, u)
	}
	return c, nil
}

// Get returns the template for id, or (nil, false) if not found.
func (c *Catalog) Get(id string) (*Upgrade, bool) {
	u, ok := c.byID[id]
	return u, ok
}

// All returns the templates in declaration order.
func (c *Catalog) All() []*Upgrade {
	return c.order
}

// LoadCatalog reads all .yaml files in dir, parsing each as one Upgrade.
//
// Precondition: dir must be a readable directory path.
func LoadCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading upgrade dir %q: %w", dir, err)
	}
	var ups []*Upgrade
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		data, err := os.ReadFile(dir + "/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		var u Upgrade
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&u); err != nil {
			return nil, fmt.Errorf("parsing upgrade file %s: %w", e.Name(), err)
		}
		ups = append(ups, &u)
	}
	return NewCatalog(ups)
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
