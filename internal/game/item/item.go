// Package item defines equipment templates, rarity scaling, and the
// equipped set. Templates are static content; instances are minted with a
// rarity and unique id at drop or reward time.
package item

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/riftward/riftward/internal/game/stats"
)

// Slot is an equipment slot. One item per slot.
type Slot string

const (
	SlotWeapon  Slot = "weapon"
	SlotArmor   Slot = "armor"
	SlotTrinket Slot = "trinket"
	SlotCharm   Slot = "charm"
)

// Slots lists every equipment slot in display order.
func Slots() []Slot {
	return []Slot{SlotWeapon, SlotArmor, SlotTrinket, SlotCharm}
}

// Rarity tiers scale an item's base stats by a fixed multiplier.
type Rarity int

const (
	Common Rarity = iota
	Rare
	Legendary
)

// String returns the lower-case rarity name.
func (r Rarity) String() string {
	switch r {
	case Common:
		return "common"
	case Rare:
		return "rare"
	case Legendary:
		return "legendary"
	default:
		return "unknown"
	}
}

// ParseRarity resolves a lower-case rarity name.
func ParseRarity(name string) (Rarity, bool) {
	switch name {
	case "common":
		return Common, true
	case "rare":
		return Rare, true
	case "legendary":
		return Legendary, true
	}
	return Common, false
}

// Multiplier returns the rarity stat multiplier.
func (r Rarity) Multiplier() float64 {
	switch r {
	case Rare:
		return 1.75
	case Legendary:
		return 3.0
	default:
		return 1.0
	}
}

// StatValue is one flat base stat on a template, in YAML form.
type StatValue struct {
	Stat   string  `yaml:"stat"`
	Amount float64 `yaml:"amount"`
}

// Template is a static item definition.
//
// Precondition: ID, Name, and Slot must be non-empty after loading.
type Template struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	Emoji     string      `yaml:"emoji"`
	Slot      Slot        `yaml:"slot"`
	BaseStats []StatValue `yaml:"base_stats"`
}

// Validate checks the template's invariants.
func (t *Template) Validate() error {
	if t.ID == "" || t.Name == "" {
		return fmt.Errorf("item template must have id and name")
	}
	switch t.Slot {
	case SlotWeapon, SlotArmor, SlotTrinket, SlotCharm:
	default:
		return fmt.Errorf("item %s: unknown slot %q", t.ID, t.Slot)
	}
	for _, sv := range t.BaseStats {
		if _, ok := stats.ParseStat(sv.Stat); !ok {
			return fmt.Errorf("item %s: unknown stat %q", t.ID, sv.Stat)
		}
	}
	return nil
}

// Instance is one dropped or rewarded item: a template reference plus the
// rarity rolled at mint time and a unique instance id.
type Instance struct {
	InstanceID string
	Template   *Template
	Rarity     Rarity
}

// Mint creates a new Instance of tpl at rarity with a fresh uuid.
//
// Precondition: tpl must be non-nil and valid.
func Mint(tpl *Template, rarity Rarity) *Instance {
	return &Instance{InstanceID: uuid.New().String(), Template: tpl, Rarity: rarity}
}

// Modifiers returns the instance's stat contributions: every base stat is
// scaled by the rarity multiplier, and non-percentage stats additionally
// scale with the player's total upgrade levels (1% per level). Percentage
// stats such as crit chance scale with rarity only.
func (i *Instance) Modifiers(totalUpgradeLevels int) []stats.Modifier {
	levelScale := 1 + 0.01*float64(totalUpgradeLevels)
	out := make([]stats.Modifier, 0, len(i.Template.BaseStats))
	for _, sv := range i.Template.BaseStats {
		s, ok := stats.ParseStat(sv.Stat)
		if !ok {
			continue
		}
		amount := sv.Amount * i.Rarity.Multiplier()
		if !s.IsPercentage() {
			amount *= levelScale
		}
		out = append(out, stats.Modifier{Stat: s, Flat: amount})
	}
	return out
}

// Catalog holds the item templates for one engine instance.
type Catalog struct {
	byID  map[string]*Template
	order []*Template
}

// NewCatalog builds a Catalog, validating every template.
func NewCatalog(tpls []*Template) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Template, len(tpls))}
	for _, t := range tpls {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q", t.ID)
		}
		c.byID[t.ID] = t
		c.order = append(c.order, t)
	}
	return c, nil
}

// Get returns the template for id, or (nil, false) if not found.
func (c *Catalog) Get(id string) (*Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// All returns the templates in declaration order.
func (c *Catalog) All() []*Template {
	return c.order
}

// LoadCatalog reads all .yaml files in dir, parsing each as one Template.
//
// Precondition: dir must be a readable directory path.
func LoadCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading item dir %q: %w", dir, err)
	}
	var tpls []*Template
	for _, e := range entries {
		if e.IsDir() || !(strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var t Template
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil {
			return nil, fmt.Errorf("parsing item file %s: %w", path, err)
		}
		tpls = append(tpls, &t)
	}
	return NewCatalog(tpls)
}
