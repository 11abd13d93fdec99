// Package event implements narrative encounters: multi-option prompts that
// pause combat until the player chooses. Options may cost coins and carry a
// list of consequences; consequences mutate the run through a Sink the engine
// implements, so the package stays free of simulation internals.
package event

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riftward/riftward/internal/game/item"
	"github.com/riftward/riftward/internal/game/ruleset"
	"github.com/riftward/riftward/internal/game/stats"
)

// Sink is the slice of the run an event consequence may mutate.
type Sink interface {
	Coins() float64
	AddCoins(amount float64)
	// HealPlayerPercent restores the given fraction of max health. Negative
	// p wounds instead, but never below 1 health; events don't kill.
	HealPlayerPercent(p float64)
	// DamageEnemyPercent deals the given fraction of the live enemy's max
	// health. No-op when no enemy is up.
	DamageEnemyPercent(p float64)
	// GrantItem mints the template at the given rarity into the inventory.
	GrantItem(templateID string, rarity item.Rarity)
	// ApplyBoon installs a stat boon; duration 0 lasts until the run ends.
	ApplyBoon(key, name string, mods []stats.Modifier, duration time.Duration)
	// TeleportSubstages jumps the run forward n sub-stages within the realm.
	TeleportSubstages(n int)
	SetFlag(flag string)
	Log(category, message string)
}

// BoonDef is the YAML form of a stat boon consequence.
type BoonDef struct {
	Name       string                `yaml:"name"`
	DurationMs int                   `yaml:"duration_ms"` // 0 = rest of run
	Modifiers  []ruleset.ModifierDef `yaml:"modifiers"`
}

// Consequence is one effect of choosing an option. Exactly the non-zero
// fields apply, in declaration order.
type Consequence struct {
	Coins              float64 `yaml:"coins,omitempty"`
	HealPercent        float64 `yaml:"heal_percent,omitempty"`
	DamageEnemyPercent float64 `yaml:"damage_enemy_percent,omitempty"`
	ItemTemplate       string  `yaml:"item_template,omitempty"`
	ItemRarity         string  `yaml:"item_rarity,omitempty"`
	Boon               *BoonDef `yaml:"boon,omitempty"`
	TeleportSubstages  int      `yaml:"teleport_substages,omitempty"`
	SetFlag            string   `yaml:"set_flag,omitempty"`
	// Script is inline Lua run in the sandbox with the engine.* callbacks
	// bound to the Sink. Used for consequences the fixed fields can't express.
	Script string `yaml:"script,omitempty"`
}

// Option is one choice offered by an event.
type Option struct {
	ID           string        `yaml:"id"`
	Label        string        `yaml:"label"`
	Cost         float64       `yaml:"cost"`
	Consequences []Consequence `yaml:"consequences"`
}

// GameEvent is one encounter definition.
//
// Selection pools: an event with RequiresFlag enters the pool only while that
// run flag is set, and outranks everything else. Otherwise a RealmTag event
// is eligible only in its realm and outranks common (untagged) events. Every
// event triggers at most once per run.
type GameEvent struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Emoji        string   `yaml:"emoji"`
	RealmTag     string   `yaml:"realm_tag,omitempty"`
	RequiresFlag string   `yaml:"requires_flag,omitempty"`
	Options      []Option `yaml:"options"`
}

// Validate checks the event's invariants.
func (e *GameEvent) Validate() error {
	if e.ID == "" || e.Name == "" {
		return fmt.Errorf("event must have id and name")
	}
	if len(e.Options) == 0 {
		return fmt.Errorf("event %s: must offer at least one option", e.ID)
	}
	seen := make(map[string]bool, len(e.Options))
	for _, o := range e.Options {
		if o.ID == "" || o.Label == "" {
			return fmt.Errorf("event %s: option must have id and label", e.ID)
		}
		if seen[o.ID] {
			return fmt.Errorf("event %s: duplicate option id %q", e.ID, o.ID)
		}
		seen[o.ID] = true
		if o.Cost < 0 {
			return fmt.Errorf("event %s option %s: cost must be >= 0", e.ID, o.ID)
		}
		for i, c := range o.Consequences {
			if c.ItemTemplate != "" && c.ItemRarity != "" {
				if _, ok := item.ParseRarity(c.ItemRarity); !ok {
					return fmt.Errorf("event %s option %s consequence[%d]: unknown rarity %q", e.ID, o.ID, i, c.ItemRarity)
				}
			}
			if c.Boon != nil {
				if _, err := ruleset.Modifiers(c.Boon.Modifiers); err != nil {
					return fmt.Errorf("event %s option %s consequence[%d]: %w", e.ID, o.ID, i, err)
				}
			}
		}
	}
	return nil
}

// Option returns the option with the given id.
func (e *GameEvent) Option(id string) (*Option, bool) {
	for i := range e.Options {
		if e.Options[i].ID == id {
			return &e.Options[i], true
		}
	}
	return nil, false
}

// Catalog is a validated set of events.
type Catalog struct {
	byID  map[string]*GameEvent
	order []*GameEvent
}

// NewCatalog builds a Catalog, validating every event.
func NewCatalog(events []*GameEvent) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*GameEvent, len(events))}
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate event id %q", e.ID)
		}
		c.byID[e.ID] = e
		c.order = append(c.order, e)
	}
	return c, nil
}

// Get returns the event for id, or (nil, false) if not found.
func (c *Catalog) Get(id string) (*GameEvent, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// All returns the events in declaration order.
func (c *Catalog) All() []*GameEvent { return c.order }

// LoadCatalog reads every .yaml file in dir, parsing each as one GameEvent.
//
// Precondition: dir must be a readable directory path.
func LoadCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading event dir %s: %w", dir, err)
	}
	var events []*GameEvent
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var e GameEvent
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("parsing event file %s: %w", path, err)
		}
		events = append(events, &e)
	}
	return NewCatalog(events)
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
