// Package enemy defines enemy templates, the archetype reshaping layer, and
// the spawner that turns a template into a live enemy for a given stage,
// substage, and ascension count.
package enemy

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Archetype reshapes a base template's cadence and stats while preserving
// its damage-per-second.
type Archetype string

const (
	Standard   Archetype = "standard"
	Swift      Archetype = "swift"
	Heavy      Archetype = "heavy"
	Arcane     Archetype = "arcane"
	Vampiric   Archetype = "vampiric"
	Juggernaut Archetype = "juggernaut"
)

// Archetypes lists every archetype; Standard first.
func Archetypes() []Archetype {
	return []Archetype{Standard, Swift, Heavy, Arcane, Vampiric, Juggernaut}
}

// SpecialAttack is a boss's periodic heavy strike: a damage multiplier with
// its own charge time, used once every fourth attack.
type SpecialAttack struct {
	Name       string        `yaml:"name"`
	Multiplier float64       `yaml:"multiplier"`
	ChargeTime time.Duration `yaml:"charge_time"`
}

// Template is a static enemy definition before stage scaling and archetype
// reshaping.
//
// Precondition: ID and Name non-empty; MaxHealth, AttackPower,
// AttackInterval, ChargeTime all > 0 after loading.
type Template struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Emoji          string         `yaml:"emoji"`
	Tag            string         `yaml:"tag"` // matches a realm's enemy_tag
	MaxHealth      float64        `yaml:"max_health"`
	AttackPower    float64        `yaml:"attack_power"`
	AttackInterval time.Duration  `yaml:"attack_interval"`
	ChargeTime     time.Duration  `yaml:"charge_time"`
	CoinReward     float64        `yaml:"coin_reward"`
	Boss           bool           `yaml:"boss"`
	Special        *SpecialAttack `yaml:"special"`
}

// Validate checks the template's invariants.
func (t *Template) Validate() error {
	if t.ID == "" || t.Name == "" {
		return fmt.Errorf("enemy template must have id and name")
	}
	if t.MaxHealth <= 0 || t.AttackPower <= 0 {
		return fmt.Errorf("enemy %s: max_health and attack_power must be > 0", t.ID)
	}
	if t.AttackInterval <= 0 || t.ChargeTime <= 0 {
		return fmt.Errorf("enemy %s: attack_interval and charge_time must be > 0", t.ID)
	}
	if t.Special != nil && t.Special.Multiplier <= 0 {
		return fmt.Errorf("enemy %s: special multiplier must be > 0", t.ID)
	}
	return nil
}

// applyArchetype reshapes t for the archetype, preserving DPS: when the
// attack interval changes by factor f, attack power scales by the same f
// (power/interval stays constant). Signature twists: vampiric gains
// lifesteal, juggernaut gains bonus health, arcane also charges faster.
func applyArchetype(t Template, a Archetype) (Template, float64) {
	lifesteal := 0.0
	reshape := func(f float64) {
		// power/interval is the template's DPS; both scale by f together.
		t.AttackPower *= f
		t.AttackInterval = time.Duration(float64(t.AttackInterval) * f)
	}
	switch a {
	case Swift:
		reshape(0.6)
	case Heavy:
		reshape(1.5)
	case Arcane:
		reshape(0.85)
		t.ChargeTime = time.Duration(float64(t.ChargeTime) * 0.7)
	case Vampiric:
		lifesteal = 0.25
	case Juggernaut:
		reshape(1.8)
		t.MaxHealth *= 1.5
	}
	return t, lifesteal
}

// Enemy is one live enemy instance. Template-derived fields are fixed at
// spawn; only CurrentHealth mutates.
type Enemy struct {
	InstanceID     string
	TemplateID     string
	Name           string
	Emoji          string
	Archetype      Archetype
	MaxHealth      float64
	CurrentHealth  float64
	AttackPower    float64
	AttackInterval time.Duration
	ChargeTime     time.Duration
	CoinReward     float64
	Boss           bool
	Lifesteal      float64
	Special        *SpecialAttack
}

// IsDead reports whether the enemy's health has reached zero.
func (e *Enemy) IsDead() bool { return e.CurrentHealth <= 0 }

// ApplyDamage reduces CurrentHealth by amount, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: CurrentHealth >= 0.
func (e *Enemy) ApplyDamage(amount float64) {
	e.CurrentHealth -= amount
	if e.CurrentHealth < 0 {
		e.CurrentHealth = 0
	}
}

// Heal raises CurrentHealth by amount, capped at MaxHealth.
//
// Precondition: amount >= 0.
// Postcondition: CurrentHealth <= MaxHealth.
func (e *Enemy) Heal(amount float64) {
	e.CurrentHealth += amount
	if e.CurrentHealth > e.MaxHealth {
		e.CurrentHealth = e.MaxHealth
	}
}

// instantiate mints a live Enemy from a scaled template.
func instantiate(t Template, a Archetype) *Enemy {
	reshaped, lifesteal := applyArchetype(t, a)
	return &Enemy{
		InstanceID:     uuid.New().String(),
		TemplateID:     reshaped.ID,
		Name:           reshaped.Name,
		Emoji:          reshaped.Emoji,
		Archetype:      a,
		MaxHealth:      reshaped.MaxHealth,
		CurrentHealth:  reshaped.MaxHealth,
		AttackPower:    reshaped.AttackPower,
		AttackInterval: reshaped.AttackInterval,
		ChargeTime:     reshaped.ChargeTime,
		CoinReward:     reshaped.CoinReward,
		Boss:           reshaped.Boss,
		Lifesteal:      lifesteal,
		Special:        reshaped.Special,
	}
}

// Catalog holds the enemy templates for one engine instance.
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
			return nil, fmt.Errorf("duplicate enemy id %q", t.ID)
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

// Minions returns non-boss templates matching tag, falling back to all
// non-boss templates when none carry the tag.
func (c *Catalog) Minions(tag string) []*Template {
	var tagged, all []*Template
	for _, t := range c.order {
		if t.Boss {
			continue
		}
		all = append(all, t)
		if t.Tag == tag {
			tagged = append(tagged, t)
		}
	}
	if len(tagged) > 0 {
		return tagged
	}
	return all
}

// Bosses returns boss templates matching tag, falling back to all bosses.
func (c *Catalog) Bosses(tag string) []*Template {
	var tagged, all []*Template
	for _, t := range c.order {
		if !t.Boss {
			continue
		}
		all = append(all, t)
		if t.Tag == tag {
			tagged = append(tagged, t)
		}
	}
	if len(tagged) > 0 {
		return tagged
	}
	return all
}

// LoadCatalog reads all .yaml files in dir, parsing each as one Template.
//
// Precondition: dir must be a readable directory path.
func LoadCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading enemy dir %q: %w", dir, err)
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
			return nil, fmt.Errorf("parsing enemy file %s: %w", path, err)
		}
		tpls = append(tpls, &t)
	}
	return NewCatalog(tpls)
}
