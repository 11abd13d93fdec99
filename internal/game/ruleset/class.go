// Package ruleset defines the static game rules content: playable classes
// with their base stats and specialization sets, and the realms a run cycles
// through. Content is loadable from YAML directories; built-in defaults are
// used when no directory is configured.
package ruleset

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riftward/riftward/internal/game/stats"
)

// ModifierDef is the YAML form of a single stat modifier.
type ModifierDef struct {
	Stat    string  `yaml:"stat"`
	Flat    float64 `yaml:"flat"`
	Percent float64 `yaml:"percent"`
}

// Modifier converts the definition to a stats.Modifier.
//
// Postcondition: Returns an error iff Stat is not a recognized stat name.
func (m ModifierDef) Modifier() (stats.Modifier, error) {
	s, ok := stats.ParseStat(m.Stat)
	if !ok {
		return stats.Modifier{}, fmt.Errorf("unknown stat %q", m.Stat)
	}
	return stats.Modifier{Stat: s, Flat: m.Flat, Percent: m.Percent}, nil
}

// Modifiers converts a slice of ModifierDefs, failing on the first bad entry.
func Modifiers(defs []ModifierDef) ([]stats.Modifier, error) {
	out := make([]stats.Modifier, 0, len(defs))
	for i, d := range defs {
		m, err := d.Modifier()
		if err != nil {
			return nil, fmt.Errorf("modifier[%d]: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// BaseStats is the YAML form of a class's starting stats.
type BaseStats struct {
	AttackPower     float64 `yaml:"attack_power"`
	AttackSpeed     float64 `yaml:"attack_speed"`
	MaxHealth       float64 `yaml:"max_health"`
	CritChance      float64 `yaml:"crit_chance"`
	CritDamage      float64 `yaml:"crit_damage"`
	Luck            float64 `yaml:"luck"`
	Accuracy        float64 `yaml:"accuracy"`
	DamageReduction float64 `yaml:"damage_reduction"`
}

// PlayerStats converts the base stats to an unfinalized stats snapshot.
func (b BaseStats) PlayerStats() stats.PlayerStats {
	return stats.PlayerStats{
		AttackPower:     b.AttackPower,
		AttackSpeed:     b.AttackSpeed,
		MaxHealth:       b.MaxHealth,
		CritChance:      b.CritChance,
		CritDamage:      b.CritDamage,
		Luck:            b.Luck,
		Accuracy:        b.Accuracy,
		DamageReduction: b.DamageReduction,
	}
}

// Class defines a playable class: base stats, the signature upgrade driving
// specialization, and the novice/expert specialization modifier sets.
// Advanced classes are hidden until unlocked by the run lifecycle (first
// stage-1 boss kill).
//
// Precondition: ID, Name, and SignatureUpgrade must be non-empty after loading.
type Class struct {
	ID               string        `yaml:"id"`
	Name             string        `yaml:"name"`
	Description      string        `yaml:"description"`
	BaseStats        BaseStats     `yaml:"base_stats"`
	SignatureUpgrade string        `yaml:"signature_upgrade"`
	Novice           []ModifierDef `yaml:"novice"`
	Expert           []ModifierDef `yaml:"expert"`
	Advanced         bool          `yaml:"advanced"`
}

// ClassBase converts the class to its stat-pipeline view.
//
// Postcondition: Returns an error iff a specialization modifier names an
// unknown stat.
func (c *Class) ClassBase() (stats.ClassBase, error) {
	novice, err := Modifiers(c.Novice)
	if err != nil {
		return stats.ClassBase{}, fmt.Errorf("class %s novice: %w", c.ID, err)
	}
	expert, err := Modifiers(c.Expert)
	if err != nil {
		return stats.ClassBase{}, fmt.Errorf("class %s expert: %w", c.ID, err)
	}
	return stats.ClassBase{
		ID:                 c.ID,
		Base:               c.BaseStats.PlayerStats(),
		SignatureUpgradeID: c.SignatureUpgrade,
		Novice:             novice,
		Expert:             expert,
	}, nil
}

// LoadClasses reads all .yaml files in dir and parses each as a Class.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed classes (may be empty slice) or a non-nil error.
func LoadClasses(dir string) ([]*Class, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	classes := make([]*Class, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var c Class
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("parsing class file %s: %w", path, err)
		}
		classes = append(classes, &c)
	}
	return classes, nil
}
