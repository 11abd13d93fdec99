package ability

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riftward/riftward/internal/game/effect"
	"github.com/riftward/riftward/internal/game/upgrade"
)

// HandlerDef is the YAML form of an ability's behavior. Kind names a
// registered handler; the remaining fields parameterize it, and each kind
// reads only its own fields.
type HandlerDef struct {
	Kind string `yaml:"kind"`

	Multiplier float64       `yaml:"multiplier,omitempty"`
	Delay      time.Duration `yaml:"delay,omitempty"`
	Hits       int           `yaml:"hits,omitempty"`
	Interval   time.Duration `yaml:"interval,omitempty"`
	Percent    float64       `yaml:"percent,omitempty"`
	Duration   time.Duration `yaml:"duration,omitempty"`

	AttackPower float64 `yaml:"attack_power,omitempty"`
	AttackSpeed float64 `yaml:"attack_speed,omitempty"`
	CritChance  float64 `yaml:"crit_chance,omitempty"`
	CritDamage  float64 `yaml:"crit_damage,omitempty"`
	Luck        float64 `yaml:"luck,omitempty"`
	EnemySpeed  float64 `yaml:"enemy_speed,omitempty"`
	EnemyPower  float64 `yaml:"enemy_power,omitempty"`
	Reflect     float64 `yaml:"reflect,omitempty"`

	DoT           string  `yaml:"dot,omitempty"` // bleed, poison, or burn
	Charges       int     `yaml:"charges,omitempty"`
	WinMultiplier float64 `yaml:"win_multiplier,omitempty"`
	DamagePerCoin float64 `yaml:"damage_per_coin,omitempty"`
}

// Def is the YAML form of one ability template.
type Def struct {
	ID              string                  `yaml:"id"`
	Name            string                  `yaml:"name"`
	Description     string                  `yaml:"description,omitempty"`
	Emoji           string                  `yaml:"emoji,omitempty"`
	Class           string                  `yaml:"class,omitempty"`
	Cooldown        time.Duration           `yaml:"cooldown"`
	BaseCost        float64                 `yaml:"base_cost"`
	CostStageFactor float64                 `yaml:"cost_stage_factor,omitempty"`
	CostCastFactor  float64                 `yaml:"cost_cast_factor,omitempty"`
	SpendsAllCoins  bool                    `yaml:"spends_all_coins,omitempty"`
	Unlock          *upgrade.UnlockCriteria `yaml:"unlock,omitempty"`
	Handler         HandlerDef              `yaml:"handler"`
}

// build converts the definition into a validated-ready template.
func (d *Def) build() (*Ability, error) {
	h, err := buildHandler(d.Handler)
	if err != nil {
		return nil, fmt.Errorf("ability %s: %w", d.ID, err)
	}
	return &Ability{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		Emoji:           d.Emoji,
		ClassID:         d.Class,
		Cooldown:        d.Cooldown,
		BaseCost:        d.BaseCost,
		CostStageFactor: d.CostStageFactor,
		CostCastFactor:  d.CostCastFactor,
		SpendsAllCoins:  d.SpendsAllCoins,
		Unlock:          d.Unlock,
		Handler:         h,
	}, nil
}

func buildHandler(d HandlerDef) (Handler, error) {
	switch d.Kind {
	case "strike":
		return StrikeHandler{Multiplier: d.Multiplier, Delay: d.Delay}, nil
	case "burst":
		return BurstHandler{Hits: d.Hits, Interval: d.Interval, Multiplier: d.Multiplier}, nil
	case "heal":
		return HealHandler{Percent: d.Percent}, nil
	case "shield":
		return ShieldHandler{Percent: d.Percent}, nil
	case "buff":
		return BuffHandler{
			Duration:    d.Duration,
			AttackPower: d.AttackPower,
			AttackSpeed: d.AttackSpeed,
			CritChance:  d.CritChance,
			CritDamage:  d.CritDamage,
			Luck:        d.Luck,
			EnemySpeed:  d.EnemySpeed,
			EnemyPower:  d.EnemyPower,
			Reflect:     d.Reflect,
		}, nil
	case "freeze":
		return FreezeHandler{Duration: d.Duration}, nil
	case "frenzy":
		return FrenzyHandler{Duration: d.Duration}, nil
	case "dot":
		kind, err := parseDoTKind(d.DoT)
		if err != nil {
			return nil, err
		}
		return DoTHandler{Kind: kind, Multiplier: d.Multiplier}, nil
	case "crit_charge":
		return CritChargeHandler{Charges: d.Charges}, nil
	case "miss_charge":
		return MissChargeHandler{Charges: d.Charges}, nil
	case "gamble":
		return GambleHandler{WinMultiplier: d.WinMultiplier}, nil
	case "liquidate":
		return LiquidateHandler{DamagePerCoin: d.DamagePerCoin}, nil
	case "":
		return nil, fmt.Errorf("handler kind must be set")
	default:
		return nil, fmt.Errorf("unknown handler kind %q", d.Kind)
	}
}

func parseDoTKind(s string) (effect.DoTKind, error) {
	switch s {
	case "bleed":
		return effect.Bleed, nil
	case "poison":
		return effect.Poison, nil
	case "burn":
		return effect.Burn, nil
	default:
		return 0, fmt.Errorf("unknown dot kind %q", s)
	}
}

// LoadCatalog reads all .yaml files in dir, parsing each as one ability Def.
//
// Precondition: dir must be a readable directory path.
func LoadCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ability dir %q: %w", dir, err)
	}
	var abilities []*Ability
	for _, e := range entries {
		if e.IsDir() || !(strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var d Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("parsing ability file %s: %w", path, err)
		}
		a, err := d.build()
		if err != nil {
			return nil, err
		}
		abilities = append(abilities, a)
	}
	return NewCatalog(abilities)
}
