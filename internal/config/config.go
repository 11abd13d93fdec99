// Package config provides Viper-based configuration loading for the
// simulation engine and its headless driver.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SimulationConfig holds the engine's timing and tuning settings.
type SimulationConfig struct {
	// TickInterval is the fixed scheduler period.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// PlayerAttackInterval is the base attack period before attack speed.
	PlayerAttackInterval time.Duration `mapstructure:"player_attack_interval"`
	// DoTSubTickEvery applies damage-over-time once per this many ticks.
	DoTSubTickEvery int `mapstructure:"dot_subtick_every"`
	// BossSubstage is the substage at which the realm boss spawns.
	BossSubstage int `mapstructure:"boss_substage"`
	// VictoryPauseTicks is the beat between a defeat and the next spawn.
	VictoryPauseTicks int `mapstructure:"victory_pause_ticks"`
	// StartingCoins seeds each fresh run's balance.
	StartingCoins float64 `mapstructure:"starting_coins"`
	// EventChance is the probability a substage completion offers an event.
	EventChance float64 `mapstructure:"event_chance"`
	// BossSpecialEvery makes bosses wind up their special once per this many strikes.
	BossSpecialEvery int `mapstructure:"boss_special_every"`
}

// ContentConfig points at YAML content directories. An empty path means the
// built-in defaults for that catalog.
type ContentConfig struct {
	ClassesDir   string `mapstructure:"classes_dir"`
	RealmsDir    string `mapstructure:"realms_dir"`
	UpgradesDir  string `mapstructure:"upgrades_dir"`
	ItemsDir     string `mapstructure:"items_dir"`
	EnemiesDir   string `mapstructure:"enemies_dir"`
	EventsDir    string `mapstructure:"events_dir"`
	AbilitiesDir string `mapstructure:"abilities_dir"`
	// ScriptInstructionLimit caps Lua opcodes per event consequence script.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// DriverConfig holds headless-driver settings.
type DriverConfig struct {
	// Seed fixes the random source for reproducible runs; 0 = crypto source.
	Seed int64 `mapstructure:"seed"`
	// Ticks is how many scheduler ticks to simulate.
	Ticks int `mapstructure:"ticks"`
	// Class is the starting class id.
	Class string `mapstructure:"class"`
}

// Config is the top-level application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Content    ContentConfig    `mapstructure:"content"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Driver     DriverConfig     `mapstructure:"driver"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDriver(c.Driver); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.TickInterval <= 0 {
		errs = append(errs, "simulation.tick_interval must be > 0")
	}
	if s.PlayerAttackInterval <= 0 {
		errs = append(errs, "simulation.player_attack_interval must be > 0")
	}
	if s.DoTSubTickEvery < 1 {
		errs = append(errs, fmt.Sprintf("simulation.dot_subtick_every must be >= 1, got %d", s.DoTSubTickEvery))
	}
	if s.BossSubstage < 2 {
		errs = append(errs, fmt.Sprintf("simulation.boss_substage must be >= 2, got %d", s.BossSubstage))
	}
	if s.VictoryPauseTicks < 0 {
		errs = append(errs, "simulation.victory_pause_ticks must not be negative")
	}
	if s.StartingCoins < 0 {
		errs = append(errs, "simulation.starting_coins must not be negative")
	}
	if s.EventChance < 0 || s.EventChance > 1 {
		errs = append(errs, fmt.Sprintf("simulation.event_chance must be within [0,1], got %g", s.EventChance))
	}
	if s.BossSpecialEvery < 1 {
		errs = append(errs, fmt.Sprintf("simulation.boss_special_every must be >= 1, got %d", s.BossSpecialEvery))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateDriver(d DriverConfig) error {
	var errs []string
	if d.Ticks < 0 {
		errs = append(errs, "driver.ticks must not be negative")
	}
	if d.Class == "" {
		errs = append(errs, "driver.class must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path skips the file
// and uses defaults plus environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with RIFTWARD_ prefix
	v.SetEnvPrefix("RIFTWARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.tick_interval", "100ms")
	v.SetDefault("simulation.player_attack_interval", "2s")
	v.SetDefault("simulation.dot_subtick_every", 5)
	v.SetDefault("simulation.boss_substage", 6)
	v.SetDefault("simulation.victory_pause_ticks", 10)
	v.SetDefault("simulation.starting_coins", 10)
	v.SetDefault("simulation.event_chance", 0.15)
	v.SetDefault("simulation.boss_special_every", 4)

	v.SetDefault("content.script_instruction_limit", 100000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("driver.seed", 1)
	v.SetDefault("driver.ticks", 6000)
	v.SetDefault("driver.class", "warrior")
}
