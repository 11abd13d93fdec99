package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, 2*time.Second, cfg.Simulation.PlayerAttackInterval)
	assert.Equal(t, 5, cfg.Simulation.DoTSubTickEvery)
	assert.Equal(t, 6, cfg.Simulation.BossSubstage)
	assert.Equal(t, 0.15, cfg.Simulation.EventChance)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "warrior", cfg.Driver.Class)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation:
  tick_interval: 50ms
  event_chance: 0.5
content:
  abilities_dir: content/abilities
logging:
  level: debug
  format: console
driver:
  class: mystic
  ticks: 100
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, 0.5, cfg.Simulation.EventChance)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "content/abilities", cfg.Content.AbilitiesDir)
	assert.Equal(t, "mystic", cfg.Driver.Class)
	// Unset keys keep their defaults.
	assert.Equal(t, 6, cfg.Simulation.BossSubstage)
}

func TestValidateCollectsViolations(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Simulation.TickInterval = 0
	cfg.Simulation.EventChance = 1.5
	cfg.Logging.Level = "verbose"
	cfg.Driver.Class = ""

	verr := cfg.Validate()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "tick_interval")
	assert.Contains(t, verr.Error(), "event_chance")
	assert.Contains(t, verr.Error(), "logging.level")
	assert.Contains(t, verr.Error(), "driver.class")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
