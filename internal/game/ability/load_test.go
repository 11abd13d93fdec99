package ability

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftward/riftward/internal/game/effect"
)

func writeAbility(t *testing.T, dir, name, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o600))
}

func TestLoadCatalog_YAML(t *testing.T) {
	dir := t.TempDir()
	writeAbility(t, dir, "firebolt.yaml", `id: firebolt
name: Firebolt
emoji: "🔥"
class: mystic
cooldown: 8s
base_cost: 20
cost_stage_factor: 0.5
unlock:
  total_levels: 10
handler:
  kind: strike
  multiplier: 3.0
  delay: 500ms
`)
	writeAbility(t, dir, "venom.yaml", `id: venom
name: Venom Brand
cooldown: 12s
base_cost: 15
handler:
  kind: dot
  dot: poison
  multiplier: 4.0
`)

	cat, err := LoadCatalog(dir)
	require.NoError(t, err)

	fb, ok := cat.Get("firebolt")
	require.True(t, ok)
	assert.Equal(t, "mystic", fb.ClassID)
	assert.Equal(t, 8*time.Second, fb.Cooldown)
	require.NotNil(t, fb.Unlock)
	assert.Equal(t, 10, fb.Unlock.TotalLevels)
	strike, ok := fb.Handler.(StrikeHandler)
	require.True(t, ok)
	assert.Equal(t, 3.0, strike.Multiplier)
	assert.Equal(t, 500*time.Millisecond, strike.Delay)

	vn, ok := cat.Get("venom")
	require.True(t, ok)
	dot, ok := vn.Handler.(DoTHandler)
	require.True(t, ok)
	assert.Equal(t, effect.Poison, dot.Kind)
}

func TestLoadCatalog_UnknownHandlerKind(t *testing.T) {
	dir := t.TempDir()
	writeAbility(t, dir, "bad.yaml", `id: bad
name: Bad
cooldown: 5s
base_cost: 5
handler:
  kind: summon
`)
	_, err := LoadCatalog(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summon")
}

func TestLoadCatalog_RejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeAbility(t, dir, "bad.yaml", `id: bad
name: Bad
cooldwon: 5s
base_cost: 5
handler:
  kind: heal
  percent: 0.3
`)
	_, err := LoadCatalog(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cooldwon")
}

func TestLoadCatalog_MissingHandlerFailsValidation(t *testing.T) {
	dir := t.TempDir()
	writeAbility(t, dir, "bad.yaml", `id: bad
name: Bad
cooldown: 5s
base_cost: 5
`)
	_, err := LoadCatalog(dir)
	require.Error(t, err)
}
