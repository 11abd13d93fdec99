package ruleset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/riftward/riftward/internal/game/rng"
)

// Realm defines one themed stage of a run. Exactly one realm in the catalog
// must be marked Final; it always closes out the realm order.
//
// Precondition: ID and Name must be non-empty after loading.
type Realm struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Emoji       string `yaml:"emoji"`
	EnemyTag    string `yaml:"enemy_tag"` // matches enemy template tags for spawning
	Final       bool   `yaml:"final"`
}

// RealmOrder produces the realm sequence for one run: every non-final realm
// shuffled, then the final realm appended.
//
// Precondition: src must be non-nil.
// Postcondition: Returns an error unless realms contains exactly one Final
// entry; the returned slice has len(realms) ids with the final realm last.
func RealmOrder(realms []*Realm, src rng.Source) ([]string, error) {
	var ordinary []string
	var final []string
	for _, r := range realms {
		if r.Final {
			final = append(final, r.ID)
		} else {
			ordinary = append(ordinary, r.ID)
		}
	}
	if len(final) != 1 {
		return nil, fmt.Errorf("realm catalog must have exactly one final realm, got %d", len(final))
	}
	rng.Shuffle(ordinary, src)
	return append(ordinary, final[0]), nil
}

// LoadRealms reads all .yaml files in dir and parses each as a Realm.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed realms (may be empty slice) or a non-nil error.
func LoadRealms(dir string) ([]*Realm, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	realms := make([]*Realm, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var r Realm
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("parsing realm file %s: %w", path, err)
		}
		realms = append(realms, &r)
	}
	return realms, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
