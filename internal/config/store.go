package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Params is one flat layer of named scalar parameters as loaded from YAML.
// Values are untyped (float, int, bool or string) until the resolver
// coerces them.
type Params map[string]any

// Store holds the three configuration layers: global defaults, named
// scenarios and named regions. It only stores resolved mappings; merging
// and validation happen in the Resolver.
type Store struct {
	globals   Params
	scenarios map[string]Params
	regions   map[string]Params
}

// NewStore builds a store from in-memory layers (used by tests and by
// callers that manage their own configuration source).
func NewStore(globals Params, scenarios, regions map[string]Params) *Store {
	return &Store{globals: globals, scenarios: scenarios, regions: regions}
}

// LoadDir reads globals.yaml, scenarios.yaml and regions.yaml from dir.
func LoadDir(dir string) (*Store, error) {
	globals, err := loadFlat(filepath.Join(dir, "globals.yaml"))
	if err != nil {
		return nil, err
	}
	scenarios, err := loadNested(filepath.Join(dir, "scenarios.yaml"))
	if err != nil {
		return nil, err
	}
	regions, err := loadNested(filepath.Join(dir, "regions.yaml"))
	if err != nil {
		return nil, err
	}
	return NewStore(globals, scenarios, regions), nil
}

func loadFlat(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var params Params
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if params == nil {
		return nil, fmt.Errorf("%s must contain a top-level mapping", path)
	}
	return params, nil
}

func loadNested(path string) (map[string]Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var nested map[string]Params
	if err := yaml.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if nested == nil {
		return nil, fmt.Errorf("%s must contain a top-level mapping of named parameter sets", path)
	}
	return nested, nil
}

// ScenarioNames lists the available scenarios, sorted.
func (s *Store) ScenarioNames() []string {
	return sortedKeys(s.scenarios)
}

// RegionNames lists the available regions, sorted.
func (s *Store) RegionNames() []string {
	return sortedKeys(s.regions)
}

func sortedKeys(m map[string]Params) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
