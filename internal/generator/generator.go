// Package generator defines the mapper interface and target registry for
// rendering the intermediate model into framework source code.
package generator

import (
	"fmt"
	"sort"
	"sync"

	"Ontoflow/pkg/types"
)

// Target identifies a supported output framework.
type Target string

const (
	TargetCrewAI  Target = "crewai"
	TargetAutoGen Target = "autogen"
)

// Mapper renders an intermediate model into source text for one framework.
// Implementations must be pure: the same model yields byte-identical output,
// and concurrent calls over the same model are safe.
type Mapper interface {
	Target() Target
	Generate(p *types.Project) (string, error)
}

var (
	mu       sync.RWMutex
	registry = make(map[Target]Mapper)
)

// Register adds a mapper to the registry. Mappers register from init().
func Register(m Mapper) {
	mu.Lock()
	defer mu.Unlock()
	registry[m.Target()] = m
}

// Get returns the mapper for a target.
func Get(target Target) (Mapper, error) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := registry[target]
	if !ok {
		return nil, fmt.Errorf("unknown generation target: %s", target)
	}
	return m, nil
}

// Targets returns the registered targets, sorted.
func Targets() []Target {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Target, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
