package mining

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Miner{}
)

// RegisterMiner makes an engine available to NewMiner under name.
// Engine packages call it from init(). Names are case-insensitive.
// Panics on an empty name, a nil factory or a duplicate registration.
func RegisterMiner(name string, factory func() Miner) {
	if name == "" {
		panic("RegisterMiner: name must not be empty")
	}
	if factory == nil {
		panic(fmt.Sprintf("RegisterMiner: nil factory for %q", name))
	}
	key := strings.ToLower(name)
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[key]; dup {
		panic(fmt.Sprintf("RegisterMiner: %q registered twice", name))
	}
	registry[key] = factory
}

// IsValidMiner reports whether name refers to a registered engine.
func IsValidMiner(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[strings.ToLower(name)]
	return ok
}

// NewMiner creates a fresh engine by name.
// Panics on unrecognized names; check IsValidMiner first for user input.
func NewMiner(name string) Miner {
	registryMu.RLock()
	factory, ok := registry[strings.ToLower(name)]
	registryMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("unknown miner %q; registered: %s", name, strings.Join(MinerNames(), ", ")))
	}
	return factory()
}

// MinerNames returns the registered engine names (lower case), sorted.
func MinerNames() []string {
	registryMu.RLock()
	names := lo.Keys(registry)
	registryMu.RUnlock()
	sort.Strings(names)
	return names
}
