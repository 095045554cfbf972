// Package registry provides a global registry for level packs.
// Built-in packs register themselves in init() functions and user packs are
// added from disk, allowing the platform to discover packs without
// hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/sokoban/internal/games/sokoban/levels"
)

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID     string
	Title  string
	Levels int
	Source string // "builtin" or the file the pack was loaded from
}

// Factory is a function that returns a level pack.
type Factory func() *levels.Pack

type entry struct {
	factory Factory
	info    PackInfo
}

var (
	packs = make(map[string]entry)
	mu    sync.RWMutex
)

// Register adds a pack factory to the registry.
// Typically called from an init() function.
// Panics if a pack with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := packs[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	// Get metadata by creating a temporary instance
	p := f()
	source := "builtin"
	if p.FilePath != "" {
		source = p.FilePath
	}
	packs[id] = entry{
		factory: f,
		info: PackInfo{
			ID:     id,
			Title:  p.Title,
			Levels: p.Count(),
			Source: source,
		},
	}
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(packs))
	for _, e := range packs {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Open returns a fresh copy of the pack with the given ID.
// Returns an error if the pack ID is not registered.
func Open(id string) (*levels.Pack, error) {
	mu.RLock()
	e, ok := packs[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}

	return e.factory(), nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := packs[id]
	return ok
}

// RegisterDir registers every pack found under root. Packs whose ID is
// already taken are skipped. Returns the number of packs added.
func RegisterDir(root string) (int, error) {
	found, err := levels.NewLoader(root).LoadAll()
	if err != nil {
		return 0, err
	}

	added := 0
	for _, p := range found {
		if Exists(p.ID) {
			continue
		}
		path := p.FilePath
		Register(p.ID, func() *levels.Pack {
			fresh, err := levels.NewLoader(root).LoadFile(path)
			if err != nil {
				return p
			}
			return fresh
		})
		added++
	}
	return added, nil
}

func init() {
	Register(levels.ClassicID, levels.Classic)
	Register(levels.TutorialID, levels.Tutorial)
}
