package deck

import (
	"fmt"
	"sort"
	"sync"
)

// ID identifies a named deck
type ID string

const (
	Marseille ID = "marseille"
	Boulot    ID = "boulot"
)

// Definition tells where the resources of a deck live
type Definition struct {
	ID       ID
	Name     string // Display name, e.g. "Tarot de Marseille"
	Manifest string // Path of the index file, relative to the source root
	Folder   string // Folder holding the card files, relative to the source root
}

// CardPath returns the source path of a manifest entry's card file
func (d Definition) CardPath(file string) string {
	if d.Folder == "" {
		return file
	}
	return d.Folder + "/" + file
}

// Registry maps deck identifiers to their resource locations
type Registry struct {
	mu   sync.RWMutex
	defs map[ID]Definition
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{defs: make(map[ID]Definition)}
}

// DefaultRegistry returns a registry holding the built-in decks
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.defs[Marseille] = Definition{
		ID:       Marseille,
		Name:     "Tarot de Marseille",
		Manifest: "index/index_tarot_marseille.json",
		Folder:   "marseille",
	}
	r.defs[Boulot] = Definition{
		ID:       Boulot,
		Name:     "Tarot de Boulot",
		Manifest: "index/index_tarot_boulot.json",
		Folder:   "boulot",
	}
	return r
}

// Register adds or replaces a deck
func (r *Registry) Register(def Definition) error {
	if def.ID == "" {
		return fmt.Errorf("deck id is required")
	}
	if def.Manifest == "" {
		return fmt.Errorf("deck %s: manifest path is required", def.ID)
	}
	if def.Name == "" {
		def.Name = string(def.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.ID] = def
	return nil
}

// Lookup returns the definition of a registered deck
func (r *Registry) Lookup(id ID) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.defs[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownDeck, id)
	}
	return s, nil
}

// Definitions returns every registered deck sorted by id
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.defs))
	for _, s := range r.defs {
		defs = append(defs, s)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}
