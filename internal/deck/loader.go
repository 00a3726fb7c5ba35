package deck

import (
	"context"
	"log/slog"
	"time"
)

// Loader runs the index-then-cards pipeline for a deck identifier
type Loader struct {
	registry  *Registry
	source    Source
	assembler *Assembler
	logger    *slog.Logger
}

// NewLoader creates a loader for the decks of registry, read from source
func NewLoader(registry *Registry, source Source, opts ...AssemblerOption) *Loader {
	a := NewAssembler(source, opts...)
	return &Loader{
		registry:  registry,
		source:    source,
		assembler: a,
		logger:    a.logger,
	}
}

// Registry returns the registry the loader resolves identifiers with
func (l *Loader) Registry() *Registry {
	return l.registry
}

// Load fetches the manifest of the deck and assembles all its cards
func (l *Loader) Load(ctx context.Context, id ID) (*Deck, error) {
	def, err := l.registry.Lookup(id)
	if err != nil {
		return nil, &ManifestUnavailableError{Deck: id, Err: err}
	}

	start := time.Now()

	m, err := LoadManifest(ctx, l.source, def)
	if err != nil {
		return nil, err
	}

	d, err := l.assembler.Assemble(ctx, def, m)
	if err != nil {
		return nil, err
	}

	l.logger.Info("deck loaded", "deck", id, "cards", d.Len(), "duration", time.Since(start))
	return d, nil
}
