package deck

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/tirage/internal/card"
)

// DefaultMaxConcurrentFetches caps the card fetches in flight per assembly
const DefaultMaxConcurrentFetches = 16

// Assembler resolves manifest entries into a Deck
type Assembler struct {
	source        Source
	maxConcurrent int
	logger        *slog.Logger
}

// AssemblerOption configures an Assembler
type AssemblerOption func(*Assembler)

// WithMaxConcurrentFetches caps concurrent card fetches; n <= 0 removes the cap
func WithMaxConcurrentFetches(n int) AssemblerOption {
	return func(a *Assembler) {
		a.maxConcurrent = n
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *slog.Logger) AssemblerOption {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssembler creates an assembler reading card files from source
func NewAssembler(source Source, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		source:        source,
		maxConcurrent: DefaultMaxConcurrentFetches,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble fetches every card of the manifest concurrently and returns
// the deck in manifest order. The first failing entry aborts the whole
// assembly; no partial deck is ever returned.
func (a *Assembler) Assemble(ctx context.Context, def Definition, m Manifest) (*Deck, error) {
	cards := make([]*card.Card, len(m))

	g, gctx := errgroup.WithContext(ctx)
	if a.maxConcurrent > 0 {
		g.SetLimit(a.maxConcurrent)
	}

	for i, entry := range m {
		g.Go(func() error {
			ref := def.CardPath(entry.File)

			data, err := a.source.Fetch(gctx, ref)
			if err != nil {
				return &AssemblyError{Deck: def.ID, Ref: ref, Err: err}
			}

			c, err := card.Parse(data)
			if err != nil {
				return &AssemblyError{Deck: def.ID, Ref: ref, Err: err}
			}

			// Each goroutine owns slot i
			cards[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Debug("deck assembly failed", "deck", def.ID, "error", err)
		return nil, err
	}

	// Duplicate ids are checked once all slots are filled
	seen := make(map[string]int, len(cards))
	for i, c := range cards {
		if j, ok := seen[c.ID]; ok {
			return nil, &DuplicateCardIDError{
				Deck:   def.ID,
				ID:     c.ID,
				First:  def.CardPath(m[j].File),
				Second: def.CardPath(m[i].File),
			}
		}
		seen[c.ID] = i
	}

	a.logger.Debug("deck assembled", "deck", def.ID, "cards", len(cards))
	return newDeck(def.ID, def.Name, cards), nil
}
