package draw

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arcanaland/tirage/internal/card"
	"github.com/arcanaland/tirage/internal/deck"
)

// Mode labels a draw; it has no effect on selection
type Mode string

const (
	Solo  Mode = "solo"
	Group Mode = "group"
)

// ParseMode converts a user-supplied mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Solo, "":
		return Solo, nil
	case Group:
		return Group, nil
	}
	return "", fmt.Errorf("unknown draw mode: %s (expected solo or group)", s)
}

// Label returns the French title of the mode
func (m Mode) Label() string {
	if m == Group {
		return "Tirage de groupe"
	}
	return "Tirage solo"
}

// InvalidRequestError reports a count that cannot be drawn from the deck
type InvalidRequestError struct {
	Count int
	Size  int
}

func (e *InvalidRequestError) Error() string {
	if e.Count < 0 {
		return fmt.Sprintf("invalid draw: count %d is negative", e.Count)
	}
	return fmt.Sprintf("invalid draw: cannot draw %d cards from a deck of %d", e.Count, e.Size)
}

// Result is one draw. Cards are listed in ascending deck position.
type Result struct {
	ID       uuid.UUID
	DeckID   deck.ID
	DeckName string
	Mode     Mode
	DrawnAt  time.Time

	cards []*card.Card
}

// Cards returns the drawn cards
func (r *Result) Cards() []*card.Card {
	if r == nil {
		return nil
	}
	out := make([]*card.Card, len(r.cards))
	copy(out, r.cards)
	return out
}

// Len returns the number of drawn cards
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.cards)
}

// Card gets a drawn card by id
func (r *Result) Card(id string) (*card.Card, bool) {
	if r == nil {
		return nil, false
	}
	for _, c := range r.cards {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// ShareText renders the result as the text users share
func (r *Result) ShareText() string {
	names := make([]string, len(r.cards))
	for i, c := range r.cards {
		names[i] = c.Nom
	}
	return fmt.Sprintf("J'ai tiré : %s avec le %s !", strings.Join(names, ", "), r.DeckName)
}

// Engine draws cards from decks. It is safe for concurrent use.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewEngine creates an engine drawing its randomness from src
func NewEngine(src rand.Source) *Engine {
	return &Engine{
		rng: rand.New(src),
		now: time.Now,
	}
}

// Default returns an engine seeded from crypto/rand
func Default() *Engine {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("draw: reading random seed: %v", err))
	}
	return NewEngine(rand.NewChaCha8(seed))
}

// Draw selects count distinct cards uniformly at random. Every card has
// the same probability of inclusion and calls are independent. The deck
// is left untouched.
func (e *Engine) Draw(d *deck.Deck, count int, mode Mode) (*Result, error) {
	size := d.Len()
	if count < 0 || count > size {
		return nil, &InvalidRequestError{Count: count, Size: size}
	}

	positions := e.sample(size, count)
	slices.Sort(positions)

	cards := make([]*card.Card, count)
	for i, p := range positions {
		cards[i] = d.At(p)
	}

	r := &Result{
		ID:      uuid.New(),
		Mode:    mode,
		DrawnAt: e.now(),
		cards:   cards,
	}
	if d != nil {
		r.DeckID = d.ID
		r.DeckName = d.Name
	}
	return r, nil
}

// sample returns k distinct positions in [0, n) with a partial Fisher-Yates
func (e *Engine) sample(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	e.mu.Lock()
	for i := 0; i < k; i++ {
		j := i + e.rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	e.mu.Unlock()

	return idx[:k]
}
