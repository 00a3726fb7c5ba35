package deck

import (
	"fmt"

	"github.com/arcanaland/tirage/internal/card"
)

// Deck is an assembled, validated deck. Cards keep manifest order and
// are never modified after assembly.
type Deck struct {
	ID   ID
	Name string

	cards []*card.Card
	index map[string]int
}

// New builds a deck from cards held in memory
func New(id ID, name string, cards []*card.Card) (*Deck, error) {
	seen := make(map[string]int, len(cards))
	for i, c := range cards {
		if c == nil {
			return nil, fmt.Errorf("deck %s: card %d is nil", id, i)
		}
		if j, ok := seen[c.ID]; ok {
			return nil, &DuplicateCardIDError{
				Deck:   id,
				ID:     c.ID,
				First:  fmt.Sprintf("card %d", j),
				Second: fmt.Sprintf("card %d", i),
			}
		}
		seen[c.ID] = i
	}

	owned := make([]*card.Card, len(cards))
	copy(owned, cards)
	return newDeck(id, name, owned), nil
}

// newDeck builds a deck from cards already checked for duplicate ids
func newDeck(id ID, name string, cards []*card.Card) *Deck {
	index := make(map[string]int, len(cards))
	for i, c := range cards {
		index[c.ID] = i
	}

	return &Deck{
		ID:    id,
		Name:  name,
		cards: cards,
		index: index,
	}
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.cards)
}

// Cards returns the cards in deck order
func (d *Deck) Cards() []*card.Card {
	if d == nil {
		return nil
	}
	out := make([]*card.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// At returns the card at position i
func (d *Deck) At(i int) *card.Card {
	return d.cards[i]
}

// Card gets a card by its id
func (d *Deck) Card(id string) (*card.Card, bool) {
	i, ok := d.Index(id)
	if !ok {
		return nil, false
	}
	return d.cards[i], true
}

// Index returns the deck position of the card with the given id
func (d *Deck) Index(id string) (int, bool) {
	if d == nil {
		return 0, false
	}
	i, ok := d.index[id]
	return i, ok
}
