package session

import (
	"github.com/arcanaland/tirage/internal/card"
	"github.com/arcanaland/tirage/internal/deck"
	"github.com/arcanaland/tirage/internal/draw"
)

// Status is the load status of the current deck
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of a session.
//
// Deck always belongs to DeckID. While a deck is reloaded, or after a
// reload failed, the previous snapshot of the same deck stays available
// next to the status and error. Switching to another deck clears Deck,
// Draw and Selected.
type State struct {
	Status   Status
	DeckID   deck.ID
	Deck     *deck.Deck
	Err      error
	Draw     *draw.Result
	Selected *card.Card
	Mode     draw.Mode
	Count    int

	generation uint64
}

// Ready reports whether a non-empty deck is available for drawing
func (s State) Ready() bool {
	return s.Deck.Len() > 0
}

type event interface {
	isEvent()
}

type loadStarted struct {
	id         deck.ID
	generation uint64
}

type loadSucceeded struct {
	generation uint64
	deck       *deck.Deck
}

type loadFailed struct {
	generation uint64
	err        error
}

type drawn struct {
	result *draw.Result
}

type inspected struct {
	card *card.Card
}

type modeChanged struct {
	mode draw.Mode
}

type countChanged struct {
	count int
}

func (loadStarted) isEvent()   {}
func (loadSucceeded) isEvent() {}
func (loadFailed) isEvent()    {}
func (drawn) isEvent()         {}
func (inspected) isEvent()     {}
func (modeChanged) isEvent()   {}
func (countChanged) isEvent()  {}

// apply returns the state that follows e. The boolean is false when e
// was discarded, which happens to outcomes of superseded loads.
func (s State) apply(e event) (State, bool) {
	switch e := e.(type) {
	case loadStarted:
		if e.id != s.DeckID {
			s.Deck = nil
			s.Draw = nil
			s.Selected = nil
		}
		s.DeckID = e.id
		s.Status = Loading
		s.Err = nil
		s.generation = e.generation

	case loadSucceeded:
		if e.generation != s.generation {
			return s, false
		}
		s.Status = Loaded
		s.Deck = e.deck
		s.Err = nil
		if s.Selected != nil && !s.owns(s.Selected.ID) {
			s.Selected = nil
		}

	case loadFailed:
		if e.generation != s.generation {
			return s, false
		}
		s.Status = Failed
		s.Err = e.err

	case drawn:
		s.Draw = e.result

	case inspected:
		s.Selected = e.card

	case modeChanged:
		s.Mode = e.mode

	case countChanged:
		s.Count = e.count
	}

	return s, true
}

// owns reports whether the card id is in the current deck or draw
func (s State) owns(id string) bool {
	if _, ok := s.Draw.Card(id); ok {
		return true
	}
	_, ok := s.Deck.Card(id)
	return ok
}
