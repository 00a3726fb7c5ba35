package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/arcanaland/tirage/internal/card"
	"github.com/arcanaland/tirage/internal/deck"
	"github.com/arcanaland/tirage/internal/draw"
)

var (
	// ErrNoDeckLoaded is returned by Draw when no non-empty deck is available
	ErrNoDeckLoaded = errors.New("no deck loaded")

	// ErrCardNotFound is returned by Inspect for cards outside the current deck and draw
	ErrCardNotFound = errors.New("card not found in current deck or draw")
)

// DefaultMaxCount is the largest number of cards a draw can be set up with
const DefaultMaxCount = 10

// DeckLoader loads an assembled deck for an identifier
type DeckLoader interface {
	Load(ctx context.Context, id deck.ID) (*deck.Deck, error)
}

// Session holds the state of one user session and mediates between the
// deck loader, the draw engine and the view layer.
type Session struct {
	loader   DeckLoader
	engine   *draw.Engine
	logger   *slog.Logger
	maxCount int

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
	listeners  []func(State)

	// States waiting for delivery to listeners, in transition order.
	// Only the goroutine that set delivering drains it.
	pending    []State
	delivering bool
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxCount sets the largest count accepted by SetCount
func WithMaxCount(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxCount = n
		}
	}
}

// WithDeck sets the deck identifier the session starts with
func WithDeck(id deck.ID) Option {
	return func(s *Session) {
		s.state.DeckID = id
	}
}

// New creates an idle session with no deck loaded
func New(loader DeckLoader, engine *draw.Engine, opts ...Option) *Session {
	s := &Session{
		loader:   loader,
		engine:   engine,
		logger:   slog.Default(),
		maxCount: DefaultMaxCount,
		state: State{
			Status: Idle,
			DeckID: deck.Marseille,
			Mode:   draw.Solo,
			Count:  1,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnChange registers fn to be called with the new state after every
// applied transition. States are delivered one at a time in the order
// the transitions were applied, so the last state a listener sees is
// the current one. A listener may call back into the session; the
// resulting states are delivered after the current call returns.
func (s *Session) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SelectDeck switches to the deck id and starts loading it. Any load
// still in flight is superseded: its outcome will be discarded. The
// returned channel is closed once this load's outcome has been applied
// or discarded.
func (s *Session) SelectDeck(ctx context.Context, id deck.ID) <-chan struct{} {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	generation := s.generation
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	drain := s.applyLocked(loadStarted{id: id, generation: generation})
	s.mu.Unlock()

	s.deliver(drain)
	s.logger.Debug("deck load started", "deck", id, "generation", generation)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		d, err := s.loader.Load(loadCtx, id)
		if err != nil {
			if !s.dispatch(loadFailed{generation: generation, err: err}) {
				s.logger.Debug("discarding stale deck load failure", "deck", id, "generation", generation, "error", err)
				return
			}
			s.logger.Warn("deck load failed", "deck", id, "error", err)
			return
		}

		if !s.dispatch(loadSucceeded{generation: generation, deck: d}) {
			s.logger.Debug("discarding stale deck load", "deck", id, "generation", generation)
		}
	}()

	return done
}

// Load selects the deck id and waits for its outcome. It returns the
// resulting state, and the load error if the deck failed to load.
func (s *Session) Load(ctx context.Context, id deck.ID) (State, error) {
	done := s.SelectDeck(ctx, id)

	select {
	case <-done:
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}

	st := s.Snapshot()
	if st.DeckID == id && st.Status == Failed {
		return st, st.Err
	}
	return st, nil
}

// Draw draws count cards from the current deck with the configured
// mode. On error the state is left unchanged.
func (s *Session) Draw(count int) (*draw.Result, error) {
	s.mu.Lock()
	if !s.state.Ready() {
		s.mu.Unlock()
		return nil, ErrNoDeckLoaded
	}

	result, err := s.engine.Draw(s.state.Deck, count, s.state.Mode)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	drain := s.applyLocked(drawn{result: result})
	s.mu.Unlock()

	s.deliver(drain)
	s.logger.Debug("cards drawn", "deck", result.DeckID, "count", result.Len(), "draw", result.ID)
	return result, nil
}

// Inspect selects a card of the current draw or deck for detailed viewing
func (s *Session) Inspect(id string) (*card.Card, error) {
	s.mu.Lock()
	c, ok := s.state.Draw.Card(id)
	if !ok {
		c, ok = s.state.Deck.Card(id)
	}
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}

	drain := s.applyLocked(inspected{card: c})
	s.mu.Unlock()

	s.deliver(drain)
	return c, nil
}

// ClearInspection deselects the inspected card
func (s *Session) ClearInspection() {
	s.dispatch(inspected{card: nil})
}

// SetMode sets the label of subsequent draws
func (s *Session) SetMode(mode draw.Mode) {
	s.dispatch(modeChanged{mode: mode})
}

// SetCount sets the number of cards for the next draw
func (s *Session) SetCount(n int) error {
	if n < 1 || n > s.maxCount {
		return fmt.Errorf("card count must be between 1 and %d, got %d", s.maxCount, n)
	}
	s.dispatch(countChanged{count: n})
	return nil
}

// MaxCount returns the largest count accepted by SetCount
func (s *Session) MaxCount() int {
	return s.maxCount
}

// Close abandons any load in flight: it is cancelled and its outcome
// is discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.state.generation = s.generation
}

// dispatch applies e and notifies listeners; it reports whether e was applied
func (s *Session) dispatch(e event) bool {
	s.mu.Lock()
	next, applied := s.state.apply(e)
	if !applied {
		s.mu.Unlock()
		return false
	}
	s.state = next
	drain := s.publishLocked(next)
	s.mu.Unlock()

	s.deliver(drain)
	return true
}

// applyLocked applies an event that is never discarded and queues the
// new state for listeners; s.mu must be held
func (s *Session) applyLocked(e event) bool {
	s.state, _ = s.state.apply(e)
	return s.publishLocked(s.state)
}

// publishLocked queues st for listeners. It returns true when the caller
// must drain the queue; s.mu must be held.
func (s *Session) publishLocked(st State) bool {
	if len(s.listeners) == 0 {
		return false
	}
	s.pending = append(s.pending, st)
	if s.delivering {
		return false
	}
	s.delivering = true
	return true
}

// deliver hands queued states to listeners until the queue is empty
func (s *Session) deliver(drain bool) {
	if !drain {
		return
	}
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.delivering = false
			s.mu.Unlock()
			return
		}
		st := s.pending[0]
		s.pending = s.pending[1:]
		listeners := s.listeners
		s.mu.Unlock()

		for _, fn := range listeners {
			fn(st)
		}
	}
}
