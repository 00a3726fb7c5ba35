package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arcanaland/tirage/internal/config"
	"github.com/arcanaland/tirage/internal/deck"
	"github.com/arcanaland/tirage/internal/draw"
	"github.com/arcanaland/tirage/internal/session"
)

// openSession loads the config and creates a session starting on the
// deck named by deckFlag, or the default deck when the flag is empty
func openSession(deckFlag string) (*session.Session, *config.Config, deck.ID, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, "", fmt.Errorf("error loading config: %w", err)
	}

	loader, err := cfg.Loader(deck.WithLogger(slog.Default()))
	if err != nil {
		return nil, nil, "", err
	}

	id := deck.ID(deckFlag)
	if id == "" {
		id = deck.ID(cfg.DefaultDeck)
	}

	s := session.New(loader, draw.Default(),
		session.WithDeck(id),
		session.WithMaxCount(cfg.MaxDraw),
		session.WithLogger(slog.Default()),
	)
	return s, cfg, id, nil
}

// loadDeck loads id into the session and waits for the outcome
func loadDeck(ctx context.Context, s *session.Session, id deck.ID) (session.State, error) {
	st, err := s.Load(ctx, id)
	if err != nil {
		return st, fmt.Errorf("error loading deck %s: %w", id, err)
	}
	return st, nil
}
