package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/tirage/internal/deck"
	"github.com/arcanaland/tirage/internal/draw"
	"github.com/arcanaland/tirage/internal/session"
)

const playHelp = `Commandes:
  decks              list the available decks
  deck <id>          switch deck (marseille, boulot, ...)
  list               list every card of the current deck
  mode <solo|group>  set the draw mode
  count <n>          set the number of cards to draw
  draw [n]           draw cards
  show <id>          show a card of the deck or of the last draw
  share              print the last draw as shareable text
  status             show the session state
  help               show this help
  quit               leave`

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Explore decks and draw cards interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deckFlag, _ := cmd.Flags().GetString("deck")

		s, cfg, id, err := openSession(deckFlag)
		if err != nil {
			return err
		}
		defer s.Close()

		registry, err := cfg.Registry()
		if err != nil {
			return err
		}

		return runPlay(cmd.Context(), s, registry, id, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// runPlay reads commands from in until quit or end of input
func runPlay(ctx context.Context, s *session.Session, registry *deck.Registry, id deck.ID, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, colorize.New(colorize.Bold).Sprint("Tarot Divinatoire"))
	fmt.Fprintln(out, "Type 'help' for the list of commands.")

	if _, err := s.Load(ctx, id); err != nil {
		fmt.Fprintf(out, "Erreur de chargement: %v\n", err)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		if err := playCommand(ctx, s, registry, fields, out); err != nil {
			fmt.Fprintln(out, colorize.RedString("%v", err))
		}
	}
}

// playCommand runs one interactive command
func playCommand(ctx context.Context, s *session.Session, registry *deck.Registry, fields []string, out io.Writer) error {
	name, args := fields[0], fields[1:]

	switch name {
	case "help":
		fmt.Fprintln(out, playHelp)

	case "decks":
		current := s.Snapshot().DeckID
		for _, def := range registry.Definitions() {
			marker := " "
			if def.ID == current {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s (%s)\n", marker, def.ID, def.Name)
		}

	case "deck":
		if len(args) != 1 {
			return errors.New("usage: deck <id>")
		}
		fmt.Fprintln(out, "Chargement...")
		st, err := s.Load(ctx, deck.ID(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %d cartes\n", st.Deck.Name, st.Deck.Len())

	case "list":
		st := s.Snapshot()
		if err := describeLoad(st, out); err != nil {
			return err
		}
		for _, c := range st.Deck.Cards() {
			printCardLine(out, c)
		}

	case "mode":
		if len(args) != 1 {
			return errors.New("usage: mode <solo|group>")
		}
		mode, err := draw.ParseMode(args[0])
		if err != nil {
			return err
		}
		s.SetMode(mode)
		fmt.Fprintln(out, mode.Label())

	case "count":
		if len(args) != 1 {
			return errors.New("usage: count <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count: %s", args[0])
		}
		if err := s.SetCount(n); err != nil {
			return err
		}
		fmt.Fprintf(out, "Nombre de cartes : %d\n", n)

	case "draw":
		if len(args) > 1 {
			return errors.New("usage: draw [n]")
		}
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid count: %s", args[0])
			}
			if err := s.SetCount(n); err != nil {
				return err
			}
		}
		result, err := s.Draw(s.Snapshot().Count)
		if err != nil {
			if errors.Is(err, session.ErrNoDeckLoaded) {
				_ = describeLoad(s.Snapshot(), out)
			}
			return err
		}
		displayResult(out, result)

	case "show":
		if len(args) != 1 {
			return errors.New("usage: show <id>")
		}
		c, err := s.Inspect(args[0])
		if err != nil {
			return err
		}
		displayCard(out, c, s.Snapshot().Deck.Name)

	case "share":
		st := s.Snapshot()
		if st.Draw == nil {
			return errors.New("no draw yet")
		}
		fmt.Fprintln(out, st.Draw.ShareText())

	case "status":
		st := s.Snapshot()
		fmt.Fprintf(out, "deck: %s (%s)\n", st.DeckID, st.Status)
		if st.Err != nil {
			fmt.Fprintf(out, "error: %v\n", st.Err)
		}
		fmt.Fprintf(out, "cards: %d\n", st.Deck.Len())
		fmt.Fprintf(out, "mode: %s, count: %d\n", st.Mode, st.Count)
		if st.Draw != nil {
			fmt.Fprintf(out, "last draw: %d cards\n", st.Draw.Len())
		}

	default:
		return fmt.Errorf("unknown command: %s (type 'help')", name)
	}

	return nil
}

// describeLoad explains why the deck is not usable, if it is not
func describeLoad(st session.State, out io.Writer) error {
	switch st.Status {
	case session.Loading:
		fmt.Fprintln(out, "Chargement...")
	case session.Failed:
		fmt.Fprintf(out, "Erreur de chargement: %v\n", st.Err)
	case session.Idle:
		return errors.New("no deck selected")
	}
	if st.Deck == nil {
		return session.ErrNoDeckLoaded
	}
	return nil
}

func init() {
	RootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("deck", "d", "", "Deck to start with (marseille, boulot, ...)")
}
