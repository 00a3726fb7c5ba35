package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tirage/internal/draw"
)

// drawOutput is the JSON form of a draw
type drawOutput struct {
	ID      string       `json:"id"`
	Deck    string       `json:"deck"`
	Mode    string       `json:"mode"`
	DrawnAt string       `json:"drawn_at"`
	Cards   []cardOutput `json:"cards"`
}

type cardOutput struct {
	ID     string `json:"id"`
	Numero string `json:"numero"`
	Nom    string `json:"nom"`
}

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw random cards from a deck",
	Long: `Draw picks the requested number of distinct cards at random from a deck.
Every card has the same chance of being drawn. Cards are shown in deck order.

Examples:
  tirage draw
  tirage draw -n 3 --deck boulot
  tirage draw -n 5 --group --share`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deckFlag, _ := cmd.Flags().GetString("deck")
		count, _ := cmd.Flags().GetInt("count")
		group, _ := cmd.Flags().GetBool("group")
		share, _ := cmd.Flags().GetBool("share")
		asJSON, _ := cmd.Flags().GetBool("json")

		s, _, id, err := openSession(deckFlag)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SetCount(count); err != nil {
			return err
		}
		if group {
			s.SetMode(draw.Group)
		}

		if _, err := loadDeck(cmd.Context(), s, id); err != nil {
			return err
		}

		result, err := s.Draw(s.Snapshot().Count)
		if err != nil {
			return fmt.Errorf("error drawing cards: %w", err)
		}

		if asJSON {
			return writeDrawJSON(result)
		}

		displayResult(os.Stdout, result)
		if share {
			fmt.Println(result.ShareText())
		}
		return nil
	},
}

// writeDrawJSON prints the draw as JSON on stdout
func writeDrawJSON(r *draw.Result) error {
	out := drawOutput{
		ID:      r.ID.String(),
		Deck:    string(r.DeckID),
		Mode:    string(r.Mode),
		DrawnAt: r.DrawnAt.Format(time.RFC3339),
	}
	for _, c := range r.Cards() {
		out.Cards = append(out.Cards, cardOutput{ID: c.ID, Numero: c.Numero, Nom: c.Nom})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func init() {
	RootCmd.AddCommand(drawCmd)

	drawCmd.Flags().StringP("deck", "d", "", "Deck to draw from (marseille, boulot, ...)")
	drawCmd.Flags().IntP("count", "n", 1, "Number of cards to draw")
	drawCmd.Flags().BoolP("group", "g", false, "Label the draw as a group draw")
	drawCmd.Flags().Bool("share", false, "Print a shareable summary of the draw")
	drawCmd.Flags().Bool("json", false, "Print the draw as JSON")
}
