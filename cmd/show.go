package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display detailed information about a specific card",
	Long: `Show displays every field of a card: number, name, element, keywords,
visual symbolism, positive and negative readings, notable interactions and category.

You can specify a deck using the --deck flag. If no deck is specified,
the default deck from your config will be used.

Examples:
  tirage show 1
  tirage show --deck boulot 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID := args[0]

		deckFlag, _ := cmd.Flags().GetString("deck")

		s, _, id, err := openSession(deckFlag)
		if err != nil {
			return err
		}
		defer s.Close()

		st, err := loadDeck(cmd.Context(), s, id)
		if err != nil {
			return err
		}

		c, err := s.Inspect(cardID)
		if err != nil {
			return fmt.Errorf("error getting card: %w", err)
		}

		displayCard(os.Stdout, c, st.Deck.Name)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("deck", "d", "", "Deck to read the card from (marseille, boulot, ...)")
}
