package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"ls"},
	Short:   "List every card of a deck",
	Long: `Browse lists the full deck in index order with each card's number,
name and id. Use 'tirage show <id>' to read a card in detail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		fmt.Println()
		fmt.Println("  " + colorize.New(colorize.Bold).Sprint(st.Deck.Name))
		fmt.Println("  " + colorize.HiBlackString("%d cartes", st.Deck.Len()))
		fmt.Println()

		for _, c := range st.Deck.Cards() {
			printCardLine(os.Stdout, c)
		}
		fmt.Println()

		return nil
	},
}

func init() {
	RootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringP("deck", "d", "", "Deck to browse (marseille, boulot, ...)")
}
