package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tirage/internal/config"
	"github.com/arcanaland/tirage/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage the decks available to tirage",
	Long:  `Commands for listing decks and choosing the default one.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the registered decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		loader, err := cfg.Loader()
		if err != nil {
			return err
		}

		for _, def := range loader.Registry().Definitions() {
			marker := " "
			suffix := ""
			if string(def.ID) == cfg.DefaultDeck {
				marker = "*"
				suffix = " [DEFAULT]"
			}

			// Report decks that do not load instead of skipping them
			d, err := loader.Load(cmd.Context(), def.ID)
			if err != nil {
				fmt.Printf("%s %s (%s) unavailable: %v%s\n", marker, def.ID, def.Name, err, suffix)
				continue
			}
			fmt.Printf("%s %s (%s) %d cartes%s\n", marker, def.ID, def.Name, d.Len(), suffix)
		}

		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_id]",
	Short: "Set the default deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := deck.ID(args[0])

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		loader, err := cfg.Loader()
		if err != nil {
			return err
		}

		// Try to load the deck to make sure it's valid
		if _, err := loader.Load(cmd.Context(), id); err != nil {
			return fmt.Errorf("not a valid deck: %w", err)
		}

		if err := config.SetDefaultDeck(id); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}

		fmt.Printf("Default deck set to: %s\n", id)
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the data directory and config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		dataDir := cfg.GetDataDir()
		for _, dir := range []string{"index", string(deck.Marseille), string(deck.Boulot)} {
			if err := os.MkdirAll(filepath.Join(dataDir, dir), 0755); err != nil {
				return fmt.Errorf("error creating data directory: %w", err)
			}
		}

		fmt.Println("Data directory initialized at:", dataDir)
		fmt.Println("Copy the deck indexes to index/ and the card files to their deck folder.")
		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckInitCmd)
}
