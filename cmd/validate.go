package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tirage/internal/config"
	"github.com/arcanaland/tirage/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a deck data directory",
	Long: `Validate checks the deck indexes and card files of a data directory.
It reports every unreadable or malformed card, duplicate ids and files missing
from an index, instead of stopping at the first problem like deck loading does.
Without a path, the configured data directory is validated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		dataDir := cfg.GetDataDir()
		if len(args) == 1 {
			dataDir = args[0]
		}

		// Check if path exists
		if _, err := os.Stat(dataDir); os.IsNotExist(err) {
			return fmt.Errorf("data directory not found: %s", dataDir)
		}

		registry, err := cfg.Registry()
		if err != nil {
			return err
		}

		// Create validator and run validation
		v := validator.NewValidator(dataDir, registry)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		for _, def := range registry.Definitions() {
			if n, ok := results.Cards[def.ID]; ok {
				fmt.Printf("%s: %d valid cards\n", def.ID, n)
			}
		}

		if len(results.Errors) == 0 {
			fmt.Printf("✅ '%s' is valid.\n", dataDir)
		} else {
			fmt.Printf("❌ '%s' has %d validation errors:\n", dataDir, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}
