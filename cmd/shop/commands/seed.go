package commands

import (
	"fmt"

	"shop/internal/repos"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo catalog",
	Long:  `Insert demo categories and products. Does nothing when any category exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := repos.SeedIfEmpty(db); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
		fmt.Println("Catalog seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
