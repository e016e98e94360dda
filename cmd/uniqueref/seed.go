// Seed command populates the store with demo types and records.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the store with demo record types and entries",
	Long: `Seed writes a small set of record types (page, article, author) and
entries into the store, so the reference list can be tried out without an
external content source.

Example:
  uniqueref seed
  uniqueref --parent page-home list`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Seed(cmd.Context()); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	fmt.Println("Seeded demo types and entries.")
	return nil
}
