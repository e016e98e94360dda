// Init command creates the configuration and data directories.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration and data directories",
	Long: `Init creates the configuration directory with a default config.yaml
and an empty record store in the data directory.

Example:
  uniqueref init
  uniqueref init --data-dir ./store`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}
	fmt.Println("Initialized.")
	fmt.Println("  config:", configDir)
	fmt.Println("  data:  ", dataDir)
	return nil
}
