// Create command creates a new entry and links it in one step.
package main

import (
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <type-id>",
	Short: "Create a blank entry of the given type and link it",
	Long: `Create stores a new empty entry of the given record type, appends it
to the reference list, and hands off to the entry editor.

Example:
  uniqueref --parent page-home create article`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	eng, _, cleanup, err := openEngine(cmd.Context(), nil, false)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.CreateAndLink(cmd.Context(), args[0]); err != nil {
		return err
	}
	return printRows(cmd.Context(), eng)
}
