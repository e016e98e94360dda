// Reorder command moves an entry to an arbitrary position.
package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

var reorderCmd = &cobra.Command{
	Use:   "reorder <from> <to>",
	Short: "Move the entry at position from to position to",
	Long: `Reorder removes the entry at the 1-based position from and reinserts
it at position to.

Example:
  uniqueref --parent page-home reorder 1 3`,
	Args: cobra.ExactArgs(2),
	RunE: runReorder,
}

func runReorder(cmd *cobra.Command, args []string) error {
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}

	eng, _, cleanup, err := openEngine(cmd.Context(), nil, false)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.Reorder(cmd.Context(), from-1, to-1); err != nil {
		return err
	}
	return printRows(cmd.Context(), eng)
}
