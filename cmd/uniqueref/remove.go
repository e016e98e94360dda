// Remove command unlinks an entry from the reference list.
package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <position>",
	Short: "Remove the entry at the given list position",
	Long: `Remove unlinks the entry at the given 1-based position. The entry
itself is not deleted from the store.

Example:
  uniqueref --parent page-home remove 2`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	eng, _, cleanup, err := openEngine(cmd.Context(), nil, false)
	if err != nil {
		return err
	}
	defer cleanup()

	row, err := rowByPosition(cmd.Context(), eng, pos)
	if err != nil {
		return err
	}
	if err := eng.Remove(cmd.Context(), row.LocalKey); err != nil {
		return err
	}
	return printRows(cmd.Context(), eng)
}
