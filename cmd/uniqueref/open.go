// Open command hands off to the entry editor for a linked entry.
package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <position>",
	Short: "Open the editor for the entry at the given position",
	Long: `Open hands off to the host application's entry editor for the entry
at the given 1-based position. The next list or resync picks up edits made
there.

Example:
  uniqueref --parent page-home open 1`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
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
	return eng.OpenEditor(cmd.Context(), row.LocalKey)
}
