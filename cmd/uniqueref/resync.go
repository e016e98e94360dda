// Resync command re-fetches every referenced entry.
package main

import (
	"github.com/spf13/cobra"
)

var resyncCmd = &cobra.Command{
	Use:   "resync",
	Short: "Re-fetch all referenced entries and show the list",
	Long: `Resync refreshes every referenced entry from the store, the way the
embedded editor does when the user returns from editing a linked entry.

Example:
  uniqueref --parent page-home resync`,
	Args: cobra.NoArgs,
	RunE: runResync,
}

func runResync(cmd *cobra.Command, args []string) error {
	eng, _, cleanup, err := openEngine(cmd.Context(), nil, false)
	if err != nil {
		return err
	}
	defer cleanup()

	eng.Resync(cmd.Context())
	return printRows(cmd.Context(), eng)
}
