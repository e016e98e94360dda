// List command shows the current reference list with titles and statuses.
package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the reference list of the parent record's field",
	Long: `List renders the ordered reference list: position, duplicate marker,
resolved title, lifecycle status and target id. Entries whose record could
not be fetched show a placeholder instead of a title.

Example:
  uniqueref --parent page-home list
  uniqueref --parent page-home list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	eng, _, cleanup, err := openEngine(cmd.Context(), nil, false)
	if err != nil {
		return err
	}
	defer cleanup()
	return printRows(cmd.Context(), eng)
}
