// Add command links existing entries to the parent record's field.
package main

import (
	"github.com/spf13/cobra"
)

var addYes bool

var addCmd = &cobra.Command{
	Use:   "add <record-id>...",
	Short: "Link existing entries to the parent record",
	Long: `Add appends the given entries to the reference list. Entries already
in the list are skipped with a warning. An entry that another parent of the
same type links through the same field triggers a move-or-skip prompt;
--yes answers every prompt with "move".

Example:
  uniqueref --parent page-home add article-go
  uniqueref --parent page-home add article-go article-sync --yes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addYes, "yes", false, "confirm every move prompt")
}

func runAdd(cmd *cobra.Command, args []string) error {
	eng, _, cleanup, err := openEngine(cmd.Context(), args, addYes)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.AddSelected(cmd.Context()); err != nil {
		return err
	}
	return printRows(cmd.Context(), eng)
}
