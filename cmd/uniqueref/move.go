// Move command sends an entry to the top or bottom of the list.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/reddishgreen/contentful-unique-references/internal/collection"
)

var moveCmd = &cobra.Command{
	Use:   "move <position> <start|end>",
	Short: "Move the entry at the given position to the start or end",
	Long: `Move sends the entry at the given 1-based position to the top or
bottom of the list, preserving the relative order of the other entries.

Example:
  uniqueref --parent page-home move 3 start
  uniqueref --parent page-home move 1 end`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	edge := args[1]
	if edge != collection.EdgeStart && edge != collection.EdgeEnd {
		return fmt.Errorf("invalid edge %q (expected start or end)", edge)
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
	if err := eng.MoveToEdge(cmd.Context(), row.LocalKey, edge); err != nil {
		return err
	}
	return printRows(cmd.Context(), eng)
}
