// Types command lists the record types permitted as link targets.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List record types this field can link to",
	Long: `Types lists the record types permitted as targets for the configured
field: the validation allow-list when one is set, otherwise every type in
the store.

Example:
  uniqueref --parent page-home types`,
	Args: cobra.NoArgs,
	RunE: runTypes,
}

func runTypes(cmd *cobra.Command, args []string) error {
	eng, _, cleanup, err := openEngine(cmd.Context(), nil, false)
	if err != nil {
		return err
	}
	defer cleanup()

	allowed := eng.AllowedTypes()
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(allowed)
	}
	if len(allowed) == 0 {
		fmt.Println("No record types available.")
		return nil
	}
	for _, t := range allowed {
		fmt.Printf("%-16s %s\n", t.ID, t.Name)
	}
	return nil
}
