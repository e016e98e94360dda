// Version command for the uniqueref CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reddishgreen/contentful-unique-references/pkg/uniqueref"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the uniqueref version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("uniqueref", uniqueref.Version)
	},
}
