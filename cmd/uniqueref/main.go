// Package main provides the uniqueref CLI: a reference-list editor over a
// local record store that keeps a link-list field unique across parent
// records.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
