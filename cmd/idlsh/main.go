// Package main provides idlsh, a shell for exploring a fieldmapper IDL
// and querying IDL classes from a local database.
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
