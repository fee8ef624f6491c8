// Get command retrieves one object by primary key.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <class> <pkey-value>",
	Short: "Retrieve an IDL-classed object by primary key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Numeric keys arrive as strings; let JSON decide.
		var key any
		if err := json.Unmarshal([]byte(args[1]), &key); err != nil {
			key = args[1]
		}

		translator, closeConn, err := openTranslator()
		if err != nil {
			return err
		}
		defer closeConn()

		obj, err := translator.RetrieveByPkey(args[0], key)
		if err != nil {
			return err
		}
		if obj == nil {
			return fmt.Errorf("no %s object with primary key %v", args[0], key)
		}
		return printJSON(obj)
	},
}
