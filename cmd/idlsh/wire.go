// Pack and unpack commands convert arbitrary JSON values between the
// positional wire form and the named-field form.
package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var packCmd = &cobra.Command{
	Use:   "pack [value-json]",
	Short: "Convert named-field objects to positional wire form",
	Long: `Pack reads a JSON value from the argument or standard input and
replaces every named-field object tagged with _classname by its classed
positional array:

  idlsh pack '{"_classname": "aou", "id": 1, "shortname": "CONS"}'
  idlsh search aou | idlsh pack`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWire(cmd, args, true)
	},
}

var unpackCmd = &cobra.Command{
	Use:   "unpack [value-json]",
	Short: "Convert positional wire values to named-field form",
	Long: `Unpack reads a JSON value from the argument or standard input and
replaces every classed positional array by a named-field object tagged
with _classname:

  idlsh unpack '{"__c": "aou", "__p": [1, "Example Consortium", "CONS"]}'
  cat response.json | idlsh unpack`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWire(cmd, args, false)
	},
}

func runWire(cmd *cobra.Command, args []string, pack bool) error {
	var raw []byte
	if len(args) == 1 {
		raw = []byte(args[0])
	} else {
		in, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read value: %w", err)
		}
		raw = in
	}

	out, err := convertWireValue(raw, pack)
	if err != nil {
		return err
	}
	return printJSON(out)
}

// convertWireValue decodes one JSON value and runs it through the codec
// in the requested direction.
func convertWireValue(raw []byte, pack bool) (any, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("invalid JSON value: %w", err)
	}
	if pack {
		return registry.Pack(value)
	}
	return registry.Unpack(value)
}
