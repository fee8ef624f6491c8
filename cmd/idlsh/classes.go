// Classes and fields commands list IDL schema contents.
package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List every class defined in the IDL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := make([]string, 0, len(registry.Classes()))
		for name := range registry.Classes() {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CLASS\tTABLE\tPKEY\tFIELDS\tLABEL")
		for _, name := range names {
			class := registry.Class(name)
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				class.Name, class.Table, class.Pkey, len(class.Fields), class.Label)
		}
		return w.Flush()
	},
}

var fieldsCmd = &cobra.Command{
	Use:   "fields <class>",
	Short: "List the fields of one IDL class in wire position order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		class := registry.Class(args[0])
		if class == nil {
			return fmt.Errorf("no such IDL class %q", args[0])
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "POS\tNAME\tDATATYPE\tVIRTUAL\tLINKED CLASS")
		for _, field := range class.FieldsByPosition() {
			linked := ""
			if link := class.Links[field.Name]; link != nil {
				linked = link.Class
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n",
				field.Position, field.Name, field.Datatype, field.Virtual, linked)
		}
		return w.Flush()
	},
}
