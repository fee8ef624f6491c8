// Search command compiles and runs a class-level query.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/idlmap/pkg/idldb"
)

var (
	flagOrderBy []string
	flagLimit   int
	flagOffset  int
	flagWire    bool
)

var searchCmd = &cobra.Command{
	Use:   "search <class> [filter-json]",
	Short: "Search an IDL class with an optional filter",
	Long: `Search compiles a filter specification into SQL, runs it against the
configured database, and prints each result as a named-field object.

The filter is a JSON object mapping field names to sub-queries:

  idlsh search aou
  idlsh search aou '{"id": {"<": 10}}'
  idlsh search aou '{"ou_type": [1, 2, 3]}' --order name
  idlsh search aou '{"parent_ou": null}' --limit 10 --offset 20

With --wire, results print in the positional classed-array wire form
instead of the named-field form.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringArrayVar(&flagOrderBy, "order", nil, "order by field, or field:desc")
	searchCmd.Flags().IntVar(&flagLimit, "limit", 0, "maximum rows to return")
	searchCmd.Flags().IntVar(&flagOffset, "offset", 0, "rows to skip")
	searchCmd.Flags().BoolVar(&flagWire, "wire", false, "print results in positional wire form")
}

func runSearch(cmd *cobra.Command, args []string) error {
	search := idldb.ClassSearch{Class: args[0]}

	if len(args) > 1 {
		filter, err := parseFilterArg(args[1])
		if err != nil {
			return err
		}
		search.Filter = filter
	}

	for _, entry := range flagOrderBy {
		ob := idldb.OrderBy{Field: entry, Dir: idldb.OrderAsc}
		if field, dir, found := strings.Cut(entry, ":"); found {
			ob.Field = field
			if strings.EqualFold(dir, "desc") {
				ob.Dir = idldb.OrderDesc
			}
		}
		search.OrderBy = append(search.OrderBy, ob)
	}

	if cmd.Flags().Changed("limit") || cmd.Flags().Changed("offset") {
		search.Pager = &idldb.Pager{Limit: flagLimit, Offset: flagOffset}
	}

	translator, closeConn, err := openTranslator()
	if err != nil {
		return err
	}
	defer closeConn()

	results, err := translator.Search(search)
	if err != nil {
		return err
	}

	for _, obj := range results {
		out := any(obj)
		if flagWire {
			if out, err = registry.Pack(obj); err != nil {
				return err
			}
		}
		if err := printJSON(out); err != nil {
			return err
		}
	}
	return nil
}
