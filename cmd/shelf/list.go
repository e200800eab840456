// List command for the shelf CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	var (
		sortField string
		search    string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books using the saved search and sort order",
		Long: `List shows the catalog filtered by the saved search query and ordered by
the saved sort. --sort behaves like clicking a column header: naming the
active column flips its direction, naming another column sorts it ascending.
Both flags are saved for later invocations.`,
		Example: `  shelf list
  shelf list --sort author
  shelf list --search tolkien`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("search") {
				s.SetSearch(search)
			}
			if cmd.Flags().Changed("sort") {
				field, err := types.ParseSortField(sortField)
				if err != nil {
					return err
				}
				if _, err := s.ToggleSort(field); err != nil {
					return err
				}
			}
			if err := a.saved(); err != nil {
				return err
			}
			return a.printView(s)
		},
	}
	cmd.Flags().StringVar(&sortField, "sort", "", "toggle sort by title, author, publisher, or publishedDate")
	cmd.Flags().StringVar(&search, "search", "", "set the search query (empty clears it)")
	return cmd
}
