// Sort command for the shelf CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func newSortCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sort <field> [asc|desc]",
		Short: "Set the saved sort order",
		Long: `Sort sets the order used by "list". Fields are title, author, publisher,
and publishedDate. Without a direction the field toggles: the active field
flips direction and a new field starts ascending.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := types.ParseSortField(args[0])
			if err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}

			var spec types.SortSpec
			if len(args) == 2 {
				dir, err := types.ParseSortDirection(args[1])
				if err != nil {
					return err
				}
				spec = types.SortSpec{Field: field, Direction: dir}
				if err := s.SetSort(spec); err != nil {
					return err
				}
			} else if spec, err = s.ToggleSort(field); err != nil {
				return err
			}
			if err := a.saved(); err != nil {
				return err
			}

			if a.flagJSON {
				return printJSON(a.out, spec)
			}
			_, err = fmt.Fprintf(a.out, "Sorting by %s\n", spec)
			return err
		},
	}
}
