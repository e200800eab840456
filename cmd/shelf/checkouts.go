// Checkouts command for the shelf CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func newCheckoutsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkouts",
		Short: "List books currently lent out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			books := s.CheckedOut()
			if a.flagJSON {
				if books == nil {
					books = []types.Book{}
				}
				return printJSON(a.out, books)
			}
			return a.renderer.Checkouts(a.out, books)
		},
	}
}
