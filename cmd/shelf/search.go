// Search command for the shelf CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query...]",
		Short: "Set the saved search query and list matching books",
		Long: `Search matches the query, case-insensitively, against title, author,
publisher, and description. The query is saved and applies to later "list"
invocations. Run "shelf search" with no query to clear it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			s.SetSearch(strings.Join(args, " "))
			if err := a.saved(); err != nil {
				return err
			}
			return a.printView(s)
		},
	}
}
