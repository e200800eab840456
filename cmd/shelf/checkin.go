// Checkin command for the shelf CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkin <id>",
		Short: "Mark a lent book as returned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}

			book, found := s.Checkin(id)
			if err := a.saved(); err != nil {
				return err
			}

			if a.flagJSON {
				if !found {
					return printJSON(a.out, map[string]any{"id": id, "found": false})
				}
				return printJSON(a.out, book)
			}
			if !found {
				_, err = fmt.Fprintf(a.out, "No book with ID %s; nothing to check in\n", id)
				return err
			}
			_, err = fmt.Fprintf(a.out, "Checked in %q\n", book.Title)
			return err
		},
	}
}
