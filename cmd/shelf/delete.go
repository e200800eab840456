// Delete command for the shelf CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a book from the catalog",
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

			removed := s.Delete(id)
			if err := a.saved(); err != nil {
				return err
			}

			if a.flagJSON {
				return printJSON(a.out, map[string]any{"id": id, "deleted": removed})
			}
			if !removed {
				_, err = fmt.Fprintf(a.out, "No book with ID %s; nothing deleted\n", id)
				return err
			}
			_, err = fmt.Fprintf(a.out, "Deleted %s\n", id)
			return err
		},
	}
}
