// Show command for the shelf CLI.
package main

import (
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every detail of one book",
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
			book, err := s.Get(id)
			if err != nil {
				return err
			}
			return a.printBook(book)
		},
	}
}
