// Edit command for the shelf CLI.
package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	var flags bookFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a book",
		Long: `Edit applies only the flags you pass; other fields keep their values.
The edited book must still have a title, author, publisher, and publication date.`,
		Example: `  shelf edit 0190a1b2 --genre "Science Fiction" --pages 412`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := flags.patch(cmd.Flags())
			if patch.Empty() {
				return errors.New("edit: nothing to change; pass at least one field flag")
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			current, err := s.Get(id)
			if err != nil {
				return fmt.Errorf("edit: %w", err)
			}

			merged := current.Clone()
			merged.Apply(patch, time.Now())
			if err := merged.Input().Validate(); err != nil {
				return err
			}

			book, err := s.Update(id, patch)
			if err != nil {
				return err
			}
			if err := a.saved(); err != nil {
				return err
			}

			if a.flagJSON {
				return printJSON(a.out, book)
			}
			_, err = fmt.Fprintf(a.out, "Updated %q (%s)\n", book.Title, book.ID)
			return err
		},
	}
	flags.register(cmd.Flags(), "")
	return cmd
}
