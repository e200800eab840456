// Checkout command for the shelf CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func newCheckoutCmd(a *app) *cobra.Command {
	var name, phone, find string
	cmd := &cobra.Command{
		Use:   "checkout [id]",
		Short: "Lend a book to a borrower",
		Long: `Checkout records who borrowed a book. Identify the book by ID, or with
--find to search titles and authors; the search must match exactly one book.
A book that is already checked out must be checked in first.`,
		Example: `  shelf checkout 0190a1b2 --name "Ana Lima" --phone 555-0100
  shelf checkout --find "left hand of darkness" --name Ana --phone 555-0100`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == cmd.Flags().Changed("find") {
				return fmt.Errorf("checkout: pass either a book id or --find")
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}

			var id string
			if len(args) == 1 {
				if id, err = resolveID(s, args[0]); err != nil {
					return err
				}
			} else if id, err = findOne(s, find); err != nil {
				return err
			}

			book, err := s.Checkout(id, name, phone)
			if err != nil {
				return err
			}
			if err := a.saved(); err != nil {
				return err
			}

			if a.flagJSON {
				return printJSON(a.out, book)
			}
			_, err = fmt.Fprintf(a.out, "Checked out %q to %s (%s)\n", book.Title, book.CheckedOut.Name, book.CheckedOut.Phone)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "borrower name (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "borrower phone (required)")
	cmd.Flags().StringVar(&find, "find", "", "select the book by title or author")
	return cmd
}

// findOne returns the ID of the single book whose title or author matches
// query.
func findOne(s *catalog.Store, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("checkout: --find needs a search term")
	}
	matches := s.Find(query, catalog.CheckoutSearch...)
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("checkout: no book matches %q: %w", query, types.ErrNotFound)
	case 1:
		return matches[0].ID, nil
	}
	titles := make([]string, 0, len(matches))
	for _, b := range matches {
		titles = append(titles, fmt.Sprintf("%s (%s)", b.Title, b.ID))
	}
	return "", fmt.Errorf("checkout: %d books match %q, pass an id: %s",
		len(matches), query, strings.Join(titles, ", "))
}
