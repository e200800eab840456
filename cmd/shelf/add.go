// Add command for the shelf CLI.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// bookFlags holds the per-field flags shared by add and edit.
type bookFlags struct {
	title       string
	author      string
	publisher   string
	published   string
	isbn        string
	description string
	coverURL    string
	genre       string
	pages       int
}

func (f *bookFlags) register(fs *pflag.FlagSet, defaultPublished string) {
	fs.StringVar(&f.title, "title", "", "book title")
	fs.StringVar(&f.author, "author", "", "author")
	fs.StringVar(&f.publisher, "publisher", "", "publisher")
	fs.StringVar(&f.published, "published", defaultPublished, "publication date (YYYY-MM-DD)")
	fs.StringVar(&f.isbn, "isbn", "", "ISBN")
	fs.StringVar(&f.description, "description", "", "description")
	fs.StringVar(&f.coverURL, "cover-url", "", "cover image URL")
	fs.StringVar(&f.genre, "genre", "", "genre")
	fs.IntVar(&f.pages, "pages", 0, "page count")
}

func (f *bookFlags) input() types.BookInput {
	return types.BookInput{
		Title:         f.title,
		Author:        f.author,
		Publisher:     f.publisher,
		PublishedDate: f.published,
		ISBN:          f.isbn,
		Description:   f.description,
		CoverURL:      f.coverURL,
		Genre:         f.genre,
		PageCount:     f.pages,
	}
}

// patch collects only the flags the user set.
func (f *bookFlags) patch(fs *pflag.FlagSet) types.BookPatch {
	var p types.BookPatch
	set := func(name string, dst **string, v string) {
		if fs.Changed(name) {
			*dst = &v
		}
	}
	set("title", &p.Title, f.title)
	set("author", &p.Author, f.author)
	set("publisher", &p.Publisher, f.publisher)
	set("published", &p.PublishedDate, f.published)
	set("isbn", &p.ISBN, f.isbn)
	set("description", &p.Description, f.description)
	set("cover-url", &p.CoverURL, f.coverURL)
	set("genre", &p.Genre, f.genre)
	if fs.Changed("pages") {
		pages := f.pages
		p.PageCount = &pages
	}
	return p
}

func newAddCmd(a *app) *cobra.Command {
	var flags bookFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Example: `  shelf add --title "Dune" --author "Frank Herbert" --publisher "Chilton" --published 1965-08-01
  shelf add --title "Emma" --author "Jane Austen" --publisher "John Murray" --genre Classic --pages 474`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := flags.input()
			if err := in.Validate(); err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			book := s.Add(in)
			if err := a.saved(); err != nil {
				return err
			}

			if a.flagJSON {
				return printJSON(a.out, book)
			}
			_, err = fmt.Fprintf(a.out, "Added %q (%s)\n", book.Title, book.ID)
			return err
		},
	}
	flags.register(cmd.Flags(), time.Now().Format(types.DateLayout))
	return cmd
}
