package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// SearchField names a book attribute a substring search looks at.
type SearchField string

// Searchable fields.
const (
	SearchTitle       SearchField = "title"
	SearchAuthor      SearchField = "author"
	SearchPublisher   SearchField = "publisher"
	SearchDescription SearchField = "description"
)

// CatalogSearch is the field set of the main search box.
var CatalogSearch = []SearchField{SearchTitle, SearchAuthor, SearchPublisher, SearchDescription}

// CheckoutSearch is the field set of the checkout dialog's book picker.
var CheckoutSearch = []SearchField{SearchTitle, SearchAuthor}

func (f SearchField) value(b *types.Book) string {
	switch f {
	case SearchTitle:
		return b.Title
	case SearchAuthor:
		return b.Author
	case SearchPublisher:
		return b.Publisher
	case SearchDescription:
		return b.Description
	}
	return ""
}

// Matches reports whether the case-insensitive query is a substring of any of
// the given fields. An empty query matches every book.
func Matches(b *types.Book, query string, fields ...SearchField) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if v := f.value(b); v != "" && strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// Filter returns copies of the books matching query on fields, in input order.
func Filter(books []types.Book, query string, fields ...SearchField) []types.Book {
	out := make([]types.Book, 0, len(books))
	for i := range books {
		if Matches(&books[i], query, fields...) {
			out = append(out, books[i].Clone())
		}
	}
	return out
}

// Sort orders books in place by spec. The sort is stable, and a descending
// spec negates the comparison so equal keys keep their relative order.
func Sort(books []types.Book, spec types.SortSpec) {
	// Collators keep iteration buffers; one per call keeps Sort goroutine-safe.
	coll := collate.New(language.Und)
	sign := 1
	if spec.Direction == types.SortDesc {
		sign = -1
	}
	slices.SortStableFunc(books, func(a, b types.Book) int {
		return sign * compareField(coll, spec.Field, &a, &b)
	})
}

// Derive computes the derived view: books matching query on the catalog
// search fields, ordered by spec. It never modifies books.
func Derive(books []types.Book, query string, spec types.SortSpec) []types.Book {
	view := Filter(books, query, CatalogSearch...)
	Sort(view, spec)
	return view
}

func compareField(coll *collate.Collator, field types.SortField, a, b *types.Book) int {
	switch field {
	case types.SortPublishedDate:
		// Unparsable dates compare as the zero time.
		ta, _ := a.PublishedTime()
		tb, _ := b.PublishedTime()
		return ta.Compare(tb)
	case types.SortAuthor:
		return coll.CompareString(a.Author, b.Author)
	case types.SortPublisher:
		return coll.CompareString(a.Publisher, b.Publisher)
	default:
		return coll.CompareString(a.Title, b.Title)
	}
}
