package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func genInput() *rapid.Generator[types.BookInput] {
	return rapid.Custom(func(t *rapid.T) types.BookInput {
		day := rapid.IntRange(0, 365*80).Draw(t, "day")
		return types.BookInput{
			Title:         rapid.StringMatching(`[A-Za-z][a-z ]{0,12}`).Draw(t, "title"),
			Author:        rapid.StringMatching(`[A-Z][a-z]{1,8}`).Draw(t, "author"),
			Publisher:     rapid.SampledFrom([]string{"Ace", "Chilton", "Gnome Press", "Secker"}).Draw(t, "publisher"),
			PublishedDate: time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day).Format(types.DateLayout),
			Description:   rapid.SampledFrom([]string{"", "space opera", "dystopia"}).Draw(t, "description"),
		}
	})
}

func TestPropertyIDsAreUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := Open(nil)
		n := rapid.IntRange(1, 50).Draw(t, "n")
		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			b := s.Add(genInput().Draw(t, fmt.Sprintf("book%d", i)))
			if seen[b.ID] {
				t.Fatalf("duplicate id %s", b.ID)
			}
			seen[b.ID] = true
		}
	})
}

func TestPropertyDeleteIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := Open(nil)
		ins := rapid.SliceOfN(genInput(), 1, 10).Draw(t, "books")
		var ids []string
		for _, in := range ins {
			ids = append(ids, s.Add(in).ID)
		}
		target := rapid.SampledFrom(ids).Draw(t, "target")

		s.Delete(target)
		once := s.Books()
		s.Delete(target)
		if !assert.ObjectsAreEqual(once, s.Books()) {
			t.Fatalf("second delete changed the collection")
		}
	})
}

func TestPropertyCheckoutIsExclusive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := Open(nil)
		b := s.Add(genInput().Draw(t, "book"))
		name := rapid.StringMatching(`[A-Z][a-z]{1,8}`).Draw(t, "name")
		phone := rapid.StringMatching(`555-[0-9]{4}`).Draw(t, "phone")

		first, err := s.Checkout(b.ID, name, phone)
		if err != nil {
			t.Fatalf("first checkout: %v", err)
		}
		other := rapid.StringMatching(`[A-Z][a-z]{1,8}`).Draw(t, "other")
		if _, err := s.Checkout(b.ID, other, phone); err == nil {
			t.Fatalf("second checkout succeeded")
		}
		got, _ := s.Get(b.ID)
		if *got.CheckedOut != *first.CheckedOut {
			t.Fatalf("checkout record changed: %+v -> %+v", first.CheckedOut, got.CheckedOut)
		}
	})
}

func TestPropertySortedViewIsOrdered(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ins := rapid.SliceOfN(genInput(), 0, 20).Draw(t, "books")
		dir := rapid.SampledFrom([]types.SortDirection{types.SortAsc, types.SortDesc}).Draw(t, "dir")
		s := Open(nil)
		for _, in := range ins {
			s.Add(in)
		}
		if err := s.SetSort(types.SortSpec{Field: types.SortPublishedDate, Direction: dir}); err != nil {
			t.Fatal(err)
		}
		view := s.View()
		for i := 1; i < len(view); i++ {
			a, _ := view[i-1].PublishedTime()
			b, _ := view[i].PublishedTime()
			if dir == types.SortAsc && a.After(b) || dir == types.SortDesc && a.Before(b) {
				t.Fatalf("view out of order at %d: %s then %s", i, view[i-1].PublishedDate, view[i].PublishedDate)
			}
		}
	})
}

func TestPropertyViewIsFilteredSubset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ins := rapid.SliceOfN(genInput(), 0, 20).Draw(t, "books")
		query := rapid.SampledFrom([]string{"", "a", "E", "press", "opera", "zz"}).Draw(t, "query")
		s := Open(nil)
		for _, in := range ins {
			s.Add(in)
		}
		s.SetSearch(query)

		want := 0
		for _, b := range s.Books() {
			if Matches(&b, query, CatalogSearch...) {
				want++
			}
		}
		view := s.View()
		if len(view) != want {
			t.Fatalf("view has %d books, want %d", len(view), want)
		}
		for _, b := range view {
			if !Matches(&b, query, CatalogSearch...) {
				t.Fatalf("book %q in view does not match %q", b.Title, query)
			}
		}
	})
}

func TestPropertyStateRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := newMemPersister()
		s := Open(p)
		ins := rapid.SliceOfN(genInput(), 0, 10).Draw(t, "books")
		for _, in := range ins {
			b := s.Add(in)
			if rapid.Bool().Draw(t, "lend") {
				if _, err := s.Checkout(b.ID, "Alice", "555-0100"); err != nil {
					t.Fatal(err)
				}
			}
		}
		s.SetSearch(rapid.SampledFrom([]string{"", "a", "press"}).Draw(t, "query"))
		field := rapid.SampledFrom(types.SortFields).Draw(t, "field")
		if err := s.SetSort(types.SortSpec{Field: field, Direction: types.SortDesc}); err != nil {
			t.Fatal(err)
		}

		want := s.Snapshot()
		got := Open(p).Snapshot()
		if !assert.ObjectsAreEqual(want.Books, got.Books) ||
			want.Query != got.Query || want.Sort != got.Sort {
			t.Fatalf("reloaded state differs")
		}
	})
}

func TestStateDecodeRepairs(t *testing.T) {
	doc := []byte(`{"state":{
		"books":[
			{"id":"a","title":"A","author":"x","publisher":"p","publishedDate":"2000-01-01"},
			{"id":"a","title":"duplicate","author":"x","publisher":"p","publishedDate":"2000-01-01"},
			{"id":"","title":"no id","author":"x","publisher":"p","publishedDate":"2000-01-01"},
			{"id":"b","title":"B","author":"x","publisher":"p","publishedDate":"2000-01-01",
			 "checkedOut":{"isCheckedOut":true,"name":"","phone":"555","checkoutDate":"2024-01-01T00:00:00Z"}},
			{"id":"c","title":"C","author":"x","publisher":"p","publishedDate":"2000-01-01",
			 "checkedOut":{"isCheckedOut":false,"name":"","phone":"","checkoutDate":"2024-01-01T00:00:00Z"}}
		],
		"sortOptions":{"field":"pages","direction":"asc"},
		"searchQuery":"x",
		"filteredBooks":[]
	},"version":0}`)

	st, err := DecodeState(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, titles(st.Books))
	assert.Nil(t, st.Books[1].CheckedOut)
	assert.Nil(t, st.Books[2].CheckedOut)
	assert.Equal(t, types.DefaultSort(), st.Sort)
	assert.Equal(t, "x", st.Query)
}

func TestEncodeStateFieldNames(t *testing.T) {
	b := input("1984", "Orwell", "Secker", "1949-06-08").NewBook("id-1", t0)
	require.NoError(t, b.CheckOut("Alice", "555-0100", t0))
	data, err := EncodeState(State{Books: []types.Book{b}, Sort: types.DefaultSort()})
	require.NoError(t, err)

	s := string(data)
	for _, key := range []string{
		`"state"`, `"version":0`, `"books"`, `"sortOptions"`, `"searchQuery"`,
		`"publishedDate"`, `"createdAt"`, `"updatedAt"`, `"checkedOut"`, `"isCheckedOut":true`, `"checkoutDate"`,
	} {
		assert.Contains(t, s, key)
	}
}
