package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortSpecValidate(t *testing.T) {
	assert.NoError(t, DefaultSort().Validate())
	assert.NoError(t, SortSpec{Field: SortPublishedDate, Direction: SortDesc}.Validate())
	assert.ErrorIs(t, SortSpec{Field: "isbn", Direction: SortAsc}.Validate(), ErrInvalidSort)
	assert.ErrorIs(t, SortSpec{Field: SortTitle, Direction: "up"}.Validate(), ErrInvalidSort)
}

func TestSortSpecToggle(t *testing.T) {
	s := DefaultSort()

	s = s.Toggle(SortTitle)
	assert.Equal(t, SortSpec{Field: SortTitle, Direction: SortDesc}, s)

	s = s.Toggle(SortTitle)
	assert.Equal(t, SortSpec{Field: SortTitle, Direction: SortAsc}, s)

	s = s.Toggle(SortTitle).Toggle(SortAuthor)
	assert.Equal(t, SortSpec{Field: SortAuthor, Direction: SortAsc}, s, "new field starts ascending")
}

func TestParseSortField(t *testing.T) {
	for in, want := range map[string]SortField{
		"title":         SortTitle,
		"Author":        SortAuthor,
		" publisher ":   SortPublisher,
		"publishedDate": SortPublishedDate,
		"date":          SortPublishedDate,
	} {
		got, err := ParseSortField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSortField("pages")
	assert.ErrorIs(t, err, ErrInvalidSort)
}

func TestParseSortDirection(t *testing.T) {
	d, err := ParseSortDirection("DESCENDING")
	require.NoError(t, err)
	assert.Equal(t, SortDesc, d)

	_, err = ParseSortDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidSort)
}
