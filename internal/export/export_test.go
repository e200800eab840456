package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func sampleBooks(t *testing.T) []types.Book {
	t.Helper()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := types.BookInput{
		Title: "1984", Author: "Orwell", Publisher: "Secker",
		PublishedDate: "1949-06-08", ISBN: "9780451524935", PageCount: 328,
	}.NewBook("id-1", now)
	b := types.BookInput{
		Title: "Dune", Author: "Frank Herbert", Publisher: "Chilton",
		PublishedDate: "1965-08-01", Description: "Desert planet",
	}.NewBook("id-2", now)
	require.NoError(t, b.CheckOut("Alice", "555-0100", now.Add(time.Hour)))
	return []types.Book{a, b}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: FormatJSON},
		{in: "JSON", want: FormatJSON},
		{in: " toml ", want: FormatTOML},
		{in: "csv", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "library-backup.json", FileName(FormatJSON))
	assert.Equal(t, "library-backup.toml", FileName(FormatTOML))
}

func TestEncodeJSON(t *testing.T) {
	books := sampleBooks(t)
	data, err := Encode(books, FormatJSON)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("[\n  {\n    \"id\": \"id-1\"")), "pretty-printed array:\n%s", data)
	for _, key := range []string{`"publishedDate"`, `"pageCount": 328`, `"checkedOut"`, `"isCheckedOut": true`, `"checkoutDate"`, `"createdAt"`} {
		assert.Contains(t, string(data), key)
	}

	var back []types.Book
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, books, back)
}

func TestEncodeEmptyCollection(t *testing.T) {
	data, err := Encode(nil, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestEncodeTOML(t *testing.T) {
	books := sampleBooks(t)
	data, err := Encode(books, FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[books]]")

	var doc tomlDocument
	require.NoError(t, toml.Unmarshal(data, &doc))
	require.Len(t, doc.Books, 2)
	assert.Equal(t, "1984", doc.Books[0].Title)
	assert.Equal(t, 328, doc.Books[0].PageCount)
	assert.Nil(t, doc.Books[0].CheckedOut)
	require.NotNil(t, doc.Books[1].CheckedOut)
	assert.Equal(t, "Alice", doc.Books[1].CheckedOut.Name)
	assert.True(t, books[1].CheckedOut.CheckoutDate.Equal(doc.Books[1].CheckedOut.CheckoutDate))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleBooks(t), ""))
	assert.True(t, json.Valid(buf.Bytes()))

	assert.ErrorIs(t, Write(&buf, nil, "xml"), types.ErrUnknownFormat)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	books := sampleBooks(t)

	path, err := WriteFile(dir, books, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "library-backup.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back []types.Book
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Len(t, back, 2)

	// Overwrites in place, leaves no temp files.
	_, err = WriteFile(dir, books[:1], FormatJSON)
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "library-backup.json", entries[0].Name())
}
