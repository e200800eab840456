// Package export writes the book collection as a downloadable backup.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// BaseName is the fixed stem of every backup file.
const BaseName = "library-backup"

// Formats lists the accepted format names.
var Formats = []string{FormatJSON, FormatTOML}

// tomlDocument wraps the books; TOML has no top-level arrays.
type tomlDocument struct {
	Books []types.Book `toml:"books"`
}

// ParseFormat normalizes a format name. Empty means JSON.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w %q (valid: %s)", types.ErrUnknownFormat, s, strings.Join(Formats, ", "))
	}
}

// FileName returns the backup file name for format.
func FileName(format string) string {
	return BaseName + "." + format
}

// Encode renders books in format. JSON output is an indented array with the
// stored field names; TOML output is a list of [[books]] tables.
func Encode(books []types.Book, format string) ([]byte, error) {
	if books == nil {
		books = []types.Book{}
	}
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(tomlDocument{Books: books}); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(books, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// Write encodes books in format to w.
func Write(w io.Writer, books []types.Book, format string) error {
	data, err := Encode(books, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// WriteFile encodes books and writes dir/library-backup.<format> atomically.
// Returns the path written.
func WriteFile(dir string, books []types.Book, format string) (string, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	data, err := Encode(books, format)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(format))
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}
