package types

import (
	"fmt"
	"strings"
)

// SortField names the book attribute a view is ordered by.
type SortField string

// Sortable fields.
const (
	SortTitle         SortField = "title"
	SortAuthor        SortField = "author"
	SortPublisher     SortField = "publisher"
	SortPublishedDate SortField = "publishedDate"
)

// SortDirection is ascending or descending.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortFields lists every sortable field in display order.
var SortFields = []SortField{SortTitle, SortAuthor, SortPublisher, SortPublishedDate}

// fieldAliases maps user-typed names to sort fields.
var fieldAliases = map[string]SortField{
	"title":         SortTitle,
	"author":        SortAuthor,
	"publisher":     SortPublisher,
	"publisheddate": SortPublishedDate,
	"published":     SortPublishedDate,
	"date":          SortPublishedDate,
}

// SortSpec is a (field, direction) pair.
type SortSpec struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// DefaultSort returns title ascending.
func DefaultSort() SortSpec {
	return SortSpec{Field: SortTitle, Direction: SortAsc}
}

// Validate returns ErrInvalidSort when the field or direction is unknown.
func (s SortSpec) Validate() error {
	switch s.Field {
	case SortTitle, SortAuthor, SortPublisher, SortPublishedDate:
	default:
		return fmt.Errorf("%w: field %q", ErrInvalidSort, s.Field)
	}
	switch s.Direction {
	case SortAsc, SortDesc:
	default:
		return fmt.Errorf("%w: direction %q", ErrInvalidSort, s.Direction)
	}
	return nil
}

// Toggle returns the spec that results from selecting field in the list
// header: the active field flips direction, any other field starts ascending.
func (s SortSpec) Toggle(field SortField) SortSpec {
	if s.Field == field {
		if s.Direction == SortAsc {
			return SortSpec{Field: field, Direction: SortDesc}
		}
		return SortSpec{Field: field, Direction: SortAsc}
	}
	return SortSpec{Field: field, Direction: SortAsc}
}

func (s SortSpec) String() string {
	return string(s.Field) + " " + string(s.Direction)
}

// ParseSortField resolves a user-typed field name, case-insensitively.
func ParseSortField(s string) (SortField, error) {
	f, ok := fieldAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: field %q", ErrInvalidSort, s)
	}
	return f, nil
}

// ParseSortDirection resolves "asc"/"ascending" and "desc"/"descending".
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return SortAsc, nil
	case "desc", "descending":
		return SortDesc, nil
	}
	return "", fmt.Errorf("%w: direction %q", ErrInvalidSort, s)
}
