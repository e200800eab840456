package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// DefaultKey is the storage key the state document lives under.
const DefaultKey = "book-store"

// stateVersion is written into every document. Decode accepts any version;
// there has been no incompatible format change yet.
const stateVersion = 0

// State is the persisted part of the store: the collection, the sort
// specification, and the search query. The derived view is not stored.
type State struct {
	Books []types.Book   `json:"books"`
	Sort  types.SortSpec `json:"sortOptions"`
	Query string         `json:"searchQuery"`
}

// DefaultState is an empty collection sorted by title ascending.
func DefaultState() State {
	return State{Books: []types.Book{}, Sort: types.DefaultSort()}
}

type stateDocument struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// EncodeState renders st as the persisted document.
func EncodeState(st State) ([]byte, error) {
	if st.Books == nil {
		st.Books = []types.Book{}
	}
	data, err := json.Marshal(stateDocument{State: st, Version: stateVersion})
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// DecodeState parses a persisted document and repairs what it can: an invalid
// sort falls back to the default, books without an ID or with a duplicate ID
// are dropped, and a partial checkout record is cleared. A document that is
// not valid JSON returns an error.
func DecodeState(data []byte) (State, error) {
	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return DefaultState(), fmt.Errorf("unmarshal state: %w", err)
	}
	st := doc.State
	if st.Sort.Validate() != nil {
		st.Sort = types.DefaultSort()
	}

	seen := make(map[string]struct{}, len(st.Books))
	books := make([]types.Book, 0, len(st.Books))
	for _, b := range st.Books {
		if b.ID == "" {
			continue
		}
		if _, dup := seen[b.ID]; dup {
			continue
		}
		seen[b.ID] = struct{}{}
		if co := b.CheckedOut; co != nil {
			if !co.IsCheckedOut || strings.TrimSpace(co.Name) == "" || strings.TrimSpace(co.Phone) == "" {
				b.CheckedOut = nil
			}
		}
		books = append(books, b)
	}
	st.Books = books
	return st, nil
}
