package catalog

import "github.com/mesh-intelligence/shelf/pkg/types"

// PublisherCount is one bar of the books-by-publisher chart.
type PublisherCount struct {
	Publisher string `json:"publisher"`
	Count     int    `json:"count"`
}

// Stats aggregates the collection for the statistics view.
type Stats struct {
	Total       int              `json:"total"`
	Authors     int              `json:"authors"`
	Publishers  int              `json:"publishers"`
	CheckedOut  int              `json:"checkedOut"`
	ByPublisher []PublisherCount `json:"byPublisher"`
}

// ComputeStats counts books, distinct authors and publishers, and books per
// publisher. ByPublisher lists publishers in order of first appearance.
func ComputeStats(books []types.Book) Stats {
	st := Stats{Total: len(books), ByPublisher: []PublisherCount{}}
	authors := make(map[string]struct{})
	pubIndex := make(map[string]int)

	for i := range books {
		b := &books[i]
		authors[b.Author] = struct{}{}
		if idx, ok := pubIndex[b.Publisher]; ok {
			st.ByPublisher[idx].Count++
		} else {
			pubIndex[b.Publisher] = len(st.ByPublisher)
			st.ByPublisher = append(st.ByPublisher, PublisherCount{Publisher: b.Publisher, Count: 1})
		}
		if b.IsCheckedOut() {
			st.CheckedOut++
		}
	}
	st.Authors = len(authors)
	st.Publishers = len(pubIndex)
	return st
}
