package catalog

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// memPersister is an in-memory Persister that can be told to fail writes.
type memPersister struct {
	mu      sync.Mutex
	data    map[string][]byte
	failGet error
	failSet error
	sets    int
}

func newMemPersister() *memPersister {
	return &memPersister{data: make(map[string][]byte)}
}

func (m *memPersister) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	v, ok := m.data[key]
	if !ok {
		return nil, types.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memPersister) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.failSet != nil {
		return m.failSet
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memPersister) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

var (
	errDiskFull = errors.New("disk full")
	errLocked   = errors.New("database is locked")
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

// seqIDs returns an ID generator yielding book-1, book-2, ...
func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("book-%d", n)
	}
}

func newTestStore(t *testing.T, p Persister) *Store {
	t.Helper()
	s := Open(p, WithClock(stepClock()), WithIDGenerator(seqIDs()))
	require.NotNil(t, s)
	return s
}

func input(title, author, publisher, published string) types.BookInput {
	return types.BookInput{
		Title:         title,
		Author:        author,
		Publisher:     publisher,
		PublishedDate: published,
	}
}

func titles(books []types.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}
