package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Persister stores the state document. Get returns types.ErrNotFound when
// nothing has been stored under key.
type Persister interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Snapshot is a point-in-time copy of the store.
type Snapshot struct {
	Books            []types.Book   // full collection, insertion order
	Query            string         // active search query
	Sort             types.SortSpec // active sort specification
	View             []types.Book   // Books filtered by Query, ordered by Sort
	LastPersistError error          // nil when the last flush succeeded
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and flush problems.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces the time source for createdAt, updatedAt and
// checkoutDate.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID v7 generator for new books.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithKey changes the storage key of the state document.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// Store is the catalog state container. All methods are safe for concurrent
// use; each mutation applies, recomputes the view and flushes atomically with
// respect to readers.
type Store struct {
	mu         sync.RWMutex
	books      []types.Book
	query      string
	sort       types.SortSpec
	view       []types.Book
	persistErr error
	loadErr    error

	persister Persister
	key       string
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// Open builds a Store and loads its state from p. A missing or corrupt
// document yields an empty store sorted by title ascending; Open never fails.
// When p cannot be read at all the store also starts empty, but it refuses
// to write until reopened so the stored catalog is never overwritten; see
// LoadError. A nil p keeps the store in memory only.
func Open(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		key:       DefaultKey,
		logger:    zap.NewNop(),
		now:       defaultClock,
		newID:     generateUUID,
		subs:      make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}

	st := s.load()
	s.books = st.Books
	s.query = st.Query
	s.sort = st.Sort
	s.view = Derive(s.books, s.query, s.sort)
	return s
}

func (s *Store) load() State {
	if s.persister == nil {
		return DefaultState()
	}
	data, err := s.persister.Get(s.key)
	if errors.Is(err, types.ErrNotFound) {
		return DefaultState()
	}
	if err != nil {
		s.loadErr = fmt.Errorf("load catalog state: %w", err)
		s.logger.Warn("catalog state unreadable, saving disabled", zap.String("key", s.key), zap.Error(err))
		return DefaultState()
	}
	st, err := DecodeState(data)
	if err != nil {
		s.logger.Warn("corrupt catalog state, starting empty", zap.String("key", s.key), zap.Error(err))
		return DefaultState()
	}
	s.logger.Debug("catalog state loaded",
		zap.Int("books", len(st.Books)),
		zap.Stringer("sort", st.Sort),
		zap.String("query", st.Query))
	return st
}

// Add appends a new book built from in. The store assigns the ID and sets
// CreatedAt and UpdatedAt to the same instant. Validation of in is the
// caller's job.
func (s *Store) Add(in types.BookInput) types.Book {
	var added types.Book
	s.mutate("add", func() bool {
		added = in.NewBook(s.newID(), s.now())
		s.books = append(s.books, added)
		return true
	})
	return added.Clone()
}

// Update merges p onto the book with the given ID.
// Returns types.ErrNotFound if no such book exists.
func (s *Store) Update(id string, p types.BookPatch) (types.Book, error) {
	var (
		updated types.Book
		err     error
	)
	s.mutate("update", func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			err = fmt.Errorf("update %s: %w", id, types.ErrNotFound)
			return false
		}
		s.books[i].Apply(p, s.now())
		updated = s.books[i].Clone()
		return true
	})
	return updated, err
}

// Delete removes the book with the given ID. Idempotent: deleting an absent
// ID changes nothing. Reports whether a book was removed.
func (s *Store) Delete(id string) bool {
	var removed bool
	s.mutate("delete", func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		s.books = append(s.books[:i], s.books[i+1:]...)
		removed = true
		return true
	})
	return removed
}

// Checkout lends the book to the named borrower.
// Returns types.ErrNotFound for an unknown ID, and a types.ValidationError
// caused by types.ErrBorrowerRequired or types.ErrAlreadyCheckedOut when the
// checkout is not allowed. An existing checkout is never overwritten.
func (s *Store) Checkout(id, name, phone string) (types.Book, error) {
	var (
		book types.Book
		err  error
	)
	s.mutate("checkout", func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			err = fmt.Errorf("checkout %s: %w", id, types.ErrNotFound)
			return false
		}
		if err = s.books[i].CheckOut(name, phone, s.now()); err != nil {
			return false
		}
		book = s.books[i].Clone()
		return true
	})
	return book, err
}

// Checkin returns the book to available status. Idempotent, and an unknown
// ID is a silent no-op. The bool reports whether the book exists.
func (s *Store) Checkin(id string) (types.Book, bool) {
	var (
		book  types.Book
		found bool
	)
	s.mutate("checkin", func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		found = true
		changed := s.books[i].CheckIn(s.now())
		book = s.books[i].Clone()
		return changed
	})
	return book, found
}

// SetSearch replaces the active search query.
func (s *Store) SetSearch(query string) {
	s.mutate("search", func() bool {
		if s.query == query {
			return false
		}
		s.query = query
		return true
	})
}

// SetSort replaces the active sort specification.
// Returns types.ErrInvalidSort for an unknown field or direction.
func (s *Store) SetSort(spec types.SortSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	s.mutate("sort", func() bool {
		if s.sort == spec {
			return false
		}
		s.sort = spec
		return true
	})
	return nil
}

// ToggleSort selects field the way a list header does: the active field
// flips direction, any other field sorts ascending. Returns the new spec.
func (s *Store) ToggleSort(field types.SortField) (types.SortSpec, error) {
	var next types.SortSpec
	s.mutate("sort", func() bool {
		next = s.sort.Toggle(field)
		if next.Validate() != nil {
			return false
		}
		s.sort = next
		return true
	})
	if err := next.Validate(); err != nil {
		return types.SortSpec{}, err
	}
	return next, nil
}

// mutate runs fn under the write lock. When fn reports a change the view is
// recomputed, the state flushed, and subscribers notified after the lock is
// released.
func (s *Store) mutate(op string, fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	s.view = Derive(s.books, s.query, s.sort)
	s.flushLocked(op)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// flushLocked writes the state document. Failures are recorded, not
// returned: the in-memory change stands.
func (s *Store) flushLocked(op string) {
	if s.persister == nil {
		return
	}
	if s.loadErr != nil {
		s.persistErr = fmt.Errorf("persist after %s: %w", op, s.loadErr)
		s.logger.Warn("catalog state not persisted", zap.String("op", op), zap.Error(s.loadErr))
		return
	}
	data, err := EncodeState(State{Books: s.books, Sort: s.sort, Query: s.query})
	if err == nil {
		err = s.persister.Set(s.key, data)
	}
	if err != nil {
		s.persistErr = fmt.Errorf("persist after %s: %w", op, err)
		s.logger.Warn("catalog state not persisted", zap.String("op", op), zap.Error(err))
		return
	}
	s.persistErr = nil
}

func (s *Store) indexLocked(id string) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Books:            cloneBooks(s.books),
		Query:            s.query,
		Sort:             s.sort,
		View:             cloneBooks(s.view),
		LastPersistError: s.persistErr,
	}
}

// Books returns a copy of the full collection in insertion order.
func (s *Store) Books() []types.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBooks(s.books)
}

// View returns a copy of the derived view.
func (s *Store) View() []types.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBooks(s.view)
}

// Query returns the active search query.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Sort returns the active sort specification.
func (s *Store) Sort() types.SortSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sort
}

// Len returns the size of the full collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// Get returns the book with the given ID, or types.ErrNotFound.
func (s *Store) Get(id string) (types.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return types.Book{}, fmt.Errorf("get %s: %w", id, types.ErrNotFound)
	}
	return s.books[i].Clone(), nil
}

// Find runs a substring search over the full collection, independent of the
// active query. With no fields it searches the catalog search fields.
func (s *Store) Find(query string, fields ...SearchField) []types.Book {
	if len(fields) == 0 {
		fields = CatalogSearch
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.books, query, fields...)
}

// CheckedOut returns the books currently lent out, in insertion order.
func (s *Store) CheckedOut() []types.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.Book
	for i := range s.books {
		if s.books[i].IsCheckedOut() {
			out = append(out, s.books[i].Clone())
		}
	}
	return out
}

// Stats aggregates the full collection.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStats(s.books)
}

// LastPersistError returns the error of the most recent flush, if any.
func (s *Store) LastPersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistErr
}

// LoadError returns the read error that kept Open from loading the stored
// document, or nil. While it is set no change is persisted.
func (s *Store) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Subscribe registers fn to receive a Snapshot after every change. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Snapshot), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func cloneBooks(books []types.Book) []types.Book {
	out := make([]types.Book, len(books))
	for i := range books {
		out[i] = books[i].Clone()
	}
	return out
}

func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// generateUUID generates a new UUID v7 for book IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
