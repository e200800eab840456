package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t1.Add(time.Hour)
)

func sampleBook() Book {
	return BookInput{
		Title:         "1984",
		Author:        "Orwell",
		Publisher:     "Secker",
		PublishedDate: "1949-06-08",
	}.NewBook("b-1", t0)
}

func TestNewBook(t *testing.T) {
	b := sampleBook()
	assert.Equal(t, "b-1", b.ID)
	assert.Equal(t, t0, b.CreatedAt)
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)
	assert.False(t, b.IsCheckedOut())
	assert.Nil(t, b.CheckedOut)
}

func TestBookCheckOut(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, b *Book)
		borrow  Borrower
		wantErr error
	}{
		{
			name:   "available book is lent",
			borrow: Borrower{Name: "Alice", Phone: "555-0100"},
		},
		{
			name:    "blank name rejected",
			borrow:  Borrower{Name: "  ", Phone: "555-0100"},
			wantErr: ErrBorrowerRequired,
		},
		{
			name:    "missing phone rejected",
			borrow:  Borrower{Name: "Alice"},
			wantErr: ErrBorrowerRequired,
		},
		{
			name: "double checkout rejected",
			setup: func(t *testing.T, b *Book) {
				require.NoError(t, b.CheckOut("Bob", "555-0199", t0))
			},
			borrow:  Borrower{Name: "Alice", Phone: "555-0100"},
			wantErr: ErrAlreadyCheckedOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sampleBook()
			if tt.setup != nil {
				tt.setup(t, &b)
			}
			before := b.Clone()

			err := b.CheckOut(tt.borrow.Name, tt.borrow.Phone, t1)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Equal(t, before, b, "book must be unchanged on error")
				return
			}
			require.NoError(t, err)
			require.True(t, b.IsCheckedOut())
			assert.Equal(t, tt.borrow.Name, b.CheckedOut.Name)
			assert.Equal(t, tt.borrow.Phone, b.CheckedOut.Phone)
			assert.Equal(t, t1, b.CheckedOut.CheckoutDate)
			assert.Equal(t, t1, b.UpdatedAt)
		})
	}
}

func TestBookCheckOutFieldErrors(t *testing.T) {
	b := sampleBook()
	err := b.CheckOut("", "", t1)
	fields := FieldErrors(err)
	assert.Equal(t, "Borrower name is required", fields["name"])
	assert.Equal(t, "Borrower phone is required", fields["phone"])
}

func TestBookCheckIn(t *testing.T) {
	b := sampleBook()
	require.NoError(t, b.CheckOut("Alice", "555-0100", t1))

	assert.True(t, b.CheckIn(t2))
	assert.False(t, b.IsCheckedOut())
	assert.Equal(t, t2, b.UpdatedAt)

	// Idempotent.
	assert.False(t, b.CheckIn(t2.Add(time.Hour)))
	assert.Equal(t, t2, b.UpdatedAt)
}

func TestBookApplyPreservesIdentity(t *testing.T) {
	b := sampleBook()
	title := "New"
	b.Apply(BookPatch{Title: &title}, t1)

	assert.Equal(t, "New", b.Title)
	assert.Equal(t, "b-1", b.ID)
	assert.Equal(t, t0, b.CreatedAt)
	assert.Equal(t, t1, b.UpdatedAt)
	assert.Equal(t, "Orwell", b.Author)
	assert.Equal(t, "Secker", b.Publisher)
}

func TestBookCloneIsDeep(t *testing.T) {
	b := sampleBook()
	require.NoError(t, b.CheckOut("Alice", "555-0100", t1))

	c := b.Clone()
	c.CheckedOut.Name = "Mallory"
	assert.Equal(t, "Alice", b.CheckedOut.Name)
}

func TestBookPatchEmpty(t *testing.T) {
	assert.True(t, BookPatch{}.Empty())
	n := 0
	assert.False(t, BookPatch{PageCount: &n}.Empty())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{in: "1999-06-15", want: time.Date(1999, 6, 15, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2020-01-01T12:30:00Z", want: time.Date(2020, 1, 1, 12, 30, 0, 0, time.UTC), ok: true},
		{in: "1965", want: time.Date(1965, 1, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "", ok: false},
		{in: "next tuesday", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			}
		})
	}
}
