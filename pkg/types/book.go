package types

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date layout used for PublishedDate.
const DateLayout = "2006-01-02"

// publishedLayouts lists the layouts PublishedTime accepts, in order.
var publishedLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01",
	"2006",
}

// Checkout records who borrowed a book and when. A book is checked out only
// when the record is present and IsCheckedOut is true.
type Checkout struct {
	IsCheckedOut bool      `json:"isCheckedOut" toml:"isCheckedOut"`
	Name         string    `json:"name" toml:"name"`
	Phone        string    `json:"phone" toml:"phone"`
	CheckoutDate time.Time `json:"checkoutDate" toml:"checkoutDate"`
}

// Book is a single catalog entry.
type Book struct {
	ID            string    `json:"id" toml:"id"`                                       // UUID v7, assigned by the store.
	Title         string    `json:"title" toml:"title"`                                 // Required.
	Author        string    `json:"author" toml:"author"`                               // Required.
	Publisher     string    `json:"publisher" toml:"publisher"`                         // Required.
	PublishedDate string    `json:"publishedDate" toml:"publishedDate"`                 // Required, usually YYYY-MM-DD.
	ISBN          string    `json:"isbn,omitempty" toml:"isbn,omitempty"`               // Optional.
	Description   string    `json:"description,omitempty" toml:"description,omitempty"` // Optional.
	CoverURL      string    `json:"coverUrl,omitempty" toml:"coverUrl,omitempty"`       // Optional.
	Genre         string    `json:"genre,omitempty" toml:"genre,omitempty"`             // Optional.
	PageCount     int       `json:"pageCount,omitempty" toml:"pageCount,omitempty"`     // Optional, positive when set.
	CreatedAt     time.Time `json:"createdAt" toml:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" toml:"updatedAt"`
	CheckedOut    *Checkout `json:"checkedOut,omitempty" toml:"checkedOut,omitempty"`
}

// IsCheckedOut reports whether the book is currently lent out.
func (b *Book) IsCheckedOut() bool {
	return b.CheckedOut != nil && b.CheckedOut.IsCheckedOut
}

// CheckOut lends the book to the named borrower.
// Returns a ValidationError caused by ErrBorrowerRequired when name or phone
// is blank, or by ErrAlreadyCheckedOut when the book is already lent out.
// The book is left untouched on error.
func (b *Book) CheckOut(name, phone string, now time.Time) error {
	if err := ValidateBorrower(name, phone); err != nil {
		return err
	}
	if b.IsCheckedOut() {
		return &ValidationError{
			Fields: map[string]string{"checkedOut": "Book is already checked out to " + b.CheckedOut.Name},
			Cause:  ErrAlreadyCheckedOut,
		}
	}
	b.CheckedOut = &Checkout{
		IsCheckedOut: true,
		Name:         strings.TrimSpace(name),
		Phone:        strings.TrimSpace(phone),
		CheckoutDate: now,
	}
	b.UpdatedAt = now
	return nil
}

// CheckIn returns the book to available status. Idempotent: checking in an
// available book changes nothing and reports false.
func (b *Book) CheckIn(now time.Time) bool {
	if b.CheckedOut == nil {
		return false
	}
	b.CheckedOut = nil
	b.UpdatedAt = now
	return true
}

// Apply merges the non-nil fields of p onto the book and bumps UpdatedAt.
// ID, CreatedAt and checkout state are never touched.
func (b *Book) Apply(p BookPatch, now time.Time) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Publisher != nil {
		b.Publisher = *p.Publisher
	}
	if p.PublishedDate != nil {
		b.PublishedDate = *p.PublishedDate
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.CoverURL != nil {
		b.CoverURL = *p.CoverURL
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.PageCount != nil {
		b.PageCount = *p.PageCount
	}
	b.UpdatedAt = now
}

// PublishedTime parses PublishedDate. The second result is false when the
// value matches none of the accepted layouts.
func (b *Book) PublishedTime() (time.Time, bool) {
	return ParseDate(b.PublishedDate)
}

// Input returns the caller-editable fields of the book.
func (b *Book) Input() BookInput {
	return BookInput{
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		ISBN:          b.ISBN,
		Description:   b.Description,
		CoverURL:      b.CoverURL,
		Genre:         b.Genre,
		PageCount:     b.PageCount,
	}
}

// Clone returns a deep copy of the book.
func (b *Book) Clone() Book {
	c := *b
	if b.CheckedOut != nil {
		co := *b.CheckedOut
		c.CheckedOut = &co
	}
	return c
}

// ParseDate parses a calendar date or timestamp in any accepted layout.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BookInput holds the caller-supplied fields of a new book. The store assigns
// ID and timestamps; a new book is always available.
type BookInput struct {
	Title         string `json:"title" validate:"notblank,utf8"`
	Author        string `json:"author" validate:"notblank,utf8"`
	Publisher     string `json:"publisher" validate:"notblank,utf8"`
	PublishedDate string `json:"publishedDate" validate:"notblank,utf8"`
	ISBN          string `json:"isbn,omitempty" validate:"utf8"`
	Description   string `json:"description,omitempty" validate:"utf8"`
	CoverURL      string `json:"coverUrl,omitempty" validate:"omitempty,utf8,url"`
	Genre         string `json:"genre,omitempty" validate:"utf8"`
	PageCount     int    `json:"pageCount,omitempty" validate:"gte=0"`
}

// NewBook builds the Book for this input with the given identity and
// creation time. CreatedAt and UpdatedAt are equal.
func (in BookInput) NewBook(id string, now time.Time) Book {
	return Book{
		ID:            id,
		Title:         in.Title,
		Author:        in.Author,
		Publisher:     in.Publisher,
		PublishedDate: in.PublishedDate,
		ISBN:          in.ISBN,
		Description:   in.Description,
		CoverURL:      in.CoverURL,
		Genre:         in.Genre,
		PageCount:     in.PageCount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BookPatch is a partial update. Nil fields are left unchanged.
type BookPatch struct {
	Title         *string `json:"title,omitempty"`
	Author        *string `json:"author,omitempty"`
	Publisher     *string `json:"publisher,omitempty"`
	PublishedDate *string `json:"publishedDate,omitempty"`
	ISBN          *string `json:"isbn,omitempty"`
	Description   *string `json:"description,omitempty"`
	CoverURL      *string `json:"coverUrl,omitempty"`
	Genre         *string `json:"genre,omitempty"`
	PageCount     *int    `json:"pageCount,omitempty"`
}

// Empty reports whether the patch changes no field.
func (p BookPatch) Empty() bool {
	return p.Title == nil && p.Author == nil && p.Publisher == nil &&
		p.PublishedDate == nil && p.ISBN == nil && p.Description == nil &&
		p.CoverURL == nil && p.Genre == nil && p.PageCount == nil
}
