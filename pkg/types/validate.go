package types

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// fieldLabels names each validated field the way the add/edit form shows it.
var fieldLabels = map[string]string{
	"title":         "Title",
	"author":        "Author",
	"publisher":     "Publisher",
	"publishedDate": "Publication date",
	"isbn":          "ISBN",
	"description":   "Description",
	"coverUrl":      "Cover URL",
	"genre":         "Genre",
	"pageCount":     "Page count",
	"name":          "Borrower name",
	"phone":         "Borrower phone",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so field errors line up with the stored document.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// JSON encoding replaces invalid bytes, so they would not survive a reload.
	_ = v.RegisterValidation("utf8", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})
	return v
}

// Borrower holds the details collected by the checkout dialog.
type Borrower struct {
	Name  string `json:"name" validate:"notblank,utf8"`
	Phone string `json:"phone" validate:"notblank,utf8"`
}

// Validate checks the required book fields. It returns a ValidationError
// with one message per failing field, or nil.
func (in BookInput) Validate() error {
	return structErrors(in, nil)
}

// ValidateBorrower checks that both borrower details are present and valid
// text. The returned ValidationError unwraps to ErrBorrowerRequired when a
// detail is blank.
func ValidateBorrower(name, phone string) error {
	return structErrors(Borrower{Name: name, Phone: phone}, ErrBorrowerRequired)
}

func structErrors(s any, cause error) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	missing := false
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fieldMessage(fe)
		missing = missing || fe.Tag() == "notblank"
	}
	if !missing {
		cause = nil
	}
	return &ValidationError{Fields: fields, Cause: cause}
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "notblank", "required":
		return label + " is required"
	case "utf8":
		return label + " must be valid UTF-8 text"
	case "url":
		return label + " must be a valid URL"
	case "gte", "gt":
		return label + " must not be negative"
	default:
		return label + " is invalid"
	}
}
