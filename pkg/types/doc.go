// Package types defines the Book entity, its input and patch forms, the sort
// specification, backend configuration, and the standard errors shared by
// the catalog store, the storage backend, and the CLI.
package types
