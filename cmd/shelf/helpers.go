// Shared helpers for shelf CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/internal/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// minIDPrefix is the shortest ID prefix accepted in place of a full ID.
const minIDPrefix = 4

// exitError marks an error with the exit code it should produce.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as an environment failure (exit 2). Unmarked errors
// are user errors (exit 1).
func sysError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// reportError prints err to w. Validation failures list one message per
// field.
func reportError(w io.Writer, err error) {
	fields := types.FieldErrors(err)
	if len(fields) == 0 {
		fmt.Fprintf(w, "shelf: %v\n", err)
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fmt.Fprintln(w, "shelf: validation failed:")
	for _, k := range keys {
		fmt.Fprintf(w, "  - %s\n", fields[k])
	}
}

// openStore resolves the data directory, attaches the SQLite backend, and
// loads the catalog. The backend is detached by app.close.
func (a *app) openStore() (*catalog.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	dataDir, err := paths.ResolveDataDir(a.flagDataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	cfg := types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	a.logger.Debug("backend attached", zap.String("path", backend.Path()))

	a.backend = backend
	store := catalog.Open(backend, catalog.WithLogger(a.logger))
	if err := store.LoadError(); err != nil {
		return nil, sysError(err)
	}
	a.store = store
	return a.store, nil
}

// saved reports a failed write of the catalog after a mutation.
func (a *app) saved() error {
	if a.store == nil {
		return nil
	}
	if err := a.store.LastPersistError(); err != nil {
		return sysError(fmt.Errorf("save catalog: %w", err))
	}
	return nil
}

// resolveID maps arg to a book ID. An exact ID wins; otherwise a prefix of at
// least minIDPrefix characters matching exactly one book is accepted. Unknown
// IDs are returned unchanged so the store decides how to treat them.
func resolveID(s *catalog.Store, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("book id: %w", types.ErrInvalidID)
	}
	if _, err := s.Get(arg); err == nil {
		return arg, nil
	}
	if len(arg) < minIDPrefix {
		return arg, nil
	}

	var matches []string
	for _, b := range s.Books() {
		if strings.HasPrefix(b.ID, arg) {
			matches = append(matches, b.ID)
		}
	}
	switch len(matches) {
	case 0:
		return arg, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d books", arg, len(matches))
	}
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printBook writes a single book as JSON or as the detail view.
func (a *app) printBook(b types.Book) error {
	if a.flagJSON {
		return printJSON(a.out, b)
	}
	return a.renderer.BookDetail(a.out, b)
}

// printView writes the store's derived view as JSON or as the list table.
func (a *app) printView(s *catalog.Store) error {
	snap := s.Snapshot()
	if a.flagJSON {
		if snap.View == nil {
			snap.View = []types.Book{}
		}
		return printJSON(a.out, snap.View)
	}
	return a.renderer.BookList(a.out, snap.View, snap.Sort, snap.Query)
}
