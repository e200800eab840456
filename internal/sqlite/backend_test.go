// Tests for the SQLite key/value backend.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// setupBackend attaches a Backend to a temp dir and detaches it on cleanup.
func setupBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	require.NoError(t, b.Attach(types.DefaultConfig(dir)))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func TestBackend_Attach(t *testing.T) {
	b, dir := setupBackend(t)

	dbPath := filepath.Join(dir, types.DatabaseFile)
	_, err := os.Stat(dbPath)
	require.NoError(t, err, "shelf.db not created")
	assert.Equal(t, dbPath, b.Path())

	// Double attach fails.
	err = b.Attach(types.DefaultConfig(dir))
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := NewBackend()
	require.NoError(t, b.Attach(types.DefaultConfig(dir)))
	defer b.Detach()

	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestBackend_AttachRejectsBadConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b, _ := setupBackend(t)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach should not error")
	assert.Equal(t, "", b.Path())

	_, err := b.Get("book-store")
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, b.Set("book-store", []byte("{}")), types.ErrDetached)
	_, err = b.Keys()
	assert.ErrorIs(t, err, types.ErrDetached)
}

func TestKV_CRUD(t *testing.T) {
	b, _ := setupBackend(t)

	_, err := b.Get("book-store")
	assert.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, b.Set("book-store", []byte(`{"v":1}`)))
	got, err := b.Get("book-store")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(got))

	require.NoError(t, b.Set("book-store", []byte(`{"v":2}`)))
	got, err = b.Get("book-store")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got), "Set replaces")

	require.NoError(t, b.Set("prefs", nil))
	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"book-store", "prefs"}, keys)
}

func TestKV_EmptyKey(t *testing.T) {
	b, _ := setupBackend(t)
	_, err := b.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	assert.ErrorIs(t, b.Set("", []byte("x")), types.ErrInvalidID)
}

func TestKV_SurvivesReattach(t *testing.T) {
	dir := t.TempDir()

	b := NewBackend()
	require.NoError(t, b.Attach(types.DefaultConfig(dir)))
	require.NoError(t, b.Set("book-store", []byte("persisted")))
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(types.DefaultConfig(dir)))
	defer b2.Detach()

	got, err := b2.Get("book-store")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(got))
}
