package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntegrityGuard(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "store.db")
	guard := NewIntegrityGuard(dbPath, "test-key")

	t.Run("missing store passes trivially", func(t *testing.T) {
		require.NoError(t, guard.Verify())
	})

	t.Run("bootstrap on first use", func(t *testing.T) {
		require.NoError(t, os.WriteFile(dbPath, []byte("sqlite-bytes-v1"), 0644))
		require.NoError(t, guard.Verify())
		_, err := os.Stat(dbPath + ".digest")
		require.NoError(t, err, "digest file should be written on first verify")
	})

	t.Run("unmodified store keeps passing", func(t *testing.T) {
		require.NoError(t, guard.Verify())
		require.NoError(t, guard.Verify())
	})

	t.Run("update after commit tracks new content", func(t *testing.T) {
		require.NoError(t, os.WriteFile(dbPath, []byte("sqlite-bytes-v2"), 0644))
		require.NoError(t, guard.UpdateAfterCommit())
		require.NoError(t, guard.Verify())
	})

	t.Run("out-of-band mutation fails verify", func(t *testing.T) {
		require.NoError(t, os.WriteFile(dbPath, []byte("tampered-bytes"), 0644))
		require.Error(t, guard.Verify())
	})

	t.Run("different key produces different digest", func(t *testing.T) {
		require.NoError(t, os.WriteFile(dbPath, []byte("sqlite-bytes-v2"), 0644))
		require.NoError(t, guard.UpdateAfterCommit())

		other := NewIntegrityGuard(dbPath, "other-key")
		require.Error(t, other.Verify())
	})
}
