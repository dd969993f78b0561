package dberrors

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestIsConstraintViolation(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE t (id TEXT PRIMARY KEY, n INTEGER CHECK (n >= 0))")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO t (id, n) VALUES ('a', 1)")
	require.NoError(t, err)

	t.Run("duplicate key", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO t (id, n) VALUES ('a', 2)")
		require.Error(t, err)
		assert.True(t, IsConstraintViolation(err))
	})

	t.Run("check failure", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO t (id, n) VALUES ('b', -1)")
		require.Error(t, err)
		assert.True(t, IsConstraintViolation(err))
	})

	t.Run("unrelated errors", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO missing (id) VALUES ('a')")
		require.Error(t, err)
		assert.False(t, IsConstraintViolation(err))
		assert.False(t, IsConstraintViolation(errors.New("plain")))
		assert.False(t, IsConstraintViolation(nil))
	})
}
