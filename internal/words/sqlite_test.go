package words

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportAndLoadSQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "data", "words.db")

	n, err := ImportSQLite(ctx, dsn,
		[]string{"sever", "saver", "cheever", "so_so"},
		[]string{"event", "sonnets", "sever"},
	)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	five, err := LoadSQLite(ctx, dsn, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"SAVER", "SEVER"}, five.Answers())
	assert.True(t, five.Contains("EVENT"))
	assert.Contains(t, five.Answers(), "SEVER", "a later allowed import keeps the answer flag")

	seven, err := LoadSQLite(ctx, dsn, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"CHEEVER"}, seven.Answers())
	assert.True(t, seven.Contains("SONNETS"))

	_, err = LoadSQLite(ctx, dsn, 6)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestOpenDB_MigratesOnce(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "words.db")

	for i := 0; i < 2; i++ {
		db, err := OpenDB(ctx, dsn)
		require.NoError(t, err)
		var count int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(1) FROM _migrations`).Scan(&count))
		assert.Equal(t, 1, count)
		require.NoError(t, db.Close())
	}
}

func TestLoad_PrefersDB(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "words.db")
	_, err := ImportSQLite(ctx, dsn, []string{"crane"}, nil)
	require.NoError(t, err)

	l, err := Load(ctx, 5, Sources{DB: dsn, AnswersFile: "ignored.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CRANE"}, l.Answers())
}

func TestLoadSQLite_MissingFile(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "typo")
	dsn := filepath.Join(dir, "words.db")

	_, err := LoadSQLite(ctx, dsn, 5)
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = os.Stat(dsn)
	assert.ErrorIs(t, err, fs.ErrNotExist, "loading must not create the database")
	_, err = os.Stat(dir)
	assert.ErrorIs(t, err, fs.ErrNotExist, "loading must not create parent directories")

	_, err = Load(ctx, 5, Sources{DB: dsn})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
