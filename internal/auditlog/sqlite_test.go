package auditlog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteLogEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), SQLiteFileName)
	l, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	messages := []string{"first", "second", "third"}
	for _, m := range messages {
		l.Record(m)
	}

	entries, err := l.Entries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Message)
	assert.Equal(t, "second", entries[1].Message)
	assert.Equal(t, "first", entries[2].Message)

	for _, e := range entries {
		id, err := uuid.Parse(e.ID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
		assert.False(t, e.CreatedAt.IsZero())
	}

	limited, err := l.Entries(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "third", limited[0].Message)
}

func TestSQLiteLogPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", SQLiteFileName)

	l, err := OpenSQLite(path)
	require.NoError(t, err)
	l.Record("Inventory saved to 'x'.")
	require.NoError(t, l.Close())

	l, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	entries, err := l.Entries(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Inventory saved to 'x'.", entries[0].Message)
}

func TestSQLiteLogEmpty(t *testing.T) {
	l, err := OpenSQLite(filepath.Join(t.TempDir(), SQLiteFileName))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	entries, err := l.Entries(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
