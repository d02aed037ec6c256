package auditlog

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func TestRedisLogEntries(t *testing.T) {
	s := miniredis.RunT(t)

	l, err := OpenRedis(s.Addr(), "test:changes")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	assert.Equal(t, "test:changes", l.Stream())

	l.Record("'Warehouse' inventory created.")
	l.Record("Added item 'bolt' with quantity 3 to inventory.")

	entries, err := l.Entries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Added item 'bolt' with quantity 3 to inventory.", entries[0].Message)
	assert.Equal(t, "'Warehouse' inventory created.", entries[1].Message)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].CreatedAt.IsZero())

	limited, err := l.Entries(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, entries[0].ID, limited[0].ID)
}

func TestOpenRedisUnreachable(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	_, err := OpenRedis(addr, DefaultStream)
	assert.ErrorIs(t, err, types.ErrIOFailure)
}

func TestRedisLogRecordFailureDoesNotPanic(t *testing.T) {
	s := miniredis.RunT(t)
	l, err := OpenRedis(s.Addr(), DefaultStream)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	s.Close()
	assert.NotPanics(t, func() { l.Record("lost") })
}
