package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *KVStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)
	v, ok, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestPutOverwrites(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Put(ctx, "progress", []byte(`{"v":1}`)))
	require.NoError(t, s.Put(ctx, "progress", []byte(`{"v":2}`)))

	v, ok, err := s.Get(ctx, "progress")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"v":2}`, string(v))
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(v))
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "progress.db")
	t.Setenv("CCSE_DB", want)

	got, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DirExists(t, filepath.Dir(want))
}
