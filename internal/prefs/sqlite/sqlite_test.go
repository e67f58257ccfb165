package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.db")
	s, err := Open(path, log.New(io.Discard))
	require.NoError(t, err)
	return s, path
}

func TestPutGetUpsert(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	defer s.Close()

	_, ok, err := s.Get(ctx, "alice", "portfolio-theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "alice", "portfolio-theme", "cosmic"))
	require.NoError(t, s.Put(ctx, "alice", "portfolio-theme", "matrix"))
	require.NoError(t, s.Put(ctx, "bob", "portfolio-theme", "alien"))

	v, ok, err := s.Get(ctx, "alice", "portfolio-theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "matrix", v)

	var n int64
	require.NoError(t, s.db.Model(&Preference{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)
	require.NoError(t, s.Put(ctx, "carol", "portfolio-theme", "cosmic"))
	require.NoError(t, s.Close())

	s2, err := Open(path, log.New(io.Discard))
	require.NoError(t, err)
	defer s2.Close()
	v, ok, err := s2.Get(ctx, "carol", "portfolio-theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cosmic", v)
}
