package app

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/portfolio/internal/config"
	"github.com/tomz197/portfolio/internal/prefs"
)

func TestOpenStore(t *testing.T) {
	logger := log.New(io.Discard)

	mem, err := OpenStore(config.PrefsConfig{Backend: "memory"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &prefs.Memory{}, mem)
	require.NoError(t, mem.Close())

	path := filepath.Join(t.TempDir(), "prefs.db")
	db, err := OpenStore(config.PrefsConfig{Backend: "sqlite", Path: path}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Put(context.Background(), "ada", "k", "v"))
	v, ok, err := db.Get(context.Background(), "ada", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	_, err = OpenStore(config.PrefsConfig{Backend: "redis"}, logger)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
