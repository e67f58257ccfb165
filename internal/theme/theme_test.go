package theme

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/portfolio/internal/prefs"
)

var quiet = log.New(io.Discard)

type failingStore struct{ prefs.Store }

func (failingStore) Get(context.Context, string, string) (string, bool, error) {
	return "", false, errors.New("read failed")
}

func (failingStore) Put(context.Context, string, string, string) error {
	return errors.New("write failed")
}

func TestSetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemory()
	m := NewManager(ctx, store, "alice", Default, quiet)
	assert.Equal(t, Alien, m.Current())

	for _, n := range Names() {
		require.NoError(t, m.Set(string(n)))
		assert.Equal(t, n, m.Current())
		p, _ := Lookup(n)
		assert.Equal(t, p, m.Palette())

		saved, ok, err := store.Get(ctx, "alice", PrefKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, string(n), saved)
	}
}

func TestSetUnknownLeavesState(t *testing.T) {
	store := prefs.NewMemory()
	m := NewManager(context.Background(), store, "alice", Default, quiet)
	require.NoError(t, m.Set("cosmic"))

	err := m.Set("bogus")
	assert.ErrorIs(t, err, ErrUnknownTheme)
	assert.Equal(t, Cosmic, m.Current())
	saved, _, _ := store.Get(context.Background(), "alice", PrefKey)
	assert.Equal(t, "cosmic", saved)
}

func TestRestoreSaved(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemory()
	require.NoError(t, store.Put(ctx, "alice", PrefKey, "cosmic"))
	require.NoError(t, store.Put(ctx, "bob", PrefKey, "bogus"))

	m := NewManager(ctx, store, "alice", Default, quiet)
	assert.Equal(t, Cosmic, m.Current())
	assert.Equal(t, "#8b5cf6", m.Palette().Primary.Hex())

	m = NewManager(ctx, store, "bob", Default, quiet)
	assert.Equal(t, Alien, m.Current())

	m = NewManager(ctx, failingStore{}, "carol", Matrix, quiet)
	assert.Equal(t, Matrix, m.Current())

	m = NewManager(ctx, nil, "dave", "nope", quiet)
	assert.Equal(t, Default, m.Current())
}

func TestPersistFailureKeepsChange(t *testing.T) {
	m := NewManager(context.Background(), failingStore{}, "carol", Default, quiet)
	changed := 0
	m.OnChange(func(Name, Palette) { changed++ })
	require.NoError(t, m.Set("matrix"))
	assert.Equal(t, Matrix, m.Current())
	assert.Equal(t, 1, changed)
}

func TestNextCycles(t *testing.T) {
	m := NewManager(context.Background(), nil, "", Default, quiet)
	var seen []Name
	for i := 0; i < 4; i++ {
		n := m.Next()
		seen = append(seen, n)
		require.NoError(t, m.Set(string(n)))
	}
	assert.Equal(t, []Name{Cosmic, Matrix, Alien, Cosmic}, seen)
}

func TestPalettes(t *testing.T) {
	p, ok := Lookup(Matrix)
	require.True(t, ok)
	assert.Equal(t, "#00ff00", p.Primary.Hex())
	assert.Equal(t, "#000000", p.Background.Hex())
	assert.InDelta(t, 128.0/255, p.Glow.A, 1e-12)
	assert.Equal(t, p.Primary.Hex(), p.Glow.Hex())
}

func TestIconsAndTitles(t *testing.T) {
	assert.Equal(t, "👽", Icon(Alien))
	assert.Equal(t, "🌌", Icon(Cosmic))
	assert.Equal(t, "💚", Icon(Matrix))
	assert.Equal(t, "🎨", Icon("other"))
	assert.Equal(t, "Cosmic", Title(Cosmic))
	assert.Equal(t, "", Title(""))

	_, err := Parse("alien")
	assert.NoError(t, err)
	_, err = Parse("Alien")
	assert.ErrorIs(t, err, ErrUnknownTheme)
}
