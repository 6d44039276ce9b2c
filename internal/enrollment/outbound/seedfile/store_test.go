package seedfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/widipratama/otpseal/internal/enrollment/entity"
	"github.com/widipratama/otpseal/internal/enrollment/outbound/seedfile"
	"github.com/widipratama/otpseal/internal/pkg/goerror"
	"github.com/widipratama/otpseal/internal/pkg/instrument"
)

func mustSeed(t *testing.T, s string) entity.Seed {
	t.Helper()

	seed, err := entity.ParseSeed(s)
	require.NoError(t, err)

	return seed
}

func TestStore_PersistLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "seed")
	store := seedfile.NewStore(path, instrument.NewNoop())
	seed := mustSeed(t, strings.Repeat("ab", 32))

	require.NoError(t, store.Persist(context.Background(), seed))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_LoadEmptySlot(t *testing.T) {
	store := seedfile.NewStore(filepath.Join(t.TempDir(), "seed"), instrument.NewNoop())

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestStore_OverwriteReplacesSlot(t *testing.T) {
	store := seedfile.NewStore(filepath.Join(t.TempDir(), "seed"), instrument.NewNoop())
	first := mustSeed(t, strings.Repeat("11", 32))
	second := mustSeed(t, strings.Repeat("22", 32))

	require.NoError(t, store.Persist(context.Background(), first))
	require.NoError(t, store.Persist(context.Background(), second))

	// Persisting the same value again is idempotent.
	require.NoError(t, store.Persist(context.Background(), second))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestStore_CorruptSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed")
	require.NoError(t, os.WriteFile(path, []byte("not a seed"), 0o600))

	store := seedfile.NewStore(path, instrument.NewNoop())

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, entity.ErrInvalidSeedFormat)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := seedfile.NewStore(filepath.Join(t.TempDir(), "seed"), instrument.NewNoop())
	seeds := []entity.Seed{
		mustSeed(t, strings.Repeat("aa", 32)),
		mustSeed(t, strings.Repeat("bb", 32)),
		mustSeed(t, strings.Repeat("cc", 32)),
	}

	require.NoError(t, store.Persist(context.Background(), seeds[0]))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)

		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Persist(context.Background(), seeds[i%len(seeds)]))
		}(i)

		go func() {
			defer wg.Done()

			// A reader must always observe one complete value, never a
			// partial write.
			got, err := store.Load(context.Background())
			assert.NoError(t, err)
			assert.Contains(t, seeds, got)
		}()
	}
	wg.Wait()
}
