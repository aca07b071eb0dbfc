package catalog

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories lets every Store implementation run the same contract
// tests.
var storeFactories = map[string]func(t *testing.T) Store{
	"memory": func(t *testing.T) Store {
		return NewMemoryStore()
	},
	"sqlite": func(t *testing.T) Store {
		store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "formulas.db"))
		require.NoError(t, err)
		return store
	},
}

func TestStoreSaveLoad(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			require.NoError(t, store.Save("total", "sum(xs)"))

			source, err := store.Load("total")
			require.NoError(t, err)
			assert.Equal(t, "sum(xs)", source)

			_, err = store.Load("missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			require.NoError(t, store.Save("e", "1"))

			infos, err := store.List()
			require.NoError(t, err)
			require.Len(t, infos, 1)
			originalID := infos[0].ID

			require.NoError(t, store.Save("e", "2"))

			source, err := store.Load("e")
			require.NoError(t, err)
			assert.Equal(t, "2", source)

			infos, err = store.List()
			require.NoError(t, err)
			require.Len(t, infos, 1, "overwrite keeps a single entry")
			assert.Equal(t, originalID, infos[0].ID, "overwrite keeps the original id")
		})
	}
}

func TestStoreListOrderAndMetadata(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			require.NoError(t, store.Save("zeta", "1 + 1"))
			require.NoError(t, store.Save("alpha", "222"))

			infos, err := store.List()
			require.NoError(t, err)
			require.Len(t, infos, 2)
			assert.Equal(t, "alpha", infos[0].Name)
			assert.Equal(t, "zeta", infos[1].Name)
			assert.Equal(t, int64(3), infos[0].Size)
			assert.Equal(t, int64(5), infos[1].Size)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			require.NoError(t, store.Save("e", "1"))
			require.NoError(t, store.Delete("e"))
			_, err := store.Load("e")
			assert.ErrorIs(t, err, ErrNotFound)

			// Deleting a missing name is not an error.
			assert.NoError(t, store.Delete("never_existed"))
		})
	}
}

func TestStoreClosed(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			require.NoError(t, store.Close())

			assert.ErrorIs(t, store.Save("e", "1"), ErrStoreClosed)
			_, err := store.Load("e")
			assert.ErrorIs(t, err, ErrStoreClosed)
			_, err = store.List()
			assert.ErrorIs(t, err, ErrStoreClosed)
			assert.ErrorIs(t, store.Delete("e"), ErrStoreClosed)
		})
	}
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulas.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save("total", "sum(xs)"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	source, err := reopened.Load("total")
	require.NoError(t, err)
	assert.Equal(t, "sum(xs)", source)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				name := fmt.Sprintf("e%d", i%10)
				_ = store.Save(name, "1 + 1")
				_, _ = store.Load(name)
			}
		}(g)
	}
	wg.Wait()

	infos, err := store.List()
	require.NoError(t, err)
	assert.Len(t, infos, 10)
}
