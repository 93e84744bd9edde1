package storage_test

import (
	"path/filepath"
	"testing"

	"homecall/storage"

	"github.com/stretchr/testify/require"
)

func TestKeystoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ks, err := storage.Open(path)
	require.NoError(t, err)
	defer ks.Close()

	got, err := ks.Get(storage.KeyOwnerToken)
	require.NoError(t, err)
	require.Empty(t, got, "missing keys read as empty")

	require.NoError(t, ks.Set(storage.KeyOwnerToken, "tok-1"))
	got, err = ks.Get(storage.KeyOwnerToken)
	require.NoError(t, err)
	require.Equal(t, "tok-1", got)

	// Overwrite.
	require.NoError(t, ks.Set(storage.KeyOwnerToken, "tok-2"))
	got, err = ks.Get(storage.KeyOwnerToken)
	require.NoError(t, err)
	require.Equal(t, "tok-2", got)

	require.NoError(t, ks.Delete(storage.KeyOwnerToken))
	got, err = ks.Get(storage.KeyOwnerToken)
	require.NoError(t, err)
	require.Empty(t, got)

	// Deleting an absent key is fine.
	require.NoError(t, ks.Delete("nope"))
}

func TestKeystoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.db")

	ks, err := storage.Open(path)
	require.NoError(t, err)
	require.NoError(t, ks.Set(storage.KeyProviderToken, "tok"))
	require.NoError(t, ks.Close())

	ks, err = storage.Open(path)
	require.NoError(t, err)
	defer ks.Close()

	got, err := ks.Get(storage.KeyProviderToken)
	require.NoError(t, err)
	require.Equal(t, "tok", got)
}

func TestKeysAreIndependent(t *testing.T) {
	ks, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer ks.Close()

	require.NoError(t, ks.Set(storage.KeyOwner, `{"name":"O"}`))
	require.NoError(t, ks.Set(storage.KeyOwnerToken, "a"))
	require.NoError(t, ks.Set(storage.KeyProviderToken, "b"))

	require.NoError(t, ks.Delete(storage.KeyOwnerToken))

	got, err := ks.Get(storage.KeyOwner)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	got, err = ks.Get(storage.KeyProviderToken)
	require.NoError(t, err)
	require.Equal(t, "b", got)
}
