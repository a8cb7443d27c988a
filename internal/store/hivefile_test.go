// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regctl/regctl/internal/settings"
)

func tempHive(t *testing.T) *HiveFile {
	t.Helper()
	h, err := OpenHiveFile(filepath.Join(t.TempDir(), "test.hive.json"))
	require.NoError(t, err)
	return h
}

func TestOpenMissingIsEmptyStore(t *testing.T) {
	h := tempHive(t)

	exists, err := h.PathExists(`Software\Vendor`)
	require.NoError(t, err)
	assert.False(t, exists)

	// Nothing written yet, so nothing on disk either.
	_, err = os.Stat(h.path)
	assert.True(t, os.IsNotExist(err))
}

func TestEnsurePathCreatesIntermediates(t *testing.T) {
	h := tempHive(t)

	created, err := h.EnsurePath(`Software\Vendor\App`)
	require.NoError(t, err)
	assert.True(t, created)

	for _, p := range []string{`Software`, `Software\Vendor`, `Software\Vendor\App`} {
		exists, err := h.PathExists(p)
		require.NoError(t, err)
		assert.True(t, exists, p)
	}
}

func TestEnsurePathIdempotent(t *testing.T) {
	h := tempHive(t)

	created, err := h.EnsurePath(`Software\Vendor`)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = h.EnsurePath(`Software\Vendor`)
	require.NoError(t, err)
	assert.False(t, created, "second ensure is a no-op")

	// Case variants address the same key.
	created, err = h.EnsurePath(`SOFTWARE\vendor`)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestPathExistsCaseInsensitive(t *testing.T) {
	h := tempHive(t)

	_, err := h.EnsurePath(`Software\Vendor`)
	require.NoError(t, err)

	exists, err := h.PathExists(`sOfTwArE\VENDOR`)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSetValueMissingPath(t *testing.T) {
	h := tempHive(t)

	err := h.SetValue(`Software\Nope`, "Mode", Value{Type: settings.TypeDword, Data: []byte{1, 0, 0, 0}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
}

func TestSetGetRoundTrip(t *testing.T) {
	h := tempHive(t)

	_, err := h.EnsurePath(`Software\Vendor\App`)
	require.NoError(t, err)

	want := Value{Type: settings.TypeDword, Data: []byte{1, 0, 0, 0}}
	require.NoError(t, h.SetValue(`Software\Vendor\App`, "Mode", want))

	got, found, err := h.GetValue(`Software\Vendor\App`, "Mode")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)

	// Value names fold case too.
	_, found, err = h.GetValue(`software\vendor\app`, "MODE")
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = h.GetValue(`Software\Vendor\App`, "Other")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetValueOverwritesAnyType(t *testing.T) {
	h := tempHive(t)

	_, err := h.EnsurePath(`Software\App`)
	require.NoError(t, err)

	require.NoError(t, h.SetValue(`Software\App`, "V", Value{Type: settings.TypeDword, Data: []byte{1, 0, 0, 0}}))
	require.NoError(t, h.SetValue(`Software\App`, "v", Value{Type: settings.TypeString, Data: []byte{0x41, 0x00, 0x00, 0x00}}))

	got, found, err := h.GetValue(`Software\App`, "V")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, settings.TypeString, got.Type, "later write wins regardless of type or name case")
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persist.hive.json")

	h, err := OpenHiveFile(path)
	require.NoError(t, err)
	_, err = h.EnsurePath(`Software\App`)
	require.NoError(t, err)
	want := Value{Type: settings.TypeQword, Data: []byte{8, 7, 6, 5, 4, 3, 2, 1}}
	require.NoError(t, h.SetValue(`Software\App`, "Big", want))
	require.NoError(t, h.Close())

	// No leftover temp file from the atomic replace.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	h2, err := OpenHiveFile(path)
	require.NoError(t, err)
	got, found, err := h2.GetValue(`Software\App`, "Big")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)
}

func TestOpenRejectsForeignFiles(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
	_, err := OpenHiveFile(bad)
	assert.Error(t, err)

	wrong := filepath.Join(dir, "wrong.json")
	require.NoError(t, os.WriteFile(wrong, []byte(`{"format":"other/9","root":{}}`), 0o644))
	_, err = OpenHiveFile(wrong)
	assert.Error(t, err)
}
