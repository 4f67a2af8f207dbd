package localstore

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "local.toml")

	f, err := Open(path)
	require.NoError(t, err)

	_, ok := f.Get(KeyCurrency)
	assert.False(t, ok)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "open must not create the file")
}

func TestSetPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "local.toml")

	f, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, f.Set(KeyCurrency, "USD"))
	require.NoError(t, f.Set(KeySessionToken, "tok"))

	reopened, err := Open(path)
	require.NoError(t, err)

	v, ok := reopened.Get(KeyCurrency)
	assert.True(t, ok)
	assert.Equal(t, "USD", v)
	v, ok = reopened.Get(KeySessionToken)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestSetEmptyDeletes(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "local.toml"))
	require.NoError(t, err)

	require.NoError(t, f.Set(KeySessionToken, "tok"))
	require.NoError(t, f.Set(KeySessionToken, ""))

	_, ok := f.Get(KeySessionToken)
	assert.False(t, ok)
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "local.toml")
	corrupt := []byte("this is = = not toml")
	require.NoError(t, os.WriteFile(path, corrupt, 0o600))

	f, err := Open(path)
	require.NoError(t, err)
	_, ok := f.Get(KeyCurrency)
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "Local storage corrupt")

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err, "the corrupt file is kept aside")
	assert.Equal(t, corrupt, backup)

	require.NoError(t, f.Set(KeyCurrency, "EUR"))
	backup, err = os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, corrupt, backup, "a later set does not touch the backup")
}

func TestSessionIDIsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.toml")
	f, err := Open(path)
	require.NoError(t, err)

	id, err := SessionID(f)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^checklist_\d+_[0-9a-f]{9}$`), id)

	again, err := SessionID(f)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	reopened, err := Open(path)
	require.NoError(t, err)
	fromDisk, err := SessionID(reopened)
	require.NoError(t, err)
	assert.Equal(t, id, fromDisk)
}

func TestExpandPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/x/local.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "local.toml"), got)
}
