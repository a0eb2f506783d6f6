package capture

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pulsewire/internal/fsutil"
)

func TestListCaptures(t *testing.T) {
	t.Parallel()

	t.Run("lists only csv files sorted", func(t *testing.T) {
		t.Parallel()
		mfs := fsutil.NewMemoryFileSystem()
		require.NoError(t, mfs.WriteFile("/DATA/slave.csv", []byte("0,0\n"), 0644))
		require.NoError(t, mfs.WriteFile("/DATA/master.CSV", []byte("0,0\n"), 0644))
		require.NoError(t, mfs.WriteFile("/DATA/readme.txt", []byte("x"), 0644))
		require.NoError(t, mfs.WriteFile("/DATA/old/archived.csv", []byte("0,0\n"), 0644))

		paths, err := ListCaptures(mfs, "/DATA")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join("/DATA", "master.CSV"),
			filepath.Join("/DATA", "slave.csv"),
		}, paths)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		_, err := ListCaptures(fsutil.NewMemoryFileSystem(), "/DATA")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory does not exist")
	})

	t.Run("no captures", func(t *testing.T) {
		t.Parallel()
		mfs := fsutil.NewMemoryFileSystem()
		require.NoError(t, mfs.MkdirAll("/DATA", 0755))
		_, err := ListCaptures(mfs, "/DATA")
		assert.True(t, errors.Is(err, ErrNoCaptures), "got %v", err)
	})

	t.Run("os filesystem", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		osfs := fsutil.OSFileSystem{}
		require.NoError(t, osfs.WriteFile(filepath.Join(dir, "b.csv"), []byte("0,0\n"), 0644))
		require.NoError(t, osfs.WriteFile(filepath.Join(dir, "a.csv"), []byte("0,0\n"), 0644))
		require.NoError(t, osfs.MkdirAll(filepath.Join(dir, "dir.csv"), 0755))

		paths, err := ListCaptures(osfs, dir)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, paths)
	})
}

func TestLoadFile(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/DATA/cap.csv", []byte("time,voltage\n0,3.3\n1e-6,0.1\n"), 0644))
	require.NoError(t, mfs.WriteFile("/DATA/bad.csv", []byte("time,voltage\n0,x\n"), 0644))

	samples, err := LoadFile(mfs, "/DATA/cap.csv")
	require.NoError(t, err)
	assert.Len(t, samples, 2)

	_, err = LoadFile(mfs, "/DATA/bad.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/DATA/bad.csv")

	_, err = LoadFile(mfs, "/DATA/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}
