package capture

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/pulsewire/internal/fsutil"
	"github.com/banshee-data/pulsewire/internal/pulsewire"
)

// ErrNoCaptures is returned when a capture directory holds no .csv files.
var ErrNoCaptures = errors.New("no .csv files found in directory")

// ListCaptures returns the paths of the .csv files directly inside dir,
// sorted by name.
func ListCaptures(fsys fsutil.FileSystem, dir string) ([]string, error) {
	if !fsys.Exists(dir) {
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCaptures, dir)
	}
	return paths, nil
}

// LoadFile opens and parses the capture at path.
func LoadFile(fsys fsutil.FileSystem, path string) ([]pulsewire.Sample, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	samples, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}
