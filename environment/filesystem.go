package environment

import (
	"errors"
	"io/fs"
	"os"
)

type osFileSystem struct{}

// OSFileSystem returns the [FileSystem] backed by the os package.
func OSFileSystem() FileSystem {
	return osFileSystem{}
}

func (osFileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

func (osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
