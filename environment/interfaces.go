package environment

//go:generate mockgen -source=interfaces.go -destination=../internal/mock/filesystem_mock.go -package=mock

import "os"

// FileSystem is the narrow slice of filesystem access the prober needs.
// Production code uses the OS-backed implementation; tests use a gomock double.
type FileSystem interface {
	// Exists reports whether path exists. A missing path is not an error.
	Exists(path string) (bool, error)

	// MkdirAll creates path together with any missing parents. It must not
	// fail when path already exists as a directory.
	MkdirAll(path string, perm os.FileMode) error
}
