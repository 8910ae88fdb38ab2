// Package osfs provides a filesystem adapter using the standard library os package.
package osfs

import (
	"os"

	"github.com/mcdonaldj/pseudoshell/internal/ports"
)

// OSFileSystem implements ports.FileSystem using the standard library.
// The current working directory is the process's own; nothing is cached here.
type OSFileSystem struct{}

// New creates a new OSFileSystem adapter.
func New() *OSFileSystem {
	return &OSFileSystem{}
}

// Getwd returns the absolute current working directory.
func (f *OSFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir changes the current working directory.
func (f *OSFileSystem) Chdir(dir string) error {
	return os.Chdir(dir)
}

// Mkdir creates a single directory with the given permission bits.
func (f *OSFileSystem) Mkdir(name string, perm os.FileMode) error {
	return os.Mkdir(name, perm)
}

// Stat returns file info for the named file.
func (f *OSFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Open opens the named file for reading.
func (f *OSFileSystem) Open(name string) (ports.File, error) {
	file, err := os.Open(name)
	if err != nil {
		// Avoid returning a typed nil inside the interface.
		return nil, err
	}
	return file, nil
}

// OpenFile opens the named file with the given flags and permission.
func (f *OSFileSystem) OpenFile(name string, flag int, perm os.FileMode) (ports.File, error) {
	file, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Remove removes the named file or empty directory.
func (f *OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// ReadDirNames returns directory entry names in system order.
// Unlike os.ReadDir, the names are not sorted.
func (f *OSFileSystem) ReadDirNames(name string) ([]string, error) {
	dir, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer dir.Close()
	return dir.Readdirnames(-1)
}

// SameFile reports whether a and b describe the same file.
func (f *OSFileSystem) SameFile(a, b os.FileInfo) bool {
	return os.SameFile(a, b)
}

// Compile-time check that OSFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*OSFileSystem)(nil)
