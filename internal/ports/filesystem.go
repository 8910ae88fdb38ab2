// Package ports defines interfaces (contracts) for external dependencies.
// These enable dependency injection and testability via mock implementations.
package ports

import (
	"io"
	"os"
)

// File is an open file handle. *os.File satisfies it.
type File interface {
	io.Reader
	io.Writer
	io.Closer

	// Stat returns file info for the open file.
	Stat() (os.FileInfo, error)
}

// FileSystem abstracts the operating-system primitives the shell commands use.
// Production code uses the osfs adapter; tests use mocks.MockFileSystem.
type FileSystem interface {
	// Getwd returns the absolute current working directory.
	Getwd() (string, error)

	// Chdir changes the current working directory.
	Chdir(dir string) error

	// Mkdir creates a single directory with the given permission bits.
	Mkdir(name string, perm os.FileMode) error

	// Stat returns file info for the named file, following symlinks.
	Stat(name string) (os.FileInfo, error)

	// Open opens the named file for reading.
	Open(name string) (File, error)

	// OpenFile opens the named file with the given flags (os.O_*) and permission.
	OpenFile(name string, flag int, perm os.FileMode) (File, error)

	// Remove removes the named file or empty directory.
	Remove(name string) error

	// ReadDirNames returns the entry names of a directory in the order the
	// system returns them. The result is not sorted.
	ReadDirNames(name string) ([]string, error)

	// SameFile reports whether two FileInfos describe the same file.
	SameFile(a, b os.FileInfo) bool
}
