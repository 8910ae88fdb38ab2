// Package mocks provides mock implementations for testing.
package mocks

import (
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/mcdonaldj/pseudoshell/internal/ports"
)

// MockFileSystem implements ports.FileSystem in memory for testing.
// Paths are slash-separated; relative names resolve against Cwd.
type MockFileSystem struct {
	// Files maps absolute paths to file contents
	Files map[string][]byte
	// Dirs is the set of absolute directory paths
	Dirs map[string]bool
	// Perms records the permission each entry was created with
	Perms map[string]os.FileMode
	// Errors maps names (as passed by the caller) to errors for simulating failures
	Errors map[string]error
	// WriteErrors maps absolute paths to errors returned by Write on an open handle
	WriteErrors map[string]error
	// Cwd is the current working directory
	Cwd string
	// OpenHandles counts handles opened and not yet closed
	OpenHandles int
	// Removed records every path passed to a successful Remove
	Removed []string
}

// NewMockFileSystem creates a new mock filesystem containing only "/".
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:       make(map[string][]byte),
		Dirs:        map[string]bool{"/": true},
		Perms:       make(map[string]os.FileMode),
		Errors:      make(map[string]error),
		WriteErrors: make(map[string]error),
		Cwd:         "/",
	}
}

// AddFile adds a file, creating any missing parent directories.
func (m *MockFileSystem) AddFile(name string, content []byte) {
	p := m.abs(name)
	m.AddDir(path.Dir(p))
	m.Files[p] = content
}

// AddDir adds a directory and its parents.
func (m *MockFileSystem) AddDir(name string) {
	p := m.abs(name)
	for p != "/" {
		m.Dirs[p] = true
		p = path.Dir(p)
	}
}

func (m *MockFileSystem) abs(name string) string {
	if path.IsAbs(name) {
		return path.Clean(name)
	}
	return path.Join(m.Cwd, name)
}

func (m *MockFileSystem) exists(p string) bool {
	_, isFile := m.Files[p]
	return isFile || m.Dirs[p]
}

// Getwd returns the mock's current working directory.
func (m *MockFileSystem) Getwd() (string, error) {
	if err, ok := m.Errors["."]; ok {
		return "", err
	}
	return m.Cwd, nil
}

// Chdir changes the current working directory.
func (m *MockFileSystem) Chdir(dir string) error {
	if err, ok := m.Errors[dir]; ok {
		return err
	}
	p := m.abs(dir)
	if m.Dirs[p] {
		m.Cwd = p
		return nil
	}
	if _, ok := m.Files[p]; ok {
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	}
	return &fs.PathError{Op: "chdir", Path: dir, Err: fs.ErrNotExist}
}

// Mkdir creates a single directory.
func (m *MockFileSystem) Mkdir(name string, perm os.FileMode) error {
	if err, ok := m.Errors[name]; ok {
		return err
	}
	p := m.abs(name)
	if m.exists(p) {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	if !m.Dirs[path.Dir(p)] {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrNotExist}
	}
	m.Dirs[p] = true
	m.Perms[p] = perm
	return nil
}

// Stat returns file info for the named file.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	p := m.abs(name)
	if m.Dirs[p] {
		return &mockFileInfo{name: path.Base(p), path: p, isDir: true, mode: fs.ModeDir | m.Perms[p]}, nil
	}
	if content, ok := m.Files[p]; ok {
		return &mockFileInfo{name: path.Base(p), path: p, size: int64(len(content)), mode: m.Perms[p]}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// Open opens the named file for reading.
func (m *MockFileSystem) Open(name string) (ports.File, error) {
	return m.OpenFile(name, os.O_RDONLY, 0)
}

// OpenFile opens the named file honoring O_CREATE, O_TRUNC and O_EXCL.
func (m *MockFileSystem) OpenFile(name string, flag int, perm os.FileMode) (ports.File, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	p := m.abs(name)
	writable := flag&(os.O_WRONLY|os.O_RDWR) != 0

	if m.Dirs[p] {
		if writable {
			return nil, &fs.PathError{Op: "open", Path: name, Err: syscall.EISDIR}
		}
		m.OpenHandles++
		return &mockFile{fs: m, path: p, isDir: true}, nil
	}

	_, exists := m.Files[p]
	switch {
	case exists && flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrExist}
	case !exists && flag&os.O_CREATE == 0:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	case !exists:
		if !m.Dirs[path.Dir(p)] {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		m.Files[p] = []byte{}
		m.Perms[p] = perm
	case flag&os.O_TRUNC != 0 && writable:
		m.Files[p] = []byte{}
	}

	m.OpenHandles++
	return &mockFile{fs: m, path: p, writable: writable}, nil
}

// Remove removes the named file or empty directory.
func (m *MockFileSystem) Remove(name string) error {
	if err, ok := m.Errors[name]; ok {
		return err
	}
	p := m.abs(name)
	if _, ok := m.Files[p]; ok {
		delete(m.Files, p)
		delete(m.Perms, p)
		m.Removed = append(m.Removed, p)
		return nil
	}
	if m.Dirs[p] {
		if len(m.children(p)) > 0 {
			return &fs.PathError{Op: "remove", Path: name, Err: syscall.ENOTEMPTY}
		}
		delete(m.Dirs, p)
		delete(m.Perms, p)
		m.Removed = append(m.Removed, p)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
}

// ReadDirNames returns the names in a directory, sorted for determinism.
func (m *MockFileSystem) ReadDirNames(name string) ([]string, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	p := m.abs(name)
	if !m.Dirs[p] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return m.children(p), nil
}

func (m *MockFileSystem) children(dir string) []string {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var names []string
	add := func(p string) {
		if p != dir && strings.HasPrefix(p, prefix) && !strings.Contains(p[len(prefix):], "/") {
			names = append(names, p[len(prefix):])
		}
	}
	for p := range m.Files {
		add(p)
	}
	for p := range m.Dirs {
		add(p)
	}
	sort.Strings(names)
	return names
}

// SameFile reports whether a and b were produced for the same mock path.
func (m *MockFileSystem) SameFile(a, b os.FileInfo) bool {
	fa, ok1 := a.(*mockFileInfo)
	fb, ok2 := b.(*mockFileInfo)
	return ok1 && ok2 && fa.path == fb.path
}

// mockFileInfo implements os.FileInfo for testing.
type mockFileInfo struct {
	name    string
	path    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	isDir   bool
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

// mockFile implements ports.File against the owning MockFileSystem.
type mockFile struct {
	fs       *MockFileSystem
	path     string
	offset   int
	isDir    bool
	writable bool
	closed   bool
}

func (f *mockFile) Stat() (os.FileInfo, error) {
	return f.fs.Stat(f.path)
}

func (f *mockFile) Read(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if f.isDir {
		return 0, &fs.PathError{Op: "read", Path: f.path, Err: syscall.EISDIR}
	}
	content := f.fs.Files[f.path]
	if f.offset >= len(content) {
		return 0, io.EOF
	}
	n := copy(p, content[f.offset:])
	f.offset += n
	return n, nil
}

func (f *mockFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if !f.writable {
		return 0, &fs.PathError{Op: "write", Path: f.path, Err: syscall.EBADF}
	}
	if err, ok := f.fs.WriteErrors[f.path]; ok {
		return 0, err
	}
	f.fs.Files[f.path] = append(f.fs.Files[f.path], p...)
	return len(p), nil
}

func (f *mockFile) Close() error {
	if f.closed {
		return os.ErrClosed
	}
	f.closed = true
	f.fs.OpenHandles--
	return nil
}

// Compile-time check that MockFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*MockFileSystem)(nil)
