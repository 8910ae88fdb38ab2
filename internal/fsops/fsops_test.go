package fsops

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcdonaldj/pseudoshell/internal/adapters/osfs"
	"github.com/mcdonaldj/pseudoshell/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOSOps(t *testing.T) (*Ops, *bytes.Buffer, string) {
	t.Helper()
	out := &bytes.Buffer{}
	dir := t.TempDir()
	t.Chdir(dir)
	return New(osfs.New(), out), out, dir
}

func newMockOps() (*Ops, *bytes.Buffer, *mocks.MockFileSystem) {
	out := &bytes.Buffer{}
	mockFS := mocks.NewMockFileSystem()
	return New(mockFS, out), out, mockFS
}

// limitedWriter accepts ok writes and fails every write after that.
type limitedWriter struct {
	ok     int
	writes int
	buf    bytes.Buffer
}

var errBrokenPipe = errors.New("write: broken pipe")

func (w *limitedWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.ok {
		return 0, errBrokenPipe
	}
	return w.buf.Write(p)
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0600))
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	return string(data)
}

// ============================================================================
// list / show-cwd
// ============================================================================

func TestListIncludesDotEntries(t *testing.T) {
	ops, out, _ := newOSOps(t)
	writeFile(t, "one.txt", "1")
	require.NoError(t, os.Mkdir("sub", 0700))

	require.NoError(t, ops.List())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{".", ".."}, lines[:2])
	assert.ElementsMatch(t, []string{"one.txt", "sub"}, lines[2:])
}

func TestListFollowsCwd(t *testing.T) {
	ops, out, mockFS := newMockOps()
	mockFS.AddFile("/a/in-a.txt", nil)
	mockFS.AddFile("/b/in-b.txt", nil)
	mockFS.Cwd = "/b"

	require.NoError(t, ops.List())
	assert.Equal(t, ".\n..\nin-b.txt\n", out.String())
}

func TestListUnreadableDirectory(t *testing.T) {
	ops, out, mockFS := newMockOps()
	mockFS.Errors["/"] = os.ErrPermission

	err := ops.List()
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, opOpenDir, opErr.Op)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Empty(t, out.String())
}

func TestShowCwdIsIdempotent(t *testing.T) {
	ops, out, _ := newOSOps(t)

	require.NoError(t, ops.ShowCwd())
	first := out.String()
	out.Reset()
	require.NoError(t, ops.ShowCwd())

	assert.Equal(t, first, out.String())
	assert.True(t, filepath.IsAbs(strings.TrimSpace(first)))
}

func TestShowCwdError(t *testing.T) {
	ops, _, mockFS := newMockOps()
	mockFS.Errors["."] = errors.New("getcwd: no such file or directory")

	err := ops.ShowCwd()
	require.Error(t, err)
	assert.Contains(t, err.Error(), opGetwd)
}

func TestOutputWriteFailures(t *testing.T) {
	tests := []struct {
		name string
		ok   int
		run  func(ops *Ops) error
		op   string
	}{
		{"ls first line", 0, (*Ops).List, opWrite},
		{"ls entry", 3, (*Ops).List, opWrite},
		{"pwd", 0, (*Ops).ShowCwd, opWrite},
		{"cat content", 0, func(o *Ops) error { return o.DisplayFile("/f") }, opDisplay},
		{"cat trailing newline", 1, func(o *Ops) error { return o.DisplayFile("/f") }, opDisplay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFS := mocks.NewMockFileSystem()
			mockFS.AddFile("/a", []byte("1"))
			mockFS.AddFile("/b", []byte("2"))
			mockFS.AddFile("/f", []byte("body"))
			w := &limitedWriter{ok: tt.ok}

			err := tt.run(New(mockFS, w))
			require.ErrorIs(t, err, errBrokenPipe)
			assert.Contains(t, err.Error(), tt.op)
			assert.Equal(t, tt.ok+1, w.writes, "stops at the first failed write")
			assert.Equal(t, 0, mockFS.OpenHandles)
		})
	}
}

// ============================================================================
// make-dir / change-dir
// ============================================================================

func TestMakeDirOwnerOnly(t *testing.T) {
	ops, _, dir := newOSOps(t)

	require.NoError(t, ops.MakeDir("newdir"))

	info, err := os.Stat(filepath.Join(dir, "newdir"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Zero(t, info.Mode().Perm()&0o077, "group/other bits must be clear")
}

func TestMakeDirExisting(t *testing.T) {
	ops, _, _ := newOSOps(t)
	require.NoError(t, ops.MakeDir("dup"))

	err := ops.MakeDir("dup")
	assert.ErrorIs(t, err, os.ErrExist)
	assert.Contains(t, err.Error(), opMkdir)
}

func TestMakeDirUsesOwnerPermission(t *testing.T) {
	ops, _, mockFS := newMockOps()
	require.NoError(t, ops.MakeDir("d"))
	assert.Equal(t, DirPerm, mockFS.Perms["/d"])
}

func TestChangeDirThenShowCwd(t *testing.T) {
	ops, out, dir := newOSOps(t)
	require.NoError(t, os.Mkdir("subdir", 0700))

	require.NoError(t, ops.ChangeDir("subdir"))
	require.NoError(t, ops.ShowCwd())

	want, err := filepath.EvalSymlinks(filepath.Join(dir, "subdir"))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestChangeDirFailures(t *testing.T) {
	ops, _, mockFS := newMockOps()
	mockFS.AddFile("/plain", nil)

	assert.ErrorIs(t, ops.ChangeDir("/nope"), os.ErrNotExist)

	err := ops.ChangeDir("/plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), opChdir)
	assert.Equal(t, "/", mockFS.Cwd)
}

// ============================================================================
// copy-file
// ============================================================================

func TestCopyFileIntoDirectory(t *testing.T) {
	ops, out, _ := newOSOps(t)
	content := "line one\nline two\x00binary"
	require.NoError(t, os.MkdirAll("src/nested", 0700))
	writeFile(t, "src/nested/data.bin", content)
	require.NoError(t, os.Mkdir("dest", 0700))

	require.NoError(t, ops.CopyFile("src/nested/data.bin", "dest"))
	assert.Equal(t, content, readFile(t, filepath.Join("dest", "data.bin")))

	require.NoError(t, ops.DisplayFile(filepath.Join("dest", "data.bin")))
	assert.Equal(t, content+"\n", out.String())
}

func TestCopyFileIntoDirectoryWithTrailingSeparator(t *testing.T) {
	ops, _, _ := newOSOps(t)
	writeFile(t, "a.txt", "alpha")
	require.NoError(t, os.Mkdir("dest", 0700))

	require.NoError(t, ops.CopyFile("a.txt", "dest/"))
	assert.Equal(t, "alpha", readFile(t, filepath.Join("dest", "a.txt")))
}

func TestCopyFileToNewPath(t *testing.T) {
	ops, _, _ := newOSOps(t)
	writeFile(t, "a.txt", "alpha")

	require.NoError(t, ops.CopyFile("a.txt", "b.txt"))
	assert.Equal(t, "alpha", readFile(t, "b.txt"))

	info, err := os.Stat("b.txt")
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0o077)
}

func TestCopyFileTruncatesExistingDestination(t *testing.T) {
	ops, _, _ := newOSOps(t)
	writeFile(t, "short.txt", "new")
	writeFile(t, "long.txt", "a much longer previous content")

	require.NoError(t, ops.CopyFile("short.txt", "long.txt"))
	assert.Equal(t, "new", readFile(t, "long.txt"))
}

func TestCopyFileReevaluatesDestination(t *testing.T) {
	ops, _, _ := newOSOps(t)
	writeFile(t, "a.txt", "alpha")

	require.NoError(t, ops.CopyFile("a.txt", "target"))
	assert.Equal(t, "alpha", readFile(t, "target"))

	require.NoError(t, os.Remove("target"))
	require.NoError(t, os.Mkdir("target", 0700))

	require.NoError(t, ops.CopyFile("a.txt", "target"))
	assert.Equal(t, "alpha", readFile(t, filepath.Join("target", "a.txt")))
}

func TestCopyFileMissingSource(t *testing.T) {
	ops, _, _ := newOSOps(t)

	err := ops.CopyFile("missing.txt", "out.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), opCopy)
	_, statErr := os.Stat("out.txt")
	assert.ErrorIs(t, statErr, os.ErrNotExist, "destination must not be created")
}

func TestCopyFileDirectorySource(t *testing.T) {
	ops, _, _ := newOSOps(t)
	require.NoError(t, os.Mkdir("dir", 0700))

	err := ops.CopyFile("dir", "out")
	assert.ErrorIs(t, err, ErrNotRegular)
}

func TestCopyFileOntoItself(t *testing.T) {
	ops, _, _ := newOSOps(t)
	writeFile(t, "a.txt", "keep me")

	assert.ErrorIs(t, ops.CopyFile("a.txt", "a.txt"), ErrSameFile)
	assert.ErrorIs(t, ops.CopyFile("a.txt", "."), ErrSameFile)
	assert.Equal(t, "keep me", readFile(t, "a.txt"))
}

func TestCopyFileDestinationParentMissing(t *testing.T) {
	ops, _, _ := newOSOps(t)
	writeFile(t, "a.txt", "alpha")

	err := ops.CopyFile("a.txt", filepath.Join("no", "such", "dir.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopyFileReleasesHandlesOnFailure(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *mocks.MockFileSystem)
	}{
		{"destination open fails", func(m *mocks.MockFileSystem) {
			m.Errors["/out"] = os.ErrPermission
		}},
		{"write fails", func(m *mocks.MockFileSystem) {
			m.WriteErrors["/out"] = errors.New("no space left on device")
		}},
		{"source is directory", func(m *mocks.MockFileSystem) {
			delete(m.Files, "/src")
			m.AddDir("/src")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, _, mockFS := newMockOps()
			mockFS.AddFile("/src", []byte("payload"))
			tt.setup(mockFS)

			require.Error(t, ops.CopyFile("/src", "/out"))
			assert.Equal(t, 0, mockFS.OpenHandles)
		})
	}
}

func TestCopyFileReleasesHandlesOnSuccess(t *testing.T) {
	ops, _, mockFS := newMockOps()
	mockFS.AddFile("/src", []byte("payload"))

	require.NoError(t, ops.CopyFile("/src", "/out"))
	assert.Equal(t, "payload", string(mockFS.Files["/out"]))
	assert.Equal(t, FilePerm, mockFS.Perms["/out"])
	assert.Equal(t, 0, mockFS.OpenHandles)
}

// ============================================================================
// move-file
// ============================================================================

func TestMoveFile(t *testing.T) {
	ops, _, _ := newOSOps(t)
	writeFile(t, "a.txt", "moving")
	require.NoError(t, os.Mkdir("dest", 0700))

	require.NoError(t, ops.MoveFile("a.txt", "dest"))

	_, err := os.Stat("a.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "moving", readFile(t, filepath.Join("dest", "a.txt")))
}

func TestMoveFileKeepsSourceWhenCopyFails(t *testing.T) {
	ops, _, mockFS := newMockOps()
	mockFS.AddFile("/src.txt", []byte("precious"))
	mockFS.Errors["/readonly/src.txt"] = os.ErrPermission
	mockFS.AddDir("/readonly")

	err := ops.MoveFile("/src.txt", "/readonly")
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "precious", string(mockFS.Files["/src.txt"]))
	assert.Empty(t, mockFS.Removed)
}

func TestMoveFileUnreadableSource(t *testing.T) {
	ops, _, mockFS := newMockOps()
	mockFS.AddFile("/secret", []byte("x"))
	mockFS.Errors["/secret"] = os.ErrPermission

	require.Error(t, ops.MoveFile("/secret", "/elsewhere"))
	_, ok := mockFS.Files["/secret"]
	assert.True(t, ok)
	_, ok = mockFS.Files["/elsewhere"]
	assert.False(t, ok)
}

func TestMoveFileOntoItself(t *testing.T) {
	ops, _, _ := newOSOps(t)
	writeFile(t, "a.txt", "stay")

	assert.ErrorIs(t, ops.MoveFile("a.txt", "."), ErrSameFile)
	assert.Equal(t, "stay", readFile(t, "a.txt"))
}

// ============================================================================
// delete-file / display-file
// ============================================================================

func TestDeleteFile(t *testing.T) {
	ops, _, _ := newOSOps(t)
	writeFile(t, "gone.txt", "x")

	require.NoError(t, ops.DeleteFile("gone.txt"))
	_, err := os.Stat("gone.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDeleteFileRefusesDirectory(t *testing.T) {
	ops, _, _ := newOSOps(t)
	require.NoError(t, os.Mkdir("keep", 0700))
	writeFile(t, filepath.Join("keep", "inner.txt"), "inner")
	require.NoError(t, os.Mkdir("empty", 0700))

	for _, dir := range []string{"keep", "empty"} {
		err := ops.DeleteFile(dir)
		assert.ErrorIs(t, err, ErrIsDirectory)
		assert.Contains(t, err.Error(), opRmdir)

		info, statErr := os.Stat(dir)
		require.NoError(t, statErr)
		assert.True(t, info.IsDir())
	}
	assert.Equal(t, "inner", readFile(t, filepath.Join("keep", "inner.txt")))
}

func TestDeleteFileRefusesDirectoryWithoutRemove(t *testing.T) {
	ops, _, mockFS := newMockOps()
	mockFS.AddDir("/empty")

	assert.ErrorIs(t, ops.DeleteFile("/empty"), ErrIsDirectory)
	assert.Empty(t, mockFS.Removed)
}

func TestDeleteFileMissing(t *testing.T) {
	ops, _, _ := newOSOps(t)

	err := ops.DeleteFile("nothing")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), opRemove)
}

func TestDisplayFile(t *testing.T) {
	ops, out, _ := newOSOps(t)
	writeFile(t, "hello.txt", "hello\nworld")

	require.NoError(t, ops.DisplayFile("hello.txt"))
	assert.Equal(t, "hello\nworld\n", out.String())
}

func TestDisplayEmptyFile(t *testing.T) {
	ops, out, _ := newOSOps(t)
	writeFile(t, "empty", "")

	require.NoError(t, ops.DisplayFile("empty"))
	assert.Equal(t, "\n", out.String())
}

func TestDisplayFileMissing(t *testing.T) {
	ops, out, mockFS := newMockOps()

	err := ops.DisplayFile("/missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), opDisplay)
	assert.Empty(t, out.String())
	assert.Equal(t, 0, mockFS.OpenHandles)
}

func TestDisplayDirectoryClosesHandle(t *testing.T) {
	ops, _, mockFS := newMockOps()
	mockFS.AddDir("/d")

	require.Error(t, ops.DisplayFile("/d"))
	assert.Equal(t, 0, mockFS.OpenHandles)
}
