// Package fsops implements the shell's filesystem commands directly on top of
// ports.FileSystem. Nothing here spawns processes or caches filesystem state;
// the working directory is always read from, and changed through, the filesystem.
package fsops

import (
	"fmt"
	"io"
	"os"

	"github.com/mcdonaldj/pseudoshell/internal/ports"
)

const (
	// DirPerm is the mode for directories created by MakeDir (owner only).
	DirPerm os.FileMode = 0o700
	// FilePerm is the mode for files created by CopyFile (owner only).
	FilePerm os.FileMode = 0o700
)

// Ops runs filesystem commands against FS, writing normal output to Out.
type Ops struct {
	FS  ports.FileSystem
	Out io.Writer
}

// New creates Ops over the given filesystem and output writer.
func New(fsys ports.FileSystem, out io.Writer) *Ops {
	return &Ops{FS: fsys, Out: out}
}

// List writes the names in the current directory, one per line, in the order
// the system returns them. "." and ".." come first.
func (o *Ops) List() error {
	cwd, err := o.FS.Getwd()
	if err != nil {
		return &OpError{Op: opGetwd, Err: err}
	}
	names, err := o.FS.ReadDirNames(cwd)
	if err != nil {
		return &OpError{Op: opOpenDir, Path: cwd, Err: err}
	}
	for _, name := range append([]string{".", ".."}, names...) {
		if _, err := fmt.Fprintln(o.Out, name); err != nil {
			return &OpError{Op: opWrite, Path: cwd, Err: err}
		}
	}
	return nil
}

// ShowCwd writes the absolute current working directory.
func (o *Ops) ShowCwd() error {
	cwd, err := o.FS.Getwd()
	if err != nil {
		return &OpError{Op: opGetwd, Err: err}
	}
	if _, err := fmt.Fprintln(o.Out, cwd); err != nil {
		return &OpError{Op: opWrite, Path: cwd, Err: err}
	}
	return nil
}

// MakeDir creates a single directory readable only by its owner.
func (o *Ops) MakeDir(name string) error {
	if err := o.FS.Mkdir(name, DirPerm); err != nil {
		return &OpError{Op: opMkdir, Path: name, Err: err}
	}
	return nil
}

// ChangeDir changes the process working directory.
func (o *Ops) ChangeDir(dir string) error {
	if err := o.FS.Chdir(dir); err != nil {
		return &OpError{Op: opChdir, Path: dir, Err: err}
	}
	return nil
}

// Destination resolves where a copy of src into dst lands. dst is checked
// on every call since scripts may create or remove it between commands.
func (o *Ops) Destination(src, dst string) string {
	info, err := o.FS.Stat(dst)
	return ResolveDestination(src, dst, err == nil && info.IsDir())
}

// CopyFile copies the bytes of the regular file src to the resolved
// destination, creating or truncating it with owner-only permissions.
func (o *Ops) CopyFile(src, dst string) error {
	in, err := o.FS.Open(src)
	if err != nil {
		return &OpError{Op: opCopy, Path: src, Err: err}
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return &OpError{Op: opCopy, Path: src, Err: err}
	}
	if !srcInfo.Mode().IsRegular() {
		return &OpError{Op: opCopy, Path: src, Err: fmt.Errorf("%s: %w", src, ErrNotRegular)}
	}

	target := o.Destination(src, dst)
	if dstInfo, err := o.FS.Stat(target); err == nil && o.FS.SameFile(srcInfo, dstInfo) {
		return &OpError{Op: opCopy, Path: target, Err: fmt.Errorf("%s and %s: %w", src, target, ErrSameFile)}
	}

	out, err := o.FS.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePerm)
	if err != nil {
		return &OpError{Op: opCopy, Path: target, Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &OpError{Op: opCopy, Path: target, Err: err}
	}
	if err := out.Close(); err != nil {
		return &OpError{Op: opCopy, Path: target, Err: err}
	}
	return nil
}

// MoveFile copies src to dst and then deletes src. The source is left in
// place when the copy fails.
func (o *Ops) MoveFile(src, dst string) error {
	if err := o.CopyFile(src, dst); err != nil {
		return err
	}
	return o.DeleteFile(src)
}

// DeleteFile removes a file. Directories are refused, never removed.
func (o *Ops) DeleteFile(name string) error {
	if info, err := o.FS.Stat(name); err == nil && info.IsDir() {
		return &OpError{Op: opRmdir, Path: name, Err: fmt.Errorf("%s: %w", name, ErrIsDirectory)}
	}
	if err := o.FS.Remove(name); err != nil {
		return &OpError{Op: opRemove, Path: name, Err: err}
	}
	return nil
}

// DisplayFile writes the file's bytes verbatim followed by a newline.
func (o *Ops) DisplayFile(name string) error {
	f, err := o.FS.Open(name)
	if err != nil {
		return &OpError{Op: opDisplay, Path: name, Err: err}
	}
	defer f.Close()

	if _, err := io.Copy(o.Out, f); err != nil {
		return &OpError{Op: opDisplay, Path: name, Err: err}
	}
	if _, err := fmt.Fprintln(o.Out); err != nil {
		return &OpError{Op: opDisplay, Path: name, Err: err}
	}
	return nil
}
