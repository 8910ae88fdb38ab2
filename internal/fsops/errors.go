package fsops

import "errors"

var (
	// ErrIsDirectory is returned when a file operation is given a directory.
	ErrIsDirectory = errors.New("is a directory")
	// ErrNotRegular is returned when a copy source is not a regular file.
	ErrNotRegular = errors.New("not a regular file")
	// ErrSameFile is returned when a copy would overwrite its own source.
	ErrSameFile = errors.New("source and destination are the same file")
)

// Failure descriptions, one per primitive step that can fail.
const (
	opGetwd   = "Unable to get current directory"
	opOpenDir = "Unable to open directory"
	opMkdir   = "Create new directory failed"
	opChdir   = "Change directory failed"
	opCopy    = "Copy files failed"
	opRmdir   = "Cannot remove directory"
	opRemove  = "File cannot be removed"
	opDisplay = "Display file failed"
	opWrite   = "Write output failed"
)

// OpError records a failed primitive along with the path it was acting on
// and the underlying reason, usually an *fs.PathError from the system.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }
