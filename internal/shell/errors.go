package shell

import (
	"errors"
	"fmt"
)

// ErrLineTooLong is reported when an input line exceeds the configured limit.
// The whole line is discarded rather than truncated.
var ErrLineTooLong = errors.New("line too long")

// UnsupportedError is returned for a command name missing from the arity table.
type UnsupportedError struct {
	Name string
}

func (e *UnsupportedError) Error() string {
	return "Unrecognized command: " + e.Name
}

// UsageError is returned when a statement has the wrong number of arguments.
type UsageError struct {
	Command Command
	Got     int
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("Unsupported parameters for command: %s (usage: %s)", e.Command.Name, e.Command.Synopsis())
}
