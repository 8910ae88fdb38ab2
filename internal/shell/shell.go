// Package shell runs the read-dispatch loop: it reads one line at a time,
// splits it into statements and hands each one to the Dispatcher.
package shell

import (
	"errors"
	"fmt"
	"io"
)

const (
	// ExitSentinel ends the session when it is the entire line.
	ExitSentinel = "exit"
	// DefaultMaxLineLength bounds a single input line in bytes.
	DefaultMaxLineLength = 4096
)

// Shell is the driver loop. It does not know whether In is a terminal or a
// script; the caller decides that by setting Prompt.
type Shell struct {
	Dispatcher *Dispatcher
	In         io.Reader // Statement source
	Out        io.Writer // Prompt destination
	Err        io.Writer // Error reports

	// Prompt is written to Out before each line. Empty means no prompt.
	Prompt string
	// MaxLineLength is the longest accepted line in bytes. Zero means unlimited.
	MaxLineLength int
	// ErrColor decorates error reports (fatih/color SprintFunc in production).
	ErrColor func(a ...interface{}) string
}

// New creates a Shell with no prompt and the default line limit.
func New(d *Dispatcher, in io.Reader, out, errOut io.Writer) *Shell {
	return &Shell{
		Dispatcher:    d,
		In:            in,
		Out:           out,
		Err:           errOut,
		MaxLineLength: DefaultMaxLineLength,
		ErrColor:      fmt.Sprint,
	}
}

// Run reads and executes lines until end of input or the exit sentinel.
// Statement errors are reported and never end the session; only a failure
// to read input is returned.
func (s *Shell) Run() error {
	r := newLineReader(s.In, s.MaxLineLength)
	lines := 0
	for {
		if s.Prompt != "" {
			fmt.Fprint(s.Out, s.Prompt)
		}

		line, err := r.ReadLine()
		if errors.Is(err, ErrLineTooLong) {
			s.Report(fmt.Errorf("%w (limit %d bytes)", ErrLineTooLong, s.MaxLineLength))
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if line == ExitSentinel {
			break
		}

		lines++
		if err := s.Dispatcher.RunLine(line); err != nil {
			s.Report(err)
		}
	}

	s.Dispatcher.Log.WithField("lines", lines).Debug("session finished")
	return nil
}

// Report writes a statement-level error to the error stream.
func (s *Shell) Report(err error) {
	s.Dispatcher.Log.WithError(err).Debug("statement failed")
	fmt.Fprintln(s.Err, s.ErrColor("Error! "+err.Error()))
}
