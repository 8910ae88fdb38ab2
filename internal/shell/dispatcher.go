package shell

import (
	"io"

	"github.com/mcdonaldj/pseudoshell/internal/fsops"
	"github.com/mcdonaldj/pseudoshell/internal/parser"
	"github.com/sirupsen/logrus"
)

// Dispatcher validates statements against the arity table and runs them.
type Dispatcher struct {
	Ops *fsops.Ops
	Log logrus.FieldLogger
}

// NewDispatcher creates a Dispatcher. A nil logger discards everything.
func NewDispatcher(ops *fsops.Ops, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Dispatcher{Ops: ops, Log: log}
}

// Dispatch runs one statement. Unknown names and bad argument counts are
// rejected before anything touches the filesystem.
func (d *Dispatcher) Dispatch(st parser.Statement) error {
	cmd, ok := Lookup(st.Name)
	if !ok {
		return &UnsupportedError{Name: st.Name}
	}
	if n := len(st.Args); n < cmd.MinArgs || n > cmd.MaxArgs {
		return &UsageError{Command: cmd, Got: n}
	}

	d.Log.WithFields(logrus.Fields{
		"command":   st.Name,
		"args":      st.Args,
		"statement": st.String(),
	}).Debug("dispatching statement")

	return cmd.Run(d.Ops, st.Args)
}

// RunLine tokenizes and dispatches every statement on line. The first error
// of any kind ends the line; the remaining statements are not run.
func (d *Dispatcher) RunLine(line string) error {
	for st, err := range parser.Statements(line) {
		if err != nil {
			return err
		}
		if err := d.Dispatch(st); err != nil {
			return err
		}
	}
	return nil
}
