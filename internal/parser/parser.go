// Package parser splits raw input lines into statements.
//
// A line holds zero or more statements separated by ';' (or a line
// terminator). Each statement is a run of whitespace-separated fields: the
// first is the command name, the rest are positional arguments. There is no
// quoting, escaping or expansion of any kind.
package parser

import (
	"errors"
	"iter"
	"strings"
)

// ErrSyntax is reported for a statement made up only of whitespace.
var ErrSyntax = errors.New("incorrect syntax: empty statement")

// Statement is one command name plus its positional arguments.
type Statement struct {
	Name string
	Args []string
}

// String rebuilds the statement with single spaces between fields.
func (s Statement) String() string {
	if len(s.Args) == 0 {
		return s.Name
	}
	return s.Name + " " + strings.Join(s.Args, " ")
}

func isSeparator(r rune) bool {
	return r == ';' || r == '\n' || r == '\r'
}

// Statements yields the statements of line in order. Empty segments are
// skipped. A whitespace-only segment yields ErrSyntax and ends the sequence.
// The sequence is evaluated lazily, so a consumer that stops early never
// tokenizes the rest of the line.
func Statements(line string) iter.Seq2[Statement, error] {
	return func(yield func(Statement, error) bool) {
		for segment := range strings.FieldsFuncSeq(line, isSeparator) {
			fields := strings.Fields(segment)
			if len(fields) == 0 {
				yield(Statement{}, ErrSyntax)
				return
			}
			if !yield(Statement{Name: fields[0], Args: fields[1:]}, nil) {
				return
			}
		}
	}
}
