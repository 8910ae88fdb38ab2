package shell

import (
	"sort"

	"github.com/mcdonaldj/pseudoshell/internal/fsops"
)

// Command describes one built-in: how many arguments it accepts and what it runs.
type Command struct {
	Name    string
	MinArgs int
	MaxArgs int
	// Usage is the argument pattern shown after the name in usage errors.
	Usage string
	Run   func(ops *fsops.Ops, args []string) error
}

// commands is the arity table. A map literal rejects duplicate names at compile time.
var commands = map[string]Command{
	"ls": {
		Name: "ls",
		Run:  func(o *fsops.Ops, _ []string) error { return o.List() },
	},
	"pwd": {
		Name: "pwd",
		Run:  func(o *fsops.Ops, _ []string) error { return o.ShowCwd() },
	},
	"mkdir": {
		Name: "mkdir", MinArgs: 1, MaxArgs: 1, Usage: "<name>",
		Run: func(o *fsops.Ops, args []string) error { return o.MakeDir(args[0]) },
	},
	"cd": {
		Name: "cd", MinArgs: 1, MaxArgs: 1, Usage: "directory",
		Run: func(o *fsops.Ops, args []string) error { return o.ChangeDir(args[0]) },
	},
	"cp": {
		Name: "cp", MinArgs: 2, MaxArgs: 2, Usage: "<src> <dst>",
		Run: func(o *fsops.Ops, args []string) error { return o.CopyFile(args[0], args[1]) },
	},
	"mv": {
		Name: "mv", MinArgs: 2, MaxArgs: 2, Usage: "<src> <dst>",
		Run: func(o *fsops.Ops, args []string) error { return o.MoveFile(args[0], args[1]) },
	},
	"rm": {
		Name: "rm", MinArgs: 1, MaxArgs: 1, Usage: "<filename>",
		Run: func(o *fsops.Ops, args []string) error { return o.DeleteFile(args[0]) },
	},
	"cat": {
		Name: "cat", MinArgs: 1, MaxArgs: 1, Usage: "<filename>",
		Run: func(o *fsops.Ops, args []string) error { return o.DisplayFile(args[0]) },
	},
}

// Lookup returns the built-in registered under name.
func Lookup(name string) (Command, bool) {
	cmd, ok := commands[name]
	return cmd, ok
}

// Names returns the recognized command names, sorted.
func Names() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Synopsis is the name followed by the usage pattern, e.g. "cp <src> <dst>".
func (c Command) Synopsis() string {
	if c.Usage == "" {
		return c.Name
	}
	return c.Name + " " + c.Usage
}
