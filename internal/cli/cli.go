// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mcdonaldj/pseudoshell/internal/adapters/osfs"
	"github.com/mcdonaldj/pseudoshell/internal/config"
	"github.com/mcdonaldj/pseudoshell/internal/fsops"
	"github.com/mcdonaldj/pseudoshell/internal/ports"
	"github.com/mcdonaldj/pseudoshell/internal/shell"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ConfigService provides configuration loading for the CLI.
type ConfigService interface {
	Load(path string) (*config.Config, error)
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	In      io.Reader // Interactive statement source
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	ConfigSvc  ConfigService
	FileSystem ports.FileSystem

	// IsTerminal reports whether In is an interactive terminal
	IsTerminal func() bool

	// Color functions (can be disabled for testing)
	cyan func(a ...interface{}) string
	red  func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		In:         os.Stdin,
		Out:        os.Stdout,
		Err:        os.Stderr,
		Version:    version,
		Args:       os.Args,
		Exit:       os.Exit,
		IsTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		cyan:       color.New(color.FgCyan, color.Bold).SprintFunc(),
		red:        color.New(color.FgRed).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(in io.Reader, out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return &CLI{
		In:         in,
		Out:        out,
		Err:        errOut,
		Version:    "test",
		Args:       args,
		Exit:       func(code int) {},
		IsTerminal: func() bool { return false },
		cyan:       noColor,
		red:        noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load(path string) (*config.Config, error) { return config.Load(path) }

func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) fileSystem() ports.FileSystem {
	if c.FileSystem != nil {
		return c.FileSystem
	}
	return osfs.New()
}

// usageError marks a malformed invocation; usage is printed after the message.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type options struct {
	files      []string
	configPath string
	logLevel   string
	help       bool
}

func (c *CLI) program() string {
	if len(c.Args) > 0 {
		return c.Args[0]
	}
	return "pseudoshell"
}

func (c *CLI) rootCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           c.program() + " [-f <filename>]",
		Short:         "A minimal shell for basic file and directory commands",
		Version:       c.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &usageError{fmt.Errorf("unexpected arguments: %v", args)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case len(opts.files) > 1:
				return &usageError{errors.New("-f may be given only once")}
			case cmd.Flags().Changed("file") && opts.files[0] == "":
				return &usageError{errors.New("-f requires a filename")}
			}
			return c.runSession(opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.files, "file", "f", nil, "read statements from `filename`; output goes to the configured output file")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file location (default ~/.pseudoshell/config.yaml)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "logging verbosity: trace, debug, info, warn, error")

	// Registering "help" ourselves keeps cobra from adding its own; a request
	// for help is then recorded and reported as an invocation error.
	cmd.Flags().BoolVarP(&opts.help, "help", "h", false, "")
	_ = cmd.Flags().MarkHidden("help")
	cmd.SetHelpFunc(func(*cobra.Command, []string) { opts.help = true })

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})
	return cmd
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	args := []string{}
	if len(c.Args) > 1 {
		args = c.Args[1:]
	}

	opts := &options{}
	cmd := c.rootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetIn(c.In)
	cmd.SetOut(c.Out)
	cmd.SetErr(c.Err)

	err := cmd.Execute()
	if err == nil && opts.help {
		err = &usageError{errors.New("unsupported option: help")}
	}
	if err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(c.Err, "Error: %v\n", err)
			c.PrintUsage()
			c.Exit(1)
			return
		}
		fmt.Fprintf(c.Err, "%s\n", c.red(fmt.Sprintf("Error: %v", err)))
		c.Exit(1)
	}
}

// PrintUsage prints both invocation forms to the error stream.
func (c *CLI) PrintUsage() {
	fmt.Fprintf(c.Err, "Interactive mode usage: %s\n", c.program())
	fmt.Fprintf(c.Err, "File mode usage: %s -f <filename>\n", c.program())
	fmt.Fprintf(c.Err, "Commands: %s\n", strings.Join(shell.Names(), ", "))
}

func newLogger(level string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("setting up logger: %w", err)
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, nil
}

// runSession loads configuration, wires the shell and runs it to completion.
// Interactive sessions read c.In with a prompt; batch sessions read the -f
// file and write normal output to the configured output file instead of c.Out.
func (c *CLI) runSession(opts *options) (err error) {
	cfg, err := c.configSvc().Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	log, err := newLogger(cfg.LogLevel, c.Err)
	if err != nil {
		return err
	}

	fsys := c.fileSystem()
	in, out := c.In, c.Out
	prompt := cfg.Prompt
	mode := "interactive"

	if len(opts.files) == 1 {
		mode = "batch"
		file := opts.files[0]
		prompt = ""

		script, err := fsys.Open(file)
		if err != nil {
			return fmt.Errorf("unable to open file %s: %w", file, err)
		}
		defer script.Close()

		output, err := fsys.OpenFile(cfg.OutputFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("unable to open output file %s: %w", cfg.OutputFile, err)
		}
		defer func() {
			if cerr := output.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %s: %w", cfg.OutputFile, cerr)
			}
		}()
		in, out = script, output
	} else if cfg.Color && c.IsTerminal != nil && c.IsTerminal() {
		prompt = c.cyan(prompt)
	}

	sh := shell.New(shell.NewDispatcher(fsops.New(fsys, out), log), in, out, c.Err)
	sh.Prompt = prompt
	sh.MaxLineLength = cfg.MaxLineLength
	if cfg.Color {
		sh.ErrColor = c.red
	}

	log.WithFields(logrus.Fields{"mode": mode, "version": c.Version}).Debug("session started")
	return sh.Run()
}
