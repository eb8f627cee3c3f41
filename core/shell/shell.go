// Package shell resolves input lines to builtins, aliases or programs and
// runs them with optional redirection and backgrounding.
package shell

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/minishell/core/alias"
	"github.com/josephlewis42/minishell/core/history"
	"github.com/spf13/afero"
)

// Exit codes returned by Run.
const (
	// ExitOK is returned after the exit builtin.
	ExitOK = 0
	// ExitClosed is returned when input ends.
	ExitClosed = 1
	// ExitFatal is returned when a background child couldn't be created.
	ExitFatal = 2
)

// NotFoundError is reported when neither an alias nor the search path
// resolves a command.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: command not found", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrCommandNotFound
}

// Options configures a Shell. Zero values get usable defaults.
type Options struct {
	Fs      afero.Fs
	Aliases *alias.Table
	History *history.Log
	Path    SearchPath
	Spawner Spawner

	// Home replaces ~ and is the default cd target.
	Home string
	// Dir is the initial working directory, it must be absolute.
	Dir string
	// Quoting splits lines with shell quotes and escapes.
	Quoting bool

	Prompt Prompt

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// ChildStdout and ChildStderr are inherited by children that aren't
	// redirected, they default to Stdout and Stderr.
	ChildStdout io.Writer
	ChildStderr io.Writer

	Logger *log.Logger
}

// Shell holds the state of one interactive session.
type Shell struct {
	fs      afero.Fs
	aliases *alias.Table
	history *history.Log
	path    SearchPath
	spawner Spawner

	home    string
	dir     string
	quoting bool
	prompt  Prompt

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	childStdout io.Writer
	childStderr io.Writer

	logger *log.Logger

	// Set to true to quit the shell
	quit bool
}

// New creates a shell.
func New(opts Options) *Shell {
	s := &Shell{
		fs:      opts.Fs,
		aliases: opts.Aliases,
		history: opts.History,
		path:    opts.Path,
		spawner: opts.Spawner,
		home:    opts.Home,
		dir:     opts.Dir,
		quoting: opts.Quoting,
		prompt:  opts.Prompt,
		stdin:   opts.Stdin,
		stdout:  opts.Stdout,
		stderr:  opts.Stderr,
		logger:  opts.Logger,

		childStdout: opts.ChildStdout,
		childStderr: opts.ChildStderr,
	}

	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.aliases == nil {
		s.aliases = alias.NewTable()
	}
	if s.history == nil {
		s.history = history.New(afero.NewMemMapFs(), "/history", 1000)
	}
	if s.spawner == nil {
		s.spawner = ExecSpawner{}
	}
	if s.dir == "" {
		s.dir, _ = os.Getwd()
	}
	if s.stdout == nil {
		s.stdout = ioutil.Discard
	}
	if s.stderr == nil {
		s.stderr = ioutil.Discard
	}
	if s.childStdout == nil {
		s.childStdout = s.stdout
	}
	if s.childStderr == nil {
		s.childStderr = s.stderr
	}
	if s.logger == nil {
		s.logger = log.New(ioutil.Discard, "", 0)
	}

	return s
}

// Dir returns the working directory.
func (s *Shell) Dir() string {
	return s.dir
}

// Quit reports whether the exit builtin has run.
func (s *Shell) Quit() bool {
	return s.quit
}

// LineReader supplies input lines, *readline.Instance satisfies it.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Run reads and executes lines until exit, end of input or a fatal error and
// returns the exit code.
func (s *Shell) Run(lr LineReader) int {
	for !s.quit {
		lr.SetPrompt(s.Prompt())
		line, err := lr.Readline()

		switch {
		case err == io.EOF:
			return ExitClosed // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			fmt.Fprintf(s.stderr, "minishell: %v\n", err)
			return ExitClosed
		}

		if err := s.Execute(line); err != nil {
			return ExitFatal
		}
	}
	return ExitOK
}

// Execute runs a single line. Problems with the line are reported on the
// shell's stderr, only errors wrapping ErrFatal are returned.
func (s *Shell) Execute(line string) error {
	words, err := s.split(line)
	switch {
	case err != nil:
		fmt.Fprintf(s.stderr, "minishell: syntax error: %v\n", err)
		return nil
	case len(words) == 0:
		return nil // empty line
	}

	if b, args := findBuiltin(words); b != nil {
		s.logger.Printf("builtin %q", args)
		b.Main(s, args)
		return nil
	}

	resolved, err := s.Resolve(ExpandHome(words, s.home))
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return nil
	}

	if err := s.history.Append(resolved); err != nil {
		fmt.Fprintf(s.stderr, "minishell: history: %v\n", err)
	}

	args, redirs, err := ExtractRedirections(resolved)
	if err != nil {
		fmt.Fprintf(s.stderr, "minishell: syntax error: %v\n", err)
		return nil
	}

	args, bg := SplitBackground(args)
	if len(args) == 0 {
		fmt.Fprintln(s.stderr, "minishell: syntax error: no command")
		return nil
	}

	streams, err := redirs.Open(s.fs, s.dir, Streams{
		Stdin:  s.stdin,
		Stdout: s.childStdout,
		Stderr: s.childStderr,
	})
	if err != nil {
		fmt.Fprintf(s.stderr, "minishell: %v\n", err)
		return nil
	}

	s.logger.Printf("dispatch %q background=%t redirections=%+v", args, bg, redirs)
	if bg {
		return s.background(args, streams)
	}
	s.foreground(args, streams)
	return nil
}

func (s *Shell) split(line string) ([]string, error) {
	if s.quoting {
		return SplitQuoted(line)
	}
	return Split(line), nil
}

// Resolve expands an alias for tokens[0] or, failing that, searches the path
// for it. The returned tokens start with the path of the program to run.
//
// Alias expansions are searched for in the path but never expanded again.
func (s *Shell) Resolve(tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, errors.New("no command")
	}

	if expanded, ok := s.aliases.Expand(tokens); ok {
		s.logger.Printf("alias %q -> %q", tokens[0], expanded)
		tokens = ExpandHome(expanded, s.home)
	}

	path, err := s.path.Resolve(s.fs, s.dir, tokens[0])
	if err != nil {
		return nil, &NotFoundError{Name: tokens[0]}
	}

	return append([]string{path}, tokens[1:]...), nil
}
