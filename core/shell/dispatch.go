package shell

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"
)

// ErrFatal marks failures that end the whole session.
var ErrFatal = errors.New("fatal")

// Command describes a child process to start.
type Command struct {
	// Path of the program, relative paths are relative to Dir.
	Path string
	// Args holds the command line, including the program as Args[0].
	Args []string
	// Dir is the working directory of the child.
	Dir string
	// Env of the child, nil inherits the shell's environment.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Process is a started child.
type Process interface {
	Wait() error
}

// Spawner starts child processes without waiting for them.
type Spawner interface {
	Spawn(c *Command) (Process, error)
}

// SpawnerFunc adapts a function to a Spawner.
type SpawnerFunc func(c *Command) (Process, error)

// Spawn implements Spawner.Spawn.
func (f SpawnerFunc) Spawn(c *Command) (Process, error) {
	return f(c)
}

// ExecSpawner starts real operating system processes.
type ExecSpawner struct{}

var _ Spawner = ExecSpawner{}

// Spawn implements Spawner.Spawn.
func (ExecSpawner) Spawn(c *Command) (Process, error) {
	cmd := &exec.Cmd{
		Path:   c.Path,
		Args:   c.Args,
		Dir:    c.Dir,
		Env:    c.Env,
		Stdin:  c.Stdin,
		Stdout: c.Stdout,
		Stderr: c.Stderr,
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// SplitBackground strips a trailing & and reports whether it was present.
func SplitBackground(tokens []string) ([]string, bool) {
	if n := len(tokens); n > 0 && tokens[n-1] == "&" {
		return tokens[:n-1], true
	}
	return tokens, false
}

// isForkFailure reports whether err means no child could be created at all,
// as opposed to the program failing to load.
func isForkFailure(err error) bool {
	return errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.ENOMEM) ||
		errors.Is(err, syscall.EPERM)
}

// foreground runs args to completion. The exit status isn't reported.
func (s *Shell) foreground(args []string, streams *Streams) {
	defer streams.Close()

	proc, err := s.spawner.Spawn(s.command(args, streams))
	if err != nil {
		fmt.Fprintf(s.stderr, "%s: %v\n", args[0], err)
		return
	}

	if err := proc.Wait(); err != nil {
		s.logger.Printf("%s: %v", args[0], err)
	}
}

// background starts args without waiting. A child that can't be created
// ends the session.
func (s *Shell) background(args []string, streams *Streams) error {
	proc, err := s.spawner.Spawn(s.command(args, streams))
	switch {
	case err != nil && isForkFailure(err):
		streams.Close()
		fmt.Fprintf(s.stderr, "failed to fork correctly... aborting shell: %v\n", err)
		return fmt.Errorf("%w: %s: %v", ErrFatal, args[0], err)
	case err != nil:
		streams.Close()
		fmt.Fprintf(s.stderr, "%s: %v\n", args[0], err)
		return nil
	}

	fmt.Fprintln(s.stdout, "forking process to background...")

	// The child is never tracked again, the wait only reaps it and releases
	// its redirected files.
	go func() {
		_ = proc.Wait()
		streams.Close()
	}()
	return nil
}

func (s *Shell) command(args []string, streams *Streams) *Command {
	return &Command{
		Path:   args[0],
		Args:   args,
		Dir:    s.dir,
		Stdin:  streams.Stdin,
		Stdout: streams.Stdout,
		Stderr: streams.Stderr,
	}
}
