package shell

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Redirection operators.
const (
	OpStdin  = "<"
	OpStdout = ">"
	OpStderr = "2>"
)

// ErrMissingOperand is returned when a redirection operator isn't followed by
// a file name.
var ErrMissingOperand = errors.New("redirection missing a file name")

// Redirections names the files bound to each standard stream, an empty name
// inherits the shell's stream.
type Redirections struct {
	Stdin  string
	Stdout string
	Stderr string
}

func (r *Redirections) target(op string) *string {
	switch op {
	case OpStdin:
		return &r.Stdin
	case OpStdout:
		return &r.Stdout
	case OpStderr:
		return &r.Stderr
	default:
		return nil
	}
}

func isOperator(tok string) bool {
	switch tok {
	case OpStdin, OpStdout, OpStderr, "&":
		return true
	}
	return false
}

// ExtractRedirections removes every redirection operator and its operand
// from tokens. If an operator is repeated, the first one is bound.
func ExtractRedirections(tokens []string) ([]string, Redirections, error) {
	var (
		out   []string
		redir Redirections
	)

	for i := 0; i < len(tokens); i++ {
		target := redir.target(tokens[i])
		if target == nil {
			out = append(out, tokens[i])
			continue
		}

		if i+1 >= len(tokens) || isOperator(tokens[i+1]) {
			return nil, Redirections{}, fmt.Errorf("%w: %q", ErrMissingOperand, tokens[i])
		}
		i++
		if *target == "" {
			*target = tokens[i]
		}
	}

	return out, redir, nil
}

// Open binds the redirected files over std. Input is opened for reading,
// output and error are created or truncated. Either every file opens or none
// stay open.
func (r Redirections) Open(fsys afero.Fs, dir string, std Streams) (*Streams, error) {
	out := &Streams{
		Stdin:  std.Stdin,
		Stdout: std.Stdout,
		Stderr: std.Stderr,
	}

	if r.Stdin != "" {
		fd, err := fsys.Open(abs(dir, r.Stdin))
		if err != nil {
			return nil, err
		}
		out.toClose = append(out.toClose, fd)
		out.Stdin = fd
	}

	if r.Stdout != "" {
		fd, err := create(fsys, abs(dir, r.Stdout))
		if err != nil {
			out.Close()
			return nil, err
		}
		out.toClose = append(out.toClose, fd)
		out.Stdout = fd
	}

	if r.Stderr != "" {
		fd, err := create(fsys, abs(dir, r.Stderr))
		if err != nil {
			out.Close()
			return nil, err
		}
		out.toClose = append(out.toClose, fd)
		out.Stderr = fd
	}

	return out, nil
}

func create(fsys afero.Fs, path string) (afero.File, error) {
	return fsys.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
}
