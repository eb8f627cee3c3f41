package shell

import (
	"io"

	"github.com/abiosoft/readline"
)

// Editor is a line editor that leaves stdin alone between lines, so a
// foreground child reads what's typed for it.
type Editor struct {
	*readline.Instance
	input *lineGate
}

var _ LineReader = (*Editor)(nil)

// Readline reads the next line.
func (e *Editor) Readline() (string, error) {
	e.input.Open()
	return e.Instance.Readline()
}

// Close restores the terminal and stops reading stdin.
func (e *Editor) Close() error {
	e.input.Close()
	return e.Instance.Close()
}

// NewReadline creates a line editor reading from stdin that completes
// commands known to the shell. Recall works in memory only, the persistent
// history log is written by the shell itself.
func NewReadline(s *Shell, stdin io.Reader, stdout, stderr io.Writer, isTerminal bool) (*Editor, error) {
	input := newLineGate(stdin)
	cfg := &readline.Config{
		Prompt:       s.Prompt(),
		Stdin:        readline.NewCancelableStdin(input),
		Stdout:       stdout,
		Stderr:       stderr,
		AutoComplete: &Completer{Shell: s},
		FuncIsTerminal: func() bool {
			return isTerminal
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	return &Editor{Instance: rl, input: input}, nil
}
