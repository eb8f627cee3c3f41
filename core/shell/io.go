package shell

import (
	"io"
)

// Streams holds the standard streams bound to a command.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	toClose listCloser
}

// Close releases any files opened for the streams.
func (s *Streams) Close() error {
	err := s.toClose.Close()
	s.toClose = nil
	return err
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
