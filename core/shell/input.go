package shell

import (
	"io"
	"sync"
)

// lineGate shares stdin between the line editor and foreground children.
//
// The editor only gets bytes while a line is being read and never past the
// end of that line, so anything typed after it stays in stdin for the next
// reader. Bytes are read one at a time for that reason.
type lineGate struct {
	r io.Reader

	mu     sync.Mutex
	cond   *sync.Cond
	open   bool
	closed bool
}

func newLineGate(r io.Reader) *lineGate {
	g := &lineGate{r: r}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Open lets the editor read up to the end of the next line.
func (g *lineGate) Open() {
	g.mu.Lock()
	g.open = true
	g.mu.Unlock()
	g.cond.Broadcast()
}

// Close releases a blocked reader, later reads return io.EOF.
func (g *lineGate) Close() error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.cond.Broadcast()
	return nil
}

func (g *lineGate) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	g.mu.Lock()
	for !g.open && !g.closed {
		g.cond.Wait()
	}
	closed := g.closed
	g.mu.Unlock()
	if closed {
		return 0, io.EOF
	}

	n, err := g.r.Read(p[:1])
	// Raw terminals end lines with \r, pipes with \n.
	if n == 1 && (p[0] == '\n' || p[0] == '\r') {
		g.mu.Lock()
		g.open = false
		g.mu.Unlock()
	}
	return n, err
}
