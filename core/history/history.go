// Package history keeps the persistent, size-bounded log of accepted commands.
package history

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Log is a line oriented command log capped at a fixed number of entries.
//
// Every Append drops at most one entry, the oldest, when the log is already
// at its limit so the log holds Limit entries in steady state.
type Log struct {
	fs    afero.Fs
	path  string
	limit int
}

// New creates a log stored at path on the given filesystem.
func New(fs afero.Fs, path string, limit int) *Log {
	if limit < 1 {
		limit = 1
	}
	return &Log{fs: fs, path: path, limit: limit}
}

// Path returns the location of the log file.
func (l *Log) Path() string {
	return l.path
}

// Limit returns the number of entries retained.
func (l *Log) Limit() int {
	return l.limit
}

// Entries returns the logged commands, oldest first. A missing log is empty.
func (l *Log) Entries() ([]string, error) {
	fd, err := l.fs.Open(l.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, err
	}
	defer fd.Close()

	var out []string
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		out = append(out, scanner.Text())
	}
	return out, scanner.Err()
}

// Len returns the number of logged commands.
func (l *Log) Len() (int, error) {
	entries, err := l.Entries()
	return len(entries), err
}

// Append logs the space joined tokens as a new entry.
func (l *Log) Append(tokens []string) error {
	entry := strings.Join(tokens, " ")

	entries, err := l.Entries()
	if err != nil {
		return err
	}

	if len(entries) < l.limit {
		fd, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		if _, err := fd.WriteString(entry + "\n"); err != nil {
			fd.Close()
			return err
		}
		return fd.Close()
	}

	// Evict the oldest entry and rewrite.
	return l.write(append(entries[1:], entry))
}

// Search returns every entry containing term, oldest first.
func (l *Log) Search(term string) ([]string, error) {
	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, entry := range entries {
		if strings.Contains(entry, term) {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}

// Clear removes every entry from the log.
func (l *Log) Clear() error {
	return l.write(nil)
}

func (l *Log) write(entries []string) error {
	buf := &bytes.Buffer{}
	for _, entry := range entries {
		buf.WriteString(entry)
		buf.WriteByte('\n')
	}
	return afero.WriteFile(l.fs, l.path, buf.Bytes(), 0600)
}
