package shell

import (
	"errors"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrCommandNotFound is the error resulting if a path search failed to find
// the command.
var ErrCommandNotFound = exec.ErrNotFound

// SearchPath is the ordered list of directories commands are looked up in.
type SearchPath []string

// ParseSearchPath splits a PATH style list using the platform separator.
func ParseSearchPath(path string) SearchPath {
	var out SearchPath
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		out = append(out, dir)
	}
	return out
}

func exists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Resolve finds the first directory containing a file named after the
// command and returns its path. Existence is enough, the file isn't checked
// for execute permission. Commands containing a slash are checked directly
// relative to dir.
//
// Relative search path entries and commands are probed relative to dir but
// returned as written, so the result is suitable for a child running in dir.
func (sp SearchPath) Resolve(fsys afero.Fs, dir, command string) (string, error) {
	if command == "" {
		return "", ErrCommandNotFound
	}

	if strings.Contains(command, "/") {
		ok, err := exists(fsys, abs(dir, command))
		if err != nil || !ok {
			return "", ErrCommandNotFound
		}
		return command, nil
	}

	for _, searchDir := range sp {
		candidate := searchDir + "/" + command
		// Unreadable directories are skipped like missing ones.
		if ok, _ := exists(fsys, abs(dir, candidate)); ok {
			return candidate, nil
		}
	}
	return "", ErrCommandNotFound
}

// abs anchors a relative path to dir.
func abs(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
