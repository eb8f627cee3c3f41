package shell

import (
	"sort"
	"strings"
	"unicode"

	"github.com/abiosoft/readline"
	"github.com/spf13/afero"
)

// Completer completes the command word from builtins, aliases and programs
// on the search path.
type Completer struct {
	Shell *Shell
}

var _ readline.AutoCompleter = (*Completer)(nil)

// Do implements readline.AutoCompleter.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && !unicode.IsSpace(line[start-1]) {
		start--
	}

	// Only the command word is completed.
	if strings.TrimSpace(string(line[:start])) != "" {
		return nil, 0
	}

	prefix := string(line[start:pos])
	var out [][]rune
	for _, match := range c.Shell.Commands(prefix) {
		out = append(out, []rune(strings.TrimPrefix(match, prefix)+" "))
	}
	return out, len([]rune(prefix))
}

// Commands lists the sorted names of builtins, aliases and programs starting
// with prefix.
func (s *Shell) Commands(prefix string) []string {
	seen := make(map[string]bool)
	var matches []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			matches = append(matches, name)
		}
	}

	for _, b := range builtins {
		add(b.Name)
	}
	for _, a := range s.aliases.Aliases() {
		add(a.Name)
	}
	for _, dir := range s.path {
		files, err := afero.ReadDir(s.fs, abs(s.dir, dir))
		if err != nil {
			continue
		}
		for _, f := range files {
			if !f.IsDir() {
				add(f.Name())
			}
		}
	}

	sort.Strings(matches)
	return matches
}
