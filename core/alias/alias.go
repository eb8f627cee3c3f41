// Package alias loads alias definitions and expands command words with them.
package alias

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// Alias is a named shortcut for a fixed token sequence.
type Alias struct {
	Name      string
	Expansion []string
}

func (a Alias) String() string {
	return fmt.Sprintf("%s=%s", a.Name, strings.Join(a.Expansion, " "))
}

// Table holds aliases in definition order.
type Table struct {
	aliases []Alias

	// Exact requires the command word to equal the alias name. By default a
	// name matches if it occurs anywhere within the command word.
	Exact bool
}

// NewTable creates a table from the aliases, order is preserved.
func NewTable(aliases ...Alias) *Table {
	return &Table{aliases: aliases}
}

// Parse reads alias definitions in name=word word... format. Lines containing
// a '#' anywhere are comments. Lines without a name or expansion are skipped
// and reported through skipped if it's non-nil.
func Parse(r io.Reader, skipped func(lineno int, line string)) (*Table, error) {
	table := &Table{}

	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		if strings.Contains(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		split := strings.SplitN(line, "=", 2)
		if len(split) != 2 {
			if skipped != nil {
				skipped(lineno, line)
			}
			continue
		}

		name := strings.TrimSpace(split[0])
		expansion := strings.Fields(split[1])
		if name == "" || len(expansion) == 0 {
			if skipped != nil {
				skipped(lineno, line)
			}
			continue
		}

		table.aliases = append(table.aliases, Alias{Name: name, Expansion: expansion})
	}

	return table, scanner.Err()
}

// Load reads the alias file at path. A missing file yields an empty table.
func Load(fsys afero.Fs, path string, skipped func(lineno int, line string)) (*Table, error) {
	fd, err := fsys.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Table{}, nil
	case err != nil:
		return nil, err
	}
	defer fd.Close()

	return Parse(fd, skipped)
}

// Aliases returns a copy of the aliases in definition order.
func (t *Table) Aliases() []Alias {
	return append([]Alias(nil), t.aliases...)
}

// Len returns the number of aliases.
func (t *Table) Len() int {
	return len(t.aliases)
}

// Lookup returns the first alias matching the command word.
func (t *Table) Lookup(word string) (Alias, bool) {
	for _, a := range t.aliases {
		if a.Name == word || (!t.Exact && strings.Contains(word, a.Name)) {
			return a, true
		}
	}
	return Alias{}, false
}

// Expand replaces the whole token sequence with the expansion of the alias
// matching tokens[0]. Arguments following the command word are discarded.
func (t *Table) Expand(tokens []string) ([]string, bool) {
	if len(tokens) == 0 {
		return nil, false
	}

	a, ok := t.Lookup(tokens[0])
	if !ok {
		return tokens, false
	}
	return append([]string(nil), a.Expansion...), true
}
