package shell

import (
	"strings"

	"github.com/anmitsu/go-shlex"
)

// Split breaks a line into words on runs of whitespace. There is no quoting
// so a word can't contain whitespace.
func Split(line string) []string {
	return strings.Fields(line)
}

// SplitQuoted breaks a line into words honoring POSIX quotes and escapes.
func SplitQuoted(line string) ([]string, error) {
	return shlex.Split(line, true)
}

// ExpandHome returns a copy of tokens with every ~ replaced by home.
func ExpandHome(tokens []string, home string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = strings.ReplaceAll(tok, "~", home)
	}
	return out
}
