package shell

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pborman/getopt/v2"
)

// Builtin is a command run inside the shell before any alias or path lookup.
type Builtin struct {
	Name  string
	Short string
	// Anywhere triggers the builtin on any word of the line rather than only
	// the first one.
	Anywhere bool
	Main     func(s *Shell, args []string) int
}

// builtins are checked in order, the first match consumes the line.
var builtins []*Builtin

// AllBuiltins lists the registered builtins in the order they're matched.
func AllBuiltins() []Builtin {
	var out []Builtin
	for _, b := range builtins {
		out = append(out, *b)
	}
	return out
}

func addBuiltin(b *Builtin) {
	builtins = append(builtins, b)
}

// findBuiltin returns the builtin the line invokes and its arguments starting
// with the builtin's own name.
func findBuiltin(tokens []string) (*Builtin, []string) {
	for _, b := range builtins {
		for i, tok := range tokens {
			if i > 0 && !b.Anywhere {
				break
			}
			if tok == b.Name {
				return b, tokens[i:]
			}
		}
	}
	return nil, nil
}

// Exit quits the shell.
func Exit(s *Shell, args []string) int {
	s.quit = true
	return 0
}

// SearchHistory prints every history entry containing the word after ???.
func SearchHistory(s *Shell, args []string) int {
	if len(args) < 2 {
		fmt.Fprintf(s.stderr, "%s: usage: %s WORD\n", args[0], args[0])
		return 1
	}

	matches, err := s.history.Search(args[1])
	if err != nil {
		fmt.Fprintf(s.stderr, "%s: %v\n", args[0], err)
		return 1
	}

	for _, match := range matches {
		fmt.Fprintln(s.stdout, match)
	}
	return 0
}

// Cd changes the working directory, any target containing ~ or a missing
// target goes home.
func Cd(s *Shell, args []string) int {
	target := s.home
	if len(args) > 1 && !strings.Contains(args[1], "~") {
		target = args[1]
	}

	dir := abs(s.dir, target)
	info, err := s.fs.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(s.stderr, "%s: cannot access '%s': No such file or directory\n", args[0], target)
		return 1
	case err != nil:
		fmt.Fprintf(s.stderr, "%s: %s: %v\n", args[0], target, err)
		return 1
	case !info.IsDir():
		fmt.Fprintf(s.stderr, "%s: %s: Not a directory\n", args[0], target)
		return 1
	}

	s.dir = filepath.Clean(dir)
	return 0
}

// History displays or clears the history log.
func History(s *Shell, args []string) int {
	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")
	count := opts.Int('n', 0, "only show the last N entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.stderr
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "usage: history [-c] [-n N]")
		fmt.Fprintln(w, "Display the history list with line numbers.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		if err != nil {
			return 1
		}
		return 0
	}

	if *clear {
		if err := s.history.Clear(); err != nil {
			fmt.Fprintf(s.stderr, "history: %v\n", err)
			return 1
		}
		return 0
	}

	entries, err := s.history.Entries()
	if err != nil {
		fmt.Fprintf(s.stderr, "history: %v\n", err)
		return 1
	}

	start := 0
	if *count > 0 && *count < len(entries) {
		start = len(entries) - *count
	}
	for i := start; i < len(entries); i++ {
		fmt.Fprintf(s.stdout, "%5d  %s\n", i+1, entries[i])
	}
	return 0
}

// Alias lists the loaded aliases.
func Alias(s *Shell, args []string) int {
	opts := getopt.New()
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt || len(opts.Args()) > 0 {
		fmt.Fprintln(s.stderr, "usage: alias")
		fmt.Fprintln(s.stderr, "List aliases, they're defined in the alias file and read at startup.")
		if *helpOpt {
			return 0
		}
		return 1
	}

	for _, a := range s.aliases.Aliases() {
		fmt.Fprintln(s.stdout, a)
	}
	return 0
}

// Help lists the builtins.
func Help(s *Shell, args []string) int {
	PrintBuiltins(s.stdout)
	return 0
}

// PrintBuiltins writes a short description of each builtin.
func PrintBuiltins(w io.Writer) {
	fmt.Fprintln(w, "These shell commands are defined internally.")
	fmt.Fprintln(w)
	for _, b := range builtins {
		fmt.Fprintf(w, "  %-8s %s\n", b.Name, b.Short)
	}
}

func init() {
	addBuiltin(&Builtin{Name: "exit", Short: "Quit the shell.", Main: Exit})
	addBuiltin(&Builtin{Name: "???", Short: "Search the history for a word.", Anywhere: true, Main: SearchHistory})
	addBuiltin(&Builtin{Name: "cd", Short: "Change the working directory.", Anywhere: true, Main: Cd})
	addBuiltin(&Builtin{Name: "history", Short: "Display or clear the history.", Main: History})
	addBuiltin(&Builtin{Name: "alias", Short: "List aliases.", Main: Alias})
	addBuiltin(&Builtin{Name: "help", Short: "Show this list.", Main: Help})
}
