package shell

import (
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

const DefaultPrompt = `\u@\h:\W> `

var (
	colorBoldGreen = color.New(color.FgGreen, color.Bold)
	colorBoldBlue  = color.New(color.FgBlue, color.Bold)
)

func init() {
	// Coloring is decided per prompt, not by the terminal the test or process
	// happens to run under.
	colorBoldGreen.EnableColor()
	colorBoldBlue.EnableColor()
}

// Prompt describes how the prompt is rendered.
//
// Template escapes: \u user, \h host, \w working directory with the home
// directory shown as ~, \W the last element of it, \$ is # for root and $
// otherwise.
type Prompt struct {
	Template string
	User     string
	Host     string
	Color    bool
}

func (p Prompt) paint(c *color.Color, s string) string {
	if p.Color {
		return c.Sprint(s)
	}
	return s
}

// Render fills the template for the working directory dir.
func (p Prompt) Render(dir, home string) string {
	template := p.Template
	if template == "" {
		template = DefaultPrompt
	}

	pwd := dir
	if home != "" && (pwd == home || strings.HasPrefix(pwd, home+"/")) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}

	base := filepath.Base(pwd)
	if pwd == "/" || base == "" {
		base = "/"
	}

	sigil := "$"
	if p.User == "root" {
		sigil = "#"
	}

	return strings.NewReplacer(
		`\u`, p.paint(colorBoldGreen, p.User),
		`\h`, p.paint(colorBoldGreen, p.Host),
		`\w`, p.paint(colorBoldBlue, pwd),
		`\W`, p.paint(colorBoldBlue, base),
		`\$`, sigil,
	).Replace(template)
}

// Prompt renders the prompt for the current working directory.
func (s *Shell) Prompt() string {
	return s.prompt.Render(s.dir, s.home)
}
