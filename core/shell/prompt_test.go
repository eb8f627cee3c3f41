package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrompt_Render(t *testing.T) {
	cases := map[string]struct {
		prompt   Prompt
		dir      string
		expected string
	}{
		"default": {
			prompt:   Prompt{User: "alice", Host: "box"},
			dir:      "/home/alice/src/minishell",
			expected: "alice@box:minishell> ",
		},
		"home": {
			prompt:   Prompt{Template: `\w\$ `, User: "alice"},
			dir:      "/home/alice",
			expected: "~$ ",
		},
		"under home": {
			prompt:   Prompt{Template: `\w\$ `, User: "alice"},
			dir:      "/home/alice/src",
			expected: "~/src$ ",
		},
		"home prefix isn't home": {
			prompt:   Prompt{Template: `\w\$ `, User: "alice"},
			dir:      "/home/alicent",
			expected: "/home/alicent$ ",
		},
		"root directory": {
			prompt:   Prompt{Template: `[\W]\$ `, User: "alice"},
			dir:      "/",
			expected: "[/]$ ",
		},
		"root user": {
			prompt:   Prompt{Template: `\u@\h \W\$ `, User: "root", Host: "box"},
			dir:      "/etc",
			expected: "root@box etc# ",
		},
		"literal": {
			prompt:   Prompt{Template: "> "},
			dir:      "/tmp",
			expected: "> ",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.prompt.Render(tc.dir, "/home/alice"))
		})
	}
}

func TestPrompt_Render_color(t *testing.T) {
	p := Prompt{Template: `\u:\W\$ `, User: "alice", Color: true}

	actual := p.Render("/tmp", "/home/alice")

	assert.Contains(t, actual, colorBoldGreen.Sprint("alice"))
	assert.Contains(t, actual, colorBoldBlue.Sprint("tmp"))
	assert.NotEqual(t, "alice:tmp$ ", actual)
}

func TestShell_Prompt(t *testing.T) {
	ts := newTestShell(t)
	assert.Equal(t, "~$ ", ts.Prompt())

	ts.Execute("cd notes")
	assert.Equal(t, "notes$ ", ts.Prompt())
}
