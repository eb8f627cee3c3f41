package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.HistorySize)
	assert.Equal(t, AliasMatchSubstring, cfg.AliasMatch)
	assert.False(t, cfg.ExactAliases())
}

func TestLoadFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "/etc/minishell/config.yaml", []byte("history_size: 5\nalias_match: exact\n"), 0600))

	t.Run("directory", func(t *testing.T) {
		cfg, err := LoadFs(fs, "/etc/minishell")
		require.Nil(t, err)

		assert.Equal(t, 5, cfg.HistorySize)
		assert.True(t, cfg.ExactAliases())
		// Missing fields keep their defaults.
		assert.Equal(t, "~/.shell_history", cfg.HistoryFile)
		assert.Equal(t, "/etc/minishell", cfg.Dir())
	})

	t.Run("file", func(t *testing.T) {
		cfg, err := LoadFs(fs, "/etc/minishell/config.yaml")
		require.Nil(t, err)
		assert.Equal(t, "/etc/minishell", cfg.Dir())
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFs(fs, "/nowhere")
		assert.NotNil(t, err)
	})
}

func TestLoadFs_invalid(t *testing.T) {
	cases := map[string]string{
		"unknown-field":  "history_length: 10\n",
		"zero-history":   "history_size: 0\n",
		"bad-match-mode": "alias_match: fuzzy\n",
		"bad-color":      "color: sometimes\n",
	}

	for tn, contents := range cases {
		t.Run(tn, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.Nil(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte(contents), 0600))

			_, err := LoadFs(fs, "/cfg")
			assert.NotNil(t, err)
		})
	}
}

func TestConfiguration_ResolvePath(t *testing.T) {
	cfg := &Configuration{configDir: "/etc/minishell"}

	cases := []struct {
		path     string
		expected string
	}{
		{"~", "/home/alice"},
		{"~/.shell_history", "/home/alice/.shell_history"},
		{"/var/log/history", "/var/log/history"},
		{"aliases", "/etc/minishell/aliases"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.expected, cfg.ResolvePath(tc.path, "/home/alice"))
		})
	}
}
