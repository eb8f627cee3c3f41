package config

import (
	"io/ioutil"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	fs := afero.NewMemMapFs()
	logger := log.New(ioutil.Discard, "", 0)

	cfg, err := InitializeFs(fs, "/home/alice/.minishell", "/home/alice", logger)
	require.Nil(t, err)

	t.Run("config", func(t *testing.T) {
		written, err := afero.ReadFile(fs, "/home/alice/.minishell/config.yaml")
		assert.Nil(t, err)
		assert.Equal(t, defaultConfigData, written)
	})

	t.Run("aliases", func(t *testing.T) {
		written, err := afero.ReadFile(fs, cfg.AliasesPath("/home/alice"))
		assert.Nil(t, err)
		assert.Equal(t, defaultAliasesData, written)
	})

	t.Run("existing files are kept", func(t *testing.T) {
		require.Nil(t, afero.WriteFile(fs, "/home/alice/.shell_aliases", []byte("x=y\n"), 0600))

		_, err := InitializeFs(fs, "/home/alice/.minishell", "/home/alice", logger)
		require.Nil(t, err)

		kept, err := afero.ReadFile(fs, "/home/alice/.shell_aliases")
		assert.Nil(t, err)
		assert.Equal(t, "x=y\n", string(kept))
	})
}
