package cmd

import (
	"log"

	"github.com/josephlewis42/minishell/core/config"
	"github.com/spf13/cobra"
)

// initCmd intializes the shell configuration
var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Write the default configuration and an example alias file.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		sess, err := newSession(cmd)
		if err != nil {
			return err
		}

		dir := sess.configDir()
		if len(args) > 0 {
			dir = args[0]
		}

		_, err = config.Initialize(dir, sess.home, logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
