package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Print the aliases the shell would load.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		sess, err := newSession(cmd)
		if err != nil {
			return err
		}

		table, err := sess.aliases()
		if err != nil {
			return err
		}

		for _, a := range table.Aliases() {
			fmt.Fprintln(cmd.OutOrStdout(), a)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aliasesCmd)
}
