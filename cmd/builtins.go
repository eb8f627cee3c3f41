package cmd

import (
	"fmt"
	"sort"

	"github.com/josephlewis42/minishell/core/shell"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands built into the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var builtins []string

		for _, b := range shell.AllBuiltins() {
			builtins = append(builtins, fmt.Sprintf("%-8s %s", b.Name, b.Short))
		}

		sort.Strings(builtins)

		for _, v := range builtins {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
