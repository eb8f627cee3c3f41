package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Explore the persisted command history.",
}

var historySearchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Print every history entry containing TERM.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		sess, err := newSession(cmd)
		if err != nil {
			return err
		}

		matches, err := sess.history().Search(args[0])
		if err != nil {
			return err
		}

		for _, match := range matches {
			fmt.Fprintln(cmd.OutOrStdout(), match)
		}
		return nil
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the history with line numbers.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		sess, err := newSession(cmd)
		if err != nil {
			return err
		}

		entries, err := sess.history().Entries()
		if err != nil {
			return err
		}

		for i, entry := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%5d  %s\n", i+1, entry)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every history entry.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		sess, err := newSession(cmd)
		if err != nil {
			return err
		}

		log := sess.history()
		if err := log.Clear(); err != nil {
			return err
		}
		sess.logger.Printf("cleared %q", log.Path())
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
}
