package cmd

import (
	"os"
	"time"

	"github.com/josephlewis42/minishell/core/shell"
	"github.com/josephlewis42/minishell/core/ttylog"
	"github.com/spf13/cobra"
)

var idleTimeLimit time.Duration

var recordingCmd = &cobra.Command{
	Use:     "recording",
	Aliases: []string{"recordings"},
	Short:   "Explore sessions recorded with --record.",
}

// playCommand replays a recording in real time
var playCommand = &cobra.Command{
	Use:   "play FILE",
	Short: "Replay a recorded session in the terminal.",
	Long:  `Plays a recorded session back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		sink = ttylog.NewRealTimePlayback(idleTimeLimit, nil, sink)
		return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), sink)
	},
}

// catCommand prints a recording without pauses
var catCommand = &cobra.Command{
	Use:   "cat FILE",
	Short: "Print the full output of a recorded session.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), sink)
	},
}

// recordingReader logs every line read as terminal input.
type recordingReader struct {
	shell.LineReader
	recorder *ttylog.Recorder
}

func (r *recordingReader) Readline() (string, error) {
	line, err := r.LineReader.Readline()
	if err == nil {
		if recErr := r.recorder.Input(line + "\n"); recErr != nil {
			return line, recErr
		}
	}
	return line, err
}

func init() {
	rootCmd.AddCommand(recordingCmd)
	recordingCmd.AddCommand(playCommand)
	recordingCmd.AddCommand(catCommand)

	// cat doesn't allow idle time
	playCommand.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 3*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
}
