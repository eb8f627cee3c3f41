package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/josephlewis42/minishell/core/shell"
	"github.com/josephlewis42/minishell/core/ttylog"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	cfgPath    string
	verbose    bool
	recordPath string

	// exitCode is set by the interactive shell once it's done.
	exitCode int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minishell",
	Short: "A minimal interactive shell.",
	Long: `An interactive shell with aliases, a persistent history log, output
redirection and background jobs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		sess, err := newSession(cmd)
		if err != nil {
			return err
		}

		aliases, err := sess.aliases()
		if err != nil {
			return err
		}

		dir, err := os.Getwd()
		if err != nil {
			return err
		}

		stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
		var recorder *ttylog.Recorder
		if recordPath != "" {
			fd, err := os.Create(recordPath)
			if err != nil {
				return err
			}
			defer fd.Close()

			sess.logger.Printf("recording session to %q", recordPath)
			title := fmt.Sprintf("%s@%s", sess.user, sess.host)
			recorder = ttylog.NewAsciicastRecorder(fd, ttylog.DefaultHeader(title), time.Now)
			stdout = io.MultiWriter(stdout, recorder)
			stderr = io.MultiWriter(stderr, recorder)
		}

		sh := shell.New(shell.Options{
			Aliases: aliases,
			History: sess.history(),
			Path:    shell.ParseSearchPath(os.Getenv("PATH")),
			Home:    sess.home,
			Dir:     dir,
			Quoting: sess.cfg.Quoting,
			Prompt: shell.Prompt{
				Template: sess.cfg.Prompt,
				User:     sess.user,
				Host:     sess.host,
				Color:    sess.color(os.Stdout),
			},
			Stdin:  os.Stdin,
			Stdout: stdout,
			Stderr: stderr,

			// Children keep the real terminal, so a recording only holds what
			// the shell itself writes.
			ChildStdout: cmd.OutOrStdout(),
			ChildStderr: cmd.ErrOrStderr(),
			Logger:      sess.logger,
		})

		rl, err := shell.NewReadline(sh, os.Stdin, stdout, stderr, isTerminal(os.Stdin))
		if err != nil {
			return err
		}
		defer rl.Close()

		var lr shell.LineReader = rl
		if recorder != nil {
			lr = &recordingReader{LineReader: rl, recorder: recorder}
		}

		exitCode = sh.Run(lr)
		sess.logger.Printf("exiting with code %d", exitCode)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitCode)
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVar(&cfgPath, "config", "", "configuration directory (default ~/.minishell)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log shell internals to stderr")
}

func addShellFlags(flags *pflag.FlagSet) {
	flags.StringVar(&recordPath, "record", "", "record the session to an asciicast file")
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())
	addShellFlags(rootCmd.Flags())
}
